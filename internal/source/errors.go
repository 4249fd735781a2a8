package source

import (
	"errors"
	"fmt"
)

// ErrUnavailable marks a transient fetch or query failure on an external
// provider. The engine treats it as "skip this source for this pass";
// nothing retries in-line, the next change notification tries again.
var ErrUnavailable = errors.New("source unavailable")

// unavailable wraps err so callers can match it with
// errors.Is(err, ErrUnavailable) while keeping the underlying detail.
func unavailable(op string, err error) error {
	return fmt.Errorf("%s: %w: %v", op, ErrUnavailable, err)
}
