package cli

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fieldmark/contactlex/internal/source"
)

// testEnv is a temp directory holding a config file and both databases.
type testEnv struct {
	dir        string
	configPath string
	contactsDB string
}

func setupEnv(t *testing.T) *testEnv {
	t.Helper()
	dir := t.TempDir()
	env := &testEnv{
		dir:        dir,
		configPath: filepath.Join(dir, "contactlex.yaml"),
		contactsDB: filepath.Join(dir, "contacts.db"),
	}
	cfg := fmt.Sprintf(`
lexicon_db: %s
contacts_db: %s
locale: en
`, filepath.Join(dir, "lexicon.db"), env.contactsDB)
	require.NoError(t, os.WriteFile(env.configPath, []byte(cfg), 0o644))
	return env
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestSeedRebuildCheck(t *testing.T) {
	env := setupEnv(t)

	out, err := execute(t, "seed", "--db", env.contactsDB, "Jane Doe", "Jean-Luc O'Brien")
	require.NoError(t, err)
	assert.Contains(t, out, "added 2 contacts")

	out, err = execute(t, "rebuild", "--config", env.configPath)
	require.NoError(t, err)
	assert.Contains(t, out, "4 words")
	assert.Contains(t, out, "2 bigrams")

	// Source unchanged since the rebuild: check passes.
	out, err = execute(t, "check", "--config", env.configPath)
	require.NoError(t, err)
	assert.Contains(t, out, "lexicon is current")
}

func TestCheck_StaleAfterSourceChange(t *testing.T) {
	env := setupEnv(t)

	_, err := execute(t, "seed", "--db", env.contactsDB, "Jane Doe")
	require.NoError(t, err)
	_, err = execute(t, "rebuild", "--config", env.configPath)
	require.NoError(t, err)

	// A new contact changes the count, so the cheap check flags drift.
	_, err = execute(t, "seed", "--db", env.contactsDB, "Alice Smith")
	require.NoError(t, err)

	out, err := execute(t, "check", "--config", env.configPath)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "lexicon is stale")
}

func TestCheck_StaleAfterRename(t *testing.T) {
	env := setupEnv(t)

	_, err := execute(t, "seed", "--db", env.contactsDB, "Jane Doe")
	require.NoError(t, err)
	_, err = execute(t, "rebuild", "--config", env.configPath)
	require.NoError(t, err)

	// A rename preserves the count; only the content scan catches it.
	db, err := source.Open(env.contactsDB)
	require.NoError(t, err)
	records, err := db.Enumerate(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, records, 1)
	require.NoError(t, db.Rename(context.Background(), records[0].ID, "Janet Doe"))
	require.NoError(t, db.Close())

	_, err = execute(t, "check", "--config", env.configPath)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
}

func TestRebuild_JSONOutput(t *testing.T) {
	env := setupEnv(t)

	_, err := execute(t, "seed", "--db", env.contactsDB, "Jane Doe")
	require.NoError(t, err)

	out, err := execute(t, "--format", "json", "rebuild", "--config", env.configPath)
	require.NoError(t, err)
	assert.Contains(t, out, `"status":"ok"`)
	assert.Contains(t, out, `"words":2`)
}

func TestRebuild_MissingConfig(t *testing.T) {
	_, err := execute(t, "rebuild", "--config", filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestInvalidFormatRejected(t *testing.T) {
	_, err := execute(t, "--format", "xml", "check", "--config", "whatever.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid format")
}
