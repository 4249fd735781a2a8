package token

import "golang.org/x/text/language"

// bigramLanguages lists language bases whose naming conventions make a
// first-name/last-name pair a useful prediction unit on its own.
//
// TODO: add first/last-name bigram rules for other languages.
var bigramLanguages = map[string]bool{
	"en": true,
}

// UseBigrams reports whether first/last-name bigrams should be emitted for
// the given locale. The decision is computed once at engine construction
// and passed to every Scanner; it never changes mid-pass.
func UseBigrams(tag language.Tag) bool {
	base, _ := tag.Base()
	return bigramLanguages[base.String()]
}
