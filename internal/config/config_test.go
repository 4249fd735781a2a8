package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/fieldmark/contactlex/internal/engine"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "contactlex.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_Full(t *testing.T) {
	path := writeConfig(t, `
lexicon_db: /tmp/lexicon.db
contacts_db: /tmp/contacts.db
locale: fr
profile_name: Jane Doe
max_contacts: 500
accounts:
  - jane.doe
  - work-account
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/tmp/lexicon.db", cfg.LexiconDB)
	assert.Equal(t, "/tmp/contacts.db", cfg.ContactsDB)
	assert.Equal(t, language.Make("fr"), cfg.LocaleTag())
	assert.Equal(t, "Jane Doe", cfg.ProfileName)
	assert.Equal(t, 500, cfg.MaxContacts)
	assert.Equal(t, []string{"jane.doe", "work-account"}, cfg.Accounts)
}

func TestLoad_Defaults(t *testing.T) {
	path := writeConfig(t, `
lexicon_db: lex.db
contacts_db: contacts.db
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "en", cfg.Locale)
	assert.Equal(t, engine.MaxContacts, cfg.MaxContacts)
	assert.Empty(t, cfg.ProfileName)
	assert.Empty(t, cfg.Accounts)
}

func TestLoad_MissingDatabases(t *testing.T) {
	_, err := Load(writeConfig(t, `locale: en`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "lexicon_db")

	_, err = Load(writeConfig(t, `lexicon_db: lex.db`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "contacts_db")
}

func TestLoad_InvalidLocale(t *testing.T) {
	_, err := Load(writeConfig(t, `
lexicon_db: lex.db
contacts_db: contacts.db
locale: "not a locale!"
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "locale")
}

func TestLoad_NegativeMaxContacts(t *testing.T) {
	_, err := Load(writeConfig(t, `
lexicon_db: lex.db
contacts_db: contacts.db
max_contacts: -1
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "max_contacts")
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestLoad_MalformedYAML(t *testing.T) {
	_, err := Load(writeConfig(t, "lexicon_db: [unclosed"))
	assert.Error(t, err)
}
