package cli

import (
	"log/slog"

	"github.com/fieldmark/contactlex/internal/config"
	"github.com/fieldmark/contactlex/internal/engine"
	"github.com/fieldmark/contactlex/internal/lexicon"
	"github.com/fieldmark/contactlex/internal/source"
)

// loadedEngine bundles an engine with the stores it owns, so commands can
// close everything in one place.
type loadedEngine struct {
	Engine   *engine.Engine
	Lexicon  *lexicon.Store
	Contacts *source.DB
}

// Close releases both databases.
func (l *loadedEngine) Close() {
	if err := l.Contacts.Close(); err != nil {
		slog.Error("error closing contact database", "error", err)
	}
	if err := l.Lexicon.Close(); err != nil {
		slog.Error("error closing lexicon database", "error", err)
	}
}

// loadEngine opens the databases named by the config and wires up an
// engine: profile record first, then the contact store, plus the account
// vocabulary. The lexicon store doubles as the persisted-state handle.
func loadEngine(cfg *config.Config) (*loadedEngine, error) {
	lex, err := lexicon.Open(cfg.LexiconDB)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to open lexicon database", err)
	}

	contacts, err := source.Open(cfg.ContactsDB)
	if err != nil {
		lex.Close()
		return nil, WrapExitError(ExitCommandError, "failed to open contact database", err)
	}

	var sources []source.Source
	if cfg.ProfileName != "" {
		sources = append(sources, source.NewStatic([]source.Record{
			{ID: "profile", DisplayName: cfg.ProfileName},
		}))
	}
	sources = append(sources, contacts)

	opts := []engine.Option{engine.WithMaxContacts(cfg.MaxContacts)}
	if len(cfg.Accounts) > 0 {
		opts = append(opts, engine.WithVocabulary(source.Accounts(cfg.Accounts)))
	}

	eng := engine.New(lex, sources, cfg.LocaleTag(), lex, opts...)
	return &loadedEngine{Engine: eng, Lexicon: lex, Contacts: contacts}, nil
}
