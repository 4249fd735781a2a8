// Package config loads the contactlex configuration file.
package config

import (
	"fmt"
	"os"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"github.com/fieldmark/contactlex/internal/engine"
)

// Config is the YAML configuration for the contactlex CLI.
type Config struct {
	// LexiconDB is the path to the SQLite lexicon database.
	LexiconDB string `yaml:"lexicon_db"`

	// ContactsDB is the path to the SQLite contact store.
	ContactsDB string `yaml:"contacts_db"`

	// Locale is a BCP 47 tag controlling the bigram policy. Default "en".
	Locale string `yaml:"locale,omitempty"`

	// ProfileName is the device owner's display name, ingested ahead of
	// the general contact store. Optional.
	ProfileName string `yaml:"profile_name,omitempty"`

	// MaxContacts caps ingestion per rebuild pass. Default 10000.
	MaxContacts int `yaml:"max_contacts,omitempty"`

	// Accounts lists account identifiers ingested as standalone words.
	Accounts []string `yaml:"accounts,omitempty"`
}

// Load reads and validates a config file, applying defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.LexiconDB == "" {
		return fmt.Errorf("config: lexicon_db is required")
	}
	if c.ContactsDB == "" {
		return fmt.Errorf("config: contacts_db is required")
	}
	if c.Locale == "" {
		c.Locale = "en"
	}
	if _, err := language.Parse(c.Locale); err != nil {
		return fmt.Errorf("config: invalid locale %q: %w", c.Locale, err)
	}
	if c.MaxContacts < 0 {
		return fmt.Errorf("config: max_contacts must not be negative")
	}
	if c.MaxContacts == 0 {
		c.MaxContacts = engine.MaxContacts
	}
	return nil
}

// LocaleTag returns the parsed locale. Call after Load, which validates it.
func (c *Config) LocaleTag() language.Tag {
	return language.Make(c.Locale)
}
