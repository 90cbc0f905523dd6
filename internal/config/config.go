package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/passkeeper/internal/docstore"
	"github.com/dmitrijs2005/passkeeper/internal/services"
	"github.com/dmitrijs2005/passkeeper/internal/throttle"
)

// Config holds runtime settings for the PassKeeper CLI.
type Config struct {
	Backend           string
	DataDir           string
	UsersDocument     string
	RecordsDocument   string
	DatabaseFile      string
	MaxFailedAttempts int
	LockoutDuration   time.Duration
	DeletePolicy      string
	LogLevel          string
	LogFormat         string
}

// LoadDefaults populates c with the defaults of the original file layout.
func (c *Config) LoadDefaults() {
	c.Backend = string(docstore.KindFile)
	c.DataDir = "."
	c.UsersDocument = "users.json"
	c.RecordsDocument = "data/encrypted_data.json"
	c.DatabaseFile = "passkeeper.db"
	c.MaxFailedAttempts = throttle.DefaultMaxAttempts
	c.LockoutDuration = throttle.DefaultLockoutDuration
	c.DeletePolicy = string(services.PolicyCascade)
	c.LogLevel = "info"
	c.LogFormat = "text"
}

// LoadConfig builds a Config from defaults, then the JSON file named by
// -c/-config in args (if any), then the flags in args. Later sources take
// precedence. args excludes the program name.
func LoadConfig(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseJSON(cfg, args); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	switch docstore.Kind(strings.ToLower(c.Backend)) {
	case docstore.KindFile, docstore.KindSQLite, docstore.KindBolt:
	default:
		return fmt.Errorf("unknown backend %q", c.Backend)
	}
	if _, err := services.ParseDeletePolicy(c.DeletePolicy); err != nil {
		return err
	}
	if c.MaxFailedAttempts <= 0 {
		return errors.New("max failed attempts must be positive")
	}
	if c.LockoutDuration <= 0 {
		return errors.New("lockout duration must be positive")
	}
	if c.UsersDocument == "" || c.RecordsDocument == "" {
		return errors.New("document names must not be empty")
	}
	if c.UsersDocument == c.RecordsDocument {
		return errors.New("users and records documents must differ")
	}
	return nil
}

// StoreOptions returns the docstore settings derived from c.
func (c *Config) StoreOptions() docstore.Options {
	return docstore.Options{
		Kind:         docstore.Kind(strings.ToLower(c.Backend)),
		Dir:          c.DataDir,
		DatabaseFile: c.DatabaseFile,
	}
}

// Policy returns the parsed account deletion policy. Call after Validate.
func (c *Config) Policy() services.DeletePolicy {
	p, _ := services.ParseDeletePolicy(c.DeletePolicy)
	return p
}
