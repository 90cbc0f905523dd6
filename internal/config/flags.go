package config

import (
	"flag"
	"io"
	"time"

	"github.com/dmitrijs2005/passkeeper/internal/flagx"
)

var knownFlags = []string{"-b", "-d", "-u", "-r", "-db", "-m", "-l", "-p", "-log-level", "-log-format"}

// parseFlags populates cfg from the flags in args. Arguments that are not
// config flags are filtered out with flagx.FilterArgs first.
func parseFlags(cfg *Config, args []string) error {
	args = flagx.FilterArgs(args, knownFlags)

	fs := flag.NewFlagSet("passkeeper", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.Backend, "b", cfg.Backend, "storage backend: file, sqlite or bolt")
	fs.StringVar(&cfg.DataDir, "d", cfg.DataDir, "data directory")
	fs.StringVar(&cfg.UsersDocument, "u", cfg.UsersDocument, "users document")
	fs.StringVar(&cfg.RecordsDocument, "r", cfg.RecordsDocument, "records document")
	fs.StringVar(&cfg.DatabaseFile, "db", cfg.DatabaseFile, "database file (sqlite, bolt)")
	fs.IntVar(&cfg.MaxFailedAttempts, "m", cfg.MaxFailedAttempts, "failed attempts before lockout")
	lockout := fs.Int("l", int(cfg.LockoutDuration.Seconds()), "lockout duration (in seconds)")
	fs.StringVar(&cfg.DeletePolicy, "p", cfg.DeletePolicy, "account deletion policy: cascade, orphan or reject")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level")
	fs.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "log format: text or json")

	if err := fs.Parse(args); err != nil {
		return err
	}

	// Only an explicit -l overrides, so sub-second JSON values survive.
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "l" {
			cfg.LockoutDuration = time.Duration(*lockout) * time.Second
		}
	})
	return nil
}
