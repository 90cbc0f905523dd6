package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/passkeeper/internal/flagx"
	"github.com/dmitrijs2005/passkeeper/internal/timex"
)

// JSONConfig is a DTO used exclusively for JSON unmarshalling. Pointer
// fields distinguish an absent key from a zero value.
type JSONConfig struct {
	Backend           *string         `json:"backend"`
	DataDir           *string         `json:"data_dir"`
	UsersDocument     *string         `json:"users_document"`
	RecordsDocument   *string         `json:"records_document"`
	DatabaseFile      *string         `json:"database_file"`
	MaxFailedAttempts *int            `json:"max_failed_attempts"`
	LockoutDuration   *timex.Duration `json:"lockout_duration"`
	DeletePolicy      *string         `json:"delete_policy"`
	LogLevel          *string         `json:"log_level"`
	LogFormat         *string         `json:"log_format"`
}

// parseJSON overlays cfg with the JSON file named by -c / -config in args.
// Without such a flag cfg is left untouched.
func parseJSON(cfg *Config, args []string) error {
	path := flagx.ConfigPath(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}

	var jc JSONConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	setString(&cfg.Backend, jc.Backend)
	setString(&cfg.DataDir, jc.DataDir)
	setString(&cfg.UsersDocument, jc.UsersDocument)
	setString(&cfg.RecordsDocument, jc.RecordsDocument)
	setString(&cfg.DatabaseFile, jc.DatabaseFile)
	setString(&cfg.DeletePolicy, jc.DeletePolicy)
	setString(&cfg.LogLevel, jc.LogLevel)
	setString(&cfg.LogFormat, jc.LogFormat)
	if jc.MaxFailedAttempts != nil {
		cfg.MaxFailedAttempts = *jc.MaxFailedAttempts
	}
	if jc.LockoutDuration != nil {
		cfg.LockoutDuration = jc.LockoutDuration.Duration
	}
	return nil
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
