package config

import (
	"os"
	"path/filepath"
)

// CaseflowPath returns the root directory for caseflow data.
// It uses $CASEFLOW_PATH if set, otherwise defaults to ~/.caseflow.
func CaseflowPath() string {
	if v := os.Getenv("CASEFLOW_PATH"); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".caseflow")
	}
	return filepath.Join(home, ".caseflow")
}

// ConfigPath returns the path to the caseflow config file.
func ConfigPath() string {
	return filepath.Join(CaseflowPath(), "config.jsonc")
}

// DotenvPath returns the path to the caseflow .env file.
func DotenvPath() string {
	return filepath.Join(CaseflowPath(), ".env")
}

// DefaultDBPath returns the default location of the dev service database.
func DefaultDBPath() string {
	return filepath.Join(CaseflowPath(), "tasks.db")
}
