// Package rulestore persists automation rules as a YAML file and hands them
// back sorted for first-match evaluation.
package rulestore

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"fintools/bankfeed/internal/logging"
	"fintools/bankfeed/internal/rules"
)

const defaultFileName = "rules.yaml"

// rulesConfig is the on-disk document shape.
type rulesConfig struct {
	Rules []rules.AutomationRule `yaml:"rules"`
}

// Store reads and writes the automation rule list.
type Store struct {
	path   string
	logger logging.Logger
}

// NewStore creates a store. An empty path enables the fallback-location
// search on load; a nil logger gets a default one.
func NewStore(path string, logger logging.Logger) *Store {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &Store{path: path, logger: logger}
}

// Load reads the rule file and returns the rules sorted for evaluation.
// A missing file is not an error; it yields an empty list.
func (s *Store) Load() ([]rules.AutomationRule, error) {
	path, err := s.resolvePath()
	if err != nil {
		s.logger.Info("Rules file not found, starting with no rules")
		return nil, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read rules file %s: %w", path, err)
	}

	var config rulesConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		// Tolerate a bare list without the top-level key.
		var direct []rules.AutomationRule
		if directErr := yaml.Unmarshal(data, &direct); directErr != nil {
			return nil, fmt.Errorf("could not parse rules file %s: %w", path, err)
		}
		config.Rules = direct
	}

	rules.SortRules(config.Rules)
	s.logger.Info("Loaded automation rules",
		logging.Field{Key: logging.FieldFile, Value: path},
		logging.Field{Key: logging.FieldCount, Value: len(config.Rules)})
	return config.Rules, nil
}

// Save writes the rules back to the store's path, creating parent
// directories as needed.
func (s *Store) Save(list []rules.AutomationRule) error {
	path := s.path
	if path == "" {
		path = filepath.Join("database", defaultFileName)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("could not create rules directory: %w", err)
		}
	}

	data, err := yaml.Marshal(rulesConfig{Rules: list})
	if err != nil {
		return fmt.Errorf("could not marshal rules to YAML: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("could not write rules file %s: %w", path, err)
	}

	s.logger.Info("Saved automation rules",
		logging.Field{Key: logging.FieldFile, Value: path},
		logging.Field{Key: logging.FieldCount, Value: len(list)})
	return nil
}

// resolvePath finds the rule file: the configured path first, then the
// executable's database directory, then a database directory relative to the
// working directory.
func (s *Store) resolvePath() (string, error) {
	if s.path != "" {
		if _, err := os.Stat(s.path); err != nil {
			return "", err
		}
		return s.path, nil
	}

	if execPath, err := os.Executable(); err == nil {
		candidate := filepath.Join(filepath.Dir(execPath), "database", defaultFileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
	}

	candidate := filepath.Join("database", defaultFileName)
	if _, err := os.Stat(candidate); err == nil {
		return candidate, nil
	}
	return "", os.ErrNotExist
}
