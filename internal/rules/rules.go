// Package rules loads the merchant→category keyword rules from a YAML file,
// falling back to the built-in table when no file is present.
package rules

import (
	"fmt"
	"os"
	"path/filepath"

	"whereismymoney/wimm/internal/patterns"

	"gopkg.in/yaml.v3"
)

// RulesFile is the structure of the category rules YAML file.
type RulesFile struct {
	Categories []patterns.CategoryRule `yaml:"categories"`
}

// RuleStore resolves and loads category rule files.
type RuleStore struct {
	Path string
}

// NewRuleStore creates a store reading from the given path. An empty path
// means "use the built-in rules".
func NewRuleStore(path string) *RuleStore {
	return &RuleStore{Path: path}
}

// Load returns the category rules in priority order. A missing or empty
// file yields the built-in defaults rather than an error; a file that
// exists but cannot be parsed is an error.
func (s *RuleStore) Load() ([]patterns.CategoryRule, error) {
	if s.Path == "" {
		return patterns.DefaultCategoryRules(), nil
	}

	path, err := s.resolve(s.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return patterns.DefaultCategoryRules(), nil
		}
		return nil, fmt.Errorf("resolving rules file: %w", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading rules file %s: %w", path, err)
	}

	var file RulesFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing rules file %s: %w", path, err)
	}

	if len(file.Categories) == 0 {
		return patterns.DefaultCategoryRules(), nil
	}
	return file.Categories, nil
}

// Save writes rules back to the configured path in YAML form.
func (s *RuleStore) Save(categoryRules []patterns.CategoryRule) error {
	if s.Path == "" {
		return fmt.Errorf("no rules file path configured")
	}

	data, err := yaml.Marshal(RulesFile{Categories: categoryRules})
	if err != nil {
		return fmt.Errorf("marshaling rules: %w", err)
	}

	if dir := filepath.Dir(s.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating rules directory: %w", err)
		}
	}
	return os.WriteFile(s.Path, data, 0o644)
}

// resolve checks the configured path and a few standard locations.
func (s *RuleStore) resolve(filename string) (string, error) {
	if filepath.IsAbs(filename) {
		if _, err := os.Stat(filename); err != nil {
			return "", err
		}
		return filename, nil
	}

	locations := []string{
		filename,
		filepath.Join("config", filename),
	}
	if homeDir, err := os.UserHomeDir(); err == nil {
		locations = append(locations, filepath.Join(homeDir, ".config", "wimm", filename))
	}

	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location, nil
		}
	}
	return "", os.ErrNotExist
}
