package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Settings is the on-disk shape of .vtcopy.yaml / .vtcopy.toml. Nil fields keep the
// current value.
type Settings struct {
	GroupByFile     *bool    `yaml:"group_by_file" toml:"group_by_file"`
	ErrorsOnly      *bool    `yaml:"errors_only" toml:"errors_only"`
	UseNewFormat    *bool    `yaml:"use_new_format" toml:"use_new_format"`
	Format          *string  `yaml:"format" toml:"format"`
	IncludeFileName *bool    `yaml:"include_file_name" toml:"include_file_name"`
	Workers         *int     `yaml:"workers" toml:"workers"`
	Command         *string  `yaml:"command" toml:"command"`
	ResolveFiles    *bool    `yaml:"resolve_files" toml:"resolve_files"`
	TestRoot        *string  `yaml:"test_root" toml:"test_root"`
	PathsToIgnore   []string `yaml:"paths_to_ignore" toml:"paths_to_ignore"`
}

// FindConfigFile returns the first config file present in dir, or "".
func FindConfigFile(dir string) string {
	for _, name := range ConfigFileNames {
		p := filepath.Join(dir, name)
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			return p
		}
	}
	return ""
}

// ReadSettings decodes a YAML or TOML settings file, chosen by extension.
func ReadSettings(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var s Settings
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if _, err := toml.Decode(string(data), &s); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
		}
	default:
		if err := yaml.Unmarshal(data, &s); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
		}
	}
	return &s, nil
}

func (c *Config) loadFile() error {
	path := FindConfigFile(c.ProjectPath)
	if path == "" {
		return nil
	}
	s, err := ReadSettings(path)
	if err != nil {
		return err
	}
	c.apply(s)
	return nil
}

func (c *Config) apply(s *Settings) {
	if s.GroupByFile != nil {
		c.GroupByFile = *s.GroupByFile
	}
	if s.ErrorsOnly != nil {
		c.ErrorsOnly = *s.ErrorsOnly
	}
	if s.UseNewFormat != nil {
		c.UseNewFormat = *s.UseNewFormat
	}
	if s.Format != nil && *s.Format != "" {
		c.Format = *s.Format
	}
	if s.IncludeFileName != nil {
		c.IncludeFileName = *s.IncludeFileName
	}
	if s.Workers != nil {
		c.Workers = *s.Workers
	}
	if s.Command != nil && *s.Command != "" {
		c.Command = *s.Command
	}
	if s.ResolveFiles != nil {
		c.ResolveFiles = *s.ResolveFiles
	}
	if s.TestRoot != nil && *s.TestRoot != "" {
		c.TestRoot = *s.TestRoot
	}
	if len(s.PathsToIgnore) > 0 {
		c.PathsToIgnore = append([]string(nil), s.PathsToIgnore...)
	}
}
