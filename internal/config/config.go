package config

import (
	"fmt"
	"path/filepath"
)

// Config holds all configuration for the application
type Config struct {
	// Project settings
	ProjectPath string
	TestRoot    string

	// Output settings
	GroupByFile     bool
	ErrorsOnly      bool
	UseNewFormat    bool
	Format          string
	IncludeFileName bool

	// Capture and execution settings
	Command      string
	Workers      int
	ResolveFiles bool

	// Paths to ignore when scanning
	PathsToIgnore []string

	// Command flags
	Flags Flags
}

// Flags holds command-line flags. The *Set fields record whether a boolean flag was
// given explicitly, so an unset flag does not override the file or environment.
type Flags struct {
	ProjectPath string
	Workers     int
	Command     string
	Input       string
	Output      string
	Filter      string
	NameFilter  string
	TestRoot    string
	Template    string
	Run         bool
	Stdout      bool
	JSON        bool
	FailFast    bool
	TestFiles   bool
	TestCases   bool
	Verbose     bool

	GroupByFile    bool
	GroupByFileSet bool
	ErrorsOnly     bool
	ErrorsOnlySet  bool
	Resolve        bool
	ResolveSet     bool
}

// New creates a new Config with defaults
func New() *Config {
	cfg := &Config{
		ProjectPath:     DefaultProjectPath,
		TestRoot:        DefaultTestRoot,
		GroupByFile:     DefaultGroupByFile,
		UseNewFormat:    DefaultUseNewFormat,
		Format:          DefaultFormat,
		IncludeFileName: DefaultIncludeFileName,
		Command:         DefaultCommand,
		Workers:         DefaultWorkers,
	}
	// Copy default paths to ignore
	cfg.PathsToIgnore = make([]string, len(DefaultPathsToIgnore))
	copy(cfg.PathsToIgnore, DefaultPathsToIgnore)
	return cfg
}

// Load builds the configuration from defaults, the project config file, the .env
// file and VTCOPY_* environment variables, and finally the flags.
func Load(flags Flags) (*Config, error) {
	cfg := New()
	cfg.Flags = flags
	if flags.ProjectPath != "" {
		cfg.ProjectPath = flags.ProjectPath
	}

	if err := cfg.loadFile(); err != nil {
		return nil, err
	}
	if err := cfg.loadEnv(); err != nil {
		return nil, err
	}
	cfg.applyFlags(flags)

	if cfg.Workers < 1 {
		return nil, fmt.Errorf("workers must be at least 1, got %d", cfg.Workers)
	}
	return cfg, nil
}

func (c *Config) applyFlags(flags Flags) {
	if flags.Workers > 0 {
		c.Workers = flags.Workers
	}
	if flags.Command != "" {
		c.Command = flags.Command
	}
	if flags.TestRoot != "" {
		c.TestRoot = flags.TestRoot
	}
	if flags.Template != "" {
		c.Format = flags.Template
		c.UseNewFormat = false
	}
	if flags.GroupByFileSet {
		c.GroupByFile = flags.GroupByFile
	}
	if flags.ErrorsOnlySet {
		c.ErrorsOnly = flags.ErrorsOnly
	}
	if flags.ResolveSet {
		c.ResolveFiles = flags.Resolve
	}
}

// GetTestRoot returns the directory searched for test files
func (c *Config) GetTestRoot() string {
	if filepath.IsAbs(c.TestRoot) {
		return c.TestRoot
	}
	return filepath.Join(c.ProjectPath, c.TestRoot)
}

// GetProjectRoot returns the absolute project path
func (c *Config) GetProjectRoot() string {
	if abs, err := filepath.Abs(c.ProjectPath); err == nil {
		return abs
	}
	return c.ProjectPath
}
