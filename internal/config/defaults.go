package config

const (
	// DefaultProjectPath is the default project path
	DefaultProjectPath = "."
	// DefaultTestRoot is where test files are searched, relative to the project
	DefaultTestRoot = "."
	// DefaultWorkers is the default number of parallel parsers for batch
	DefaultWorkers = 4
	// DefaultCommand runs the test suite when capturing from a command
	DefaultCommand = "npx vitest run"
	// DefaultFormat is the custom diagnostic template
	DefaultFormat = "[${severity}] Line ${line}, Column ${column}: ${message}"
	// DefaultGroupByFile groups copied failures under a per-file header
	DefaultGroupByFile = true
	// DefaultUseNewFormat selects the prompt-oriented diagnostic layout
	DefaultUseNewFormat = true
	// DefaultIncludeFileName substitutes ${file} and ${relativePath}
	DefaultIncludeFileName = true
	// EnvPrefix prefixes every environment override
	EnvPrefix = "VTCOPY_"
)

// ConfigFileNames are tried in order under the project path
var ConfigFileNames = []string{".vtcopy.yaml", ".vtcopy.yml", ".vtcopy.toml"}

// DefaultPathsToIgnore are the default directories to ignore when scanning for tests
var DefaultPathsToIgnore = []string{
	"node_modules",
	".git",
	"dist",
	"build",
	"coverage",
	".vtcopy",
}
