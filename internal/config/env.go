package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Environment keys, without EnvPrefix.
const (
	envGroupByFile     = "GROUP_BY_FILE"
	envErrorsOnly      = "ERRORS_ONLY"
	envUseNewFormat    = "USE_NEW_FORMAT"
	envFormat          = "FORMAT"
	envIncludeFileName = "INCLUDE_FILE_NAME"
	envWorkers         = "WORKERS"
	envCommand         = "COMMAND"
	envResolveFiles    = "RESOLVE_FILES"
	envTestRoot        = "TEST_ROOT"
	envPathsToIgnore   = "PATHS_TO_IGNORE"
)

var envKeys = []string{
	envGroupByFile, envErrorsOnly, envUseNewFormat, envFormat, envIncludeFileName,
	envWorkers, envCommand, envResolveFiles, envTestRoot, envPathsToIgnore,
}

// loadEnv applies VTCOPY_* values from the project's .env file, then from the process
// environment, which wins.
func (c *Config) loadEnv() error {
	values, err := godotenv.Read(filepath.Join(c.ProjectPath, ".env"))
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to read .env: %w", err)
		}
		values = map[string]string{}
	}

	for _, key := range envKeys {
		if v, ok := os.LookupEnv(EnvPrefix + key); ok {
			values[EnvPrefix+key] = v
		}
	}

	s, err := settingsFromEnv(values)
	if err != nil {
		return err
	}
	c.apply(s)
	return nil
}

func settingsFromEnv(values map[string]string) (*Settings, error) {
	var s Settings

	bools := map[string]**bool{
		envGroupByFile:     &s.GroupByFile,
		envErrorsOnly:      &s.ErrorsOnly,
		envUseNewFormat:    &s.UseNewFormat,
		envIncludeFileName: &s.IncludeFileName,
		envResolveFiles:    &s.ResolveFiles,
	}
	for key, dst := range bools {
		v, ok := values[EnvPrefix+key]
		if !ok {
			continue
		}
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return nil, fmt.Errorf("invalid %s%s: %w", EnvPrefix, key, err)
		}
		*dst = &b
	}

	if v, ok := values[EnvPrefix+envWorkers]; ok {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return nil, fmt.Errorf("invalid %s%s: %w", EnvPrefix, envWorkers, err)
		}
		s.Workers = &n
	}

	strs := map[string]**string{
		envFormat:   &s.Format,
		envCommand:  &s.Command,
		envTestRoot: &s.TestRoot,
	}
	for key, dst := range strs {
		if v, ok := values[EnvPrefix+key]; ok {
			*dst = &v
		}
	}

	if v, ok := values[EnvPrefix+envPathsToIgnore]; ok {
		for _, p := range strings.Split(v, ",") {
			if p = strings.TrimSpace(p); p != "" {
				s.PathsToIgnore = append(s.PathsToIgnore, p)
			}
		}
	}

	return &s, nil
}
