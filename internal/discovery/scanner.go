package discovery

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

var (
	testFileRe = regexp.MustCompile(`\.(?:test|spec)\.(?:[cm]?[jt]sx?)$`)
	logFileRe  = regexp.MustCompile(`\.(?:log|txt|out)$`)
)

// IsTestFile reports whether name looks like a Vitest test file.
func IsTestFile(name string) bool {
	return testFileRe.MatchString(filepath.Base(name))
}

// IsLogFile reports whether name looks like a captured console log.
func IsLogFile(name string) bool {
	return logFileRe.MatchString(filepath.Base(name))
}

// Scanner walks a directory tree looking for files of interest
type Scanner struct {
	skipDirs map[string]bool
}

// NewScanner creates a new Scanner with the given directories to skip
func NewScanner(skipDirs []string) *Scanner {
	skipMap := make(map[string]bool)
	for _, dir := range skipDirs {
		skipMap[dir] = true
	}
	return &Scanner{skipDirs: skipMap}
}

// Scan finds all test files in the given root directory
func (s *Scanner) Scan(root string) ([]string, error) {
	return s.walk(root, IsTestFile)
}

// ScanLogs finds captured log files (*.log, *.txt, *.out) under root.
func (s *Scanner) ScanLogs(root string) ([]string, error) {
	return s.walk(root, IsLogFile)
}

func (s *Scanner) walk(root string, match func(string) bool) ([]string, error) {
	var files []string

	root = filepath.Clean(root)
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("path does not exist: %s", root)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("path is not a directory: %s", root)
	}

	err = filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			name := d.Name()
			if path != root && strings.HasPrefix(name, ".") {
				return filepath.SkipDir
			}
			if s.skipDirs[name] {
				return filepath.SkipDir
			}
			return nil
		}

		if match(d.Name()) {
			files = append(files, path)
		}
		return nil
	})

	return files, err
}
