package discovery

import (
	"fmt"
	"path/filepath"
	"strings"

	"vtcopy/internal/domain"
	"vtcopy/internal/logging"
)

// Resolver fills in the file of failures extracted without one by finding
// the test file that declares the failing test.
type Resolver struct {
	scanner *Scanner
	parser  *Parser
}

// NewResolver creates a Resolver that skips the given directories while scanning.
func NewResolver(skipDirs []string) *Resolver {
	return &Resolver{
		scanner: NewScanner(skipDirs),
		parser:  NewParser(),
	}
}

type fileDecls struct {
	path   string
	tests  map[string]bool
	suites map[string]bool
}

// Resolve returns a copy of failures where every domain.UnknownFile record
// whose test is declared by exactly one file under root carries that file's
// root-relative path. Ambiguous or unmatched records are left unchanged.
func (r *Resolver) Resolve(root string, failures []domain.FailedTest) ([]domain.FailedTest, error) {
	out := make([]domain.FailedTest, len(failures))
	copy(out, failures)

	pending := 0
	for _, f := range out {
		if f.FilePath == domain.UnknownFile {
			pending++
		}
	}
	if pending == 0 {
		return out, nil
	}

	files, err := r.scanner.Scan(root)
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", root, err)
	}

	index := make([]fileDecls, 0, len(files))
	for _, path := range files {
		decls, err := r.parser.parseFile(path)
		if err != nil {
			logging.Debug("skipping unreadable test file", "path", path, "error", err)
			continue
		}
		fd := fileDecls{path: path, tests: map[string]bool{}, suites: map[string]bool{}}
		for _, d := range decls {
			if d.Kind == KindSuite {
				fd.suites[d.Name] = true
			} else {
				fd.tests[d.Name] = true
			}
		}
		index = append(index, fd)
	}

	for i, f := range out {
		if f.FilePath != domain.UnknownFile || f.TestName == domain.UnknownTest {
			continue
		}
		if path, ok := lookup(index, f.TestName); ok {
			out[i].FilePath = relativeTo(root, path)
			logging.Debug("resolved test file", "test", f.TestName, "file", out[i].FilePath)
		}
	}
	return out, nil
}

func lookup(index []fileDecls, testName string) (string, bool) {
	segments := strings.Split(testName, " > ")
	leaf := strings.TrimSpace(segments[len(segments)-1])
	suites := segments[:len(segments)-1]

	var candidates []fileDecls
	for _, fd := range index {
		if fd.tests[leaf] {
			candidates = append(candidates, fd)
		}
	}

	if len(candidates) > 1 && len(suites) > 0 {
		var narrowed []fileDecls
		for _, fd := range candidates {
			if declaresAll(fd.suites, suites) {
				narrowed = append(narrowed, fd)
			}
		}
		candidates = narrowed
	}

	if len(candidates) != 1 {
		return "", false
	}
	return candidates[0].path, true
}

func declaresAll(suites map[string]bool, names []string) bool {
	for _, n := range names {
		if !suites[strings.TrimSpace(n)] {
			return false
		}
	}
	return true
}

func relativeTo(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}
