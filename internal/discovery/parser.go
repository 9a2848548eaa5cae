package discovery

import (
	"fmt"
	"os"
	"regexp"
	"sort"
	"strings"
)

// Declaration kinds
const (
	KindTest  = "test"
	KindSuite = "suite"
)

// Declaration is one it/test/describe call found in a test file.
type Declaration struct {
	Kind string
	Name string
	Line int
}

// Matches:
// - it('adds numbers', ...)
// - test.only("works", ...)
// - describe.concurrent(`suite`, ...)
var declarationRe = regexp.MustCompile(
	`\b(it|test|describe|suite)(?:\.[A-Za-z]+)*\s*\(\s*(?:'((?:[^'\\\n]|\\.)*)'|"((?:[^"\\\n]|\\.)*)"|` +
		"`" + `((?:[^` + "`" + `\\]|\\.)*)` + "`" + `)`)

// Parser parses test files to extract test cases
type Parser struct{}

// NewParser creates a new Parser
func NewParser() *Parser {
	return &Parser{}
}

// Declarations lists every test and suite declaration in content, in source order.
func (p *Parser) Declarations(content string) []Declaration {
	var decls []Declaration
	for _, m := range declarationRe.FindAllStringSubmatchIndex(content, -1) {
		kind := KindTest
		switch content[m[2]:m[3]] {
		case "describe", "suite":
			kind = KindSuite
		}

		var name string
		for g := 2; g <= 4; g++ {
			if m[2*g] >= 0 {
				name = content[m[2*g]:m[2*g+1]]
				break
			}
		}

		decls = append(decls, Declaration{
			Kind: kind,
			Name: unquote(name),
			Line: strings.Count(content[:m[0]], "\n") + 1,
		})
	}
	return decls
}

// FindTestCases finds all test cases in a test file
func (p *Parser) FindTestCases(filePath string) ([]string, error) {
	decls, err := p.parseFile(filePath)
	if err != nil {
		return nil, err
	}
	return uniqueNames(decls, KindTest), nil
}

// FindSuites finds all describe/suite titles in a test file.
func (p *Parser) FindSuites(filePath string) ([]string, error) {
	decls, err := p.parseFile(filePath)
	if err != nil {
		return nil, err
	}
	return uniqueNames(decls, KindSuite), nil
}

func (p *Parser) parseFile(filePath string) ([]Declaration, error) {
	content, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("error reading file %s: %w", filePath, err)
	}
	return p.Declarations(string(content)), nil
}

func uniqueNames(decls []Declaration, kind string) []string {
	seen := make(map[string]bool)
	names := []string{}
	for _, d := range decls {
		if d.Kind != kind || seen[d.Name] {
			continue
		}
		seen[d.Name] = true
		names = append(names, d.Name)
	}
	sort.Strings(names)
	return names
}

var unquoter = strings.NewReplacer(`\'`, `'`, `\"`, `"`, "\\`", "`", `\\`, `\`)

func unquote(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	return unquoter.Replace(s)
}
