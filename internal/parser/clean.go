package parser

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
	"golang.org/x/text/unicode/norm"
)

var newlineReplacer = strings.NewReplacer("\r\n", "\n", "\r", "\n")

// Clean prepares captured terminal text for matching.
// Input:  "\x1b[31m FAIL \x1b[39m src/a.test.ts\r\n"
// Output: " FAIL  src/a.test.ts\n"
func Clean(text string) string {
	text = ansi.Strip(text)
	text = newlineReplacer.Replace(text)
	return norm.NFC.String(text)
}
