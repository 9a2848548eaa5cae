package parser

import (
	"vtcopy/internal/domain"
	"vtcopy/internal/logging"
)

// Parser extracts failed tests from runner console output
type Parser interface {
	Parse(text string) []domain.FailedTest
}

// Strategy is one extraction tier
type Strategy struct {
	Tier    domain.Tier
	Extract func(text string) []domain.FailedTest
}

// Strategies lists the tiers from most to least structured.
var Strategies = []Strategy{
	{Tier: domain.TierStructured, Extract: ExtractStructured},
	{Tier: domain.TierCascade, Extract: ExtractCascade},
	{Tier: domain.TierLineScan, Extract: ExtractLineScan},
}

// VitestParser parses Vitest console output
type VitestParser struct{}

// NewVitestParser creates a new VitestParser
func NewVitestParser() *VitestParser {
	return &VitestParser{}
}

// Parse implements Parser.
func (p *VitestParser) Parse(text string) []domain.FailedTest {
	failures, _ := ParseWithTier(text)
	return failures
}

// ParseVitestOutput extracts the failed tests from text. Only the first tier that
// finds anything contributes; the result has unique (file, test) pairs.
func ParseVitestOutput(text string) []domain.FailedTest {
	failures, _ := ParseWithTier(text)
	return failures
}

// ParseWithTier is ParseVitestOutput that also reports which tier produced the result.
func ParseWithTier(text string) ([]domain.FailedTest, domain.Tier) {
	cleaned := Clean(text)
	for _, s := range Strategies {
		failures := s.Extract(cleaned)
		if len(failures) == 0 {
			continue
		}
		unique := Dedupe(failures)
		logging.Debug("extracted failed tests", "tier", s.Tier, "matches", len(failures), "unique", len(unique))
		return unique, s.Tier
	}
	logging.Debug("no failed tests found", "bytes", len(text))
	return []domain.FailedTest{}, domain.TierNone
}

// Dedupe removes records whose (file, test) pair was already seen, keeping the first.
func Dedupe(failures []domain.FailedTest) []domain.FailedTest {
	seen := make(map[string]struct{}, len(failures))
	out := make([]domain.FailedTest, 0, len(failures))
	for _, f := range failures {
		key := f.Key()
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, f)
	}
	return out
}
