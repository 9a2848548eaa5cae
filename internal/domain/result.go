package domain

import "time"

// Tier names the extraction strategy that produced a result.
type Tier string

const (
	TierNone       Tier = "none"
	TierStructured Tier = "structured"
	TierCascade    Tier = "cascade"
	TierLineScan   Tier = "line-scan"
)

// Capture is a raw text blob obtained from a source (file, stdin, clipboard, command)
type Capture struct {
	Source string // Human readable origin, e.g. a path or "clipboard"
	Text   string
}

// ExtractionResult is the outcome of parsing one capture
type ExtractionResult struct {
	Source       string        `json:"source"`
	Tier         Tier          `json:"tier"`
	Failures     []FailedTest  `json:"failures"`
	Duration     time.Duration `json:"-"`
	Error        error         `json:"-"` // Set when the capture itself could not be read
	CaptureError string        `json:"capture_error,omitempty"`
}

// BatchMeta summarizes a batch run over several captures
type BatchMeta struct {
	TotalSources    int     `json:"total_sources"`
	FailedSources   int     `json:"failed_sources"`
	UnreadSources   int     `json:"unread_sources"`
	FailedTestCases int     `json:"failed_test_cases"`
	Duration        string  `json:"duration"`
	DurationSeconds float64 `json:"duration_seconds"`
	Workers         int     `json:"workers"`
}

// BatchOutput is the JSON document printed by the batch command
type BatchOutput struct {
	Meta    BatchMeta          `json:"meta"`
	Details []ExtractionResult `json:"details"`
}
