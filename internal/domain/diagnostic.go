package domain

// Severity of a compiler or linter diagnostic
type Severity string

const (
	SeverityError   Severity = "Error"
	SeverityWarning Severity = "Warning"
	SeverityInfo    Severity = "Info"
	SeverityHint    Severity = "Hint"
	SeverityUnknown Severity = "Unknown"
)

// Diagnostic is one compiler/linter message tied to a source position
type Diagnostic struct {
	File        string   `json:"file"`
	Line        int      `json:"line"`   // 1-based
	Column      int      `json:"column"` // 1-based
	Severity    Severity `json:"severity"`
	Message     string   `json:"message"`
	LineContent string   `json:"line_content"`
}

// DiagnosticGroup collects diagnostics with the same file and message
type DiagnosticGroup struct {
	ID          string       `json:"id"`
	FilePath    string       `json:"file_path"`
	Message     string       `json:"message"`
	Diagnostics []Diagnostic `json:"diagnostics"`
}
