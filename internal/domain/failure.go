package domain

// Sentinels used in place of fields that could not be determined.
const (
	UnknownFile  = "unknown-file"
	UnknownTest  = "Unknown test"
	UnknownError = "Unknown error"
)

// FailedTest represents one failing test case extracted from runner output.
// Every field is always set: missing values are a sentinel or the empty string.
type FailedTest struct {
	FilePath     string `json:"file_path"`
	TestName     string `json:"test_name"`
	ErrorMessage string `json:"error_message"`
	CodeSnippet  string `json:"code_snippet"`
	LineNumber   string `json:"line_number"` // "line:column"
	Expected     string `json:"expected"`
	Received     string `json:"received"`
}

// NewFailedTest returns a FailedTest with every field set to its sentinel.
func NewFailedTest() FailedTest {
	return FailedTest{
		FilePath:     UnknownFile,
		TestName:     UnknownTest,
		ErrorMessage: UnknownError,
	}
}

// Key identifies a failure for de-duplication.
func (t FailedTest) Key() string {
	return t.FilePath + "\x00" + t.TestName
}

// TestFileGroup holds the failures that share one file path.
type TestFileGroup struct {
	FilePath    string       `json:"file_path"`
	DisplayName string       `json:"display_name"`
	FailedTests []FailedTest `json:"failed_tests"`
}
