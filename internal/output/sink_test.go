package output

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vtcopy/internal/domain"
)

func TestClipboardSink(t *testing.T) {
	var got string
	sink := &ClipboardSink{write: func(s string) error { got = s; return nil }}
	require.NoError(t, sink.Write("report"))
	assert.Equal(t, "report", got)

	sink = &ClipboardSink{write: func(string) error { return ErrNoClipboard }}
	assert.ErrorIs(t, sink.Write("report"), ErrNoClipboard)
}

func TestFileSink(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "report.txt")
	sink := NewFileSink(path)
	require.NoError(t, sink.Write("file: a.test.ts\n"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "file: a.test.ts\n", string(data))
	assert.Equal(t, path, sink.Name())
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("closed") }

func TestWriterSink(t *testing.T) {
	var buf bytes.Buffer
	sink := NewWriterSink("stdout", &buf)
	require.NoError(t, sink.Write("one"))
	require.NoError(t, sink.Write("two\n"))
	require.NoError(t, sink.Write(""))
	assert.Equal(t, "one\ntwo\n", buf.String())

	assert.Error(t, NewWriterSink("broken", failingWriter{}).Write("x"))
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	err := WriteJSON(NewWriterSink("stdout", &buf), []domain.FailedTest{domain.NewFailedTest()})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), `"file_path": "unknown-file"`)
	assert.Contains(t, buf.String(), `"test_name": "Unknown test"`)
}

func TestSelect(t *testing.T) {
	var buf bytes.Buffer
	assert.IsType(t, &FileSink{}, Select("out.txt", true, &buf))
	assert.IsType(t, &WriterSink{}, Select("", true, &buf))
	assert.IsType(t, &ClipboardSink{}, Select("", false, &buf))
}
