// Package output delivers formatted reports to the clipboard, a file or a stream.
package output

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/atotto/clipboard"
)

// ErrNoClipboard is returned when no clipboard utility is installed.
var ErrNoClipboard = errors.New("no clipboard utility available")

// Sink receives a rendered report
type Sink interface {
	Name() string
	Write(text string) error
}

// ClipboardSink copies reports to the system clipboard
type ClipboardSink struct {
	write func(string) error
}

// NewClipboardSink creates a new ClipboardSink
func NewClipboardSink() *ClipboardSink {
	return &ClipboardSink{write: func(text string) error {
		if clipboard.Unsupported {
			return ErrNoClipboard
		}
		return clipboard.WriteAll(text)
	}}
}

// Name implements Sink.
func (s *ClipboardSink) Name() string { return "clipboard" }

// Write implements Sink.
func (s *ClipboardSink) Write(text string) error {
	if err := s.write(text); err != nil {
		return fmt.Errorf("write clipboard: %w", err)
	}
	return nil
}

// FileSink writes reports to a file, creating its directory
type FileSink struct {
	Path string
}

// NewFileSink creates a new FileSink
func NewFileSink(path string) *FileSink {
	return &FileSink{Path: path}
}

// Name implements Sink.
func (s *FileSink) Name() string { return s.Path }

// Write implements Sink.
func (s *FileSink) Write(text string) error {
	if err := os.MkdirAll(filepath.Dir(s.Path), 0755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	if err := os.WriteFile(s.Path, []byte(text), 0644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

// WriterSink writes reports to a stream such as stdout
type WriterSink struct {
	name string
	w    io.Writer
}

// NewWriterSink creates a new WriterSink
func NewWriterSink(name string, w io.Writer) *WriterSink {
	return &WriterSink{name: name, w: w}
}

// Name implements Sink.
func (s *WriterSink) Name() string { return s.name }

// Write implements Sink. A trailing newline is added when missing.
func (s *WriterSink) Write(text string) error {
	if text != "" && text[len(text)-1] != '\n' {
		text += "\n"
	}
	if _, err := io.WriteString(s.w, text); err != nil {
		return fmt.Errorf("write %s: %w", s.name, err)
	}
	return nil
}

// WriteJSON renders v as indented JSON into sink.
func WriteJSON(sink Sink, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal results: %w", err)
	}
	return sink.Write(string(data))
}

// Select picks the sink for a command: a file when path is set, stdout when toStdout,
// the clipboard otherwise.
func Select(path string, toStdout bool, stdout io.Writer) Sink {
	switch {
	case path != "":
		return NewFileSink(path)
	case toStdout:
		return NewWriterSink("stdout", stdout)
	default:
		return NewClipboardSink()
	}
}
