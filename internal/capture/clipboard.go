package capture

import (
	"context"
	"errors"
	"fmt"

	"github.com/atotto/clipboard"
)

// ErrNoClipboard is returned when no clipboard utility is installed.
var ErrNoClipboard = errors.New("no clipboard utility available")

// ClipboardSource reads output the user copied from a terminal
type ClipboardSource struct {
	read func() (string, error)
}

// NewClipboardSource creates a ClipboardSource backed by the system clipboard
func NewClipboardSource() *ClipboardSource {
	return &ClipboardSource{read: func() (string, error) {
		if clipboard.Unsupported {
			return "", ErrNoClipboard
		}
		return clipboard.ReadAll()
	}}
}

// Name implements Source.
func (s *ClipboardSource) Name() string { return "clipboard" }

// Read implements Source.
func (s *ClipboardSource) Read(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	text, err := s.read()
	if err != nil {
		return "", fmt.Errorf("read clipboard: %w", err)
	}
	return text, nil
}
