// Package capture obtains the raw console text handed to the parser.
package capture

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"vtcopy/internal/domain"
)

// ErrCaptureFailed is returned when a source produced no usable text.
var ErrCaptureFailed = errors.New("capture failed")

// Source produces a blob of runner output
type Source interface {
	// Name describes the origin for messages, e.g. a path or "clipboard".
	Name() string
	Read(ctx context.Context) (string, error)
}

// Capture reads src and rejects empty output. Every error it returns wraps
// ErrCaptureFailed.
func Capture(ctx context.Context, src Source) (domain.Capture, error) {
	text, err := src.Read(ctx)
	if err != nil {
		if errors.Is(err, ErrCaptureFailed) {
			return domain.Capture{}, err
		}
		return domain.Capture{}, fmt.Errorf("%w: %s: %w", ErrCaptureFailed, src.Name(), err)
	}
	if strings.TrimSpace(text) == "" {
		return domain.Capture{}, fmt.Errorf("%w: %s: no output", ErrCaptureFailed, src.Name())
	}
	return domain.Capture{Source: src.Name(), Text: text}, nil
}
