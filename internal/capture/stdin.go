package capture

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

// ErrInteractiveStdin is returned when stdin is a terminal rather than a pipe.
var ErrInteractiveStdin = errors.New("stdin is a terminal; pipe the test output in")

// StdinSource reads piped output, e.g. `npx vitest run 2>&1 | vtcopy copy`
type StdinSource struct {
	r          io.Reader
	isTerminal func() bool
}

// NewStdinSource creates a StdinSource for the process's standard input
func NewStdinSource() *StdinSource {
	return &StdinSource{
		r:          os.Stdin,
		isTerminal: func() bool { return term.IsTerminal(int(os.Stdin.Fd())) },
	}
}

// NewReaderSource creates a StdinSource over r, treated as piped
func NewReaderSource(r io.Reader) *StdinSource {
	return &StdinSource{r: r, isTerminal: func() bool { return false }}
}

// IsPiped reports whether the process's stdin is redirected.
func IsPiped() bool {
	return !term.IsTerminal(int(os.Stdin.Fd()))
}

// Name implements Source.
func (s *StdinSource) Name() string { return "stdin" }

// Read implements Source.
func (s *StdinSource) Read(ctx context.Context) (string, error) {
	if s.isTerminal() {
		return "", ErrInteractiveStdin
	}

	type result struct {
		data []byte
		err  error
	}
	done := make(chan result, 1)
	go func() {
		data, err := io.ReadAll(s.r)
		done <- result{data, err}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res := <-done:
		if res.err != nil {
			return "", fmt.Errorf("read stdin: %w", res.err)
		}
		return string(res.data), nil
	}
}
