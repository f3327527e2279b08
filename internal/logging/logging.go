// Package logging builds the diagnostic logger shared by the CLI and the TUI.
//
// The chat UI owns the terminal while it runs, so records go to a file
// instead of stderr.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/go-logr/logr"
	"github.com/go-logr/logr/funcr"
)

// Options controls where and how much is logged
type Options struct {
	// Path of the log file. Parent directories are created.
	Path string
	// Verbose enables V(1) records.
	Verbose bool
}

// New returns a logger writing to w, one record per line.
func New(w io.Writer, verbose bool) logr.Logger {
	verbosity := 0
	if verbose {
		verbosity = 1
	}

	var mu sync.Mutex
	return funcr.New(func(prefix, args string) {
		mu.Lock()
		defer mu.Unlock()
		if prefix != "" {
			fmt.Fprintf(w, "%s: %s\n", prefix, args)
			return
		}
		fmt.Fprintln(w, args)
	}, funcr.Options{
		LogTimestamp: true,
		Verbosity:    verbosity,
	}).WithName("geminichat")
}

// Open creates (or appends to) the log file and returns a logger over it.
// The returned closer must be called on shutdown.
func Open(opts Options) (logr.Logger, io.Closer, error) {
	if opts.Path == "" {
		return logr.Discard(), nopCloser{}, nil
	}

	if err := os.MkdirAll(filepath.Dir(opts.Path), 0o700); err != nil {
		return logr.Discard(), nopCloser{}, fmt.Errorf("failed to create log directory: %w", err)
	}

	f, err := os.OpenFile(opts.Path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return logr.Discard(), nopCloser{}, fmt.Errorf("failed to open log file: %w", err)
	}

	return New(f, opts.Verbose), f, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
