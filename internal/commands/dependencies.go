package commands

import (
	"context"
	"io"
	"os"

	"github.com/atotto/clipboard"
	"github.com/go-logr/logr"

	"github.com/diogo/geminichat/internal/api"
	"github.com/diogo/geminichat/internal/config"
	"github.com/diogo/geminichat/internal/conversation"
	"github.com/diogo/geminichat/internal/logging"
	"github.com/diogo/geminichat/internal/tui"
)

// ClientFactory builds the API client for a session
type ClientFactory func(creds config.Credentials, cfg config.Config, log logr.Logger) (api.GeminiClientInterface, error)

// Dependencies holds the external dependencies of the commands so tests can
// replace the network, the terminal and the file system.
type Dependencies struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	LoadConfig      func() (config.Config, error)
	SaveConfig      func(config.Config) error
	LoadCredentials func() (config.Credentials, error)
	OpenLog         func(opts logging.Options) (logr.Logger, io.Closer, error)
	NewClient       ClientFactory

	RunChat   func(ctx context.Context, ctrl *conversation.Controller, opts tui.Options) error
	Clipboard func(string) error

	// IsTerminal reports whether stdout is a TTY; TerminalWidth its width
	IsTerminal    func() bool
	StdinIsPipe   func() bool
	TerminalWidth func() int
}

// NewDependencies returns the production wiring
func NewDependencies() *Dependencies {
	return &Dependencies{
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,

		LoadConfig:      config.LoadConfig,
		SaveConfig:      config.SaveConfig,
		LoadCredentials: loadCredentials,
		OpenLog:         logging.Open,
		NewClient:       newAPIClient,

		RunChat:   tui.RunChat,
		Clipboard: clipboard.WriteAll,

		IsTerminal:    isStdoutTTY,
		StdinIsPipe:   stdinIsPipe,
		TerminalWidth: getTerminalWidth,
	}
}

func loadCredentials() (config.Credentials, error) {
	return config.LoadCredentials()
}

func newAPIClient(creds config.Credentials, cfg config.Config, log logr.Logger) (api.GeminiClientInterface, error) {
	return api.NewClient(creds.APIKey,
		api.WithModel(resolveModel(cfg)),
		api.WithTimeoutSeconds(cfg.RequestTimeoutSeconds),
		api.WithLogger(log),
	)
}

// deps is swapped by tests
var deps = NewDependencies()
