package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/go-logr/logr"
	"github.com/spf13/cobra"

	"github.com/diogo/geminichat/internal/api"
	"github.com/diogo/geminichat/internal/config"
	"github.com/diogo/geminichat/internal/conversation"
	"github.com/diogo/geminichat/internal/logging"
	"github.com/diogo/geminichat/internal/models"
)

// session is everything a chat or ask run needs, built once per process
type session struct {
	cfg     config.Config
	log     logr.Logger
	logPath string
	client  api.GeminiClientInterface
	ctrl    *conversation.Controller

	logCloser io.Closer
}

// newSession loads configuration and credentials, opens the log and builds
// the client and controller. A missing API key is logged, not returned.
func newSession(d *Dependencies) (*session, error) {
	cfg, err := d.LoadConfig()
	if err != nil {
		// fall back to defaults; the broken file is reported below once
		// logging is up
		cfg = config.DefaultConfig()
	}
	cfgErr := err
	applyFlags(&cfg)

	logPath, err := config.GetLogPath(cfg)
	if err != nil {
		return nil, err
	}
	log, closer, err := d.OpenLog(logging.Options{Path: logPath, Verbose: cfg.Verbose})
	if err != nil {
		return nil, err
	}

	s := &session{cfg: cfg, log: log, logPath: logPath, logCloser: closer}

	if cfgErr != nil {
		log.Error(cfgErr, "config ignored, using defaults")
	}

	creds, err := d.LoadCredentials()
	if err != nil {
		s.Close()
		return nil, err
	}
	if !creds.HasKey() {
		log.Info("no API key configured, every request will fail",
			"env", []string{config.EnvAPIKey, config.EnvLegacyAPIKey})
	} else {
		log.V(1).Info("API key loaded", "source", creds.Source)
	}

	models.UserAgentVersion = Version

	client, err := d.NewClient(creds, cfg, log.WithName("api"))
	if err != nil {
		s.Close()
		return nil, fmt.Errorf("failed to create client: %w", err)
	}
	s.client = client
	s.ctrl = conversation.NewController(client, log)

	log.Info("session started", "model", client.GetModel().Name, "version", Version)
	return s, nil
}

// Close releases the client and the log file
func (s *session) Close() error {
	if s.client != nil {
		s.client.Close()
	}
	if s.logCloser == nil {
		return nil
	}
	err := s.logCloser.Close()
	s.logCloser = nil
	return err
}

// applyFlags layers persistent flags over the loaded configuration
func applyFlags(cfg *config.Config) {
	if modelFlag != "" {
		cfg.DefaultModel = modelFlag
	}
	if logFileFlag != "" {
		cfg.LogFile = logFileFlag
	}
	if verboseFlag {
		cfg.Verbose = true
	}
}

func resolveModel(cfg config.Config) models.Model {
	return models.ModelFromName(cfg.DefaultModel)
}

// commandContext returns cmd's context, or Background outside Execute
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
