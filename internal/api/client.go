package api

import (
	"context"
	"fmt"
	"sync"

	tls_client "github.com/bogdanfinn/tls-client"
	"github.com/bogdanfinn/tls-client/profiles"
	"github.com/go-logr/logr"

	"github.com/diogo/geminichat/internal/models"
)

// DefaultTimeoutSeconds bounds one HTTP exchange when no timeout is configured
const DefaultTimeoutSeconds = 300

// GeminiClientInterface is the surface of GeminiClient used by commands and the TUI
type GeminiClientInterface interface {
	Generate(ctx context.Context, prompt string) (string, error)
	GenerateContent(ctx context.Context, prompt string) (*models.ModelOutput, error)
	GetModel() models.Model
	SetModel(model models.Model)
	Close()
	IsClosed() bool
}

// GeminiClient talks to the Gemini generative-language API
type GeminiClient struct {
	httpClient     tls_client.HttpClient
	apiKey         string
	model          models.Model
	timeoutSeconds int
	log            logr.Logger
	mu             sync.RWMutex
	closed         bool
}

var _ GeminiClientInterface = (*GeminiClient)(nil)

// ClientOption is a function that configures the client
type ClientOption func(*GeminiClient)

// WithModel sets the default model for the client
func WithModel(model models.Model) ClientOption {
	return func(c *GeminiClient) {
		c.model = model
	}
}

// WithTimeoutSeconds sets the HTTP timeout. Values <= 0 keep the default.
func WithTimeoutSeconds(seconds int) ClientOption {
	return func(c *GeminiClient) {
		if seconds > 0 {
			c.timeoutSeconds = seconds
		}
	}
}

// WithHTTPClient replaces the transport, mainly for tests
func WithHTTPClient(httpClient tls_client.HttpClient) ClientOption {
	return func(c *GeminiClient) {
		c.httpClient = httpClient
	}
}

// WithLogger sets the diagnostics logger
func WithLogger(log logr.Logger) ClientOption {
	return func(c *GeminiClient) {
		c.log = log
	}
}

// NewClient creates a new GeminiClient. An empty apiKey is accepted; every
// call then fails with an authentication error.
func NewClient(apiKey string, opts ...ClientOption) (*GeminiClient, error) {
	client := &GeminiClient{
		apiKey:         apiKey,
		model:          models.DefaultModel,
		timeoutSeconds: DefaultTimeoutSeconds,
		log:            logr.Discard(),
	}

	for _, opt := range opts {
		opt(client)
	}

	if client.httpClient == nil {
		options := []tls_client.HttpClientOption{
			tls_client.WithTimeoutSeconds(client.timeoutSeconds),
			tls_client.WithClientProfile(profiles.Chrome_120),
			tls_client.WithNotFollowRedirects(),
		}

		httpClient, err := tls_client.NewHttpClient(tls_client.NewNoopLogger(), options...)
		if err != nil {
			return nil, fmt.Errorf("failed to create HTTP client: %w", err)
		}
		client.httpClient = httpClient
	}

	return client, nil
}

// Close releases idle connections. Later calls fail.
func (c *GeminiClient) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}
	c.closed = true
	c.httpClient.CloseIdleConnections()
}

// IsClosed returns whether the client is closed
func (c *GeminiClient) IsClosed() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.closed
}

// GetModel returns the default model
func (c *GeminiClient) GetModel() models.Model {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.model
}

// SetModel sets the default model
func (c *GeminiClient) SetModel(model models.Model) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.model = model
}

// HasAPIKey reports whether a key was supplied at construction
func (c *GeminiClient) HasAPIKey() bool {
	return c.apiKey != ""
}
