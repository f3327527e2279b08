package conversation

import (
	"context"
	"strings"
	"time"

	"github.com/go-logr/logr"
	"github.com/google/uuid"

	apierrors "github.com/diogo/geminichat/internal/errors"
)

// Generator is the remote completion call
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// GeneratorFunc adapts a function to Generator
type GeneratorFunc func(ctx context.Context, prompt string) (string, error)

// Generate calls f
func (f GeneratorFunc) Generate(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}

// Turn is a submitted prompt waiting for its answer
type Turn struct {
	ID     string
	Prompt string
}

// Reply is the outcome of executing a Turn
type Reply struct {
	TurnID  string
	Text    string
	Err     error
	Elapsed time.Duration
}

// Controller drives turns against a Generator. It keeps no conversation
// state of its own; callers own State and feed it back in.
type Controller struct {
	gen   Generator
	log   logr.Logger
	newID func() string
}

// NewController creates a Controller around gen
func NewController(gen Generator, log logr.Logger) *Controller {
	return &Controller{
		gen:   gen,
		log:   log.WithName("conversation"),
		newID: uuid.NewString,
	}
}

// Submit applies State.Submit and, when accepted, returns the Turn to execute.
// A rejected submit returns the state unchanged and a nil Turn.
func (c *Controller) Submit(s State, draft string) (State, *Turn) {
	next, ok := s.Submit(draft)
	if !ok {
		c.log.V(1).Info("submit rejected", "busy", s.Busy, "blank", strings.TrimSpace(draft) == "")
		return s, nil
	}

	turn := &Turn{ID: c.newID(), Prompt: draft}
	c.log.V(1).Info("turn submitted", "turn", turn.ID, "promptLength", len(draft))
	return next, turn
}

// Execute performs the remote call for turn. It blocks, touches no State and
// is safe to run off the UI goroutine.
func (c *Controller) Execute(ctx context.Context, turn Turn) Reply {
	start := time.Now()
	text, err := c.gen.Generate(ctx, turn.Prompt)
	return Reply{
		TurnID:  turn.ID,
		Text:    text,
		Err:     err,
		Elapsed: time.Since(start),
	}
}

// Resolve records reply into s. Failures are logged and replaced with
// FallbackMessage; they are never returned.
func (c *Controller) Resolve(s State, reply Reply) State {
	if !s.Busy {
		c.log.Info("reply without outstanding turn ignored", "turn", reply.TurnID)
		return s
	}

	if reply.Err != nil {
		c.log.Error(reply.Err, "remote call failed",
			"turn", reply.TurnID,
			"kind", apierrors.Kind(reply.Err),
			"status", apierrors.GetHTTPStatus(reply.Err),
			"elapsed", reply.Elapsed.String(),
		)
	} else {
		c.log.V(1).Info("turn completed",
			"turn", reply.TurnID,
			"responseLength", len(reply.Text),
			"elapsed", reply.Elapsed.String(),
		)
	}

	return s.Resolve(reply.Text, reply.Err)
}

// RunTurn performs a whole turn synchronously: Submit, Execute, Resolve.
// It returns false when the submit was rejected.
func (c *Controller) RunTurn(ctx context.Context, s State, draft string) (State, bool) {
	next, turn := c.Submit(s, draft)
	if turn == nil {
		return s, false
	}
	return c.Resolve(next, c.Execute(ctx, *turn)), true
}
