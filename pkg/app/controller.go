package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/dtnitsch/web-content-extractor/internal/common"
	"github.com/dtnitsch/web-content-extractor/models"
	"github.com/dtnitsch/web-content-extractor/pkg/agent"
	"github.com/dtnitsch/web-content-extractor/pkg/form"
	"github.com/dtnitsch/web-content-extractor/pkg/history"
	"github.com/dtnitsch/web-content-extractor/pkg/theme"
)

var (
	ErrBusy         = errors.New("an extraction is already running")
	ErrNotConfirmed = errors.New("clearing history must be confirmed")
)

// Submitter starts agent calls; *agent.Client implements it.
type Submitter interface {
	Submit(ctx context.Context, req agent.Request) *agent.Task
}

// Controller owns the application state. Every event takes the lock, so
// there is one writer at a time.
type Controller struct {
	mu      sync.Mutex
	state   State
	agent   Submitter
	history *history.Store
	themes  *theme.Store
	logger  *slog.Logger
}

// NewController loads history and theme and returns a controller in the
// initial state.
func NewController(a Submitter, hist *history.Store, themes *theme.Store, logger *slog.Logger) *Controller {
	if logger == nil {
		logger = slog.Default()
	}
	hist.Load()
	return &Controller{
		state:   Initial(themes.Load(), hist.Items()),
		agent:   a,
		history: hist,
		themes:  themes,
		logger:  logger,
	}
}

// State returns a snapshot of the current state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Edit applies a form change.
func (c *Controller) Edit(fn func(form.State) (form.State, error)) (State, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	next, err := fn(c.state.Form)
	if err != nil {
		return c.state, err
	}
	c.state.Form = next
	return c.state, nil
}

// Submission is a request started by Submit. It completes after the
// response has been applied to the state.
type Submission struct {
	Request models.ExtractionRequest

	done   chan struct{}
	result agent.Result
}

func (s *Submission) Done() <-chan struct{} {
	return s.done
}

// Wait blocks until the submission has been applied and returns the agent result.
func (s *Submission) Wait() agent.Result {
	<-s.done
	return s.result
}

// Submit validates the form and starts the agent call. It fails with ErrBusy
// while another call is in flight and with form.ErrCannotSubmit when the
// form is incomplete.
func (c *Controller) Submit(ctx context.Context) (*Submission, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state.Form.Busy {
		return nil, ErrBusy
	}
	req, err := c.state.Form.Request()
	if err != nil {
		return nil, err
	}
	cleaned, err := common.ValidateURL(req.URL)
	if err != nil {
		return nil, err
	}
	req.URL = cleaned
	c.state.Form.URL = cleaned

	c.state = c.state.Submitting()
	c.logger.Info("extraction started", "url", req.URL, "parameters", req.Parameters, "format", req.Format)

	task := c.agent.Submit(ctx, agent.Request{Message: form.Message(req), Extraction: &req})
	sub := &Submission{Request: req, done: make(chan struct{})}
	go func() {
		defer close(sub.done)
		sub.result = task.Wait()
		c.complete(req, sub.result)
	}()
	return sub, nil
}

// complete lands the result in the response slot whatever the user has
// selected since; only successful extractions are added to history.
func (c *Controller) complete(req models.ExtractionRequest, res agent.Result) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var items []models.HistoryItem
	if res.Success {
		if _, err := c.history.Record(req, res.Response); err != nil {
			c.logger.Error("failed to save history", "error", err)
		} else {
			items = c.history.Items()
		}
	}
	c.state = c.state.Completed(res.Response, items)
	c.logger.Info("extraction finished", "url", req.URL, "status", res.Response.Status)
}

// SelectHistory replays a stored extraction. It never calls the agent.
func (c *Controller) SelectHistory(id string) (State, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	item, err := c.history.Get(id)
	if err != nil {
		return c.state, err
	}
	c.state = c.state.Selected(item)
	return c.state, nil
}

// ClearHistory erases all history once confirmed.
func (c *Controller) ClearHistory(confirmed bool) error {
	if !confirmed {
		return ErrNotConfirmed
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.history.Clear(); err != nil {
		return err
	}
	c.state = c.state.HistoryCleared()
	return nil
}

// ToggleTheme switches and saves the theme. On a save failure the state
// keeps the old theme.
func (c *Controller) ToggleTheme() (theme.Theme, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	next := c.state.Theme.Toggled()
	if err := c.themes.Save(next); err != nil {
		return c.state.Theme, fmt.Errorf("failed to toggle theme: %w", err)
	}
	c.state = c.state.ThemeChanged(next)
	return next, nil
}
