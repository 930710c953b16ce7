// Package agent sends extraction requests to an AI agent and reduces every
// reply, or failure, to a models.NormalizedAgentResponse.
package agent

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/dtnitsch/web-content-extractor/models"
)

// UnexpectedErrorMessage is reported when a transport panics.
const UnexpectedErrorMessage = "An unexpected error occurred during extraction"

// Request is one call to the agent.
type Request struct {
	AgentID string
	Message string
	// Extraction is the structured form of Message. Transports that talk to a
	// remote agent only need Message; the local agent needs this.
	Extraction *models.ExtractionRequest
}

// Result is the outcome of a call. Success is false for transport and parse
// failures and for replies the agent itself marked as errors.
type Result struct {
	Success  bool
	Response models.NormalizedAgentResponse
}

// Transport delivers a request and returns the agent's raw reply.
type Transport interface {
	Send(ctx context.Context, req Request) ([]byte, error)
}

type Client struct {
	transport Transport
	agentID   string
	logger    *slog.Logger
}

// NewClient wraps a transport. agentID is used for requests that carry none.
func NewClient(transport Transport, agentID string, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{transport: transport, agentID: agentID, logger: logger}
}

// New builds a client for the provider named in cfg.
func New(cfg *models.Config, logger *slog.Logger) (*Client, error) {
	var (
		transport Transport
		err       error
	)
	switch cfg.Agent.Provider {
	case models.ProviderREST:
		transport, err = NewRESTTransport(cfg.Agent)
	case models.ProviderOpenAI:
		transport, err = NewOpenAITransport(cfg.OpenAI)
	case models.ProviderLocal:
		transport, err = NewLocalTransport(cfg.Local, logger)
	default:
		err = fmt.Errorf("unknown agent provider %q", cfg.Agent.Provider)
	}
	if err != nil {
		return nil, err
	}
	return NewClient(transport, cfg.Agent.AgentID, logger), nil
}

// Call performs a single attempt and never fails past its boundary: every
// error, including a panic in the transport, becomes an error envelope.
func (c *Client) Call(ctx context.Context, req Request) (res Result) {
	defer func() {
		if r := recover(); r != nil {
			c.logger.Error("agent call panicked", "panic", r)
			res = failure(UnexpectedErrorMessage)
		}
	}()

	if req.AgentID == "" {
		req.AgentID = c.agentID
	}
	c.logger.Debug("calling agent", "agent_id", req.AgentID, "message_chars", len(req.Message))

	raw, err := c.transport.Send(ctx, req)
	if err != nil {
		c.logger.Error("agent request failed", "error", err)
		return failure(fmt.Sprintf("Agent request failed: %v", err))
	}

	resp, err := Normalize(raw)
	if err != nil {
		c.logger.Error("failed to parse agent response", "error", err, "bytes", len(raw))
		return failure(fmt.Sprintf("Failed to parse agent response: %v", err))
	}

	c.logger.Debug("agent replied", "status", resp.Status)
	return Result{Success: resp.IsSuccess(), Response: resp}
}

func failure(message string) Result {
	return Result{Success: false, Response: models.NewErrorResponse(message)}
}

// Task is an agent call running in the background.
type Task struct {
	done   chan struct{}
	result Result
}

// Submit starts Call in a goroutine. The call runs until it completes or ctx
// is done; there is no other way to stop it.
func (c *Client) Submit(ctx context.Context, req Request) *Task {
	t := &Task{done: make(chan struct{})}
	go func() {
		defer close(t.done)
		t.result = c.Call(ctx, req)
	}()
	return t
}

// Done is closed once the result is available.
func (t *Task) Done() <-chan struct{} {
	return t.done
}

// Wait blocks until the call completes and returns its result.
func (t *Task) Wait() Result {
	<-t.done
	return t.result
}
