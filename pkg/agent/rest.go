package agent

import (
	"context"
	"fmt"
	"strings"

	"github.com/dtnitsch/web-content-extractor/models"
	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
)

// RESTTransport posts requests to an agent platform's inference endpoint.
type RESTTransport struct {
	client    *resty.Client
	endpoint  string
	apiKey    string
	userID    string
	sessionID string
}

type inferenceRequest struct {
	AgentID   string `json:"agent_id"`
	UserID    string `json:"user_id"`
	SessionID string `json:"session_id"`
	Message   string `json:"message"`
}

// NewRESTTransport creates a transport for cfg. Every request made through it
// shares one session id.
func NewRESTTransport(cfg models.AgentConfig) (*RESTTransport, error) {
	if strings.TrimSpace(cfg.Endpoint) == "" {
		return nil, fmt.Errorf("agent endpoint is not configured")
	}

	client := resty.New()
	client.SetHeader("Content-Type", "application/json")
	client.SetHeader("Accept", "application/json")

	return &RESTTransport{
		client:    client,
		endpoint:  cfg.Endpoint,
		apiKey:    cfg.APIKey,
		userID:    cfg.UserID,
		sessionID: uuid.NewString(),
	}, nil
}

// SessionID returns the session id sent with every request.
func (t *RESTTransport) SessionID() string {
	return t.sessionID
}

func (t *RESTTransport) Send(ctx context.Context, req Request) ([]byte, error) {
	r := t.client.R().
		SetContext(ctx).
		SetBody(inferenceRequest{
			AgentID:   req.AgentID,
			UserID:    t.userID,
			SessionID: t.sessionID,
			Message:   req.Message,
		})
	if t.apiKey != "" {
		r.SetHeader("x-api-key", t.apiKey)
	}

	resp, err := r.Post(t.endpoint)
	if err != nil {
		return nil, fmt.Errorf("failed to call agent: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("agent returned status %d: %s", resp.StatusCode(), truncate(resp.String(), 200))
	}
	return resp.Body(), nil
}

func truncate(s string, n int) string {
	s = strings.TrimSpace(s)
	if len([]rune(s)) <= n {
		return s
	}
	return string([]rune(s)[:n]) + "..."
}
