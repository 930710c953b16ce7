package agent

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/dtnitsch/web-content-extractor/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

type transportFunc func(ctx context.Context, req Request) ([]byte, error)

func (f transportFunc) Send(ctx context.Context, req Request) ([]byte, error) {
	return f(ctx, req)
}

func reply(body string) Transport {
	return transportFunc(func(context.Context, Request) ([]byte, error) {
		return []byte(body), nil
	})
}

func TestCall_Success(t *testing.T) {
	c := NewClient(reply(`{"status":"success","result":{"summary":"ok"}}`), models.DefaultAgentID, discard)

	res := c.Call(context.Background(), Request{Message: "extract"})

	assert.True(t, res.Success)
	assert.Equal(t, models.StatusSuccess, res.Response.Status)
	assert.JSONEq(t, `{"summary":"ok"}`, string(res.Response.Result))
}

func TestCall_AgentReportedError(t *testing.T) {
	c := NewClient(reply(`{"status":"error","message":"timeout"}`), models.DefaultAgentID, discard)

	res := c.Call(context.Background(), Request{Message: "extract"})

	assert.False(t, res.Success)
	assert.Equal(t, "timeout", res.Response.Message)
}

func TestCall_TransportError(t *testing.T) {
	c := NewClient(transportFunc(func(context.Context, Request) ([]byte, error) {
		return nil, errors.New("connection refused")
	}), models.DefaultAgentID, discard)

	res := c.Call(context.Background(), Request{Message: "extract"})

	assert.False(t, res.Success)
	assert.Equal(t, models.StatusError, res.Response.Status)
	assert.Contains(t, res.Response.Message, "connection refused")
	assert.JSONEq(t, `{}`, string(res.Response.Result))
}

func TestCall_ParseFailure(t *testing.T) {
	c := NewClient(reply(`{"status":`), models.DefaultAgentID, discard)

	res := c.Call(context.Background(), Request{Message: "extract"})

	assert.False(t, res.Success)
	assert.Equal(t, models.StatusError, res.Response.Status)
	assert.NotEmpty(t, res.Response.Message)
}

func TestCall_PanicIsRecovered(t *testing.T) {
	c := NewClient(transportFunc(func(context.Context, Request) ([]byte, error) {
		panic("boom")
	}), models.DefaultAgentID, discard)

	res := c.Call(context.Background(), Request{Message: "extract"})

	assert.False(t, res.Success)
	assert.Equal(t, UnexpectedErrorMessage, res.Response.Message)
}

func TestCall_DefaultAgentID(t *testing.T) {
	var got string
	c := NewClient(transportFunc(func(_ context.Context, req Request) ([]byte, error) {
		got = req.AgentID
		return []byte(`{"summary":"x"}`), nil
	}), "agent-42", discard)

	c.Call(context.Background(), Request{Message: "extract"})
	assert.Equal(t, "agent-42", got)

	c.Call(context.Background(), Request{AgentID: "override", Message: "extract"})
	assert.Equal(t, "override", got)
}

func TestCall_SingleAttempt(t *testing.T) {
	calls := 0
	c := NewClient(transportFunc(func(context.Context, Request) ([]byte, error) {
		calls++
		return nil, errors.New("unavailable")
	}), models.DefaultAgentID, discard)

	c.Call(context.Background(), Request{Message: "extract"})
	assert.Equal(t, 1, calls)
}

func TestSubmit(t *testing.T) {
	release := make(chan struct{})
	c := NewClient(transportFunc(func(context.Context, Request) ([]byte, error) {
		<-release
		return []byte(`{"status":"success","result":{}}`), nil
	}), models.DefaultAgentID, discard)

	task := c.Submit(context.Background(), Request{Message: "extract"})

	select {
	case <-task.Done():
		t.Fatal("task finished before the transport returned")
	default:
	}

	close(release)
	select {
	case <-task.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("task did not finish")
	}
	res := task.Wait()
	require.True(t, res.Success)
}

func TestNew_Providers(t *testing.T) {
	cfg := models.DefaultConfig()
	cfg.Local.CacheDir = t.TempDir()

	cfg.Agent.Provider = models.ProviderREST
	_, err := New(cfg, discard)
	assert.NoError(t, err)

	cfg.Agent.Provider = models.ProviderLocal
	_, err = New(cfg, discard)
	assert.NoError(t, err)

	cfg.Agent.Provider = models.ProviderOpenAI
	cfg.OpenAI.APIKey = ""
	_, err = New(cfg, discard)
	assert.Error(t, err, "openai without a key")

	cfg.Agent.Provider = "carrier-pigeon"
	_, err = New(cfg, discard)
	assert.Error(t, err)
}
