// Package env builds what every command needs: logger, configuration,
// storage, and the stores and controller on top of them.
package env

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/dtnitsch/web-content-extractor/models"
	"github.com/dtnitsch/web-content-extractor/pkg/agent"
	"github.com/dtnitsch/web-content-extractor/pkg/app"
	"github.com/dtnitsch/web-content-extractor/pkg/history"
	"github.com/dtnitsch/web-content-extractor/pkg/kvstore"
	"github.com/dtnitsch/web-content-extractor/pkg/theme"
	"github.com/urfave/cli/v2"
)

// Env is the opened runtime of one command.
type Env struct {
	Config  *models.Config
	Logger  *slog.Logger
	Store   kvstore.Store
	// History is loaded by Controller, or by LoadHistory for commands
	// that never call the agent.
	History *history.Store
	Themes  *theme.Store
}

// NewLogger builds the stderr JSON logger from the global flags.
func NewLogger(c *cli.Context) *slog.Logger {
	logLevel := slog.LevelInfo
	if c.Bool("quiet") {
		logLevel = slog.LevelError
	} else if c.Bool("verbose") {
		logLevel = slog.LevelDebug
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))
}

// Open loads configuration and opens storage. --ephemeral swaps in an
// in-memory store so nothing is written to disk.
func Open(c *cli.Context) (*Env, error) {
	logger := NewLogger(c)

	cfg, err := models.LoadConfig(c.String("config"))
	if err != nil {
		return nil, err
	}
	if c.Bool("ephemeral") {
		cfg.Storage.Backend = models.BackendMemory
	}
	return New(cfg, logger)
}

// New opens the storage named by cfg.
func New(cfg *models.Config, logger *slog.Logger) (*Env, error) {
	kv, err := kvstore.Open(cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("failed to open storage: %w", err)
	}
	logger.Debug("storage opened", "backend", cfg.Storage.Backend, "path", cfg.Storage.Path)

	hist := history.New(kv, logger)
	return &Env{
		Config:  cfg,
		Logger:  logger,
		Store:   kv,
		History: hist,
		Themes:  theme.NewStore(kv, logger),
	}, nil
}

// Controller connects the configured agent to the stores.
func (e *Env) Controller() (*app.Controller, error) {
	client, err := agent.New(e.Config, e.Logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create agent client: %w", err)
	}
	return app.NewController(client, e.History, e.Themes, e.Logger), nil
}

// LoadHistory reads the stored history and returns it.
func (e *Env) LoadHistory() *history.Store {
	e.History.Load()
	return e.History
}

func (e *Env) Close() error {
	return e.Store.Close()
}
