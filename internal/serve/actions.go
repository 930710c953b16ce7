package serve

import (
	"os/signal"
	"syscall"

	"github.com/dtnitsch/web-content-extractor/internal/env"
	"github.com/dtnitsch/web-content-extractor/pkg/webui"
	"github.com/urfave/cli/v2"
)

// ServeAction runs the web UI until interrupted.
func ServeAction(c *cli.Context) error {
	e, err := env.Open(c)
	if err != nil {
		return err
	}
	defer e.Close()

	ctrl, err := e.Controller()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(c.Context, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv, err := webui.New(ctx, ctrl, e.Logger)
	if err != nil {
		return err
	}

	addr := e.Config.Server.Addr
	if c.IsSet("addr") {
		addr = c.String("addr")
	}
	return srv.ListenAndServe(ctx, addr)
}
