package env

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/dtnitsch/web-content-extractor/models"
	"github.com/dtnitsch/web-content-extractor/pkg/render"
	"github.com/dtnitsch/web-content-extractor/pkg/theme"
	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"
)

// Output formats accepted by --output.
const (
	OutputText = "text"
	OutputJSON = "json"
	OutputYAML = "yaml"
)

// CheckOutput rejects an unknown --output value.
func CheckOutput(format string) error {
	switch format {
	case OutputText, OutputJSON, OutputYAML:
		return nil
	}
	return fmt.Errorf("unknown output format %q (want text, json or yaml)", format)
}

// WriteResponse prints a response as styled panels, JSON or YAML.
func WriteResponse(w io.Writer, format string, resp models.NormalizedAgentResponse, t theme.Theme) error {
	switch format {
	case OutputJSON:
		data, err := json.MarshalIndent(resp, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode response: %w", err)
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	case OutputYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(resp); err != nil {
			return fmt.Errorf("failed to encode response: %w", err)
		}
		return enc.Close()
	default:
		_, err := fmt.Fprintln(w, render.Terminal(render.Render(&resp, false), render.NewStyles(t)))
		return err
	}
}

// Deliver runs the --copy and --csv follow-ups for a displayed response.
// A failed copy is only logged.
func (e *Env) Deliver(c *cli.Context, resp models.NormalizedAgentResponse) error {
	view := render.Render(&resp, false)
	if view.Kind != render.KindSuccess {
		return nil
	}

	if c.Bool("copy") {
		if render.Copy(render.NewOSC52Clipboard(os.Stderr), nil, e.Logger, render.CopyAllLabel, render.CopyAllText(view.Result)) {
			fmt.Fprintln(os.Stderr, "Copied!")
		}
	}

	if path := c.String("csv"); path != "" {
		data, ok := render.ExportCSV(view.Result)
		if !ok {
			e.Logger.Warn("no structured table to export", "path", path)
			return nil
		}
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return fmt.Errorf("failed to write CSV: %w", err)
		}
		e.Logger.Info("CSV exported", "path", path, "bytes", len(data))
	}
	return nil
}
