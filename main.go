package main

import (
	"fmt"
	"os"
	"time"

	"github.com/dtnitsch/web-content-extractor/internal/env"
	"github.com/dtnitsch/web-content-extractor/internal/extract"
	"github.com/dtnitsch/web-content-extractor/internal/history"
	"github.com/dtnitsch/web-content-extractor/internal/serve"
	"github.com/dtnitsch/web-content-extractor/internal/theme"
	"github.com/dtnitsch/web-content-extractor/models"
	"github.com/dtnitsch/web-content-extractor/pkg/help"
	"github.com/urfave/cli/v2"
)

func main() {
	outputFlag := &cli.StringFlag{
		Name:    "output",
		Aliases: []string{"o"},
		Value:   env.OutputText,
		Usage:   "Output format: text, json or yaml",
	}
	copyFlag := &cli.BoolFlag{
		Name:  "copy",
		Usage: "Copy the result to the clipboard (OSC 52)",
	}
	csvFlag := &cli.StringFlag{
		Name:  "csv",
		Usage: "Write the structured table as CSV to this path",
	}

	app := &cli.App{
		Name:  "wce",
		Usage: "Extract structured content from web pages with an AI agent",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Value:   "config.yaml",
				Usage:   "Path to the YAML config file (optional)",
				EnvVars: []string{"WCE_CONFIG"},
			},
			&cli.BoolFlag{
				Name:    "quiet",
				Aliases: []string{"q"},
				Usage:   "Only log errors",
			},
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "Log debug output",
			},
			&cli.BoolFlag{
				Name:  "ephemeral",
				Usage: "Keep history and theme in memory for this run only",
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "extract",
				Usage:  "Extract parameters from a URL",
				Action: extract.ExtractAction,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "url",
						Aliases: []string{"u"},
						Usage:   "URL to extract from; a bare host gets https://",
					},
					&cli.StringSliceFlag{
						Name:    "param",
						Aliases: []string{"p"},
						Usage:   fmt.Sprintf("Predefined parameter to extract (%v), repeatable", models.PredefinedParameters),
					},
					&cli.StringSliceFlag{
						Name:  "custom",
						Usage: "Custom parameter to extract, repeatable",
					},
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Value:   string(models.DefaultFormat),
						Usage:   "Output format requested from the agent: table, bullet or keyvalue",
					},
					&cli.StringFlag{
						Name:  "instructions",
						Usage: "Additional instructions for the agent",
					},
					&cli.BoolFlag{
						Name:    "interactive",
						Aliases: []string{"i"},
						Usage:   "Fill the form with prompts",
					},
					&cli.DurationFlag{
						Name:  "timeout",
						Value: 2 * time.Minute,
						Usage: "Give up on the agent after this long (0 waits forever)",
					},
					outputFlag,
					copyFlag,
					csvFlag,
				},
			},
			{
				Name:  "history",
				Usage: "Browse or clear past extractions",
				Subcommands: []*cli.Command{
					{
						Name:   "list",
						Usage:  "List past extractions, most recent first",
						Action: history.ListAction,
						Flags:  []cli.Flag{outputFlag},
					},
					{
						Name:      "show",
						Usage:     "Show a stored extraction without calling the agent",
						ArgsUsage: "<id>",
						Action:    history.ShowAction,
						Flags:     []cli.Flag{outputFlag, copyFlag, csvFlag},
					},
					{
						Name:   "clear",
						Usage:  "Erase all history",
						Action: history.ClearAction,
						Flags: []cli.Flag{
							&cli.BoolFlag{
								Name:    "yes",
								Aliases: []string{"y"},
								Usage:   "Skip the confirmation prompt",
							},
						},
					},
				},
			},
			{
				Name:  "theme",
				Usage: "Show or switch the light/dark theme",
				Subcommands: []*cli.Command{
					{
						Name:   "show",
						Usage:  "Print the saved theme",
						Action: theme.ShowAction,
					},
					{
						Name:   "toggle",
						Usage:  "Switch between light and dark",
						Action: theme.ToggleAction,
					},
				},
			},
			{
				Name:   "serve",
				Usage:  "Run the web UI",
				Action: serve.ServeAction,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "addr",
						Usage: "Listen address (default from config, 127.0.0.1:8080)",
					},
				},
			},
			{
				Name:  "coldstart",
				Usage: "Print a YAML quick start",
				Action: func(c *cli.Context) error {
					fmt.Print(help.ColdstartYAML)
					return nil
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
