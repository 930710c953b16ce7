package history

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/dtnitsch/web-content-extractor/internal/env"
	"github.com/dtnitsch/web-content-extractor/models"
	"github.com/dtnitsch/web-content-extractor/pkg/render"
	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"
)

// ListEntry is one history line in JSON/YAML output.
type ListEntry struct {
	ID         string                `json:"id" yaml:"id"`
	Timestamp  string                `json:"timestamp" yaml:"timestamp"`
	URL        string                `json:"url" yaml:"url"`
	Parameters []string              `json:"parameters" yaml:"parameters"`
	Format     models.OutputFormat   `json:"format" yaml:"format"`
	Status     models.ResponseStatus `json:"status" yaml:"status"`
}

func listEntries(items []models.HistoryItem) []ListEntry {
	out := make([]ListEntry, len(items))
	for i, item := range items {
		out[i] = ListEntry{
			ID:         item.ID,
			Timestamp:  item.Timestamp,
			URL:        item.URL,
			Parameters: item.Parameters,
			Format:     item.Format,
			Status:     item.Response.Status,
		}
	}
	return out
}

// ListAction prints the history, most recent first.
func ListAction(c *cli.Context) error {
	output := c.String("output")
	if err := env.CheckOutput(output); err != nil {
		return err
	}

	e, err := env.Open(c)
	if err != nil {
		return err
	}
	defer e.Close()

	items := e.LoadHistory().Items()
	switch output {
	case env.OutputJSON:
		data, err := json.MarshalIndent(listEntries(items), "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode history: %w", err)
		}
		fmt.Println(string(data))
	case env.OutputYAML:
		data, err := yaml.Marshal(listEntries(items))
		if err != nil {
			return fmt.Errorf("failed to encode history: %w", err)
		}
		fmt.Print(string(data))
	default:
		fmt.Println(render.HistoryList(items, "", render.NewStyles(e.Themes.Load())))
		if len(items) > 0 {
			fmt.Printf("\nTip: Use 'wce history show <id>' to see a stored result\n")
		}
	}
	return nil
}

// ShowAction replays one stored extraction without calling the agent.
func ShowAction(c *cli.Context) error {
	output := c.String("output")
	if err := env.CheckOutput(output); err != nil {
		return err
	}
	id := strings.TrimSpace(c.Args().First())
	if id == "" {
		return fmt.Errorf("history id is required")
	}

	e, err := env.Open(c)
	if err != nil {
		return err
	}
	defer e.Close()

	item, err := e.LoadHistory().Get(id)
	if err != nil {
		return err
	}

	if output == env.OutputText {
		st := render.NewStyles(e.Themes.Load())
		fmt.Println(st.Title.Render(item.URL))
		fmt.Println(st.Muted.Render(fmt.Sprintf("%s | %s | %s",
			item.Time().Local().Format("Jan 2, 2006 3:04 PM"),
			strings.Join(item.Parameters, ", "),
			item.Format.Label())))
	}
	if err := env.WriteResponse(os.Stdout, output, item.Response, e.Themes.Load()); err != nil {
		return err
	}
	return e.Deliver(c, item.Response)
}

// ClearAction erases all history after confirmation. --yes skips the prompt.
func ClearAction(c *cli.Context) error {
	e, err := env.Open(c)
	if err != nil {
		return err
	}
	defer e.Close()

	confirmed := c.Bool("yes")
	if !confirmed {
		prompt := &survey.Confirm{
			Message: "Are you sure you want to clear all history?",
			Default: false,
		}
		if err := survey.AskOne(prompt, &confirmed); err != nil {
			return err
		}
	}
	if !confirmed {
		fmt.Println("History kept")
		return nil
	}

	n := e.LoadHistory().Len()
	if err := e.History.Clear(); err != nil {
		return err
	}
	e.Logger.Info("history cleared", "items", n)
	fmt.Printf("Cleared %d extractions\n", n)
	return nil
}
