package theme

import (
	"fmt"

	"github.com/dtnitsch/web-content-extractor/internal/env"
	themepkg "github.com/dtnitsch/web-content-extractor/pkg/theme"
	"github.com/urfave/cli/v2"
)

// ShowAction prints the saved theme.
func ShowAction(c *cli.Context) error {
	e, err := env.Open(c)
	if err != nil {
		return err
	}
	defer e.Close()

	fmt.Println(e.Themes.Load())
	return nil
}

// ToggleAction switches between light and dark and saves the choice.
func ToggleAction(c *cli.Context) error {
	e, err := env.Open(c)
	if err != nil {
		return err
	}
	defer e.Close()

	next, err := toggle(e.Themes)
	if err != nil {
		return err
	}
	e.Logger.Debug("theme saved", "theme", next)
	fmt.Println(next)
	return nil
}

func toggle(store *themepkg.Store) (themepkg.Theme, error) {
	next := store.Load().Toggled()
	if err := store.Save(next); err != nil {
		return store.Load(), err
	}
	return next, nil
}
