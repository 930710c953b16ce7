package extract

import (
	"context"
	"fmt"
	"os"

	"github.com/dtnitsch/web-content-extractor/internal/env"
	"github.com/dtnitsch/web-content-extractor/pkg/form"
	"github.com/urfave/cli/v2"
)

// ExtractAction submits one extraction and prints the result.
func ExtractAction(c *cli.Context) error {
	output := c.String("output")
	if err := env.CheckOutput(output); err != nil {
		return err
	}

	e, err := env.Open(c)
	if err != nil {
		return err
	}
	defer e.Close()

	ctrl, err := e.Controller()
	if err != nil {
		return err
	}

	var f form.State
	if c.Bool("interactive") {
		f, err = PromptForForm(FormFromFlags(c))
	} else {
		f, err = FormFromFlags(c)
	}
	if err != nil {
		return err
	}
	if _, err := ctrl.Edit(func(form.State) (form.State, error) { return f, nil }); err != nil {
		return err
	}

	ctx := c.Context
	if d := c.Duration("timeout"); d > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d)
		defer cancel()
	}

	sub, err := ctrl.Submit(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintln(os.Stderr, "Processing...")
	res := sub.Wait()

	st := ctrl.State()
	if err := env.WriteResponse(os.Stdout, output, res.Response, st.Theme); err != nil {
		return err
	}
	if err := e.Deliver(c, res.Response); err != nil {
		return err
	}
	if !res.Success {
		return cli.Exit("", 1)
	}
	return nil
}

// FormFromFlags builds the form from --url, --param, --custom, --format and
// --instructions.
func FormFromFlags(c *cli.Context) (form.State, error) {
	return buildForm(c.String("url"), c.StringSlice("param"), c.StringSlice("custom"),
		c.String("format"), c.String("instructions"))
}

func buildForm(url string, params, custom []string, format, instructions string) (form.State, error) {
	f := form.New().SetURL(url).SetInstructions(instructions)
	for _, p := range params {
		if !f.IsSelected(p) {
			f = f.Toggle(p)
		}
	}
	for _, p := range custom {
		f = f.SetPending(p).AddCustom()
	}
	if format != "" {
		var err error
		if f, err = f.SetFormat(format); err != nil {
			return f, err
		}
	}
	return f, nil
}
