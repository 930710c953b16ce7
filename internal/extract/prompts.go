package extract

import (
	"fmt"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/dtnitsch/web-content-extractor/internal/common"
	"github.com/dtnitsch/web-content-extractor/models"
	"github.com/dtnitsch/web-content-extractor/pkg/form"
)

// PromptForForm asks for every form field, starting from the values already
// given on the command line.
func PromptForForm(start form.State, startErr error) (form.State, error) {
	if startErr != nil {
		return start, startErr
	}

	var rawURL string
	err := survey.AskOne(&survey.Input{
		Message: "URL:",
		Help:    "The page to extract content from, e.g. https://example.com",
		Default: start.URL,
	}, &rawURL, survey.WithValidator(func(val interface{}) error {
		_, err := common.ValidateURL(val.(string))
		return err
	}))
	if err != nil {
		return start, err
	}
	f := start.SetURL(rawURL)

	var chips []string
	err = survey.AskOne(&survey.MultiSelect{
		Message: "Parameters to extract:",
		Options: models.PredefinedParameters,
		Default: selectedChips(f),
		Help:    "Use space to select, enter to confirm.",
	}, &chips)
	if err != nil {
		return f, err
	}
	custom := f.Custom()
	f = f.SetSelected(append(chips, custom...))

	var extra string
	if err := survey.AskOne(&survey.Input{
		Message: "Custom parameters (comma separated, optional):",
	}, &extra); err != nil {
		return f, err
	}
	for _, p := range strings.Split(extra, ",") {
		f = f.SetPending(p).AddCustom()
	}
	if len(f.Selected) == 0 {
		return f, fmt.Errorf("select at least one parameter")
	}

	labels := make([]string, len(models.FormatOptions))
	for i, opt := range models.FormatOptions {
		labels[i] = opt.Label
	}
	var label string
	if err := survey.AskOne(&survey.Select{
		Message: "Output format:",
		Options: labels,
		Default: f.Format.Label(),
	}, &label); err != nil {
		return f, err
	}
	if f, err = f.SetFormat(label); err != nil {
		return f, err
	}

	var instructions string
	if err := survey.AskOne(&survey.Multiline{
		Message: "Additional instructions (optional):",
		Default: f.Instructions,
	}, &instructions); err != nil {
		return f, err
	}
	return f.SetInstructions(instructions), nil
}

func selectedChips(f form.State) []string {
	var out []string
	for _, c := range f.Chips() {
		if c.Selected {
			out = append(out, c.Label)
		}
	}
	return out
}
