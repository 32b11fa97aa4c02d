package cli

import (
	"fmt"

	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/goliatone/go-formbuilder/pkg/definition"
	"github.com/goliatone/go-formbuilder/pkg/form"
	"github.com/goliatone/go-formbuilder/pkg/tui"
	"github.com/goliatone/go-formbuilder/pkg/values"
)

var newPromptDriver = func() tui.PromptDriver { return tui.NewSurveyDriver() }

func newFillCommand(a *app) *cobra.Command {
	var (
		format string
		output string
	)

	cmd := &cobra.Command{
		Use:   "fill <definition>",
		Short: "Fill a form interactively and print the submission",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			def, err := definition.Load(args[0])
			if err != nil {
				return err
			}
			f := def.NewForm(form.WithLogger(a.log()))
			answers, err := tui.Fill(cmd.Context(), newPromptDriver(), f.Inputs(), tui.WithDefaults(values.FromMap(f.Data())))
			if err != nil {
				return err
			}

			var content string
			switch format {
			case "form":
				content = answers.Encode()
			case "json":
				data, err := json.MarshalIndent(answers, "", "  ")
				if err != nil {
					return fmt.Errorf("cli: encode answers: %w", err)
				}
				content = string(data)
			default:
				return fmt.Errorf("cli: unknown format %q", format)
			}
			return writeOutput(cmd.OutOrStdout(), output, content+"\n")
		},
	}

	cmd.Flags().StringVar(&format, "format", "form", "output format (form, json)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write the submission to this file")
	return cmd
}
