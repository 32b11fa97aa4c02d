package cli

import (
	"github.com/spf13/cobra"

	"github.com/goliatone/go-formbuilder/pkg/definition"
	"github.com/goliatone/go-formbuilder/pkg/form"
)

func newRenderCommand(a *app) *cobra.Command {
	var flags renderFlags

	cmd := &cobra.Command{
		Use:   "render <definition>",
		Short: "Render a YAML, TOML or JSON form definition",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			def, err := definition.Load(args[0])
			if err != nil {
				return err
			}
			f := def.NewForm(form.WithLogger(a.log()))
			return flags.emit(cmd.Context(), cmd, a.log(), f)
		},
	}
	flags.bind(cmd)
	return cmd
}
