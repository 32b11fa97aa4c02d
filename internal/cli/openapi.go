package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-formbuilder/pkg/form"
	"github.com/goliatone/go-formbuilder/pkg/openapisource"
)

func newOpenAPICommand(a *app) *cobra.Command {
	var (
		flags     renderFlags
		operation string
		action    string
	)

	cmd := &cobra.Command{
		Use:   "openapi <document>",
		Short: "Render the request body of an OpenAPI operation as a form",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("cli: read %q: %w", args[0], err)
			}
			op, err := openapisource.Find(cmd.Context(), data, operation)
			if err != nil {
				return err
			}
			if action == "" {
				action = op.Path
			}
			f := form.New(action, map[string]any{"method": strings.ToLower(op.Method)}, form.WithLogger(a.log()))
			if err := f.AddInputs(op.Inputs); err != nil {
				return err
			}
			return flags.emit(cmd.Context(), cmd, a.log(), f)
		},
	}

	cmd.Flags().StringVar(&operation, "operation", "", "operation id, or method:path when the operation has none")
	cmd.Flags().StringVar(&action, "action", "", "form action (defaults to the operation path)")
	_ = cmd.MarkFlagRequired("operation")
	flags.bind(cmd)
	return cmd
}
