package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formbuilder/pkg/form"
	"github.com/goliatone/go-formbuilder/pkg/tablesource"
)

func newTableCommand(a *app) *cobra.Command {
	var (
		flags    renderFlags
		driver   string
		dsn      string
		view     string
		formID   int64
		dataPath string
	)

	cmd := &cobra.Command{
		Use:   "table",
		Short: "Render a form described by rows of a database view",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			src, err := tablesource.Open(driver, dsn, tablesource.WithView(view))
			if err != nil {
				return err
			}
			defer func() {
				if cerr := src.Close(); cerr != nil {
					a.log().Warn("close data source", zap.Error(cerr))
				}
			}()

			f := form.New("", nil, form.WithLogger(a.log()))
			if dataPath != "" {
				record, err := readRecord(dataPath)
				if err != nil {
					return err
				}
				f.LetData(record)
			}
			if err := tablesource.Load(cmd.Context(), src, formID, f, tablesource.WithLogger(a.log())); err != nil {
				return err
			}
			return flags.emit(cmd.Context(), cmd, a.log(), f)
		},
	}

	cmd.Flags().StringVar(&driver, "driver", "sqlite3", "database driver (sqlite3, postgres)")
	cmd.Flags().StringVar(&dsn, "dsn", "", "data source name")
	cmd.Flags().StringVar(&view, "view", tablesource.DefaultView, "view holding the field rows")
	cmd.Flags().Int64Var(&formID, "form-id", 0, "form id to load")
	cmd.Flags().StringVar(&dataPath, "data", "", "YAML or JSON file with the bound record")
	_ = cmd.MarkFlagRequired("dsn")
	_ = cmd.MarkFlagRequired("form-id")
	flags.bind(cmd)
	return cmd
}

// readRecord decodes a flat record; JSON is accepted as YAML.
func readRecord(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cli: read data %q: %w", path, err)
	}
	record := map[string]any{}
	if err := yaml.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("cli: parse data %q: %w", path, err)
	}
	return record, nil
}
