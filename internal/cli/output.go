package cli

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goliatone/go-formbuilder/pkg/form"
	"github.com/goliatone/go-formbuilder/pkg/i18n"
	"github.com/goliatone/go-formbuilder/pkg/render"
	"github.com/goliatone/go-formbuilder/pkg/script"
	"github.com/goliatone/go-formbuilder/pkg/values"
)

// renderFlags are shared by every command that prints a form.
type renderFlags struct {
	values    []string
	output    string
	xhtml     bool
	sanitize  bool
	locale    string
	noScript  bool
	scriptDir string
}

func (f *renderFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringArrayVar(&f.values, "value", nil, "external value as key=value (repeatable)")
	cmd.Flags().StringVarP(&f.output, "output", "o", "", "write HTML to this file instead of stdout")
	cmd.Flags().BoolVar(&f.xhtml, "xhtml", false, "self-close void elements")
	cmd.Flags().BoolVar(&f.sanitize, "sanitize", false, "sanitize raw HTML fragments with a UGC policy")
	cmd.Flags().StringVar(&f.locale, "locale", "", "locale for synthesized captions")
	cmd.Flags().BoolVar(&f.noScript, "no-script", false, "omit the companion script")
	cmd.Flags().StringVar(&f.scriptDir, "script-dir", "", "directory whose formbuilder.js.tpl overrides the embedded script")
}

func (f *renderFlags) renderer(logger *zap.Logger) (*render.Renderer, error) {
	translator, err := i18n.New()
	if err != nil {
		return nil, err
	}
	opts := []render.Option{
		render.WithLogger(logger),
		render.WithTranslator(translator),
		render.WithLocale(f.locale),
	}
	if f.sanitize {
		opts = append(opts, render.WithRawSanitizer(bluemonday.UGCPolicy()))
	}
	switch {
	case f.noScript:
		opts = append(opts, render.WithoutScript())
	case f.scriptDir != "":
		builder, err := script.FromDir(f.scriptDir)
		if err != nil {
			return nil, err
		}
		opts = append(opts, render.WithScriptBuilder(builder))
	}
	return render.New(opts...), nil
}

func (f *renderFlags) source() (values.Source, error) {
	if len(f.values) == 0 {
		return values.Empty, nil
	}
	v := url.Values{}
	for _, pair := range f.values {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("cli: --value %q: expected key=value", pair)
		}
		v.Add(key, value)
	}
	return values.FromRequest(v), nil
}

// emit renders f and writes the markup to the configured destination.
func (f *renderFlags) emit(ctx context.Context, cmd *cobra.Command, logger *zap.Logger, built *form.Form) error {
	if f.xhtml {
		if err := built.Set("markup", form.MarkupXHTML); err != nil {
			return err
		}
	}
	renderer, err := f.renderer(logger)
	if err != nil {
		return err
	}
	src, err := f.source()
	if err != nil {
		return err
	}
	result, err := renderer.RenderForm(ctx, built, render.RenderOptions{Values: src, Locale: f.locale})
	if err != nil {
		return err
	}
	return writeOutput(cmd.OutOrStdout(), f.output, result.HTML+"\n")
}

func writeOutput(stdout io.Writer, path, content string) error {
	if path == "" {
		_, err := io.WriteString(stdout, content)
		return err
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("cli: write %q: %w", path, err)
	}
	return nil
}
