// Package tui fills a form interactively on the terminal and returns the
// answers in the shape a browser would submit them.
package tui

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/goliatone/go-formbuilder/pkg/flags"
	"github.com/goliatone/go-formbuilder/pkg/model"
	"github.com/goliatone/go-formbuilder/pkg/values"
)

var (
	// ErrAborted signals the user interrupted the session.
	ErrAborted = errors.New("tui: aborted")
	// ErrRequired is returned by prompt validators for empty required answers.
	ErrRequired = errors.New("tui: value is required")
	// ErrPatternMismatch is returned by prompt validators for answers that do
	// not match the field pattern.
	ErrPatternMismatch = errors.New("tui: value does not match pattern")
)

// FillOption configures Fill.
type FillOption func(*filler)

type filler struct {
	defaults values.Source
}

// WithDefaults pre-fills prompts from src using the render population rules.
func WithDefaults(src values.Source) FillOption {
	return func(f *filler) {
		if src != nil {
			f.defaults = src
		}
	}
}

// Fill prompts for every field in order. Structural fields are not prompted;
// hidden fields contribute their value unchanged.
func Fill(ctx context.Context, driver PromptDriver, specs []model.FieldSpec, opts ...FillOption) (url.Values, error) {
	if driver == nil {
		return nil, errors.New("tui: prompt driver is required")
	}
	f := &filler{defaults: values.Empty}
	for _, opt := range opts {
		if opt != nil {
			opt(f)
		}
	}

	out := url.Values{}
	for _, spec := range specs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := f.field(ctx, driver, spec, out); err != nil {
			if errors.Is(err, ErrAborted) {
				return nil, ErrAborted
			}
			return nil, fmt.Errorf("tui: field %q: %w", spec.Name, err)
		}
	}
	return out, nil
}

func (f *filler) field(ctx context.Context, driver PromptDriver, spec model.FieldSpec, out url.Values) error {
	eff := values.Resolve(spec, f.defaults)
	message := spec.Label
	if message == "" {
		message = spec.Name
	}

	switch {
	case spec.Type == model.FieldTypeTitle:
		return driver.Info(ctx, spec.Label)
	case spec.Type == model.FieldTypeHTML, spec.Type == model.FieldTypeSubmit:
		return nil
	case spec.Type == model.FieldTypeHidden:
		if eff.Value != "" {
			out.Set(spec.Name, eff.Value)
		}
		return nil

	case spec.Type == model.FieldTypeFlags:
		return f.flags(ctx, driver, spec, eff, message, out)

	case spec.Type.IsSelect() && spec.HasOptions():
		labels, keys := optionLists(spec.Options)
		idx, err := driver.Select(ctx, SelectConfig{
			Message:      message,
			Options:      labels,
			DefaultIndex: selectedIndex(keys, eff),
			Help:         spec.Placeholder,
		})
		if err != nil {
			return err
		}
		if idx >= 0 && idx < len(keys) {
			out.Set(spec.Name, keys[idx])
		}
		return nil

	case spec.Type == model.FieldTypeCheckbox && spec.HasOptions():
		labels, keys := optionLists(spec.Options)
		picked, err := driver.MultiSelect(ctx, SelectConfig{
			Message:  message,
			Options:  labels,
			Defaults: selectedIndices(keys, eff),
			Help:     spec.Placeholder,
			Required: spec.Required,
		})
		if err != nil {
			return err
		}
		for _, idx := range picked {
			if idx >= 0 && idx < len(keys) {
				out.Add(spec.Name+"[]", keys[idx])
			}
		}
		return nil

	case spec.Type == model.FieldTypeRadio && spec.HasOptions():
		labels, keys := optionLists(spec.Options)
		idx, err := driver.Select(ctx, SelectConfig{
			Message:      message,
			Options:      labels,
			DefaultIndex: selectedIndex(keys, eff),
			Help:         spec.Placeholder,
		})
		if err != nil {
			return err
		}
		if idx >= 0 && idx < len(keys) {
			out.Set(spec.Name+"[]", keys[idx])
		}
		return nil

	case spec.Type.IsChoice():
		yes, err := driver.Confirm(ctx, ConfirmConfig{Message: message, Default: eff.Checked, Help: spec.Placeholder})
		if err != nil {
			return err
		}
		if yes {
			value := spec.Value
			if value == "" {
				value = "on"
			}
			out.Set(spec.Name, value)
		}
		return nil

	case spec.Type == model.FieldTypeTextarea:
		answer, err := driver.TextArea(ctx, TextAreaConfig{
			Message:   message,
			Default:   eff.Value,
			Help:      spec.Placeholder,
			Validator: validator(spec),
		})
		if err != nil {
			return err
		}
		out.Set(spec.Name, answer)
		return nil

	case spec.Type == model.FieldTypePassword:
		answer, err := driver.Password(ctx, InputConfig{Message: message, Help: spec.Placeholder, Validator: validator(spec)})
		if err != nil {
			return err
		}
		out.Set(spec.Name, answer)
		return nil

	default:
		answer, err := driver.Input(ctx, InputConfig{
			Message:   message,
			Default:   eff.Value,
			Help:      spec.Placeholder,
			Validator: validator(spec),
		})
		if err != nil {
			return err
		}
		out.Set(spec.Name, answer)
		return nil
	}
}

func (f *filler) flags(ctx context.Context, driver PromptDriver, spec model.FieldSpec, eff values.Effective, message string, out url.Values) error {
	bits := flags.FromOptions(spec.Options)
	labels := make([]string, 0, len(bits))
	for _, bit := range bits {
		labels = append(labels, bit.Caption)
	}

	current := flags.ParseValue(eff.Value)
	var defaults []int
	for i, bit := range bits {
		if flags.Active(current, bit.Value) {
			defaults = append(defaults, i)
		}
	}

	picked, err := driver.MultiSelect(ctx, SelectConfig{
		Message:  message,
		Options:  labels,
		Defaults: defaults,
		Help:     spec.Placeholder,
	})
	if err != nil {
		return err
	}
	checked := make([]flags.Option, 0, len(picked))
	for _, idx := range picked {
		if idx >= 0 && idx < len(bits) {
			checked = append(checked, bits[idx])
		}
	}
	out.Set(spec.Name, strconv.FormatInt(flags.Encode(checked), 10))
	return nil
}

func optionLists(options model.Options) (labels, keys []string) {
	labels = make([]string, 0, len(options))
	keys = make([]string, 0, len(options))
	for _, opt := range options {
		label := opt.Label
		if label == "" {
			label = opt.Value
		}
		labels = append(labels, label)
		keys = append(keys, opt.Value)
	}
	return labels, keys
}

func selectedIndex(keys []string, eff values.Effective) int {
	for i, key := range keys {
		if eff.IsSelected(key) {
			return i
		}
	}
	return 0
}

func selectedIndices(keys []string, eff values.Effective) []int {
	var out []int
	for i, key := range keys {
		if eff.IsSelected(key) {
			out = append(out, i)
		}
	}
	return out
}

// validator enforces required and pattern the way a browser would. The
// pattern must match the whole answer.
func validator(spec model.FieldSpec) func(string) error {
	var pattern *regexp.Regexp
	if spec.Pattern != "" {
		if re, err := regexp.Compile("^(?:" + spec.Pattern + ")$"); err == nil {
			pattern = re
		}
	}
	if !spec.Required && pattern == nil {
		return nil
	}
	return func(answer string) error {
		if strings.TrimSpace(answer) == "" {
			if spec.Required {
				return ErrRequired
			}
			return nil
		}
		if pattern != nil && !pattern.MatchString(answer) {
			return ErrPatternMismatch
		}
		return nil
	}
}
