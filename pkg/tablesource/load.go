package tablesource

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/goliatone/go-formbuilder/pkg/form"
	"github.com/goliatone/go-formbuilder/pkg/model"
)

// Row columns read by Load.
const (
	ColFormAction    = "formaction"
	ColFormMethod    = "formmethod"
	ColCaption       = "caption"
	ColGroupName     = "groupname"
	ColMapsTo        = "mapsto"
	ColControlType   = "controltype"
	ColFieldName     = "fieldname"
	ColSize          = "isize"
	ColMaxLength     = "imaxlength"
	ColPlaceholder   = "placeholder"
	ColRequired      = "brequired"
	ColValidateAs    = "validateas"
	ColPattern       = "pattern"
	ColValuesListSQL = "valueslistsql"
	ColOrderBy       = "orderby"
)

var (
	optionValueColumns   = []string{"value", "key", "id"}
	optionCaptionColumns = []string{"caption", "label", "name", "text"}
)

// LoadOption configures Load.
type LoadOption func(*loader)

type loader struct {
	logger *zap.Logger
}

// WithLogger reports skipped option lookups and rejected settings.
func WithLogger(logger *zap.Logger) LoadOption {
	return func(l *loader) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// Load adds one field per row of formID to f. Rows are processed in ascending
// orderby; the first row sets action and method and its field gets autofocus.
// f's bound record should already be set with LetData.
func Load(ctx context.Context, ds DataSource, formID int64, f *form.Form, opts ...LoadOption) error {
	l := &loader{logger: zap.NewNop()}
	for _, opt := range opts {
		if opt != nil {
			opt(l)
		}
	}
	if ds == nil || f == nil {
		return errors.New("tablesource: data source and form are required")
	}

	rows, err := ds.FormRows(ctx, formID)
	if err != nil {
		return fmt.Errorf("tablesource: form %d rows: %w", formID, err)
	}
	if len(rows) == 0 {
		return fmt.Errorf("tablesource: form %d: %w", formID, ErrNoFormRows)
	}
	rows.SortBy(ColOrderBy)

	first := rows[0]
	l.set(f, "action", first.Get(ColFormAction))
	l.set(f, "method", strings.ToLower(first.Get(ColFormMethod)))
	l.set(f, "enctype", form.EnctypeMultipart)
	l.set(f, "markup", form.MarkupHTML)

	for idx, row := range rows {
		attrs, err := l.attributes(ctx, ds, f, row)
		if err != nil {
			return err
		}
		if idx == 0 {
			addIfExists(attrs, "autofocus", true)
		}
		f.AddInput(row.Get(ColCaption), attrs, row.Get(ColFieldName))
	}
	return nil
}

func (l *loader) set(f *form.Form, key string, value any) {
	if err := f.Set(key, value); err != nil {
		l.logger.Warn("table form setting rejected", zap.String("key", key), zap.Any("value", value), zap.Error(err))
	}
}

func (l *loader) attributes(ctx context.Context, ds DataSource, f *form.Form, row Row) (model.Attributes, error) {
	controlType := strings.ToLower(strings.TrimSpace(row.Get(ColControlType)))
	mapsTo := strings.ToLower(row.Get(ColMapsTo))

	value := ""
	if mapsTo != "" {
		if raw, ok := f.DataValue(mapsTo); ok {
			value = model.AsString(raw)
		}
	}

	attrs := model.Attributes{
		"group": row.Get(ColGroupName),
		"value": value,
	}
	if mapsTo != "" {
		attrs["maps_to"] = mapsTo
	}
	if isSelect(controlType) {
		attrs["selected"] = value
	}

	addIfExists(attrs, "size", row.Get(ColSize))
	addIfExists(attrs, "maxlength", row.Get(ColMaxLength))
	addIfExists(attrs, "placeholder", row.Get(ColPlaceholder))
	addIfExists(attrs, "type", controlType)
	addIfExists(attrs, "required", row.Get(ColRequired) == "1")
	addIfExists(attrs, "validateas", row.Get(ColValidateAs))
	addIfExists(attrs, "pattern", row.Get(ColPattern))

	if isSelect(controlType) || controlType == string(model.FieldTypeFlags) {
		if query := row.Get(ColValuesListSQL); strings.TrimSpace(query) != "" {
			options, err := OptionsFor(ctx, ds, query)
			switch {
			case err == nil:
				addIfExists(attrs, "options", options)
			case errors.Is(err, ErrNoOptionRows), errors.Is(err, ErrEmptyOptionsQuery):
				l.logger.Debug("field has no options", zap.String("field", row.Get(ColFieldName)), zap.Error(err))
			default:
				return nil, fmt.Errorf("tablesource: options for %q: %w", row.Get(ColFieldName), err)
			}
		}
	}
	return attrs, nil
}

func isSelect(controlType string) bool {
	return controlType == string(model.FieldTypeSelect) || controlType == string(model.FieldTypeDropdown)
}

// addIfExists sets key only when value is non-empty and key is not set yet.
func addIfExists(attrs model.Attributes, key string, value any) {
	if _, exists := attrs[key]; exists {
		return
	}
	switch v := value.(type) {
	case string:
		if v == "" {
			return
		}
	case bool:
		if !v {
			return
		}
	case model.Options:
		if len(v) == 0 {
			return
		}
	}
	attrs[key] = value
}

// OptionsFor runs the semicolon separated queries in order and maps the first
// non-empty result to options.
func OptionsFor(ctx context.Context, ds DataSource, queries string) (model.Options, error) {
	if strings.TrimSpace(queries) == "" {
		return nil, ErrEmptyOptionsQuery
	}
	for _, query := range strings.Split(queries, ";") {
		query = strings.TrimSpace(query)
		if query == "" {
			continue
		}
		rows, err := ds.Query(ctx, query)
		if err != nil {
			return nil, err
		}
		if len(rows) == 0 {
			continue
		}
		return rowsToOptions(rows), nil
	}
	return nil, ErrNoOptionRows
}

func rowsToOptions(rows Rows) model.Options {
	out := make(model.Options, 0, len(rows))
	for _, row := range rows {
		value, ok := row.First(optionValueColumns...)
		if !ok {
			continue
		}
		caption, ok := row.First(optionCaptionColumns...)
		if !ok {
			caption = value
		}
		out = append(out, model.Option{Value: value, Label: caption})
	}
	return out
}
