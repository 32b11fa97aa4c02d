package model

import (
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"
)

// DefaultWrapClass is applied to every field wrapper unless overridden.
const DefaultWrapClass = "form_field_wrap"

// Defaults returns the fixed default attribute table. Name, ID and Label are
// filled in by Normalize from the label/slug.
func Defaults() FieldSpec {
	return FieldSpec{
		Type:            FieldTypeText,
		AddLabel:        true,
		RequestPopulate: true,
		WrapClass:       ClassList{DefaultWrapClass},
		WrapTag:         "div",
	}
}

// Normalize overlays attrs onto Defaults(). The slug defaults to
// Slugify(label) and seeds both name and id. Values are coerced leniently;
// keys the model does not know are kept in Extra. Normalize never fails and
// never modifies attrs.
func Normalize(attrs Attributes, label, slug string) FieldSpec {
	if slug == "" {
		slug = Slugify(label)
	}

	spec := Defaults()
	spec.Name = slug
	spec.ID = slug
	spec.Label = label

	for key, raw := range attrs {
		applyAttribute(&spec, strings.ToLower(strings.TrimSpace(key)), raw)
	}
	return spec
}

func applyAttribute(spec *FieldSpec, key string, raw any) {
	switch key {
	case "type":
		spec.Type = FieldType(strings.ToLower(strings.TrimSpace(AsString(raw))))
	case "name":
		spec.Name = AsString(raw)
	case "id":
		spec.ID = AsString(raw)
	case "label":
		spec.Label = AsString(raw)
	case "value":
		spec.Value = AsString(raw)
	case "options":
		spec.Options = AsOptions(raw)
	case "selected":
		spec.Selected = selectedString(raw)
	case "checked":
		spec.Checked = AsBool(raw)
	case "add_label":
		spec.AddLabel = AsBool(raw)
	case "request_populate":
		spec.RequestPopulate = AsBool(raw)
	case "required":
		spec.Required = AsBool(raw)
	case "autofocus":
		spec.Autofocus = AsBool(raw)
	case "pattern":
		spec.Pattern = AsString(raw)
	case "placeholder":
		spec.Placeholder = AsString(raw)
	case "min":
		spec.Min = AsString(raw)
	case "max":
		spec.Max = AsString(raw)
	case "step":
		spec.Step = AsString(raw)
	case "size":
		spec.Size = AsString(raw)
	case "maxlength":
		spec.MaxLength = AsString(raw)
	case "validateas":
		spec.ValidateAs = AsString(raw)
	case "class":
		spec.Class = AsClassList(raw)
	case "wrap_class":
		spec.WrapClass = AsClassList(raw)
	case "wrap_tag":
		spec.WrapTag = AsString(raw)
	case "wrap_id":
		spec.WrapID = AsString(raw)
	case "wrap_style":
		spec.WrapStyle = AsString(raw)
	case "before_html":
		spec.BeforeHTML = AsString(raw)
	case "after_html":
		spec.AfterHTML = AsString(raw)
	case "group":
		spec.Group = AsString(raw)
	case "maps_to", "mapsto":
		spec.MapsTo = strings.ToLower(AsString(raw))
	case "slug":
		// consumed by the caller; keep the descriptor free of it
	default:
		if spec.Extra == nil {
			spec.Extra = make(map[string]any)
		}
		spec.Extra[key] = raw
	}
}

// AsString stringifies scalar attribute values. Nil becomes "".
func AsString(raw any) string {
	switch v := raw.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case int32:
		return strconv.FormatInt(int64(v), 10)
	case uint64:
		return strconv.FormatUint(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}

// AsBool interprets booleans, numbers and the usual textual spellings.
func AsBool(raw any) bool {
	switch v := raw.(type) {
	case nil:
		return false
	case bool:
		return v
	case string:
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "1", "true", "yes", "on":
			return true
		default:
			return false
		}
	case int:
		return v != 0
	case int64:
		return v != 0
	case float64:
		return v != 0
	default:
		return false
	}
}

// AsClassList accepts a class string, a string slice or a generic slice.
func AsClassList(raw any) ClassList {
	switch v := raw.(type) {
	case nil:
		return nil
	case ClassList:
		return append(ClassList(nil), v...)
	case []string:
		return append(ClassList(nil), v...)
	case string:
		return ParseClassList(v)
	case []any:
		out := make(ClassList, 0, len(v))
		for _, item := range v {
			if s := strings.TrimSpace(AsString(item)); s != "" {
				out = append(out, s)
			}
		}
		return out
	default:
		return ParseClassList(AsString(v))
	}
}

// OptionSource is implemented by option types defined outside this package
// so AsOptions can accept slices of them.
type OptionSource interface {
	AsOption() Option
}

// AsOptions converts the accepted option shapes into an ordered list. Go maps
// carry no order, so map inputs are sorted by key, numerically when every key
// is an integer. Anything unrecognised yields an empty list.
func AsOptions(raw any) Options {
	switch v := raw.(type) {
	case nil:
		return nil
	case Options:
		return v.Clone()
	case []Option:
		return Options(v).Clone()
	case map[string]string:
		return fromStringKeys(v, func(label string) string { return label })
	case map[string]any:
		return fromStringKeys(v, AsString)
	case map[int]string:
		return fromIntKeys(v, func(label string) string { return label })
	case map[int]any:
		return fromIntKeys(v, AsString)
	case map[int64]string:
		return fromIntKeys(v, func(label string) string { return label })
	case map[int64]any:
		return fromIntKeys(v, AsString)
	case []map[string]any:
		out := make(Options, 0, len(v))
		for _, item := range v {
			if opt, ok := optionFromMap(item); ok {
				out = append(out, opt)
			}
		}
		return out
	case []map[string]string:
		out := make(Options, 0, len(v))
		for _, item := range v {
			generic := make(map[string]any, len(item))
			for key, value := range item {
				generic[key] = value
			}
			if opt, ok := optionFromMap(generic); ok {
				out = append(out, opt)
			}
		}
		return out
	case []string:
		out := make(Options, 0, len(v))
		for _, item := range v {
			out = append(out, Option{Value: item, Label: item})
		}
		return out
	case []any:
		out := make(Options, 0, len(v))
		for _, item := range v {
			if opt, ok := optionFromAny(item); ok {
				out = append(out, opt)
			}
		}
		return out
	}

	// Typed slices such as []flags.Option reach here.
	rv := reflect.ValueOf(raw)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil
	}
	out := make(Options, 0, rv.Len())
	for i := 0; i < rv.Len(); i++ {
		if opt, ok := optionFromAny(rv.Index(i).Interface()); ok {
			out = append(out, opt)
		}
	}
	return out
}

func fromStringKeys[V any](m map[string]V, label func(V) string) Options {
	keys := sortedKeys(m)
	out := make(Options, 0, len(keys))
	for _, key := range keys {
		out = append(out, Option{Value: key, Label: label(m[key])})
	}
	return out
}

func fromIntKeys[K int | int64, V any](m map[K]V, label func(V) string) Options {
	keys := make([]K, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	out := make(Options, 0, len(keys))
	for _, key := range keys {
		out = append(out, Option{Value: strconv.FormatInt(int64(key), 10), Label: label(m[key])})
	}
	return out
}

func optionFromAny(item any) (Option, bool) {
	switch v := item.(type) {
	case Option:
		return v, true
	case OptionSource:
		return v.AsOption(), true
	case map[string]any:
		return optionFromMap(v)
	case []any:
		if len(v) == 0 {
			return Option{}, false
		}
		value := AsString(v[0])
		label := value
		if len(v) > 1 {
			label = AsString(v[1])
		}
		return Option{Value: value, Label: label}, true
	case string, int, int64, float64:
		s := AsString(v)
		return Option{Value: s, Label: s}, true
	default:
		return Option{}, false
	}
}

func optionFromMap(item map[string]any) (Option, bool) {
	value, ok := firstPresent(item, "value", "key", "id")
	if !ok {
		return Option{}, false
	}
	label, ok := firstPresent(item, "label", "caption", "name", "text")
	if !ok {
		label = value
	}
	return Option{Value: value, Label: label}, true
}

func firstPresent(item map[string]any, keys ...string) (string, bool) {
	for _, key := range keys {
		for candidate, raw := range item {
			if strings.EqualFold(candidate, key) {
				return AsString(raw), true
			}
		}
	}
	return "", false
}

// selectedString accepts false (the legacy "nothing selected" marker) as "".
func selectedString(raw any) string {
	if b, ok := raw.(bool); ok && !b {
		return ""
	}
	return AsString(raw)
}

// sortedKeys orders keys numerically when all of them are integers and
// lexically otherwise, so flag bits keep 1, 2, 4, 8, 16 order.
func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	numeric := true
	for key := range m {
		keys = append(keys, key)
		if _, err := strconv.ParseInt(strings.TrimSpace(key), 10, 64); err != nil {
			numeric = false
		}
	}
	if !numeric {
		sort.Strings(keys)
		return keys
	}
	sort.Slice(keys, func(i, j int) bool {
		a, _ := strconv.ParseInt(strings.TrimSpace(keys[i]), 10, 64)
		b, _ := strconv.ParseInt(strings.TrimSpace(keys[j]), 10, 64)
		if a != b {
			return a < b
		}
		return keys[i] < keys[j]
	})
	return keys
}
