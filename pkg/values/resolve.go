package values

import "github.com/goliatone/go-formbuilder/pkg/model"

// Effective is the render-time state of one field after external values have
// been applied. The stored spec is never touched.
type Effective struct {
	Value    string
	Checked  bool
	Selected map[string]bool
	// Populated is true when an external entry was found and applied.
	Populated bool
}

// IsSelected reports whether the option key is selected or checked.
func (e Effective) IsSelected(key string) bool {
	return e.Selected[key]
}

// Resolve applies the population rules to spec. Lookup goes by name first,
// then by the lower-case maps_to key.
func Resolve(spec model.FieldSpec, src Source) Effective {
	eff := Effective{Value: spec.Value, Checked: spec.Checked}

	var (
		external []string
		found    bool
	)
	if spec.RequestPopulate && src != nil {
		external, found = lookup(spec, src)
	}

	switch {
	case spec.Type.IsSelect():
		eff.Selected = make(map[string]bool, len(spec.Options))
		if found && len(external) > 0 {
			eff.Populated = true
			eff.Value = external[0]
			for _, opt := range spec.Options {
				eff.Selected[opt.Value] = opt.Value == external[0]
			}
			return eff
		}
		for _, opt := range spec.Options {
			eff.Selected[opt.Value] = spec.Selected != "" && opt.Value == spec.Selected
		}
		return eff

	case spec.Type.IsChoice() && spec.HasOptions():
		eff.Selected = make(map[string]bool, len(spec.Options))
		if found {
			eff.Populated = true
			set := make(map[string]struct{}, len(external))
			for _, v := range external {
				set[v] = struct{}{}
			}
			for _, opt := range spec.Options {
				_, ok := set[opt.Value]
				eff.Selected[opt.Value] = ok
			}
			return eff
		}
		for _, opt := range spec.Options {
			eff.Selected[opt.Value] = spec.Selected != "" && opt.Value == spec.Selected
		}
		return eff

	case spec.Type.IsChoice():
		if found {
			eff.Populated = true
			eff.Checked = true
		}
		return eff

	case spec.Type.IsTextLike():
		if found && len(external) > 0 {
			eff.Populated = true
			eff.Value = external[0]
		}
		return eff
	}
	return eff
}

func lookup(spec model.FieldSpec, src Source) ([]string, bool) {
	if spec.Name != "" {
		if vals, ok := src.Lookup(spec.Name); ok {
			return vals, true
		}
	}
	if spec.MapsTo != "" {
		if vals, ok := src.Lookup(spec.MapsTo); ok {
			return vals, true
		}
	}
	return nil, false
}
