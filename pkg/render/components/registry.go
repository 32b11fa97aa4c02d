package components

import (
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/goliatone/go-formbuilder/pkg/flags"
	"github.com/goliatone/go-formbuilder/pkg/form"
	"github.com/goliatone/go-formbuilder/pkg/markup"
	"github.com/goliatone/go-formbuilder/pkg/model"
	"github.com/goliatone/go-formbuilder/pkg/values"
)

// Renderer builds the control markup for one field. It receives a copy of the
// stored spec and the resolved state and must not retain either.
type Renderer func(field model.FieldSpec, data Data) (Output, error)

// Data carries per-field render state.
type Data struct {
	Effective values.Effective
	Form      form.Config
}

// Output is what a component contributes. The renderer adds label and wrapper
// around it.
type Output struct {
	Control []markup.Node
	// Header replaces the generic field label, e.g. an option group caption.
	Header []markup.Node
	// Flag is set by components that need the companion script to expand
	// them client side.
	Flag *flags.Entry
}

// Descriptor bundles the renderer implementation with its registered name.
type Descriptor struct {
	Name     string
	Renderer Renderer
}

// Registry tracks component descriptors keyed by name. Callers can register new
// components or override defaults.
type Registry struct {
	mu         sync.RWMutex
	components map[string]Descriptor
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{
		components: make(map[string]Descriptor),
	}
}

// Clone returns a copy of the registry to allow isolated mutations.
func (r *Registry) Clone() *Registry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	cloned := New()
	for name, descriptor := range r.components {
		cloned.components[name] = descriptor
	}
	return cloned
}

// Register associates a descriptor with the provided name. Existing entries are
// replaced.
func (r *Registry) Register(name string, descriptor Descriptor) error {
	if name = normalize(name); name == "" {
		return fmt.Errorf("components: component name is required")
	}
	if descriptor.Renderer == nil {
		return fmt.Errorf("components: renderer for %q is nil", name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	descriptor.Name = name
	r.components[name] = descriptor
	return nil
}

// MustRegister mirrors Register but panics on error, simplifying default registry
// setup.
func (r *Registry) MustRegister(name string, descriptor Descriptor) {
	if err := r.Register(name, descriptor); err != nil {
		panic(err)
	}
}

// Descriptor fetches a descriptor by name.
func (r *Registry) Descriptor(name string) (Descriptor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	descriptor, ok := r.components[normalize(name)]
	return descriptor, ok
}

// Names returns a sorted slice of registered component names.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.components))
	for name := range r.components {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// ComponentFor returns the component name a field renders with.
func ComponentFor(field model.FieldSpec) string {
	if name, ok := field.Extra[ComponentKey].(string); ok && strings.TrimSpace(name) != "" {
		return normalize(name)
	}
	switch {
	case field.Type == model.FieldTypeHTML:
		return NameHTML
	case field.Type == model.FieldTypeTitle:
		return NameTitle
	case field.Type == model.FieldTypeTextarea:
		return NameTextarea
	case field.Type.IsSelect():
		return NameSelect
	case field.Type == model.FieldTypeFlags:
		return NameFlags
	case field.Type.IsChoice() && field.HasOptions():
		return NameChoice
	default:
		return NameInput
	}
}

func normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
