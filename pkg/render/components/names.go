package components

// Canonical component names used by the renderer and default registry.
const (
	NameInput    = "input"
	NameTextarea = "textarea"
	NameSelect   = "select"
	NameFlags    = "flags"
	NameChoice   = "choice"
	NameHTML     = "html"
	NameTitle    = "title"
)

// ComponentKey is the Extra attribute that routes a field to a custom
// component instead of the one derived from its type.
const ComponentKey = "component"
