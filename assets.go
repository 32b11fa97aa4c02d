package formbuilder

import (
	"io/fs"

	"github.com/goliatone/go-formbuilder/pkg/script"
)

// ScriptTemplatesFS exposes the embedded companion script templates so
// applications can serve or override them.
func ScriptTemplatesFS() fs.FS {
	return script.TemplatesFS()
}
