package template

import (
	"io"
)

// TemplateRenderer is the seam the companion script builder renders through.
// RenderTemplate returns the rendered string and also copies it to any writers.
type TemplateRenderer interface {
	RenderTemplate(name string, data any, out ...io.Writer) (string, error)
}
