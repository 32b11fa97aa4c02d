// Package template defines the template engine contract used to render the
// companion script, with a pongo2 implementation in the gotemplate package.
package template
