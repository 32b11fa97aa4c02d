// Package model defines the field descriptors consumed by the form renderer.
// A FieldSpec always carries the full default attribute table; callers build
// one through Normalize, which overlays a permissive Attributes bag onto
// Defaults(). Option lists are ordered and the order is the display order.
// Unknown attributes are preserved in FieldSpec.Extra and never interpreted.
package model
