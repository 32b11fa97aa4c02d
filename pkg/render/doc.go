// Package render turns a form's settings and field specs into markup. Each
// field is resolved against an explicit value source, dispatched to a
// component by type, then labelled and wrapped. The honeypot, nonce and
// auto-submit controls are synthesized per render and never stored.
package render
