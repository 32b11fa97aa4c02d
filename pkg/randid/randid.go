// Package randid generates the random element identifiers used for forms and
// the companion script scope. Identifiers never start with a digit, so they are
// valid both as HTML ids and as JavaScript property names.
package randid

import (
	"math/rand/v2"
	"strings"
)

// Alphabet omits vowels and "k" to avoid accidental words.
const Alphabet = "0123456789bcdfghjlmnpqrstvwxyzBCDFGHJLMNPQRSTVWXYZ"

// DefaultLength is the identifier length used when none is configured.
const DefaultLength = 20

// firstDigits counts the leading digits in Alphabet.
const firstDigits = 10

// Generator produces identifiers.
type Generator interface {
	ID() string
}

// Func adapts a plain function to Generator.
type Func func() string

// ID implements Generator.
func (f Func) ID() string { return f() }

// Static always returns the same identifier. Useful for deterministic output.
type Static string

// ID implements Generator.
func (s Static) ID() string { return string(s) }

// Random draws identifiers from Alphabet.
type Random struct {
	Length int
}

// Default returns a Random generator with DefaultLength.
func Default() Random {
	return Random{Length: DefaultLength}
}

// ID implements Generator.
func (r Random) ID() string {
	return New(r.Length)
}

// New returns an identifier of n characters. Values below one use
// DefaultLength.
func New(n int) string {
	if n < 1 {
		n = DefaultLength
	}
	var b strings.Builder
	b.Grow(n)
	b.WriteByte(Alphabet[firstDigits+rand.IntN(len(Alphabet)-firstDigits)])
	for i := 1; i < n; i++ {
		b.WriteByte(Alphabet[rand.IntN(len(Alphabet))])
	}
	return b.String()
}
