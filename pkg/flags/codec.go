// Package flags implements the bitmask codec behind the "flags" field type.
// A flags field persists one non-negative integer; every option contributes
// its bit value when active.
package flags

import (
	"strconv"
	"strings"

	"github.com/goliatone/go-formbuilder/pkg/model"
)

// Option is one bit of a flags field.
type Option struct {
	Value   int64  `json:"value"`
	Caption string `json:"caption"`
}

var _ model.OptionSource = Option{}

// AsOption lets a []Option be passed straight to a field's options.
func (o Option) AsOption() model.Option {
	return model.Option{Value: strconv.FormatInt(o.Value, 10), Label: o.Caption}
}

// Active reports whether bit is set in value.
func Active(value, bit int64) bool {
	return value&bit != 0
}

// Decode returns the options active in value, in option order.
func Decode(value int64, options []Option) []Option {
	var active []Option
	for _, opt := range options {
		if Active(value, opt.Value) {
			active = append(active, opt)
		}
	}
	return active
}

// Encode sums the bit values of the checked options. For disjoint powers of
// two this equals their bitwise OR.
func Encode(checked []Option) int64 {
	var total int64
	for _, opt := range checked {
		total += opt.Value
	}
	return total
}

// IsDisjoint reports whether every option carries a distinct power of two.
func IsDisjoint(options []Option) bool {
	var seen int64
	for _, opt := range options {
		if opt.Value <= 0 || opt.Value&(opt.Value-1) != 0 {
			return false
		}
		if seen&opt.Value != 0 {
			return false
		}
		seen |= opt.Value
	}
	return true
}

// FromOptions converts a field's option list into flag options. Keys that are
// not positive integers are dropped.
func FromOptions(options model.Options) []Option {
	out := make([]Option, 0, len(options))
	for _, opt := range options {
		bit, err := strconv.ParseInt(strings.TrimSpace(opt.Value), 10, 64)
		if err != nil || bit <= 0 {
			continue
		}
		out = append(out, Option{Value: bit, Caption: opt.Label})
	}
	return out
}

// ParseValue reads a persisted flags value. Empty or malformed input is zero.
func ParseValue(raw string) int64 {
	value, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || value < 0 {
		return 0
	}
	return value
}
