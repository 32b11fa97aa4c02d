package form

import (
	"go.uber.org/zap"

	"github.com/goliatone/go-formbuilder/pkg/randid"
)

// Option customises a Form at construction.
type Option func(*Form)

// WithLogger reports rejected settings and dropped bulk input.
func WithLogger(logger *zap.Logger) Option {
	return func(f *Form) {
		if logger != nil {
			f.logger = logger
		}
	}
}

// WithIDGenerator replaces the random form id source.
func WithIDGenerator(gen randid.Generator) Option {
	return func(f *Form) {
		if gen != nil {
			f.ids = gen
		}
	}
}
