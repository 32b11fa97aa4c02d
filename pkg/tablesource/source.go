// Package tablesource builds forms from rows describing fields, fetched from a
// relational view. The data source is borrowed for the duration of a Load call
// and never retained.
package tablesource

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"xorm.io/xorm"
)

// DefaultView is the view queried for field rows.
const DefaultView = "vwFormBuilder"

var (
	// ErrEmptyOptionsQuery marks an option lookup without any query text.
	ErrEmptyOptionsQuery = errors.New("tablesource: empty options query")
	// ErrNoOptionRows marks an option lookup where every query returned no rows.
	ErrNoOptionRows = errors.New("tablesource: no option rows")
	// ErrNoFormRows marks a form id without any field rows.
	ErrNoFormRows = errors.New("tablesource: no rows for form")
	// ErrInvalidView marks a view name that is not a plain identifier.
	ErrInvalidView = errors.New("tablesource: invalid view name")
)

// DataSource supplies field rows and ad-hoc option queries.
type DataSource interface {
	FormRows(ctx context.Context, formID int64) (Rows, error)
	Query(ctx context.Context, query string) (Rows, error)
}

var viewPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_.]*$`)

// XormSource reads rows through a xorm engine.
type XormSource struct {
	engine *xorm.Engine
	view   string
	owned  bool
}

// SourceOption configures an XormSource.
type SourceOption func(*XormSource)

// WithView overrides DefaultView.
func WithView(view string) SourceOption {
	return func(s *XormSource) {
		s.view = view
	}
}

// NewXormSource wraps an engine the caller owns.
func NewXormSource(engine *xorm.Engine, opts ...SourceOption) (*XormSource, error) {
	if engine == nil {
		return nil, errors.New("tablesource: engine is required")
	}
	s := &XormSource{engine: engine, view: DefaultView}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if !viewPattern.MatchString(s.view) {
		return nil, fmt.Errorf("tablesource: %q: %w", s.view, ErrInvalidView)
	}
	return s, nil
}

// Open connects with driver and dsn. The caller must Close the source.
func Open(driver, dsn string, opts ...SourceOption) (*XormSource, error) {
	engine, err := xorm.NewEngine(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("tablesource: open %s: %w", driver, err)
	}
	s, err := NewXormSource(engine, opts...)
	if err != nil {
		_ = engine.Close()
		return nil, err
	}
	s.owned = true
	return s, nil
}

// Engine exposes the underlying engine.
func (s *XormSource) Engine() *xorm.Engine {
	return s.engine
}

// Close releases the engine when it was opened by Open.
func (s *XormSource) Close() error {
	if !s.owned {
		return nil
	}
	return s.engine.Close()
}

// FormRows implements DataSource.
func (s *XormSource) FormRows(ctx context.Context, formID int64) (Rows, error) {
	query := fmt.Sprintf("SELECT * FROM %s WHERE idform = ? ORDER BY orderby", s.view)
	return s.query(ctx, query, formID)
}

// Query implements DataSource.
func (s *XormSource) Query(ctx context.Context, query string) (Rows, error) {
	return s.query(ctx, query)
}

func (s *XormSource) query(ctx context.Context, query string, args ...any) (Rows, error) {
	session := s.engine.Context(ctx)
	defer session.Close()

	sqlArgs := append([]any{query}, args...)
	raw, err := session.QueryString(sqlArgs...)
	if err != nil {
		return nil, fmt.Errorf("tablesource: query: %w", err)
	}
	rows := make(Rows, 0, len(raw))
	for _, r := range raw {
		rows = append(rows, NewRow(r))
	}
	return rows, nil
}
