package tablesource_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-formbuilder/pkg/form"
	"github.com/goliatone/go-formbuilder/pkg/model"
	"github.com/goliatone/go-formbuilder/pkg/tablesource"
)

const schema = `
CREATE TABLE fields (
	idform INTEGER NOT NULL,
	orderby INTEGER NOT NULL,
	formAction TEXT,
	formMethod TEXT,
	caption TEXT,
	groupName TEXT,
	mapsTo TEXT,
	controlType TEXT,
	fieldName TEXT,
	iSize TEXT,
	iMaxLength TEXT,
	placeholder TEXT,
	bRequired TEXT,
	validateAs TEXT,
	pattern TEXT,
	valuesListSQL TEXT
);
CREATE TABLE countries (code TEXT, caption TEXT);
CREATE TABLE empty_list (value TEXT, caption TEXT);
CREATE VIEW vwFormBuilder AS SELECT * FROM fields;
`

func openSource(t *testing.T) *tablesource.XormSource {
	t.Helper()

	src, err := tablesource.Open("sqlite3", filepath.Join(t.TempDir(), "forms.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = src.Close() })

	_, err = src.Engine().Exec(schema)
	require.NoError(t, err)

	inserts := []string{
		`INSERT INTO countries VALUES ('es', 'Spain'), ('fr', 'France')`,
		`INSERT INTO fields VALUES (7, 2, '/save', 'POST', 'Country', 'place', 'Country', 'select', 'country', '', '', '', '0', '', '', 'SELECT code AS value, caption FROM empty_list; SELECT code AS value, caption FROM countries ORDER BY code')`,
		`INSERT INTO fields VALUES (7, 1, '/save', 'POST', 'Full name', 'person', 'FullName', 'text', 'full_name', '40', '80', 'Jane Doe', '1', 'alpha', '[a-z ]+', '')`,
		`INSERT INTO fields VALUES (7, 3, '/save', 'POST', 'Notes', 'extra', '', 'textarea', 'notes', '', '', '', '', '', '', '')`,
		`INSERT INTO fields VALUES (8, 1, '/other', 'GET', 'Only', '', '', 'text', 'only', '', '', '', '', '', '', '')`,
	}
	for _, stmt := range inserts {
		_, err := src.Engine().Exec(stmt)
		require.NoError(t, err, stmt)
	}
	return src
}

func TestLoadBuildsFieldsFromView(t *testing.T) {
	src := openSource(t)

	f := form.New("", nil)
	f.LetData(map[string]any{"fullname": "Ada", "country": "fr"})

	require.NoError(t, tablesource.Load(context.Background(), src, 7, f))

	cfg := f.Config()
	assert.Equal(t, "/save", cfg.Action)
	assert.Equal(t, form.MethodPost, cfg.Method)
	assert.Equal(t, form.EnctypeMultipart, cfg.Enctype)

	inputs := f.Inputs()
	require.Len(t, inputs, 3)

	name := inputs[0]
	assert.Equal(t, "full_name", name.Name)
	assert.Equal(t, "Full name", name.Label)
	assert.Equal(t, "Ada", name.Value)
	assert.Equal(t, "fullname", name.MapsTo)
	assert.Equal(t, "person", name.Group)
	assert.Equal(t, "40", name.Size)
	assert.Equal(t, "80", name.MaxLength)
	assert.Equal(t, "Jane Doe", name.Placeholder)
	assert.Equal(t, "alpha", name.ValidateAs)
	assert.Equal(t, "[a-z ]+", name.Pattern)
	assert.True(t, name.Required)
	assert.True(t, name.Autofocus)

	country := inputs[1]
	assert.Equal(t, model.FieldTypeSelect, country.Type)
	assert.Equal(t, "fr", country.Selected)
	assert.False(t, country.Required)
	assert.False(t, country.Autofocus)
	assert.Equal(t, model.Options{{Value: "es", Label: "Spain"}, {Value: "fr", Label: "France"}}, country.Options)

	notes := inputs[2]
	assert.Equal(t, model.FieldTypeTextarea, notes.Type)
	assert.Equal(t, "", notes.Value)
	assert.Empty(t, notes.MapsTo)
}

func TestLoadUnknownForm(t *testing.T) {
	src := openSource(t)

	err := tablesource.Load(context.Background(), src, 99, form.New("", nil))
	assert.True(t, errors.Is(err, tablesource.ErrNoFormRows), "got %v", err)
}

func TestLoadMethodFromRow(t *testing.T) {
	src := openSource(t)

	f := form.New("", nil)
	require.NoError(t, tablesource.Load(context.Background(), src, 8, f))
	assert.Equal(t, form.MethodGet, f.Config().Method)
	assert.Equal(t, "/other", f.Config().Action)
}

func TestNewXormSourceRejectsView(t *testing.T) {
	src := openSource(t)

	_, err := tablesource.NewXormSource(src.Engine(), tablesource.WithView("fields; DROP TABLE fields"))
	assert.ErrorIs(t, err, tablesource.ErrInvalidView)
}

type stubSource struct {
	rows    tablesource.Rows
	results map[string]tablesource.Rows
	queries []string
}

func (s *stubSource) FormRows(context.Context, int64) (tablesource.Rows, error) {
	return s.rows, nil
}

func (s *stubSource) Query(_ context.Context, q string) (tablesource.Rows, error) {
	s.queries = append(s.queries, q)
	return s.results[q], nil
}

func TestOptionsForFirstNonEmptyWins(t *testing.T) {
	ds := &stubSource{results: map[string]tablesource.Rows{
		"b": {tablesource.NewRow(map[string]string{"ID": "1", "Name": "One"})},
		"c": {tablesource.NewRow(map[string]string{"value": "x"})},
	}}

	opts, err := tablesource.OptionsFor(context.Background(), ds, "a; b ;c")
	require.NoError(t, err)
	assert.Equal(t, model.Options{{Value: "1", Label: "One"}}, opts)
	assert.Equal(t, []string{"a", "b"}, ds.queries)
}

func TestOptionsForErrors(t *testing.T) {
	ds := &stubSource{}

	_, err := tablesource.OptionsFor(context.Background(), ds, "  ")
	assert.ErrorIs(t, err, tablesource.ErrEmptyOptionsQuery)

	_, err = tablesource.OptionsFor(context.Background(), ds, "a;b")
	assert.ErrorIs(t, err, tablesource.ErrNoOptionRows)
}

func TestLoadSortsAndSkipsMissingOptions(t *testing.T) {
	ds := &stubSource{rows: tablesource.Rows{
		tablesource.NewRow(map[string]string{"orderby": "10", "caption": "Later", "fieldname": "later", "controltype": "flags", "valueslistsql": "none"}),
		tablesource.NewRow(map[string]string{"orderby": "2", "caption": "First", "fieldname": "first", "formmethod": "get"}),
	}}

	f := form.New("/x", nil)
	require.NoError(t, tablesource.Load(context.Background(), ds, 1, f))

	inputs := f.Inputs()
	require.Len(t, inputs, 2)
	assert.Equal(t, "first", inputs[0].Name)
	assert.True(t, inputs[0].Autofocus)
	assert.Equal(t, model.FieldTypeFlags, inputs[1].Type)
	assert.Empty(t, inputs[1].Options)
	assert.False(t, inputs[1].Autofocus)
}
