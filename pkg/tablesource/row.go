package tablesource

import (
	"sort"
	"strconv"
	"strings"
)

// Row is one record with case-insensitive column access.
type Row map[string]string

// Rows is an ordered record set.
type Rows []Row

// NewRow lower-cases the column names of raw.
func NewRow(raw map[string]string) Row {
	row := make(Row, len(raw))
	for key, value := range raw {
		row[strings.ToLower(key)] = value
	}
	return row
}

// Get returns the column value, or "" when absent.
func (r Row) Get(column string) string {
	return r[strings.ToLower(column)]
}

// First returns the value of the first column present in the row.
func (r Row) First(columns ...string) (string, bool) {
	for _, column := range columns {
		if v, ok := r[strings.ToLower(column)]; ok {
			return v, true
		}
	}
	return "", false
}

// Bool treats "1" and "true" as true.
func (r Row) Bool(column string) bool {
	switch strings.ToLower(strings.TrimSpace(r.Get(column))) {
	case "1", "true":
		return true
	default:
		return false
	}
}

// Int parses the column as an integer, returning false on failure.
func (r Row) Int(column string) (int64, bool) {
	v, err := strconv.ParseInt(strings.TrimSpace(r.Get(column)), 10, 64)
	return v, err == nil
}

// SortBy orders rows ascending by column. Numeric values compare as numbers
// and sort before non-numeric ones; ties keep their original order.
func (rs Rows) SortBy(column string) {
	sort.SliceStable(rs, func(i, j int) bool {
		a, aok := rs[i].Int(column)
		b, bok := rs[j].Int(column)
		switch {
		case aok && bok:
			return a < b
		case aok != bok:
			return aok
		default:
			return rs[i].Get(column) < rs[j].Get(column)
		}
	})
}
