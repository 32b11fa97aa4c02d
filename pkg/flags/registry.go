package flags

import (
	"fmt"

	json "github.com/goccy/go-json"
)

// Entry describes one rendered flags container for the companion script.
// Values holds the JSON encoded option list, matching what the script parses.
type Entry struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Values string `json:"values"`
}

// Entries is the registry collected during one render pass.
type Entries []Entry

// NewEntry encodes options into a registry entry.
func NewEntry(id, name string, options []Option) (Entry, error) {
	if options == nil {
		options = []Option{}
	}
	payload, err := json.Marshal(options)
	if err != nil {
		return Entry{}, fmt.Errorf("flags: encode options for %q: %w", id, err)
	}
	return Entry{ID: id, Name: name, Values: string(payload)}, nil
}

// Options decodes the option list carried by the entry.
func (e Entry) Options() ([]Option, error) {
	var out []Option
	if err := json.Unmarshal([]byte(e.Values), &out); err != nil {
		return nil, fmt.Errorf("flags: decode options for %q: %w", e.ID, err)
	}
	return out, nil
}

// JSON serializes the registry. An empty registry encodes as [].
func (e Entries) JSON() (string, error) {
	if e == nil {
		e = Entries{}
	}
	payload, err := json.Marshal(e)
	if err != nil {
		return "", fmt.Errorf("flags: encode registry: %w", err)
	}
	return string(payload), nil
}
