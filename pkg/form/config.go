package form

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/goliatone/go-formbuilder/pkg/model"
)

const (
	MethodPost = "post"
	MethodGet  = "get"

	EnctypeURLEncoded = "application/x-www-form-urlencoded"
	EnctypeMultipart  = "multipart/form-data"

	MarkupHTML  = "html"
	MarkupXHTML = "xhtml"
)

// Config holds the form-level settings. Mutate it through Set or
// SetAttribute so every value stays inside its allowed set.
type Config struct {
	Action  string
	Method  string
	Enctype string
	Markup  string
	Class   model.ClassList
	ID      string

	Novalidate  bool
	AddHoneypot bool
	FormElement bool
	AddSubmit   bool
	// AddNonce is false, true, or a string naming the token action.
	AddNonce any
}

var (
	idPattern    = regexp.MustCompile(`^[A-Za-z0-9_-]*$`)
	classPattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)
)

var enctypeAliases = map[string]string{
	"urlencoded":      EnctypeURLEncoded,
	EnctypeURLEncoded: EnctypeURLEncoded,
	"multipart":       EnctypeMultipart,
	EnctypeMultipart:  EnctypeMultipart,
}

// DefaultConfig returns the constructor defaults.
func DefaultConfig(action, id string) Config {
	return Config{
		Action:      action,
		Method:      MethodPost,
		Enctype:     EnctypeURLEncoded,
		Markup:      MarkupHTML,
		ID:          id,
		AddHoneypot: true,
		FormElement: true,
		AddSubmit:   true,
		AddNonce:    false,
	}
}

// Clone returns an independent copy.
func (c Config) Clone() Config {
	out := c
	if c.Class != nil {
		out.Class = append(model.ClassList(nil), c.Class...)
	}
	return out
}

// XHTML reports whether void elements self-close.
func (c Config) XHTML() bool {
	return c.Markup == MarkupXHTML
}

// NonceAction returns the token action and whether a nonce was requested. A
// bare true uses the form action.
func (c Config) NonceAction() (string, bool) {
	switch v := c.AddNonce.(type) {
	case bool:
		return c.Action, v
	case string:
		if v == "" {
			return "", false
		}
		return v, true
	default:
		return "", false
	}
}

// SetAttribute applies one setting and reports whether it was accepted. The
// config is left untouched on rejection.
func (c *Config) SetAttribute(key string, value any) bool {
	return c.Set(key, value) == nil
}

// Set applies one setting. Unknown keys and invalid values return an error
// wrapping ErrRejectedAttribute and leave the config untouched.
func (c *Config) Set(key string, value any) error {
	key = strings.ToLower(strings.TrimSpace(key))
	switch key {
	case "action":
		s, ok := value.(string)
		if !ok {
			return reject(key, value)
		}
		c.Action = s
	case "method":
		s, ok := value.(string)
		if !ok {
			return reject(key, value)
		}
		switch m := strings.ToLower(s); m {
		case MethodPost, MethodGet:
			c.Method = m
		default:
			return reject(key, value)
		}
	case "enctype":
		s, ok := value.(string)
		if !ok {
			return reject(key, value)
		}
		enc, ok := enctypeAliases[strings.ToLower(s)]
		if !ok {
			return reject(key, value)
		}
		c.Enctype = enc
	case "markup":
		s, ok := value.(string)
		if !ok {
			return reject(key, value)
		}
		switch m := strings.ToLower(s); m {
		case MarkupHTML, MarkupXHTML:
			c.Markup = m
		default:
			return reject(key, value)
		}
	case "class":
		classes, ok := parseClasses(value)
		if !ok {
			return reject(key, value)
		}
		c.Class = classes
	case "id":
		s, ok := value.(string)
		if !ok || !idPattern.MatchString(s) {
			return reject(key, value)
		}
		c.ID = s
	case "novalidate", "add_honeypot", "form_element", "add_submit":
		b, ok := value.(bool)
		if !ok {
			return reject(key, value)
		}
		switch key {
		case "novalidate":
			c.Novalidate = b
		case "add_honeypot":
			c.AddHoneypot = b
		case "form_element":
			c.FormElement = b
		case "add_submit":
			c.AddSubmit = b
		}
	case "add_nonce":
		switch value.(type) {
		case string, bool:
			c.AddNonce = value
		default:
			return reject(key, value)
		}
	default:
		return fmt.Errorf("form: unknown attribute %q: %w", key, ErrRejectedAttribute)
	}
	return nil
}

func reject(key string, value any) error {
	return fmt.Errorf("form: invalid value %v for %q: %w", value, key, ErrRejectedAttribute)
}

func parseClasses(value any) (model.ClassList, bool) {
	var tokens []string
	switch v := value.(type) {
	case string:
		tokens = strings.Fields(v)
	case []string:
		tokens = v
	case model.ClassList:
		tokens = v
	case []any:
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, false
			}
			tokens = append(tokens, strings.Fields(s)...)
		}
	default:
		return nil, false
	}
	out := make(model.ClassList, 0, len(tokens))
	for _, token := range tokens {
		if !classPattern.MatchString(token) {
			return nil, false
		}
		out = append(out, token)
	}
	return out, true
}

// keys lists the settings in the order the constructor applies them.
var keys = []string{
	"action", "method", "enctype", "markup", "class", "id",
	"novalidate", "add_honeypot", "form_element", "add_submit", "add_nonce",
}
