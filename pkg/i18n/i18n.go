// Package i18n provides a go-i18n backed translator for the renderer's
// synthesized captions. English and Spanish messages are embedded; callers can
// load more TOML, YAML or JSON message files.
package i18n

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sync"

	"github.com/BurntSushi/toml"
	goi18n "github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

//go:embed locales/*.toml
var embedded embed.FS

// Translator resolves message ids through a go-i18n bundle. Localizers are
// cached per locale.
type Translator struct {
	bundle *goi18n.Bundle

	mu         sync.Mutex
	localizers map[string]*goi18n.Localizer
}

// New builds a translator seeded with the embedded messages.
func New() (*Translator, error) {
	bundle := goi18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)
	bundle.RegisterUnmarshalFunc("yaml", yaml.Unmarshal)

	entries, err := fs.ReadDir(embedded, "locales")
	if err != nil {
		return nil, fmt.Errorf("i18n: read embedded locales: %w", err)
	}
	for _, entry := range entries {
		name := path.Join("locales", entry.Name())
		data, err := embedded.ReadFile(name)
		if err != nil {
			return nil, fmt.Errorf("i18n: read %s: %w", name, err)
		}
		if _, err := bundle.ParseMessageFileBytes(data, entry.Name()); err != nil {
			return nil, fmt.Errorf("i18n: parse %s: %w", name, err)
		}
	}

	return &Translator{
		bundle:     bundle,
		localizers: make(map[string]*goi18n.Localizer),
	}, nil
}

// LoadMessageFile adds messages from a file named like "active.fr.toml".
func (t *Translator) LoadMessageFile(path string) error {
	if _, err := t.bundle.LoadMessageFile(path); err != nil {
		return fmt.Errorf("i18n: load %s: %w", path, err)
	}
	t.reset()
	return nil
}

// AddMessages registers messages for a locale at runtime.
func (t *Translator) AddMessages(locale string, messages map[string]string) error {
	tag, err := language.Parse(locale)
	if err != nil {
		return fmt.Errorf("i18n: parse locale %q: %w", locale, err)
	}
	list := make([]*goi18n.Message, 0, len(messages))
	for id, other := range messages {
		list = append(list, &goi18n.Message{ID: id, Other: other})
	}
	if err := t.bundle.AddMessages(tag, list...); err != nil {
		return fmt.Errorf("i18n: add messages: %w", err)
	}
	t.reset()
	return nil
}

// Languages lists the locales with messages.
func (t *Translator) Languages() []string {
	tags := t.bundle.LanguageTags()
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		out = append(out, tag.String())
	}
	return out
}

// Translate implements render.Translator. params may hold one
// map[string]any used as template data.
func (t *Translator) Translate(locale, key string, params ...any) (string, error) {
	cfg := &goi18n.LocalizeConfig{MessageID: key}
	if len(params) > 0 {
		if data, ok := params[0].(map[string]any); ok {
			cfg.TemplateData = data
		}
	}
	msg, err := t.localizer(locale).Localize(cfg)
	if err != nil {
		return "", fmt.Errorf("i18n: %s/%s: %w", locale, key, err)
	}
	return msg, nil
}

func (t *Translator) localizer(locale string) *goi18n.Localizer {
	t.mu.Lock()
	defer t.mu.Unlock()
	if l, ok := t.localizers[locale]; ok {
		return l
	}
	l := goi18n.NewLocalizer(t.bundle, locale)
	t.localizers[locale] = l
	return l
}

func (t *Translator) reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.localizers = make(map[string]*goi18n.Localizer)
}
