package render

import (
	"errors"
	"strings"
)

// Message keys for captions the renderer synthesizes.
const (
	KeySubmit   = "formbuilder.submit"
	KeyHoneypot = "formbuilder.honeypot"
	KeyRequired = "formbuilder.required"
)

// LabelKeyAttribute is the Extra attribute naming a translation key for a
// field label. The stored label is the fallback.
const LabelKeyAttribute = "label_key"

var defaultCaptions = map[string]string{
	KeySubmit:   "Submit",
	KeyHoneypot: "Leave blank to submit",
	KeyRequired: "*",
}

// ErrMissingTranslator is passed to the missing handler when no translator is
// configured.
var ErrMissingTranslator = errors.New("render: translator not configured")

// Translator resolves message keys for a locale.
type Translator interface {
	Translate(locale, key string, params ...any) (string, error)
}

// MissingTranslationHandler decides the text used when a key cannot be
// translated. fallback is the caption that would be used otherwise.
type MissingTranslationHandler func(locale, key, fallback string, err error) string

func missingTranslationDefault(_ string, key, fallback string, _ error) string {
	if strings.TrimSpace(fallback) != "" {
		return fallback
	}
	return key
}

func (r *Renderer) translate(locale, key, fallback string) string {
	key = strings.TrimSpace(key)
	if key == "" {
		return fallback
	}
	if r.translator == nil {
		if fallback != "" {
			return fallback
		}
		return r.onMissing(locale, key, fallback, ErrMissingTranslator)
	}
	msg, err := r.translator.Translate(locale, key)
	if err == nil && strings.TrimSpace(msg) != "" {
		return msg
	}
	return r.onMissing(locale, key, fallback, err)
}

func (r *Renderer) caption(locale, key string) string {
	return r.translate(locale, key, defaultCaptions[key])
}
