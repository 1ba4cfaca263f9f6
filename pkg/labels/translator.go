package labels

import (
	"errors"
	"strings"
)

var (
	// ErrMissingTranslator is reported to MissingTranslationHandler when no
	// translator was configured.
	ErrMissingTranslator = errors.New("labels: translator is nil")
	// ErrMissingTranslation signals that no locale in the fallback chain
	// defines the requested key.
	ErrMissingTranslation = errors.New("labels: missing translation")
)

// Translator resolves a message key for the given locale. Optional args are
// applied to the message as fmt verbs.
type Translator interface {
	Translate(locale, key string, args ...any) (string, error)
}

// TranslatorFunc adapts a function into a Translator.
type TranslatorFunc func(locale, key string, args ...any) (string, error)

// Translate implements Translator.
func (fn TranslatorFunc) Translate(locale, key string, args ...any) (string, error) {
	return fn(locale, key, args...)
}

// MissingTranslationHandler produces the string used when a lookup fails.
type MissingTranslationHandler func(locale, key string, args []any, err error) string

func missingTranslationDefault(_ string, key string, args []any, _ error) string {
	for _, arg := range args {
		hints, ok := arg.(map[string]any)
		if !ok {
			continue
		}
		if fallback, ok := hints["default"].(string); ok && strings.TrimSpace(fallback) != "" {
			return fallback
		}
	}
	return key
}

func translate(locale, key, fallback string, t Translator, onMissing MissingTranslationHandler) string {
	key = strings.TrimSpace(key)
	if key == "" {
		return fallback
	}
	if onMissing == nil {
		onMissing = missingTranslationDefault
	}

	hints := []any{map[string]any{"default": fallback}}
	if t == nil {
		return onMissing(locale, key, hints, ErrMissingTranslator)
	}

	result, err := t.Translate(locale, key)
	if err == nil && strings.TrimSpace(result) != "" {
		return result
	}
	if err == nil {
		err = ErrMissingTranslation
	}
	return onMissing(locale, key, hints, err)
}
