package render

import (
	"strings"

	"github.com/goliatone/go-surveyform/pkg/labels"
)

// TemplateLabelConfig configures TemplateLabelFuncs.
type TemplateLabelConfig struct {
	// FuncName customizes the lookup helper name (defaults to "translate").
	FuncName string
	// OnMissing controls the string returned when a translation is missing.
	OnMissing labels.MissingTranslationHandler
}

// TemplateLabelFuncs returns helpers for template engines:
//
//	translate(key, ...args) string
//	age_label(age) string
//	subscription(flag) string
//
// translate resolves keys against t for the locale of l, falling back to
// cfg.OnMissing (or the key itself).
func TemplateLabelFuncs(t labels.Translator, l labels.Labels, cfg TemplateLabelConfig) map[string]any {
	translateName := strings.TrimSpace(cfg.FuncName)
	if translateName == "" {
		translateName = "translate"
	}
	onMissing := cfg.OnMissing
	if onMissing == nil {
		onMissing = func(_ string, key string, _ []any, _ error) string { return key }
	}
	locale := l.Locale

	return map[string]any{
		translateName: func(key string, params ...any) string {
			key = strings.TrimSpace(key)
			if key == "" {
				return ""
			}
			if t == nil {
				return onMissing(locale, key, params, labels.ErrMissingTranslator)
			}
			msg, err := t.Translate(locale, key, params...)
			if err != nil || strings.TrimSpace(msg) == "" {
				return onMissing(locale, key, params, err)
			}
			return msg
		},
		"age_label": func(age int) string {
			return l.AgeLabel(age)
		},
		"subscription": func(subscribed bool) string {
			return l.SubscriptionPhrase(subscribed)
		},
		"current_locale": func() string {
			return locale
		},
	}
}
