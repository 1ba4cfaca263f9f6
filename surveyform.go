package surveyform

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-surveyform/pkg/avatar"
	"github.com/goliatone/go-surveyform/pkg/form"
	"github.com/goliatone/go-surveyform/pkg/labels"
	"github.com/goliatone/go-surveyform/pkg/render"
	"github.com/goliatone/go-surveyform/pkg/renderers/card"
	"github.com/goliatone/go-surveyform/pkg/renderers/text"
	"github.com/goliatone/go-surveyform/pkg/renderers/tui"
)

// Snapshot aliases form.Snapshot for callers that only import the root
// package.
type Snapshot = form.Snapshot

// Labels aliases the resolved display strings.
type Labels = labels.Labels

// AvatarReference aliases avatar.Reference.
type AvatarReference = avatar.Reference

// RenderOptions describes per-call overrides passed to renderers.
type RenderOptions = render.RenderOptions

// ErrNameRequired is returned by Summarize when the name is blank.
var ErrNameRequired = errors.New("surveyform: name is required")

// Input carries the values of a scripted (non-interactive) submission.
// A nil Age keeps the controller's current age; out of range values, zero
// included, are clamped.
type Input struct {
	Name       string
	Age        *float64
	Gender     string
	Subscribed bool
	Avatar     *avatar.Reference
}

// Age returns a pointer to v for Input.Age.
func Age(v float64) *float64 {
	return &v
}

// ControllerConfig selects labels for NewController.
type ControllerConfig struct {
	Locale     string
	Translator labels.Translator
	GenderKeys []string
}

// NewController resolves labels for cfg.Locale (bundled catalog when no
// translator is given) and builds a form controller over them.
func NewController(cfg ControllerConfig, options ...form.Option) (*form.Controller, error) {
	translator := cfg.Translator
	if translator == nil {
		catalog, err := labels.Default()
		if err != nil {
			return nil, fmt.Errorf("surveyform: load catalog: %w", err)
		}
		translator = catalog
	}
	l := labels.Resolve(translator, cfg.Locale, labels.ResolveOptions{GenderKeys: cfg.GenderKeys})
	return form.New(l, options...)
}

// NewSession exposes the terminal session constructor from the top-level
// module.
func NewSession(ctrl *form.Controller, options ...tui.Option) (*tui.Session, error) {
	return tui.NewSession(ctrl, options...)
}

// Fill applies in to ctrl. A nil Age keeps the current age and an empty
// Gender keeps the current selection. Gender matches labels
// case-insensitively.
func Fill(ctrl *form.Controller, in Input) error {
	ctrl.SetName(in.Name)
	if in.Age != nil {
		ctrl.SetAge(*in.Age)
	}
	if gender := strings.TrimSpace(in.Gender); gender != "" {
		if err := ctrl.SetGender(matchGender(ctrl.Labels(), gender)); err != nil {
			return fmt.Errorf("surveyform: gender %q: %w", gender, err)
		}
	}
	ctrl.SetSubscribed(in.Subscribed)
	ctrl.SetAvatar(in.Avatar)
	return nil
}

// Summarize fills a fresh controller for locale and submits it, returning the
// formatted summary.
func Summarize(locale string, in Input) (string, error) {
	ctrl, err := NewController(ControllerConfig{Locale: locale})
	if err != nil {
		return "", err
	}
	if err := Fill(ctrl, in); err != nil {
		return "", err
	}
	summary, ok := ctrl.Submit()
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrNameRequired, ctrl.NameError())
	}
	return summary, nil
}

// NewRegistry registers the built-in renderers: text (default), json and
// html.
func NewRegistry(cardOptions ...card.Option) (*render.Registry, error) {
	registry := render.NewRegistry()
	for _, format := range []text.Format{text.FormatText, text.FormatJSON} {
		r, err := text.New(format)
		if err != nil {
			return nil, err
		}
		if err := registry.Register(r); err != nil {
			return nil, err
		}
	}
	html, err := card.New(cardOptions...)
	if err != nil {
		return nil, err
	}
	if err := registry.Register(html); err != nil {
		return nil, err
	}
	return registry, nil
}

// Render renders snapshot with the named renderer from registry.
func Render(ctx context.Context, registry *render.Registry, name string, snapshot form.Snapshot, opts render.RenderOptions) ([]byte, error) {
	renderer, err := registry.Get(name)
	if err != nil {
		return nil, err
	}
	return renderer.Render(ctx, snapshot, opts)
}

func matchGender(l labels.Labels, value string) string {
	for _, option := range l.GenderOptions {
		if strings.EqualFold(option, value) {
			return option
		}
	}
	return value
}
