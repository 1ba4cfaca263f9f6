package render

import (
	"errors"
	"strings"

	"github.com/goliatone/go-surveyform/pkg/form"
)

var (
	// ErrNoSummary is returned when a renderer requires a submitted snapshot.
	ErrNoSummary = errors.New("render: form has not been submitted")
	// ErrRendererRequired is returned when registering a nil renderer.
	ErrRendererRequired = errors.New("render: renderer is required")
)

// CheckSummary enforces opts.RequireSummary for snapshot.
func CheckSummary(snapshot form.Snapshot, opts RenderOptions) error {
	if opts.RequireSummary && !snapshot.HasSummary() {
		return ErrNoSummary
	}
	return nil
}

// ResolveTitle returns the explicit title or the localized default.
func ResolveTitle(snapshot form.Snapshot, opts RenderOptions) string {
	if title := strings.TrimSpace(opts.Title); title != "" {
		return title
	}
	return snapshot.Labels.Title
}
