package render

import theme "github.com/goliatone/go-theme"

// RenderOptions carry per-call data that renderers can use without touching
// the controller.
type RenderOptions struct {
	// Title overrides the heading some renderers print above the summary.
	// Defaults to the snapshot's localized title.
	Title string
	// RequireSummary makes renderers fail with ErrNoSummary when the snapshot
	// has not been submitted yet instead of printing the empty-state message.
	RequireSummary bool
	// Theme carries the resolved theme (tokens and CSS variables) supplied by
	// the presentation layer. Nil means unthemed output.
	Theme *theme.RendererConfig
}
