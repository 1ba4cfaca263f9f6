// Package text renders form snapshots as plain text or JSON.
package text

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/goliatone/go-surveyform/pkg/form"
	"github.com/goliatone/go-surveyform/pkg/render"
)

// Format controls how a snapshot is serialized.
type Format string

const (
	// FormatText prints the title, summary and avatar line.
	FormatText Format = "text"
	// FormatJSON emits the snapshot as indented JSON.
	FormatJSON Format = "json"
)

// Renderer implements render.Renderer for text and JSON output.
type Renderer struct {
	format Format
}

// New constructs a renderer for format (text when empty).
func New(format Format) (*Renderer, error) {
	switch format {
	case "":
		format = FormatText
	case FormatText, FormatJSON:
	default:
		return nil, fmt.Errorf("text: unsupported format %q", format)
	}
	return &Renderer{format: format}, nil
}

// Name reports the renderer identifier.
func (r *Renderer) Name() string {
	return string(r.format)
}

// ContentType reports the media type produced by Render.
func (r *Renderer) ContentType() string {
	if r.format == FormatJSON {
		return "application/json"
	}
	return "text/plain; charset=utf-8"
}

// Render serializes snapshot.
func (r *Renderer) Render(ctx context.Context, snapshot form.Snapshot, opts render.RenderOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := render.CheckSummary(snapshot, opts); err != nil {
		return nil, err
	}

	if r.format == FormatJSON {
		return renderJSON(snapshot)
	}
	return []byte(renderText(snapshot, opts)), nil
}

type jsonPayload struct {
	form.Snapshot
	Locale   string `json:"locale"`
	AgeLabel string `json:"ageLabel"`
}

func renderJSON(snapshot form.Snapshot) ([]byte, error) {
	payload, err := json.MarshalIndent(jsonPayload{
		Snapshot: snapshot,
		Locale:   snapshot.Labels.Locale,
		AgeLabel: snapshot.AgeLabel(),
	}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("text: marshal snapshot: %w", err)
	}
	return append(payload, '\n'), nil
}

func renderText(snapshot form.Snapshot, opts render.RenderOptions) string {
	var b strings.Builder
	if title := render.ResolveTitle(snapshot, opts); title != "" {
		b.WriteString(title)
		b.WriteByte('\n')
		b.WriteString(strings.Repeat("=", len([]rune(title))))
		b.WriteByte('\n')
	}

	if snapshot.HasSummary() {
		b.WriteString(snapshot.Summary)
	} else {
		b.WriteString(snapshot.Labels.SummaryEmpty)
	}
	b.WriteByte('\n')

	if snapshot.Avatar != nil {
		name := snapshot.Avatar.Name
		if name == "" {
			name = snapshot.Avatar.URI
		}
		fmt.Fprintf(&b, "[%s] %s\n", snapshot.Labels.SelectAvatar, name)
	} else if snapshot.Labels.AvatarNone != "" {
		fmt.Fprintf(&b, "[%s]\n", snapshot.Labels.AvatarNone)
	}
	return b.String()
}
