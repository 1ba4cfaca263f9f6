// Package card renders a submitted survey as an HTML profile card using the
// pongo2 template engine. SVG avatars are sanitized and inlined; raster
// avatars are linked by URI; without an avatar the name initials are shown.
package card

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strconv"
	"strings"

	theme "github.com/goliatone/go-theme"
	"go.uber.org/zap"

	"github.com/goliatone/go-surveyform/pkg/avatar"
	"github.com/goliatone/go-surveyform/pkg/form"
	"github.com/goliatone/go-surveyform/pkg/labels"
	"github.com/goliatone/go-surveyform/pkg/render"
	"github.com/goliatone/go-surveyform/pkg/render/template"
	"github.com/goliatone/go-surveyform/pkg/render/template/gotemplate"
)

const templateName = "card"

//go:embed templates/*.tpl
var embeddedTemplates embed.FS

// Option configures the card renderer.
type Option func(*Renderer)

// WithTemplateRenderer swaps the template engine.
func WithTemplateRenderer(engine template.TemplateRenderer) Option {
	return func(r *Renderer) {
		if engine != nil {
			r.engine = engine
		}
	}
}

// WithTranslator resolves field captions through t before falling back to
// the snapshot labels.
func WithTranslator(t labels.Translator) Option {
	return func(r *Renderer) {
		r.translator = t
	}
}

// WithLogger routes avatar inlining failures to logger.
func WithLogger(logger *zap.Logger) Option {
	return func(r *Renderer) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// Renderer implements render.Renderer for HTML cards.
type Renderer struct {
	engine     template.TemplateRenderer
	translator labels.Translator
	logger     *zap.Logger
}

// New constructs a card renderer backed by the embedded template.
func New(options ...Option) (*Renderer, error) {
	r := &Renderer{logger: zap.NewNop()}
	for _, opt := range options {
		if opt != nil {
			opt(r)
		}
	}
	if r.engine == nil {
		engine, err := gotemplate.New(gotemplate.WithFS(TemplatesFS()))
		if err != nil {
			return nil, fmt.Errorf("card: template engine: %w", err)
		}
		r.engine = engine
	}
	return r, nil
}

// Name reports the renderer identifier.
func (r *Renderer) Name() string {
	return "html"
}

// ContentType reports the media type produced by Render.
func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Render produces the card. Unsubmitted snapshots fail with
// render.ErrNoSummary.
func (r *Renderer) Render(ctx context.Context, snapshot form.Snapshot, opts render.RenderOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !snapshot.HasSummary() {
		return nil, render.ErrNoSummary
	}

	l := snapshot.Labels
	data := map[string]any{
		"lang":        l.Locale,
		"style":       cssVars(opts.Theme),
		"session":     snapshot.SessionID,
		"title":       render.ResolveTitle(snapshot, opts),
		"summary":     snapshot.Summary,
		"name":        snapshot.Name,
		"age":         strconv.FormatFloat(snapshot.Age, 'f', -1, 64),
		"display_age": snapshot.DisplayAge,
		"gender":      snapshot.Gender,
		"subscribed":  snapshot.Subscribed,
	}
	r.avatarData(snapshot.Avatar, data)

	funcs := render.TemplateLabelFuncs(r.translator, l, render.TemplateLabelConfig{
		OnMissing: func(_ string, key string, _ []any, _ error) string {
			if msg, ok := l.Lookup(key); ok {
				return msg
			}
			return key
		},
	})
	for name, fn := range funcs {
		data[name] = fn
	}

	out, err := r.engine.RenderTemplate(templateName, data)
	if err != nil {
		return nil, fmt.Errorf("card: render: %w", err)
	}
	return []byte(out), nil
}

func (r *Renderer) avatarData(ref *avatar.Reference, data map[string]any) {
	if ref == nil {
		return
	}
	if ref.IsSVG() {
		markup, err := avatar.InlineSVG(ref)
		if err == nil && markup != "" {
			data["avatar_svg"] = markup
			return
		}
		r.logger.Warn("inline svg avatar failed, linking instead", zap.String("uri", ref.URI), zap.Error(err))
	}
	data["avatar_src"] = ref.URI
}

// cssVars turns the theme's CSS variables (or its tokens, when no variables
// were derived) into an inline style declaration.
func cssVars(cfg *theme.RendererConfig) string {
	if cfg == nil {
		return ""
	}
	vars := cfg.CSSVars
	if len(vars) == 0 {
		vars = cfg.Tokens
	}
	if len(vars) == 0 {
		return ""
	}
	keys := make([]string, 0, len(vars))
	for key := range vars {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, key := range keys {
		name := render.CSSVarName(key)
		value := strings.TrimSpace(vars[key])
		if name == "" || value == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "%s: %s;", name, value)
	}
	return b.String()
}

// TemplatesFS exposes the embedded card templates.
func TemplatesFS() fs.FS {
	sub, err := fs.Sub(embeddedTemplates, "templates")
	if err != nil {
		return embeddedTemplates
	}
	return sub
}
