package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	theme "github.com/goliatone/go-theme"
	"go.uber.org/zap"

	"github.com/goliatone/go-surveyform/pkg/avatar"
	"github.com/goliatone/go-surveyform/pkg/render"
)

// Theme token keys read by ThemeFromConfig.
const (
	TokenPromptPrefix = "tui.prompt"
	TokenInfoPrefix   = "tui.info"
	TokenErrorPrefix  = "tui.error"
	TokenPromptColor  = "tui.prompt.color"
	TokenInfoColor    = "tui.info.color"
	TokenErrorColor   = "tui.error.color"
)

// Theme captures optional formatting hints the session applies when printing
// messages. Keep minimal to avoid coupling session logic to ANSI specifics.
type Theme struct {
	PromptPrefix string
	InfoPrefix   string
	ErrorPrefix  string

	// Colors apply to the prefixes only; any lipgloss color string works.
	PromptColor string
	InfoColor   string
	ErrorColor  string
}

// DefaultTheme marks errors and leaves everything else bare.
func DefaultTheme() Theme {
	return Theme{ErrorPrefix: "! "}
}

// ThemeFromConfig reads prefixes from go-theme tokens, keeping defaults for
// tokens that are absent.
func ThemeFromConfig(cfg *theme.RendererConfig) Theme {
	t := DefaultTheme()
	if cfg == nil {
		return t
	}
	if v, ok := cfg.Tokens[TokenPromptPrefix]; ok {
		t.PromptPrefix = v
	}
	if v, ok := cfg.Tokens[TokenInfoPrefix]; ok {
		t.InfoPrefix = v
	}
	if v, ok := cfg.Tokens[TokenErrorPrefix]; ok {
		t.ErrorPrefix = v
	}
	t.PromptColor = cfg.Tokens[TokenPromptColor]
	t.InfoColor = cfg.Tokens[TokenInfoColor]
	t.ErrorColor = cfg.Tokens[TokenErrorColor]
	return t
}

func (t Theme) prompt(msg string) string { return paint(t.PromptColor, t.PromptPrefix) + msg }
func (t Theme) info(msg string) string   { return paint(t.InfoColor, t.InfoPrefix) + msg }
func (t Theme) error(msg string) string  { return paint(t.ErrorColor, t.ErrorPrefix) + msg }

func paint(color, prefix string) string {
	if color == "" || prefix == "" {
		return prefix
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render(prefix)
}

// Option configures a Session.
type Option func(*Session)

// WithPromptDriver overrides the prompt driver used by the session.
func WithPromptDriver(driver PromptDriver) Option {
	return func(s *Session) {
		if driver != nil {
			s.driver = driver
		}
	}
}

// WithTheme applies optional message prefixes.
func WithTheme(theme Theme) Option {
	return func(s *Session) {
		s.theme = theme
	}
}

// WithRenderer prints renderer output after every successful send.
func WithRenderer(renderer render.Renderer, opts render.RenderOptions) Option {
	return func(s *Session) {
		s.renderer = renderer
		s.renderOpts = opts
	}
}

// WithPicker replaces the file-system avatar picker.
func WithPicker(picker avatar.Picker) Option {
	return func(s *Session) {
		if picker != nil {
			s.picker = picker
		}
	}
}

// WithAccept sets the avatar MIME filter (defaults to "image/*").
func WithAccept(accept string) Option {
	return func(s *Session) {
		if accept = strings.TrimSpace(accept); accept != "" {
			s.accept = accept
		}
	}
}

// WithLogger routes session diagnostics to logger.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}
