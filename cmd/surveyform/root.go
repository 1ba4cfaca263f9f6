package main

import (
	"fmt"

	theme "github.com/goliatone/go-theme"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goliatone/go-surveyform"
	"github.com/goliatone/go-surveyform/internal/config"
	"github.com/goliatone/go-surveyform/internal/logging"
	"github.com/goliatone/go-surveyform/pkg/form"
	"github.com/goliatone/go-surveyform/pkg/labels"
	"github.com/goliatone/go-surveyform/pkg/render"
	"github.com/goliatone/go-surveyform/pkg/renderers/card"
)

// rootFlags mirrors the persistent flags; set values override configuration.
type rootFlags struct {
	configFile   string
	locale       string
	output       string
	logLevel     string
	catalogDir   string
	themeName    string
	themeVariant string
	verbose      bool
}

// app holds everything a command needs once configuration is resolved.
type app struct {
	cfg      *config.Config
	logger   *zap.Logger
	catalog  *labels.Catalog
	registry *render.Registry
	theme    *theme.RendererConfig
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}
	a := &app{}

	cmd := &cobra.Command{
		Use:   "surveyform",
		Short: "Fill in a short survey and print a summary",
		Long: `surveyform asks for a name, age, gender, newsletter subscription and an
optional avatar, then prints a localized summary as text, JSON or an HTML card.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Name() == "version" {
				return nil
			}
			return a.init(cmd, flags)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			// Default behavior: interactive session
			return runInteractive(cmd, a)
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&flags.configFile, "config", "", "config file (default: ./surveyform.yaml or ~/.config/surveyform/surveyform.yaml)")
	pf.StringVarP(&flags.locale, "locale", "l", "", "display locale, e.g. en or ru-RU")
	pf.StringVarP(&flags.output, "output", "o", "", "summary output: text, json or html")
	pf.StringVar(&flags.logLevel, "log-level", "", "log level: debug, info, warn, error")
	pf.StringVar(&flags.catalogDir, "catalog-dir", "", "directory with <locale>.yaml label catalogs")
	pf.StringVar(&flags.themeName, "theme", "", "theme name")
	pf.StringVar(&flags.themeVariant, "theme-variant", "", "theme variant")
	pf.BoolVarP(&flags.verbose, "verbose", "v", false, "enable debug logging")

	cmd.AddCommand(newRunCmd(a))
	cmd.AddCommand(newSubmitCmd(a))
	cmd.AddCommand(newLocalesCmd(a))
	cmd.AddCommand(newVersionCmd())
	return cmd
}

func (a *app) init(cmd *cobra.Command, flags *rootFlags) error {
	cfg, err := config.Load(config.LoadOptions{ConfigFile: flags.configFile})
	if err != nil {
		return err
	}
	applyFlags(cmd, flags, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, err := logging.New(cfg.LogLevel, flags.verbose)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	catalog, err := surveyform.LoadCatalog(cfg.CatalogDir)
	if err != nil {
		return err
	}

	themeCfg, err := resolveTheme(cfg.Theme)
	if err != nil {
		return err
	}

	registry, err := surveyform.NewRegistry(card.WithTranslator(catalog), card.WithLogger(logger))
	if err != nil {
		return err
	}
	if !registry.Has(cfg.Output) {
		return fmt.Errorf("%w: %q", config.ErrInvalidOutput, cfg.Output)
	}

	a.cfg = cfg
	a.logger = logger
	a.catalog = catalog
	a.registry = registry
	a.theme = themeCfg
	logger.Debug("configuration loaded",
		zap.String("locale", cfg.Locale),
		zap.String("output", cfg.Output),
		zap.Strings("catalog_locales", catalog.Locales()),
	)
	return nil
}

func applyFlags(cmd *cobra.Command, flags *rootFlags, cfg *config.Config) {
	changed := func(name string) bool { return cmd.Flags().Changed(name) }
	if changed("locale") {
		cfg.Locale = flags.locale
	}
	if changed("output") {
		cfg.Output = flags.output
	}
	if changed("log-level") {
		cfg.LogLevel = flags.logLevel
	}
	if changed("catalog-dir") {
		cfg.CatalogDir = flags.catalogDir
	}
	if changed("theme") {
		cfg.Theme.Name = flags.themeName
	}
	if changed("theme-variant") {
		cfg.Theme.Variant = flags.themeVariant
	}
}

func resolveTheme(t config.Theme) (*theme.RendererConfig, error) {
	manifest := t.Manifest()
	if manifest == nil {
		return nil, nil
	}
	selector, err := render.NewStaticSelector(t.Variant, manifest)
	if err != nil {
		return nil, err
	}
	return render.ResolveTheme(selector, t.Name, t.Variant)
}

func (a *app) controller() (*form.Controller, error) {
	l := labels.Resolve(a.catalog, a.cfg.Locale, labels.ResolveOptions{GenderKeys: a.cfg.GenderKeys})
	return form.New(l, form.WithDefaultAge(a.cfg.DefaultAge), form.WithLogger(a.logger))
}

func (a *app) renderer() (render.Renderer, error) {
	return a.registry.Get(a.cfg.Output)
}

func (a *app) renderOptions() render.RenderOptions {
	return render.RenderOptions{Theme: a.theme}
}
