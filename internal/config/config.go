// Package config loads surveyform settings from defaults, an optional YAML
// file, .env files and SURVEYFORM_* environment variables, in increasing
// order of precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"strings"

	theme "github.com/goliatone/go-theme"
	"github.com/joho/godotenv"
	"github.com/spf13/cast"
	"github.com/spf13/viper"
)

const (
	configFileName = "surveyform"
	configFileType = "yaml"
	envPrefix      = "SURVEYFORM"

	KeyLocale        = "locale"
	KeyOutput        = "output"
	KeyCatalogDir    = "catalog_dir"
	KeyLogLevel      = "log_level"
	KeyDefaultAge    = "default_age"
	KeyGenderKeys    = "gender_keys"
	KeyAccept        = "accept"
	KeyThemeName     = "theme.name"
	KeyThemeVariant  = "theme.variant"
	KeyThemeTokens   = "theme.tokens"
	KeyThemeVariants = "theme.variants"
)

// Output formats accepted by KeyOutput.
const (
	OutputText = "text"
	OutputJSON = "json"
	OutputHTML = "html"
)

var (
	// ErrInvalidOutput is returned for unknown output formats.
	ErrInvalidOutput = errors.New("config: invalid output format")
	// ErrInvalidDefaultAge is returned when default_age is not a number.
	ErrInvalidDefaultAge = errors.New("config: default_age is not a number")
)

// Config is the resolved configuration.
type Config struct {
	Locale     string
	Output     string
	CatalogDir string
	LogLevel   string
	DefaultAge float64
	GenderKeys []string
	Accept     string
	Theme      Theme
}

// Theme describes the single theme manifest that can be configured inline.
type Theme struct {
	Name     string
	Variant  string
	Tokens   map[string]string
	Variants map[string]map[string]string
}

// DefaultThemeName names the manifest built from inline tokens when
// theme.name is not set.
const DefaultThemeName = "surveyform"

// Manifest converts the inline theme into a go-theme manifest. It returns nil
// when nothing was configured.
func (t Theme) Manifest() *theme.Manifest {
	if len(t.Tokens) == 0 && len(t.Variants) == 0 {
		return nil
	}
	name := t.Name
	if name == "" {
		name = DefaultThemeName
	}
	manifest := &theme.Manifest{
		Name:    name,
		Version: "1.0.0",
		Tokens:  t.Tokens,
	}
	if len(t.Variants) > 0 {
		manifest.Variants = make(map[string]theme.Variant, len(t.Variants))
		for variant, tokens := range t.Variants {
			manifest.Variants[variant] = theme.Variant{Tokens: tokens}
		}
	}
	return manifest
}

// LoadOptions controls where configuration is read from.
type LoadOptions struct {
	// ConfigFile is an explicit file; a missing explicit file is an error.
	ConfigFile string
	// SearchPaths are scanned for surveyform.yaml when ConfigFile is empty.
	// Defaults to the working directory and $HOME/.config/surveyform.
	SearchPaths []string
	// EnvFiles are loaded with godotenv before reading the environment.
	// Defaults to ".env". Missing files are ignored.
	EnvFiles []string
}

// Load resolves configuration.
func Load(opts LoadOptions) (*Config, error) {
	envFiles := opts.EnvFiles
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, file := range envFiles {
		// Existing variables win over the file.
		if err := godotenv.Load(file); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("config: load %s: %w", file, err)
		}
	}

	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
	} else {
		v.SetConfigName(configFileName)
		v.SetConfigType(configFileType)
		for _, path := range searchPaths(opts.SearchPaths) {
			v.AddConfigPath(path)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("config: read: %w", err)
		}
	}

	defaultAge, err := cast.ToFloat64E(v.Get(KeyDefaultAge))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDefaultAge, v.Get(KeyDefaultAge))
	}

	cfg := &Config{
		Locale:     strings.TrimSpace(v.GetString(KeyLocale)),
		Output:     strings.ToLower(strings.TrimSpace(v.GetString(KeyOutput))),
		CatalogDir: strings.TrimSpace(v.GetString(KeyCatalogDir)),
		LogLevel:   strings.TrimSpace(v.GetString(KeyLogLevel)),
		DefaultAge: defaultAge,
		GenderKeys: splitList(v.GetStringSlice(KeyGenderKeys)),
		Accept:     strings.TrimSpace(v.GetString(KeyAccept)),
		Theme: Theme{
			Name:     strings.TrimSpace(v.GetString(KeyThemeName)),
			Variant:  strings.TrimSpace(v.GetString(KeyThemeVariant)),
			Tokens:   v.GetStringMapString(KeyThemeTokens),
			Variants: variantTokens(v),
		},
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks enumerated settings.
func (c *Config) Validate() error {
	switch c.Output {
	case OutputText, OutputJSON, OutputHTML:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidOutput, c.Output)
	}
	if math.IsNaN(c.DefaultAge) {
		return fmt.Errorf("%w: NaN", ErrInvalidDefaultAge)
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(KeyLocale, "en")
	v.SetDefault(KeyOutput, OutputText)
	v.SetDefault(KeyCatalogDir, "")
	v.SetDefault(KeyLogLevel, "warn")
	v.SetDefault(KeyDefaultAge, 25)
	v.SetDefault(KeyGenderKeys, []string{"gender_male", "gender_female"})
	v.SetDefault(KeyAccept, "image/*")
	v.SetDefault(KeyThemeName, "")
	v.SetDefault(KeyThemeVariant, "")
}

func searchPaths(paths []string) []string {
	if len(paths) > 0 {
		return paths
	}
	out := []string{"."}
	if home, err := os.UserHomeDir(); err == nil {
		out = append(out, filepath.Join(home, ".config", "surveyform"))
	}
	return out
}

// splitList accepts both YAML lists and comma separated env values.
func splitList(values []string) []string {
	var out []string
	for _, value := range values {
		for _, part := range strings.Split(value, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

func variantTokens(v *viper.Viper) map[string]map[string]string {
	raw := v.GetStringMap(KeyThemeVariants)
	if len(raw) == 0 {
		return nil
	}
	out := make(map[string]map[string]string, len(raw))
	for name := range raw {
		out[name] = v.GetStringMapString(KeyThemeVariants + "." + name + ".tokens")
	}
	return out
}
