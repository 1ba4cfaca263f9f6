package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// isolate clears surveyform variables and points every source at an empty
// directory so the developer's own files cannot leak into a test.
func isolate(t *testing.T) LoadOptions {
	t.Helper()
	for _, key := range []string{"LOCALE", "OUTPUT", "CATALOG_DIR", "LOG_LEVEL", "DEFAULT_AGE", "GENDER_KEYS", "ACCEPT", "THEME_NAME", "THEME_VARIANT"} {
		name := envPrefix + "_" + key
		t.Setenv(name, "")
		if err := os.Unsetenv(name); err != nil {
			t.Fatalf("unsetenv %s: %v", name, err)
		}
	}
	dir := t.TempDir()
	return LoadOptions{
		SearchPaths: []string{dir},
		EnvFiles:    []string{filepath.Join(dir, "missing.env")},
	}
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(isolate(t))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	want := &Config{
		Locale:     "en",
		Output:     OutputText,
		LogLevel:   "warn",
		DefaultAge: 25,
		GenderKeys: []string{"gender_male", "gender_female"},
		Accept:     "image/*",
		Theme:      Theme{Tokens: map[string]string{}},
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Fatalf("defaults mismatch (-want +got):\n%s", diff)
	}
	if cfg.Theme.Manifest() != nil {
		t.Fatalf("expected no manifest without tokens")
	}
}

func TestLoad_FileFromSearchPath(t *testing.T) {
	opts := isolate(t)
	writeFile(t, opts.SearchPaths[0], "surveyform.yaml", `
locale: ru
output: html
default_age: 40
gender_keys: [gender_female, gender_male]
theme:
  name: acme
  variant: dark
  tokens:
    brand: "#123456"
  variants:
    dark:
      tokens:
        brand: "#654321"
`)

	cfg, err := Load(opts)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Locale != "ru" || cfg.Output != OutputHTML || cfg.DefaultAge != 40 {
		t.Fatalf("unexpected config %+v", cfg)
	}
	if diff := cmp.Diff([]string{"gender_female", "gender_male"}, cfg.GenderKeys); diff != "" {
		t.Fatalf("gender keys mismatch (-want +got):\n%s", diff)
	}

	manifest := cfg.Theme.Manifest()
	if manifest == nil || manifest.Name != "acme" {
		t.Fatalf("expected acme manifest, got %+v", manifest)
	}
	if manifest.Tokens["brand"] != "#123456" || manifest.Variants["dark"].Tokens["brand"] != "#654321" {
		t.Fatalf("unexpected manifest tokens %+v", manifest)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	opts := isolate(t)
	writeFile(t, opts.SearchPaths[0], "surveyform.yaml", "locale: ru\noutput: json\n")
	t.Setenv("SURVEYFORM_OUTPUT", "html")
	t.Setenv("SURVEYFORM_GENDER_KEYS", "gender_female, gender_male")

	cfg, err := Load(opts)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Locale != "ru" {
		t.Fatalf("expected file locale, got %q", cfg.Locale)
	}
	if cfg.Output != OutputHTML {
		t.Fatalf("expected env output, got %q", cfg.Output)
	}
	if diff := cmp.Diff([]string{"gender_female", "gender_male"}, cfg.GenderKeys); diff != "" {
		t.Fatalf("gender keys mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_DotEnv(t *testing.T) {
	opts := isolate(t)
	opts.EnvFiles = []string{writeFile(t, t.TempDir(), ".env", "SURVEYFORM_LOCALE=ru\nSURVEYFORM_LOG_LEVEL=debug\n")}

	cfg, err := Load(opts)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Locale != "ru" || cfg.LogLevel != "debug" {
		t.Fatalf("expected values from .env, got %+v", cfg)
	}
}

func TestLoad_ExplicitFile(t *testing.T) {
	opts := isolate(t)
	opts.ConfigFile = writeFile(t, t.TempDir(), "custom.yaml", "accept: image/png\n")

	cfg, err := Load(opts)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Accept != "image/png" {
		t.Fatalf("expected accept from explicit file, got %q", cfg.Accept)
	}
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	opts := isolate(t)
	opts.ConfigFile = filepath.Join(t.TempDir(), "nope.yaml")
	if _, err := Load(opts); err == nil {
		t.Fatalf("expected error for missing explicit config file")
	}
}

func TestLoad_InvalidOutput(t *testing.T) {
	opts := isolate(t)
	t.Setenv("SURVEYFORM_OUTPUT", "pdf")
	if _, err := Load(opts); !errors.Is(err, ErrInvalidOutput) {
		t.Fatalf("expected ErrInvalidOutput, got %v", err)
	}
}

func TestLoad_MalformedDotEnv(t *testing.T) {
	opts := isolate(t)
	bad := writeFile(t, t.TempDir(), ".env", "SURVEYFORM_LOCALE=\"ru\n")
	opts.EnvFiles = []string{filepath.Join(t.TempDir(), "missing.env"), bad}

	_, err := Load(opts)
	if err == nil || !strings.Contains(err.Error(), bad) {
		t.Fatalf("expected parse error naming %s, got %v", bad, err)
	}
}

func TestLoad_InvalidDefaultAge(t *testing.T) {
	opts := isolate(t)
	t.Setenv("SURVEYFORM_DEFAULT_AGE", "abc")
	if _, err := Load(opts); !errors.Is(err, ErrInvalidDefaultAge) {
		t.Fatalf("expected ErrInvalidDefaultAge, got %v", err)
	}

	t.Setenv("SURVEYFORM_DEFAULT_AGE", "NaN")
	if _, err := Load(opts); !errors.Is(err, ErrInvalidDefaultAge) {
		t.Fatalf("expected NaN to be rejected, got %v", err)
	}

	t.Setenv("SURVEYFORM_DEFAULT_AGE", "30.5")
	cfg, err := Load(opts)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.DefaultAge != 30.5 {
		t.Fatalf("expected fractional default age, got %v", cfg.DefaultAge)
	}
}
