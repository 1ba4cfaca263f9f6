package labels

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultLocale is the last locale consulted by a Catalog fallback chain.
const DefaultLocale = "en"

// Catalog stores flat message tables keyed by canonical locale.
type Catalog struct {
	messages      map[string]map[string]string
	defaultLocale string
}

// CatalogOption configures a Catalog during loading.
type CatalogOption func(*Catalog)

// WithDefaultLocale overrides the locale consulted last when resolving keys.
func WithDefaultLocale(locale string) CatalogOption {
	return func(c *Catalog) {
		if canonical := CanonicalLocale(locale); canonical != "" {
			c.defaultLocale = canonical
		}
	}
}

// NewCatalog builds a catalog from in-memory tables. Messages are normalised
// the same way as file-backed catalogs.
func NewCatalog(tables map[string]map[string]string, options ...CatalogOption) *Catalog {
	c := newCatalog(options...)
	for locale, table := range tables {
		c.merge(CanonicalLocale(locale), table)
	}
	return c
}

// LoadFS walks fsys and parses every `<locale>.yaml`, `<locale>.yml` or
// `<locale>.json` file into the catalog. A nil filesystem yields an empty
// catalog.
func LoadFS(fsys fs.FS, options ...CatalogOption) (*Catalog, error) {
	c := newCatalog(options...)
	if fsys == nil {
		return c, nil
	}

	err := fs.WalkDir(fsys, ".", func(p string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isCatalogFile(p) {
			return nil
		}

		locale := CanonicalLocale(strings.TrimSuffix(path.Base(p), path.Ext(p)))
		if locale == "" {
			return fmt.Errorf("labels: file %s has no locale name", p)
		}
		if _, exists := c.messages[locale]; exists {
			return fmt.Errorf("labels: duplicate locale %q (file %s)", locale, p)
		}

		data, err := fs.ReadFile(fsys, p)
		if err != nil {
			return fmt.Errorf("labels: read %s: %w", p, err)
		}
		table, err := parseTable(data, p)
		if err != nil {
			return err
		}
		c.merge(locale, table)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return c, nil
}

// Translate implements Translator, walking the locale fallback chain.
func (c *Catalog) Translate(locale, key string, args ...any) (string, error) {
	if c == nil {
		return "", ErrMissingTranslator
	}
	for _, candidate := range c.chain(locale) {
		table, ok := c.messages[candidate]
		if !ok {
			continue
		}
		msg, ok := table[key]
		if !ok {
			continue
		}
		if len(args) > 0 {
			msg = fmt.Sprintf(msg, args...)
		}
		return msg, nil
	}
	return "", fmt.Errorf("%w: %s (%s)", ErrMissingTranslation, key, locale)
}

// Locales lists the loaded locales in sorted order.
func (c *Catalog) Locales() []string {
	if c == nil {
		return nil
	}
	out := make([]string, 0, len(c.messages))
	for locale := range c.messages {
		out = append(out, locale)
	}
	sort.Strings(out)
	return out
}

// Has reports whether the catalog holds messages for locale exactly.
func (c *Catalog) Has(locale string) bool {
	if c == nil {
		return false
	}
	_, ok := c.messages[CanonicalLocale(locale)]
	return ok
}

// DefaultLocale reports the final locale of every fallback chain.
func (c *Catalog) DefaultLocale() string {
	if c == nil {
		return DefaultLocale
	}
	return c.defaultLocale
}

// CanonicalLocale lowercases the locale and uses `-` as region separator.
func CanonicalLocale(locale string) string {
	return strings.ToLower(strings.ReplaceAll(strings.TrimSpace(locale), "_", "-"))
}

func newCatalog(options ...CatalogOption) *Catalog {
	c := &Catalog{
		messages:      make(map[string]map[string]string),
		defaultLocale: DefaultLocale,
	}
	for _, opt := range options {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

func (c *Catalog) merge(locale string, table map[string]string) {
	if locale == "" {
		return
	}
	dest, ok := c.messages[locale]
	if !ok {
		dest = make(map[string]string, len(table))
		c.messages[locale] = dest
	}
	for key, msg := range table {
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		dest[key] = NormalizeFormat(msg)
	}
}

func (c *Catalog) chain(locale string) []string {
	canonical := CanonicalLocale(locale)
	out := make([]string, 0, 3)
	seen := make(map[string]struct{}, 3)
	add := func(candidate string) {
		if candidate == "" {
			return
		}
		if _, ok := seen[candidate]; ok {
			return
		}
		seen[candidate] = struct{}{}
		out = append(out, candidate)
	}

	add(canonical)
	if base, _, found := strings.Cut(canonical, "-"); found {
		add(base)
	}
	add(c.defaultLocale)
	return out
}

func parseTable(data []byte, source string) (map[string]string, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, fmt.Errorf("labels: file %s is empty", source)
	}

	var table map[string]string
	if strings.EqualFold(path.Ext(source), ".json") {
		if err := json.Unmarshal(data, &table); err != nil {
			return nil, fmt.Errorf("labels: parse %s: %w", source, err)
		}
		return table, nil
	}
	if err := yaml.Unmarshal(data, &table); err != nil {
		return nil, fmt.Errorf("labels: parse %s: %w", source, err)
	}
	return table, nil
}

func isCatalogFile(p string) bool {
	switch strings.ToLower(path.Ext(p)) {
	case ".yaml", ".yml", ".json":
		return true
	default:
		return false
	}
}
