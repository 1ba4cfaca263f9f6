// Package labels supplies the display strings consumed by the survey form:
// field captions, button text, the inline validation message, gender option
// labels, subscription phrases, and the summary template.
//
// Strings are looked up through a Translator keyed by locale. The bundled
// Catalog reads flat key/message files (YAML or JSON) from an fs.FS, one file
// per locale, and resolves regional locales through their base language
// before falling back to the catalog default:
//
//	ru-RU -> ru -> en
//
// Messages authored with Android-style positional verbs (`%1$s`, `%2$d`) are
// normalised to their Go equivalents (`%[1]v`, `%[2]d`) while loading so the
// same resource strings can be shared across clients.
package labels
