package surveyform

import (
	"io/fs"

	"github.com/goliatone/go-surveyform/pkg/renderers/card"
)

// EmbeddedTemplates exposes the built-in card templates so callers can reuse
// or extend them without importing the renderer package directly.
func EmbeddedTemplates() fs.FS {
	return card.TemplatesFS()
}
