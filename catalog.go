package surveyform

import (
	"fmt"
	"os"
	"strings"

	"github.com/goliatone/go-surveyform/pkg/labels"
)

// LoadCatalog returns the bundled catalog when dir is empty, otherwise the
// catalog files found in dir.
func LoadCatalog(dir string) (*labels.Catalog, error) {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		return labels.Default()
	}
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("surveyform: catalog dir: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("surveyform: catalog dir %s is not a directory", dir)
	}
	return labels.LoadFS(os.DirFS(dir))
}
