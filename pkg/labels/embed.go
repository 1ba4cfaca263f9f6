package labels

import (
	"embed"
	"io/fs"
)

//go:embed catalogs/*.yaml
var embeddedCatalogs embed.FS

// CatalogFS exposes the bundled catalogs rooted at the catalogs directory.
func CatalogFS() fs.FS {
	sub, err := fs.Sub(embeddedCatalogs, "catalogs")
	if err != nil {
		return embeddedCatalogs
	}
	return sub
}

// Default loads the bundled English and Russian catalogs.
func Default(options ...CatalogOption) (*Catalog, error) {
	return LoadFS(CatalogFS(), options...)
}
