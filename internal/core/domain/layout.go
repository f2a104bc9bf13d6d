package domain

import "path/filepath"

const (
	// CatalogFileName is the package-free resource name of a module catalog.
	// Being package-free, it cannot collide with any class or resource of the module.
	CatalogFileName = "module_resources"

	// ModulesDirName is the image directory holding each module's primary resources.
	ModulesDirName = "modules"

	// ImageMetadataFileName describes the modules of an installed image.
	ImageMetadataFileName = "image.yaml"

	// ConfigFileName is the default link plan file.
	ConfigFileName = "relink.yaml"

	// RelinkDirName is the directory holding relink state.
	RelinkDirName = ".relink"

	// StateFileName stores the catalog records of the previous link.
	StateFileName = "catalogs.json"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644
)

// CatalogPath returns the pool path of the catalog resource for a module.
func CatalogPath(module string) string {
	return ResourcePath(module, CatalogFileName)
}

// DefaultStatePath returns the default location of the catalog record store.
func DefaultStatePath() string {
	return filepath.Join(RelinkDirName, StateFileName)
}
