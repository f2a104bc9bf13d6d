// Package imagefs reads and writes installed images laid out as plain directories.
//
// An image root holds image.yaml, the primary resources of every module below
// modules/<module>/, and every non-primary resource at its installed location.
package imagefs

import (
	"os"
	"path/filepath"
	"slices"
	"strings"

	"go.trai.ch/relink/internal/core/domain"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// MetadataVersion is the only supported image.yaml version.
const MetadataVersion = "1"

// Metadata is the content of image.yaml.
type Metadata struct {
	Version string              `yaml:"version"`
	Modules []domain.ModuleInfo `yaml:"modules"`
}

// ReadMetadata reads image.yaml below root.
func ReadMetadata(root string) (*Metadata, error) {
	path := filepath.Join(root, domain.ImageMetadataFileName)

	data, err := os.ReadFile(path) //nolint:gosec // Path is below the image root
	if err != nil {
		return nil, zerr.With(domain.Cause(domain.ErrImageMetadataFailed, err), "path", path)
	}

	var meta Metadata
	if err := yaml.Unmarshal(data, &meta); err != nil {
		return nil, zerr.With(domain.Cause(domain.ErrImageMetadataFailed, err), "path", path)
	}
	if meta.Version != MetadataVersion {
		return nil, zerr.With(domain.Tag(domain.ErrImageMetadataFailed, "version", meta.Version), "path", path)
	}

	slices.SortFunc(meta.Modules, func(a, b domain.ModuleInfo) int {
		return strings.Compare(a.Name, b.Name)
	})
	return &meta, nil
}

// WriteMetadata writes image.yaml below root.
func WriteMetadata(root string, modules []domain.ModuleInfo) error {
	meta := Metadata{Version: MetadataVersion, Modules: slices.Clone(modules)}
	slices.SortFunc(meta.Modules, func(a, b domain.ModuleInfo) int {
		return strings.Compare(a.Name, b.Name)
	})

	data, err := yaml.Marshal(&meta)
	if err != nil {
		return domain.Cause(domain.ErrImageWriteFailed, err)
	}

	path := filepath.Join(root, domain.ImageMetadataFileName)
	if err := os.WriteFile(path, data, domain.FilePerm); err != nil {
		return zerr.With(domain.Cause(domain.ErrImageWriteFailed, err), "path", path)
	}
	return nil
}

// ModuleDir returns the directory holding the primary resources of module.
func ModuleDir(root, module string) string {
	return filepath.Join(root, domain.ModulesDirName, module)
}
