// Package ports defines the core interfaces for the application.
package ports

import (
	"io"

	"go.trai.ch/relink/internal/core/domain"
)

// ModuleFinder resolves the modules installed in an image.
//
//go:generate mockgen -source=module.go -destination=mocks/mock_module.go -package=mocks
type ModuleFinder interface {
	// Find resolves a module by name.
	// It returns domain.ErrModuleNotFound if the module is not installed.
	Find(name string) (ModuleReader, error)

	// Modules returns every installed module, sorted by name.
	Modules() ([]domain.ModuleInfo, error)
}

// ModuleReader gives access to the primary resources of one installed module.
// Paths are module-relative and slash-separated.
type ModuleReader interface {
	// List returns every resource path of the module, sorted.
	List() ([]string, error)

	// Open returns a stream over the named resource.
	// It returns domain.ErrResourceNotFound if the path does not exist.
	Open(path string) (io.ReadCloser, error)

	// Close releases the reader.
	Close() error
}

// ResourceSizer is implemented by module readers that can size a resource without reading it.
type ResourceSizer interface {
	Size(path string) (int64, error)
}

// ImageSource opens installed images.
type ImageSource interface {
	// Open returns a finder over the modules installed under root.
	Open(root string) (ModuleFinder, error)
}
