package ports

import "go.trai.ch/relink/internal/core/domain"

// CatalogStore remembers the catalogs emitted by previous links.
//
//go:generate mockgen -source=catalog_store.go -destination=mocks/mock_catalog_store.go -package=mocks
type CatalogStore interface {
	// Get retrieves the record of a module from the store at path.
	// Returns nil, nil if not found.
	Get(path, module string) (*domain.CatalogRecord, error)

	// Put stores the record in the store at path.
	Put(path string, record domain.CatalogRecord) error
}
