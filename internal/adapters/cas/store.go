// Package cas stores the catalog records of previous links.
package cas

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"go.trai.ch/relink/internal/core/domain"
	"go.trai.ch/relink/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.CatalogStore = (*Store)(nil)

// Store implements ports.CatalogStore using one JSON file keyed by module name.
type Store struct {
	mu sync.Mutex
}

// NewStore creates a new CatalogStore.
func NewStore() *Store {
	return &Store{}
}

// Get retrieves the record of a module from the store file at path.
func (s *Store) Get(path, module string) (*domain.CatalogRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.load(path)
	if err != nil {
		return nil, err
	}

	record, ok := records[module]
	if !ok {
		return nil, nil
	}
	return &record, nil
}

// Put stores the record in the store file at path, keeping every other module.
func (s *Store) Put(path string, record domain.CatalogRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.load(path)
	if err != nil {
		return err
	}
	records[record.Module] = record

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return domain.Cause(domain.ErrStoreMarshalFailed, err)
	}

	if err := os.MkdirAll(filepath.Dir(path), domain.DirPerm); err != nil {
		return zerr.With(domain.Cause(domain.ErrStoreWriteFailed, err), "path", path)
	}

	//nolint:gosec // Path is provided by the link plan
	if err := os.WriteFile(path, data, domain.FilePerm); err != nil {
		return zerr.With(domain.Cause(domain.ErrStoreWriteFailed, err), "path", path)
	}

	return nil
}

func (s *Store) load(path string) (map[string]domain.CatalogRecord, error) {
	records := make(map[string]domain.CatalogRecord)

	//nolint:gosec // Path is provided by the link plan
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return records, nil
		}
		return nil, zerr.With(domain.Cause(domain.ErrStoreReadFailed, err), "path", path)
	}

	if len(data) == 0 {
		return records, nil
	}

	if err := json.Unmarshal(data, &records); err != nil {
		return nil, zerr.With(domain.Cause(domain.ErrStoreUnmarshalFailed, err), "path", path)
	}

	return records, nil
}
