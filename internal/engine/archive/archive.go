// Package archive provides module resource sources for an assembly pass.
package archive

import (
	"iter"

	"go.trai.ch/relink/internal/core/domain"
)

// Archive is a source of module resources consumed by an assembly pass.
type Archive interface {
	// ModuleName returns the name of the module the archive holds.
	ModuleName() string
	// RootPath returns the directory the archive reads from.
	RootPath() string
	// Open prepares the archive. It is idempotent.
	Open() error
	// Close releases what Open prepared. It is idempotent.
	Close() error
	// Entries returns every resource of the archive, opening it if needed.
	// Consuming the sequence does not change the archive.
	Entries() (iter.Seq[Entry], error)
}

// Pool builds a pool from archives. Modules appear in archive order and
// entries keep the order of each archive.
// Platforms maps module names to their raw target platform.
func Pool(platforms map[string]string, archives ...Archive) (*domain.Pool, error) {
	pool := &domain.Pool{}
	for _, a := range archives {
		entries, err := a.Entries()
		if err != nil {
			return nil, err
		}

		module := a.ModuleName()
		pool.Modules = append(pool.Modules, domain.ModuleInfo{Name: module, Platform: platforms[module]})
		for e := range entries {
			pool.Entries = append(pool.Entries, ToResource(module, e))
		}
	}
	return pool, nil
}

// ToResource converts an archive entry into a pool entry of module.
func ToResource(module string, e Entry) domain.ResourceEntry {
	return domain.ResourceEntry{
		Module:  module,
		Path:    domain.ResourcePath(module, e.Path),
		Type:    e.Type,
		Content: e,
	}
}
