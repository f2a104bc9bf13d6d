package ports

import "go.trai.ch/relink/internal/core/domain"

// Hasher defines the interface for computing content digests.
//
//go:generate mockgen -destination=mocks/hasher_mock.go -package=mocks -source=hasher.go
type Hasher interface {
	// ComputeContentHash returns the hex digest of a resource's bytes.
	ComputeContentHash(content domain.Content) (string, error)

	// ComputeEntriesHash returns one digest over the paths, types and bytes of the entries.
	// The result does not depend on the order of entries.
	ComputeEntriesHash(entries []domain.ResourceEntry) (string, error)

	// ComputeTreeHash returns one digest over every file below root.
	ComputeTreeHash(root string) (string, error)
}
