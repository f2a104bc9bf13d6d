package cas

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/relink/internal/core/ports"
)

// NodeID is the unique identifier for the catalog store Graft node.
const NodeID graft.ID = "adapter.catalog_store"

func init() {
	graft.Register(graft.Node[ports.CatalogStore]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.CatalogStore, error) {
			return NewStore(), nil
		},
	})
}
