package imagefs

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/relink/internal/adapters/fs"
	"go.trai.ch/relink/internal/core/ports"
)

const (
	// SourceNodeID is the unique identifier for the image source Graft node.
	SourceNodeID graft.ID = "adapter.imagefs.source"
	// WriterNodeID is the unique identifier for the image writer Graft node.
	WriterNodeID graft.ID = "adapter.imagefs.writer"
)

func init() {
	graft.Register(graft.Node[ports.ImageSource]{
		ID:        SourceNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{fs.WalkerNodeID},
		Run: func(ctx context.Context) (ports.ImageSource, error) {
			walker, err := graft.Dep[*fs.Walker](ctx)
			if err != nil {
				return nil, err
			}
			return NewSource(walker), nil
		},
	})

	graft.Register(graft.Node[ports.ImageWriter]{
		ID:        WriterNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.ImageWriter, error) {
			return NewWriter(), nil
		},
	})
}
