package ports

import (
	"context"

	"go.trai.ch/relink/internal/core/domain"
)

// ImageWriter materializes a pool as an installed image.
//
//go:generate mockgen -source=image.go -destination=mocks/mock_image.go -package=mocks
type ImageWriter interface {
	// Write installs every entry of the pool under root, placing non-primary
	// resources at their platform-specific installed location.
	Write(ctx context.Context, root string, platform domain.Platform, pool *domain.Pool) error
}
