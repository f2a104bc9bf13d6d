package ports

import "go.trai.ch/relink/internal/core/domain"

// ConfigLoader defines the interface for loading the link configuration.
//
//go:generate mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load reads the configuration file at path and returns the validated link plan.
	Load(path string) (*domain.LinkPlan, error)
}
