package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/relink/internal/adapters/cas"                //nolint:depguard // Wired in app layer
	"go.trai.ch/relink/internal/adapters/config"             //nolint:depguard // Wired in app layer
	"go.trai.ch/relink/internal/adapters/fs"                 //nolint:depguard // Wired in app layer
	"go.trai.ch/relink/internal/adapters/imagefs"            //nolint:depguard // Wired in app layer
	"go.trai.ch/relink/internal/adapters/logger"             //nolint:depguard // Wired in app layer
	"go.trai.ch/relink/internal/adapters/telemetry/progrock" //nolint:depguard // Wired in app layer
	"go.trai.ch/relink/internal/core/ports"
	"go.trai.ch/relink/internal/engine/pass"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			imagefs.SourceNodeID,
			imagefs.WriterNodeID,
			fs.VerifierNodeID,
			fs.HasherNodeID,
			cas.NodeID,
			pass.NodeID,
			progrock.NodeID,
			logger.NodeID,
		},
		Run: runAppNode,
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
			progrock.NodeID,
		},
		Run: func(ctx context.Context) (*Components, error) {
			app, err := graft.Dep[*App](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			telemetry, err := graft.Dep[ports.Telemetry](ctx)
			if err != nil {
				return nil, err
			}

			return &Components{App: app, Logger: log, Telemetry: telemetry}, nil
		},
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	loader, err := graft.Dep[ports.ConfigLoader](ctx)
	if err != nil {
		return nil, err
	}

	source, err := graft.Dep[ports.ImageSource](ctx)
	if err != nil {
		return nil, err
	}

	writer, err := graft.Dep[ports.ImageWriter](ctx)
	if err != nil {
		return nil, err
	}

	verifier, err := graft.Dep[ports.Verifier](ctx)
	if err != nil {
		return nil, err
	}

	hasher, err := graft.Dep[ports.Hasher](ctx)
	if err != nil {
		return nil, err
	}

	store, err := graft.Dep[ports.CatalogStore](ctx)
	if err != nil {
		return nil, err
	}

	runner, err := graft.Dep[*pass.Runner](ctx)
	if err != nil {
		return nil, err
	}

	telemetry, err := graft.Dep[ports.Telemetry](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	return New(loader, source, writer, verifier, hasher, store, runner, telemetry, log), nil
}
