// Package app implements the application layer for relink.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	"go.trai.ch/relink/internal/core/domain"
	"go.trai.ch/relink/internal/core/ports"
	"go.trai.ch/relink/internal/engine/archive"
	"go.trai.ch/relink/internal/engine/catalog"
	"go.trai.ch/relink/internal/engine/pass"
	"go.trai.ch/zerr"
)

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	source       ports.ImageSource
	writer       ports.ImageWriter
	verifier     ports.Verifier
	hasher       ports.Hasher
	store        ports.CatalogStore
	telemetry    ports.Telemetry
	logger       ports.Logger
	runner       *pass.Runner
	now          func() time.Time
}

// New creates a new App instance.
func New(
	loader ports.ConfigLoader,
	source ports.ImageSource,
	writer ports.ImageWriter,
	verifier ports.Verifier,
	hasher ports.Hasher,
	store ports.CatalogStore,
	runner *pass.Runner,
	telemetry ports.Telemetry,
	log ports.Logger,
) *App {
	return &App{
		configLoader: loader,
		source:       source,
		writer:       writer,
		verifier:     verifier,
		hasher:       hasher,
		store:        store,
		telemetry:    telemetry,
		logger:       log,
		runner:       runner,
		now:          time.Now,
	}
}

// WithClock replaces the clock used to timestamp catalog records.
func (a *App) WithClock(now func() time.Time) *App {
	a.now = now
	return a
}

// ModuleResult describes the catalog written for one module.
type ModuleResult struct {
	Name    string
	Lines   int
	Digest  string
	Changed bool
}

// LinkResult describes a finished link.
type LinkResult struct {
	Output   string
	Platform domain.Platform
	Digest   string
	Modules  []ModuleResult
}

// Link assembles the image described by the configuration at configPath.
func (a *App) Link(ctx context.Context, configPath string) (*LinkResult, error) {
	plan, err := a.configLoader.Load(configPath)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load configuration")
	}

	archives, platforms, err := a.openArchives(plan)
	if err != nil {
		return nil, err
	}
	defer closeArchives(archives)

	pool, err := archive.Pool(platforms, archives...)
	if err != nil {
		return nil, err
	}
	platform, err := pool.TargetPlatform(plan.Anchor)
	if err != nil {
		return nil, err
	}

	linked, err := a.runner.Run(ctx, pool, plan.Parallelism, catalog.NewStage(plan.Anchor))
	if err != nil {
		return nil, errors.Join(domain.ErrLinkFailed, err)
	}

	if err := a.writer.Write(ctx, plan.Output, platform, linked); err != nil {
		return nil, errors.Join(domain.ErrLinkFailed, err)
	}

	result := &LinkResult{Output: plan.Output, Platform: platform}
	for _, e := range linked.Entries {
		if e.Path != domain.CatalogPath(e.Module) {
			continue
		}
		module, err := a.recordCatalog(ctx, plan, e)
		if err != nil {
			return nil, errors.Join(domain.ErrLinkFailed, err)
		}
		result.Modules = append(result.Modules, module)
	}

	result.Digest, err = a.hasher.ComputeTreeHash(plan.Output)
	if err != nil {
		return nil, err
	}

	a.logger.Info(fmt.Sprintf("linked %d modules for %s", len(pool.Modules), platform),
		"output", plan.Output, "digest", result.Digest)
	return result, nil
}

// openArchives opens one archive per planned module. Modules without a
// source are reconstructed from the base image.
func (a *App) openArchives(plan *domain.LinkPlan) ([]archive.Archive, map[string]string, error) {
	platforms := make(map[string]string, len(plan.Modules))

	var finder ports.ModuleFinder
	if plan.Image != "" {
		var err error
		finder, err = a.source.Open(plan.Image)
		if err != nil {
			return nil, nil, zerr.With(err, "image", plan.Image)
		}
		installed, err := finder.Modules()
		if err != nil {
			return nil, nil, zerr.With(err, "image", plan.Image)
		}
		for _, m := range installed {
			platforms[m.Name] = m.Platform
		}
	}

	archives := make([]archive.Archive, 0, len(plan.Modules))
	for _, m := range plan.Modules {
		if m.Platform != "" {
			platforms[m.Name] = m.Platform
		}

		var (
			arc archive.Archive
			err error
		)
		switch {
		case m.Source != "":
			arc, err = archive.NewExploded(m.Name, m.Source)
		case finder != nil:
			arc, err = archive.NewVirtual(m.Name, plan.Image, finder)
		default:
			err = domain.Tag(domain.ErrMissingImage, "module", m.Name)
		}
		if err == nil {
			err = arc.Open()
		}
		if err != nil {
			closeArchives(archives)
			return nil, nil, zerr.With(err, "module", m.Name)
		}
		archives = append(archives, arc)
	}

	return archives, platforms, nil
}

func closeArchives(archives []archive.Archive) {
	for _, arc := range archives {
		_ = arc.Close()
	}
}

// recordCatalog checks that every catalogued file was installed and compares
// the catalog with the one emitted by the previous link.
func (a *App) recordCatalog(ctx context.Context, plan *domain.LinkPlan, e domain.ResourceEntry) (ModuleResult, error) {
	_, vertex := a.telemetry.Record(ctx, "module "+e.Module, ports.WithGroup("catalog"))

	result, err := a.checkCatalog(plan, e, vertex)
	if err != nil {
		vertex.Complete(err)
		return ModuleResult{}, zerr.With(err, "module", e.Module)
	}
	vertex.Complete(nil)
	return result, nil
}

func (a *App) checkCatalog(plan *domain.LinkPlan, e domain.ResourceEntry, vertex ports.Vertex) (ModuleResult, error) {
	data, err := readAll(e.Content)
	if err != nil {
		return ModuleResult{}, err
	}
	lines, err := catalog.Parse(data)
	if err != nil {
		return ModuleResult{}, err
	}

	paths := make([]string, len(lines))
	for i, line := range lines {
		paths[i] = line.Path
	}
	missing, err := a.verifier.MissingOutputs(plan.Output, paths)
	if err != nil {
		return ModuleResult{}, err
	}
	if len(missing) > 0 {
		return ModuleResult{}, zerr.With(domain.Tag(domain.ErrCatalogPathNotInstalled, "path", missing[0]), "missing", len(missing))
	}

	digest, err := a.hasher.ComputeContentHash(e.Content)
	if err != nil {
		return ModuleResult{}, err
	}

	previous, err := a.store.Get(plan.StatePath, e.Module)
	if err != nil {
		return ModuleResult{}, err
	}

	result := ModuleResult{
		Name:    e.Module,
		Lines:   len(lines),
		Digest:  digest,
		Changed: previous == nil || previous.Digest != digest,
	}
	if !result.Changed {
		vertex.Cached()
	}
	vertex.Log(domain.LogLevelInfo, fmt.Sprintf("%d catalog lines, digest %s", result.Lines, digest))

	record := domain.CatalogRecord{
		Module:    e.Module,
		Digest:    digest,
		Lines:     result.Lines,
		Timestamp: a.now(),
	}
	if err := a.store.Put(plan.StatePath, record); err != nil {
		return ModuleResult{}, err
	}
	return result, nil
}

// List returns every resource of a module reconstructed from the image at root.
func (a *App) List(_ context.Context, root, module string) ([]domain.ResourceEntry, error) {
	finder, err := a.source.Open(root)
	if err != nil {
		return nil, zerr.With(err, "image", root)
	}

	v, err := archive.NewVirtual(module, root, finder)
	if err != nil {
		return nil, zerr.With(err, "image", root)
	}
	defer v.Close() //nolint:errcheck // Close only drops cached entries

	entries, err := v.Entries()
	if err != nil {
		return nil, zerr.With(err, "module", module)
	}

	var out []domain.ResourceEntry
	for e := range entries {
		out = append(out, archive.ToResource(module, e))
	}
	slices.SortFunc(out, func(x, y domain.ResourceEntry) int {
		return strings.Compare(x.Path, y.Path)
	})
	return out, nil
}

func readAll(content domain.Content) ([]byte, error) {
	rc, err := content.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close() //nolint:errcheck // Read-only stream

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, domain.Cause(domain.ErrResourceReadFailed, err)
	}
	return data, nil
}
