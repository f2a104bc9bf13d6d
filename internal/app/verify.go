package app

import (
	"context"
	"runtime"

	"go.trai.ch/relink/internal/core/domain"
	"go.trai.ch/relink/internal/core/ports"
	"go.trai.ch/relink/internal/engine/archive"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// ModuleReport is the verification outcome of one module.
type ModuleReport struct {
	Name      string
	Resources int
	Installed int
	Digest    string
	Err       error
}

// VerifyReport is the verification outcome of an image.
type VerifyReport struct {
	Image   string
	Modules []ModuleReport
}

// Failed returns the number of modules that failed verification.
func (r *VerifyReport) Failed() int {
	n := 0
	for _, m := range r.Modules {
		if m.Err != nil {
			n++
		}
	}
	return n
}

// Verify reconstructs the given modules of the image at root, or all of them
// when none are named, and checks that every catalogued file is installed.
func (a *App) Verify(ctx context.Context, root string, modules ...string) (*VerifyReport, error) {
	finder, err := a.source.Open(root)
	if err != nil {
		return nil, zerr.With(err, "image", root)
	}

	if len(modules) == 0 {
		installed, err := finder.Modules()
		if err != nil {
			return nil, zerr.With(err, "image", root)
		}
		for _, m := range installed {
			modules = append(modules, m.Name)
		}
	}

	report := &VerifyReport{Image: root, Modules: make([]ModuleReport, len(modules))}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for i, name := range modules {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			_, vertex := a.telemetry.Record(gctx, "module "+name, ports.WithGroup("verify"))
			report.Modules[i] = a.verifyModule(root, name, finder)
			vertex.Complete(report.Modules[i].Err)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if failed := report.Failed(); failed > 0 {
		return report, zerr.With(domain.Tag(domain.ErrVerifyFailed, "failed", failed), "image", root)
	}
	return report, nil
}

func (a *App) verifyModule(root, name string, finder ports.ModuleFinder) ModuleReport {
	report := ModuleReport{Name: name}

	v, err := archive.NewVirtual(name, root, finder)
	if err != nil {
		report.Err = err
		return report
	}
	defer v.Close() //nolint:errcheck // Close only drops cached entries

	entries, err := v.Entries()
	if err != nil {
		report.Err = zerr.With(err, "module", name)
		return report
	}

	var (
		resources []domain.ResourceEntry
		installed []string
	)
	for e := range entries {
		resources = append(resources, archive.ToResource(name, e))
		if !e.Type.IsPrimary() {
			installed = append(installed, e.Path)
		}
	}
	report.Resources = len(resources)
	report.Installed = len(installed)

	missing, err := a.verifier.MissingOutputs(root, installed)
	if err != nil {
		report.Err = err
		return report
	}
	if len(missing) > 0 {
		report.Err = zerr.With(zerr.With(domain.Tag(domain.ErrCatalogPathNotInstalled, "path", missing[0]), "missing", len(missing)), "module", name)
		return report
	}

	report.Digest, err = a.hasher.ComputeEntriesHash(resources)
	if err != nil {
		report.Err = zerr.With(err, "module", name)
	}
	return report
}
