package imagefs

import (
	"context"
	"errors"
	"io"
	iofs "io/fs"
	"os"
	"path/filepath"
	"runtime"

	"go.trai.ch/relink/internal/core/domain"
	"go.trai.ch/relink/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// ExecPerm is the permission of installed native commands.
const ExecPerm = 0o755

var _ ports.ImageWriter = (*Writer)(nil)

// Writer installs pools as directory images.
type Writer struct{}

// NewWriter creates a new Writer.
func NewWriter() *Writer {
	return &Writer{}
}

type placement struct {
	entry domain.ResourceEntry
	dest  string
}

// Write installs the pool into a staging directory next to root, then replaces root.
// An existing root is only replaced if it is empty or holds an image.
func (w *Writer) Write(ctx context.Context, root string, platform domain.Platform, pool *domain.Pool) error {
	if err := checkReplaceable(root); err != nil {
		return err
	}

	placements, err := place(pool, platform)
	if err != nil {
		return err
	}

	parent := filepath.Dir(root)
	if err := os.MkdirAll(parent, domain.DirPerm); err != nil {
		return zerr.With(domain.Cause(domain.ErrImageWriteFailed, err), "path", parent)
	}
	staging, err := os.MkdirTemp(parent, ".relink-*")
	if err != nil {
		return zerr.With(domain.Cause(domain.ErrImageWriteFailed, err), "path", parent)
	}
	defer os.RemoveAll(staging) //nolint:errcheck // Staging is gone after a successful rename

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for _, p := range placements {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			return install(staging, p)
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	if err := WriteMetadata(staging, installedModules(pool)); err != nil {
		return err
	}

	if err := os.RemoveAll(root); err != nil {
		return zerr.With(domain.Cause(domain.ErrImageWriteFailed, err), "path", root)
	}
	if err := os.Rename(staging, root); err != nil {
		return zerr.With(domain.Cause(domain.ErrImageWriteFailed, err), "path", root)
	}
	return nil
}

// installedModules returns the pool modules, marking those without a catalog entry.
func installedModules(pool *domain.Pool) []domain.ModuleInfo {
	catalogued := make(map[string]bool, len(pool.Modules))
	for _, e := range pool.Entries {
		if e.Path == domain.CatalogPath(e.Module) {
			catalogued[e.Module] = true
		}
	}

	modules := make([]domain.ModuleInfo, 0, len(pool.Modules))
	for _, m := range pool.Modules {
		m.Uncatalogued = !catalogued[m.Name]
		modules = append(modules, m)
	}
	return modules
}

// place computes the installed path of every entry, rejecting collisions.
func place(pool *domain.Pool, platform domain.Platform) ([]placement, error) {
	placements := make([]placement, 0, len(pool.Entries))
	seen := make(map[string]string, len(pool.Entries))

	for _, e := range pool.Entries {
		rel, err := e.ModulePath()
		if err != nil {
			return nil, err
		}

		var dest string
		if e.Type.IsPrimary() {
			dest = filepath.Join(domain.ModulesDirName, e.Module, filepath.FromSlash(rel))
		} else {
			dest = filepath.FromSlash(domain.InstalledPath(e.Type, rel, platform))
		}
		if !filepath.IsLocal(dest) {
			return nil, zerr.With(domain.Tag(domain.ErrImageWriteFailed, "path", e.Path), "reason", "escapes image root")
		}

		if other, dup := seen[dest]; dup {
			return nil, zerr.With(zerr.With(domain.Tag(domain.ErrImageWriteFailed, "path", e.Path), "conflicts_with", other), "installed", filepath.ToSlash(dest))
		}
		seen[dest] = e.Path
		placements = append(placements, placement{entry: e, dest: dest})
	}

	return placements, nil
}

func install(staging string, p placement) error {
	dest := filepath.Join(staging, p.dest)
	if err := os.MkdirAll(filepath.Dir(dest), domain.DirPerm); err != nil {
		return zerr.With(domain.Cause(domain.ErrImageWriteFailed, err), "path", p.entry.Path)
	}

	perm := os.FileMode(domain.FilePerm)
	if p.entry.Type == domain.TypeNativeCmd {
		perm = ExecPerm
	}

	src, err := p.entry.Content.Open()
	if err != nil {
		return zerr.With(err, "path", p.entry.Path)
	}
	defer src.Close() //nolint:errcheck // Read-only stream

	//nolint:gosec // Destination is confined to the staging directory
	out, err := os.OpenFile(dest, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, perm)
	if err != nil {
		return zerr.With(domain.Cause(domain.ErrImageWriteFailed, err), "path", p.entry.Path)
	}
	if _, err := io.Copy(out, src); err != nil {
		_ = out.Close()
		return zerr.With(domain.Cause(domain.ErrImageWriteFailed, err), "path", p.entry.Path)
	}
	if err := out.Close(); err != nil {
		return zerr.With(domain.Cause(domain.ErrImageWriteFailed, err), "path", p.entry.Path)
	}
	return nil
}

func checkReplaceable(root string) error {
	entries, err := os.ReadDir(root)
	if err != nil {
		if errors.Is(err, iofs.ErrNotExist) {
			return nil
		}
		return zerr.With(domain.Cause(domain.ErrImageWriteFailed, err), "path", root)
	}
	if len(entries) == 0 {
		return nil
	}
	if _, err := os.Stat(filepath.Join(root, domain.ImageMetadataFileName)); err != nil {
		return zerr.With(domain.Tag(domain.ErrImageWriteFailed, "path", root), "reason", "output exists and is not an image")
	}
	return nil
}
