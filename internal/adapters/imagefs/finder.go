package imagefs

import (
	"errors"
	"io"
	iofs "io/fs"
	"os"
	"path"
	"path/filepath"
	"slices"

	"go.trai.ch/relink/internal/adapters/fs"
	"go.trai.ch/relink/internal/core/domain"
	"go.trai.ch/relink/internal/core/ports"
	"go.trai.ch/zerr"
)

var (
	_ ports.ImageSource   = (*Source)(nil)
	_ ports.ModuleFinder  = (*Finder)(nil)
	_ ports.ModuleReader  = (*Reader)(nil)
	_ ports.ResourceSizer = (*Reader)(nil)
)

// Source opens directory images.
type Source struct {
	walker *fs.Walker
}

// NewSource creates a new Source.
func NewSource(walker *fs.Walker) *Source {
	return &Source{walker: walker}
}

// Open reads the metadata of the image at root.
func (s *Source) Open(root string) (ports.ModuleFinder, error) {
	meta, err := ReadMetadata(root)
	if err != nil {
		return nil, err
	}
	return &Finder{root: root, walker: s.walker, modules: meta.Modules}, nil
}

// Finder resolves the modules of one directory image.
type Finder struct {
	root    string
	walker  *fs.Walker
	modules []domain.ModuleInfo
}

// Find returns a reader over the module's primary resources.
func (f *Finder) Find(name string) (ports.ModuleReader, error) {
	if !slices.ContainsFunc(f.modules, func(m domain.ModuleInfo) bool { return m.Name == name }) {
		return nil, domain.Tag(domain.ErrModuleNotFound, "module", name)
	}

	dir := ModuleDir(f.root, name)
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return nil, zerr.With(domain.Tag(domain.ErrModuleNotFound, "module", name), "dir", dir)
	}

	return &Reader{dir: dir, walker: f.walker}, nil
}

// Modules returns the modules listed in the image metadata, sorted by name.
func (f *Finder) Modules() ([]domain.ModuleInfo, error) {
	return slices.Clone(f.modules), nil
}

// Reader reads the primary resources of one module directory.
type Reader struct {
	dir    string
	walker *fs.Walker
}

// List returns every file of the module directory, the catalog included.
func (r *Reader) List() ([]string, error) {
	files, err := r.walker.ListFiles(r.dir, nil)
	if err != nil {
		return nil, zerr.With(domain.Cause(domain.ErrModuleListFailed, err), "dir", r.dir)
	}
	return files, nil
}

// Open opens a module-relative resource.
func (r *Reader) Open(name string) (io.ReadCloser, error) {
	p, err := r.resolve(name)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(p) //nolint:gosec // Path is confined to the module directory
	if err != nil {
		return nil, r.openError(name, err)
	}
	return f, nil
}

// Size returns the size of a module-relative resource.
func (r *Reader) Size(name string) (int64, error) {
	p, err := r.resolve(name)
	if err != nil {
		return 0, err
	}
	info, err := os.Stat(p)
	if err != nil {
		return 0, r.openError(name, err)
	}
	return info.Size(), nil
}

// Close does nothing; files are opened per call.
func (r *Reader) Close() error {
	return nil
}

func (r *Reader) resolve(name string) (string, error) {
	if name == "" || path.IsAbs(name) || !filepath.IsLocal(filepath.FromSlash(name)) {
		return "", domain.Tag(domain.ErrResourceNotFound, "path", name)
	}
	return filepath.Join(r.dir, filepath.FromSlash(name)), nil
}

func (r *Reader) openError(name string, err error) error {
	if errors.Is(err, iofs.ErrNotExist) {
		return zerr.With(domain.Cause(domain.ErrResourceNotFound, err), "path", name)
	}
	return zerr.With(domain.Cause(domain.ErrResourceReadFailed, err), "path", name)
}
