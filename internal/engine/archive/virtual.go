package archive

import (
	"errors"
	"io"
	"iter"
	"slices"
	"sync"

	"go.trai.ch/relink/internal/core/domain"
	"go.trai.ch/relink/internal/core/ports"
	"go.trai.ch/relink/internal/engine/catalog"
	"go.trai.ch/zerr"
)

// Virtual reconstructs a module from an installed image: non-primary resources
// come from the module catalog and are read below the image root, primary
// resources come from the module's live reader.
type Virtual struct {
	module string
	root   string
	finder ports.ModuleFinder

	mu        sync.Mutex
	populated bool
	entries   []Entry
}

var _ Archive = (*Virtual)(nil)

// NewVirtual creates a Virtual archive for module over the image installed at root.
// The module must be resolvable through finder.
func NewVirtual(module, root string, finder ports.ModuleFinder) (*Virtual, error) {
	reader, err := finder.Find(module)
	if err != nil {
		return nil, zerr.With(err, "module", module)
	}
	if err := reader.Close(); err != nil {
		return nil, zerr.With(domain.Cause(domain.ErrResourceReadFailed, err), "module", module)
	}

	return &Virtual{module: module, root: root, finder: finder}, nil
}

// ModuleName returns the module name.
func (v *Virtual) ModuleName() string {
	return v.module
}

// RootPath returns the image root.
func (v *Virtual) RootPath() string {
	return v.root
}

// Open collects the entries if they are not collected yet.
func (v *Virtual) Open() error {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.ensure()
}

// Close forgets the collected entries. The next Open collects them again.
func (v *Virtual) Close() error {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.entries = nil
	v.populated = false
	return nil
}

// Entries returns the reconstructed entries: catalogued resources first, in
// catalog order, then every path listed by the module reader.
func (v *Virtual) Entries() (iter.Seq[Entry], error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if err := v.ensure(); err != nil {
		return nil, err
	}
	return slices.Values(slices.Clone(v.entries)), nil
}

func (v *Virtual) ensure() error {
	if v.populated {
		return nil
	}
	entries, err := v.collect()
	if err != nil {
		return zerr.With(err, "module", v.module)
	}
	v.entries = entries
	v.populated = true
	return nil
}

func (v *Virtual) collect() ([]Entry, error) {
	reader, err := v.finder.Find(v.module)
	if err != nil {
		return nil, err
	}
	defer reader.Close() //nolint:errcheck // Read-only reader

	lines, err := v.catalogLines(reader)
	if err != nil {
		return nil, err
	}

	paths, err := reader.List()
	if err != nil {
		return nil, domain.Cause(domain.ErrModuleListFailed, err)
	}

	entries := make([]Entry, 0, len(lines)+len(paths))
	for _, line := range lines {
		if !isLocal(line.Path) {
			return nil, domain.Tag(domain.ErrCorruptCatalog, "path", line.Path)
		}
		entries = append(entries, fileEntry(v.root, line.Path, line.Path, line.Type))
	}
	for _, p := range paths {
		entries = append(entries, moduleEntry(v.finder, v.module, p))
	}

	return entries, nil
}

// catalogLines returns the recorded non-primary resources of the module.
// A module installed without a catalog has none.
func (v *Virtual) catalogLines(reader ports.ModuleReader) ([]catalog.Line, error) {
	modules, err := v.finder.Modules()
	if err != nil {
		return nil, err
	}
	for _, m := range modules {
		if m.Name == v.module && m.Uncatalogued {
			return nil, nil
		}
	}

	data, err := readCatalog(reader)
	if err != nil {
		return nil, err
	}
	return catalog.Parse(data)
}

func readCatalog(reader ports.ModuleReader) ([]byte, error) {
	rc, err := reader.Open(domain.CatalogFileName)
	if err != nil {
		if errors.Is(err, domain.ErrResourceNotFound) {
			return nil, domain.Tag(domain.ErrMissingCatalog, "resource", domain.CatalogFileName)
		}
		return nil, domain.Cause(domain.ErrCatalogReadFailed, err)
	}
	defer rc.Close() //nolint:errcheck // Read-only stream

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, domain.Cause(domain.ErrCatalogReadFailed, err)
	}
	return data, nil
}
