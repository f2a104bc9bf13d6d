package archive

import (
	"errors"
	iofs "io/fs"
	"iter"
	"os"
	"slices"
	"strings"
	"sync"

	"go.trai.ch/relink/internal/core/domain"
	"go.trai.ch/zerr"
)

// ClassesSection holds the primary resources of an exploded module.
const ClassesSection = "classes"

// sections maps the top-level directories of an exploded module to the type of their files.
var sections = map[string]domain.ResourceType{
	ClassesSection: domain.TypeClassOrResource,
	"conf":         domain.TypeConfig,
	"include":      domain.TypeHeaderFile,
	"legal":        domain.TypeLegalNotice,
	"man":          domain.TypeManPage,
	"bin":          domain.TypeNativeCmd,
	"lib":          domain.TypeNativeLib,
}

// Exploded reads a module laid out on disk by section, one directory per resource type.
// Primary resources live below classes/ and lose that prefix; every other
// section keeps its directory as part of the resource path.
type Exploded struct {
	module string
	dir    string

	mu        sync.Mutex
	populated bool
	entries   []Entry
}

var _ Archive = (*Exploded)(nil)

// NewExploded creates an Exploded archive for module rooted at dir.
func NewExploded(module, dir string) (*Exploded, error) {
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return nil, zerr.With(domain.Tag(domain.ErrModuleNotFound, "module", module), "dir", dir)
	}
	return &Exploded{module: module, dir: dir}, nil
}

// ModuleName returns the module name.
func (x *Exploded) ModuleName() string {
	return x.module
}

// RootPath returns the module directory.
func (x *Exploded) RootPath() string {
	return x.dir
}

// Open walks the module directory if it was not walked yet.
func (x *Exploded) Open() error {
	x.mu.Lock()
	defer x.mu.Unlock()
	return x.ensure()
}

// Close forgets the walked entries.
func (x *Exploded) Close() error {
	x.mu.Lock()
	defer x.mu.Unlock()
	x.entries = nil
	x.populated = false
	return nil
}

// Entries returns every file of the module in lexical order.
func (x *Exploded) Entries() (iter.Seq[Entry], error) {
	x.mu.Lock()
	defer x.mu.Unlock()
	if err := x.ensure(); err != nil {
		return nil, err
	}
	return slices.Values(slices.Clone(x.entries)), nil
}

func (x *Exploded) ensure() error {
	if x.populated {
		return nil
	}
	entries, err := x.collect()
	if err != nil {
		return zerr.With(err, "module", x.module)
	}
	x.entries = entries
	x.populated = true
	return nil
}

func (x *Exploded) collect() ([]Entry, error) {
	var entries []Entry
	err := iofs.WalkDir(os.DirFS(x.dir), ".", func(p string, d iofs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if p == "." {
			return nil
		}

		section, rest, nested := strings.Cut(p, "/")
		typ, known := sections[section]
		if !known || (!nested && !d.IsDir()) {
			return domain.Tag(domain.ErrUnknownSection, "entry", p)
		}
		if d.IsDir() {
			return nil
		}

		resource := p
		if typ.IsPrimary() {
			resource = rest
		}
		entries = append(entries, fileEntry(x.dir, p, resource, typ))
		return nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrUnknownSection) {
			return nil, err
		}
		return nil, domain.Cause(domain.ErrModuleListFailed, err)
	}
	return entries, nil
}
