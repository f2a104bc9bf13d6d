package archive

import (
	"errors"
	"io"
	iofs "io/fs"
	"os"
	"path"
	"path/filepath"

	"go.trai.ch/relink/internal/core/domain"
	"go.trai.ch/relink/internal/core/ports"
	"go.trai.ch/zerr"
)

type backing int

const (
	// fileBacked entries are read directly from a file below root.
	fileBacked backing = iota
	// moduleBacked entries are read through the module's live reader.
	moduleBacked
)

// Entry is one resource of an archive. Its bytes are resolved on every call
// to Size or Open and never cached.
type Entry struct {
	// Path is module-relative and slash-separated.
	Path string
	Type domain.ResourceType

	kind backing

	// fileBacked
	root string
	file string

	// moduleBacked
	module string
	finder ports.ModuleFinder
}

var _ domain.Content = Entry{}

func fileEntry(root, file, path string, typ domain.ResourceType) Entry {
	return Entry{Path: path, Type: typ, kind: fileBacked, root: root, file: file}
}

func moduleEntry(finder ports.ModuleFinder, module, path string) Entry {
	return Entry{Path: path, Type: domain.TypeClassOrResource, kind: moduleBacked, module: module, finder: finder}
}

// Size returns the number of bytes of the resource.
func (e Entry) Size() (int64, error) {
	switch e.kind {
	case fileBacked:
		info, err := os.Stat(e.location())
		if err != nil {
			return 0, e.fileError(err)
		}
		return info.Size(), nil
	case moduleBacked:
		return e.moduleSize()
	default:
		return 0, e.unknownBacking()
	}
}

// Open returns a stream over the resource.
func (e Entry) Open() (io.ReadCloser, error) {
	switch e.kind {
	case fileBacked:
		f, err := os.Open(e.location()) //nolint:gosec // Path is confined to the archive root
		if err != nil {
			return nil, e.fileError(err)
		}
		return f, nil
	case moduleBacked:
		return e.moduleOpen()
	default:
		return nil, e.unknownBacking()
	}
}

// String describes where the entry is read from.
func (e Entry) String() string {
	if e.kind == moduleBacked {
		return "module:" + e.module + "/" + e.Path
	}
	return "file:" + e.location()
}

func (e Entry) unknownBacking() error {
	return zerr.With(domain.Tag(domain.ErrResourceReadFailed, "backing", int(e.kind)), "path", e.Path)
}

func (e Entry) location() string {
	return filepath.Join(e.root, filepath.FromSlash(e.file))
}

func (e Entry) fileError(err error) error {
	sentinel := domain.ErrResourceReadFailed
	if errors.Is(err, iofs.ErrNotExist) {
		sentinel = domain.ErrResourceNotFound
	}
	return zerr.With(zerr.With(domain.Cause(sentinel, err), "path", e.Path), "location", e.location())
}

func (e Entry) moduleSize() (int64, error) {
	reader, err := e.finder.Find(e.module)
	if err != nil {
		return 0, zerr.With(err, "module", e.module)
	}
	defer reader.Close() //nolint:errcheck // Read-only reader

	if sizer, ok := reader.(ports.ResourceSizer); ok {
		size, err := sizer.Size(e.Path)
		if err != nil {
			return 0, zerr.With(zerr.With(err, "path", e.Path), "module", e.module)
		}
		return size, nil
	}

	rc, err := reader.Open(e.Path)
	if err != nil {
		return 0, zerr.With(zerr.With(err, "path", e.Path), "module", e.module)
	}
	defer rc.Close() //nolint:errcheck // Read-only stream

	n, err := io.Copy(io.Discard, rc)
	if err != nil {
		return 0, zerr.With(domain.Cause(domain.ErrResourceReadFailed, err), "path", e.Path)
	}
	return n, nil
}

func (e Entry) moduleOpen() (io.ReadCloser, error) {
	reader, err := e.finder.Find(e.module)
	if err != nil {
		return nil, zerr.With(err, "module", e.module)
	}

	rc, err := reader.Open(e.Path)
	if err != nil {
		_ = reader.Close()
		return nil, zerr.With(zerr.With(err, "path", e.Path), "module", e.module)
	}
	return &moduleStream{ReadCloser: rc, reader: reader}, nil
}

// moduleStream closes the module reader together with the stream.
type moduleStream struct {
	io.ReadCloser
	reader ports.ModuleReader
}

func (s *moduleStream) Close() error {
	return errors.Join(s.ReadCloser.Close(), s.reader.Close())
}

// isLocal reports whether a slash-separated path stays inside its root.
func isLocal(p string) bool {
	return p != "" && !path.IsAbs(p) && filepath.IsLocal(filepath.FromSlash(p))
}
