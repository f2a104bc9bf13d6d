package archive_test

import (
	"bytes"
	"errors"
	"io"
	"slices"
	"strings"
	"sync"

	"go.trai.ch/relink/internal/core/domain"
	"go.trai.ch/relink/internal/core/ports"
)

// memFinder serves modules from memory and counts resolutions.
type memFinder struct {
	mu      sync.Mutex
	modules map[string]map[string]string
	finds   int
	sizes   bool
	// uncatalogued lists modules installed without a catalog.
	uncatalogued map[string]bool
}

func newMemFinder(modules map[string]map[string]string) *memFinder {
	return &memFinder{modules: modules}
}

func (f *memFinder) Find(name string) (ports.ModuleReader, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.finds++
	files, ok := f.modules[name]
	if !ok {
		return nil, domain.Tag(domain.ErrModuleNotFound, "module", name)
	}
	r := &memReader{files: files}
	if f.sizes {
		return &sizingReader{memReader: r}, nil
	}
	return r, nil
}

func (f *memFinder) Modules() ([]domain.ModuleInfo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.ModuleInfo
	for name := range f.modules {
		out = append(out, domain.ModuleInfo{Name: name, Uncatalogued: f.uncatalogued[name]})
	}
	slices.SortFunc(out, func(a, b domain.ModuleInfo) int { return strings.Compare(a.Name, b.Name) })
	return out, nil
}

func (f *memFinder) put(module, path, content string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.modules[module][path] = content
}

func (f *memFinder) resolutions() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.finds
}

type memReader struct {
	files map[string]string
}

func (r *memReader) List() ([]string, error) {
	var out []string
	for p := range r.files {
		if p == domain.CatalogFileName {
			continue
		}
		out = append(out, p)
	}
	slices.Sort(out)
	return out, nil
}

func (r *memReader) Open(path string) (io.ReadCloser, error) {
	data, ok := r.files[path]
	if !ok {
		return nil, domain.Tag(domain.ErrResourceNotFound, "path", path)
	}
	return io.NopCloser(bytes.NewReader([]byte(data))), nil
}

func (r *memReader) Close() error { return nil }

type sizingReader struct {
	*memReader
}

func (r *sizingReader) Size(path string) (int64, error) {
	data, ok := r.files[path]
	if !ok {
		return 0, errors.New("missing")
	}
	// Distinguishable from the drained size.
	return int64(len(data)) * 10, nil
}
