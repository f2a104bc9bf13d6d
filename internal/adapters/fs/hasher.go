package fs

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/relink/internal/core/domain"
	"go.trai.ch/relink/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Hasher = (*Hasher)(nil)

// Hasher computes xxhash digests of resources and image trees.
type Hasher struct {
	walker *Walker
}

// NewHasher creates a new Hasher.
func NewHasher(walker *Walker) *Hasher {
	return &Hasher{walker: walker}
}

// ComputeFileHash computes the XXHash of a file's content.
func (h *Hasher) ComputeFileHash(path string) (uint64, error) {
	f, err := os.Open(path) //nolint:gosec // Path is controlled by caller
	if err != nil {
		return 0, zerr.With(domain.Cause(domain.ErrFileHashFailed, err), "path", path)
	}
	defer f.Close() //nolint:errcheck // Best effort close in defer

	hasher := xxhash.New()
	if _, err := io.Copy(hasher, f); err != nil {
		return 0, zerr.With(domain.Cause(domain.ErrFileHashFailed, err), "path", path)
	}

	return hasher.Sum64(), nil
}

// ComputeContentHash returns the hex digest of the content's bytes.
func (h *Hasher) ComputeContentHash(content domain.Content) (string, error) {
	sum, err := h.contentSum(content)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%016x", sum), nil
}

func (h *Hasher) contentSum(content domain.Content) (uint64, error) {
	rc, err := content.Open()
	if err != nil {
		return 0, domain.Cause(domain.ErrFileHashFailed, err)
	}
	defer rc.Close() //nolint:errcheck // Read-only stream

	hasher := xxhash.New()
	if _, err := io.Copy(hasher, rc); err != nil {
		return 0, domain.Cause(domain.ErrFileHashFailed, err)
	}
	return hasher.Sum64(), nil
}

// ComputeEntriesHash hashes the path, type and content of every entry in path order.
func (h *Hasher) ComputeEntriesHash(entries []domain.ResourceEntry) (string, error) {
	sorted := slices.Clone(entries)
	slices.SortFunc(sorted, func(a, b domain.ResourceEntry) int {
		return strings.Compare(a.Path, b.Path)
	})

	hasher := xxhash.New()
	for _, e := range sorted {
		_, _ = hasher.WriteString(e.Path)
		_, _ = hasher.Write([]byte{0})
		_, _ = hasher.WriteString(e.Type.String())
		_, _ = hasher.Write([]byte{0})

		sum, err := h.contentSum(e.Content)
		if err != nil {
			return "", zerr.With(err, "path", e.Path)
		}
		if err := binary.Write(hasher, binary.LittleEndian, sum); err != nil {
			return "", zerr.Wrap(err, "failed to write hash to digest")
		}
	}

	return fmt.Sprintf("%016x", hasher.Sum64()), nil
}

// ComputeTreeHash hashes the relative path and content of every file below root.
func (h *Hasher) ComputeTreeHash(root string) (string, error) {
	files, err := h.walker.ListFiles(root, nil)
	if err != nil {
		return "", zerr.With(domain.Cause(domain.ErrFileHashFailed, err), "root", root)
	}

	hasher := xxhash.New()
	for _, rel := range files {
		_, _ = hasher.WriteString(rel)
		_, _ = hasher.Write([]byte{0})

		sum, err := h.ComputeFileHash(filepath.Join(root, filepath.FromSlash(rel)))
		if err != nil {
			return "", err
		}
		if err := binary.Write(hasher, binary.LittleEndian, sum); err != nil {
			return "", zerr.Wrap(err, "failed to write hash to digest")
		}
	}

	return fmt.Sprintf("%016x", hasher.Sum64()), nil
}
