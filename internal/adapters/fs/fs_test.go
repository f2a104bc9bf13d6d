package fs_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/relink/internal/adapters/fs"
	"go.trai.ch/relink/internal/core/domain"
)

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), domain.DirPerm))
	require.NoError(t, os.WriteFile(path, []byte(content), domain.FilePerm))
}

func TestWalker_ListFiles(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, ".git/config", "git config")
	writeFile(t, root, "ignored/file", "ignored")
	writeFile(t, root, "a/b.txt", "b")
	writeFile(t, root, "a.txt", "a")
	writeFile(t, root, "lib/libm.so", "ELF")

	files, err := fs.NewWalker().ListFiles(root, []string{"ignored"})
	require.NoError(t, err)
	assert.Equal(t, []string{"a.txt", "a/b.txt", "lib/libm.so"}, files)
}

func TestWalker_ListFiles_MissingRoot(t *testing.T) {
	_, err := fs.NewWalker().ListFiles(filepath.Join(t.TempDir(), "absent"), nil)
	require.Error(t, err)
}

func TestWalker_WalkFiles_StopsEarly(t *testing.T) {
	root := t.TempDir()
	for _, rel := range []string{"a", "b", "c"} {
		writeFile(t, root, rel, rel)
	}

	var seen []string
	for path, err := range fs.NewWalker().WalkFiles(root, nil) {
		require.NoError(t, err)
		seen = append(seen, path)
		if len(seen) == 2 {
			break
		}
	}
	assert.Len(t, seen, 2)
}

func TestHasher_ComputeContentHash(t *testing.T) {
	h := fs.NewHasher(fs.NewWalker())

	a, err := h.ComputeContentHash(domain.BytesContent("6|lib/libm.so"))
	require.NoError(t, err)
	assert.Len(t, a, 16)

	b, err := h.ComputeContentHash(domain.BytesContent("6|lib/libm.so"))
	require.NoError(t, err)
	assert.Equal(t, a, b)

	c, err := h.ComputeContentHash(domain.BytesContent("6|lib/libn.so"))
	require.NoError(t, err)
	assert.NotEqual(t, a, c)
}

func TestHasher_ComputeEntriesHash_OrderIndependent(t *testing.T) {
	h := fs.NewHasher(fs.NewWalker())

	x := domain.ResourceEntry{Module: "m", Path: "/m/A.class", Type: domain.TypeClassOrResource, Content: domain.BytesContent("a")}
	y := domain.ResourceEntry{Module: "m", Path: "/m/lib/libm.so", Type: domain.TypeNativeLib, Content: domain.BytesContent("elf")}

	first, err := h.ComputeEntriesHash([]domain.ResourceEntry{x, y})
	require.NoError(t, err)
	second, err := h.ComputeEntriesHash([]domain.ResourceEntry{y, x})
	require.NoError(t, err)
	assert.Equal(t, first, second)

	// The type takes part in the digest.
	y.Type = domain.TypeConfig
	third, err := h.ComputeEntriesHash([]domain.ResourceEntry{x, y})
	require.NoError(t, err)
	assert.NotEqual(t, first, third)
}

func TestHasher_ComputeTreeHash(t *testing.T) {
	h := fs.NewHasher(fs.NewWalker())

	left := t.TempDir()
	right := t.TempDir()
	for _, root := range []string{left, right} {
		writeFile(t, root, "bin/java", "#!")
		writeFile(t, root, "modules/m/A.class", "class A")
	}

	l, err := h.ComputeTreeHash(left)
	require.NoError(t, err)
	r, err := h.ComputeTreeHash(right)
	require.NoError(t, err)
	assert.Equal(t, l, r)

	writeFile(t, right, "modules/m/A.class", "class A v2")
	r, err = h.ComputeTreeHash(right)
	require.NoError(t, err)
	assert.NotEqual(t, l, r)
}

func TestHasher_ComputeFileHash_Missing(t *testing.T) {
	_, err := fs.NewHasher(fs.NewWalker()).ComputeFileHash(filepath.Join(t.TempDir(), "absent"))
	require.ErrorIs(t, err, domain.ErrFileHashFailed)
}

func TestVerifier_MissingOutputs(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "lib/libm.so", "ELF")
	writeFile(t, root, "conf/m.properties", "k=v")
	require.NoError(t, os.MkdirAll(filepath.Join(root, "bin", "dir"), domain.DirPerm))

	verifier := fs.NewVerifier()

	missing, err := verifier.MissingOutputs(root, []string{"lib/libm.so", "conf/m.properties"})
	require.NoError(t, err)
	assert.Empty(t, missing)

	missing, err = verifier.MissingOutputs(root, []string{"bin/tool", "lib/libm.so", "bin/dir", "man/m.1"})
	require.NoError(t, err)
	assert.Equal(t, []string{"bin/tool", "bin/dir", "man/m.1"}, missing)
}
