package catalog_test

import (
	"io"
	"math/rand/v2"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/relink/internal/core/domain"
	"go.trai.ch/relink/internal/engine/catalog"
)

func readContent(t *testing.T, c domain.Content) []byte {
	t.Helper()
	rc, err := c.Open()
	require.NoError(t, err)
	defer func() { _ = rc.Close() }()
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	return data
}

func jdkLikeEntries() []domain.ResourceEntry {
	return []domain.ResourceEntry{
		entry("base", "java/lang/Object.class", domain.TypeClassOrResource),
		entry("base", "lib/libjava.so", domain.TypeNativeLib),
		entry("base", "lib/server/libjvm.so", domain.TypeNativeLib),
		entry("base", "conf/security/policy", domain.TypeConfig),
		entry("base", "conf/net.properties", domain.TypeConfig),
		entry("base", "bin/java", domain.TypeNativeCmd),
		entry("base", "legal/LICENSE", domain.TypeLegalNotice),
		entry("base", "include/jni.h", domain.TypeHeaderFile),
		entry("base", "man/man1/java.1", domain.TypeManPage),
		entry("desktop", "lib/libawt.so", domain.TypeNativeLib),
		entry("desktop", "legal/LICENSE", domain.TypeLegalNotice),
		entry("desktop", "java/awt/Frame.class", domain.TypeClassOrResource),
	}
}

func emitAll(t *testing.T, platform domain.Platform, entries []domain.ResourceEntry) map[string][]byte {
	t.Helper()
	acc := catalog.NewAccumulator()
	c := catalog.NewClassifier(platform, acc)
	for _, e := range entries {
		_, err := c.Classify(e)
		require.NoError(t, err)
	}

	emitted, err := catalog.Emit(acc)
	require.NoError(t, err)

	out := make(map[string][]byte, len(emitted))
	for _, e := range emitted {
		assert.Equal(t, domain.CatalogPath(e.Module), e.Path)
		assert.Equal(t, domain.TypeClassOrResource, e.Type)
		out[e.Module] = readContent(t, e.Content)
	}
	return out
}

func TestEmit_Golden(t *testing.T) {
	catalogs := emitAll(t, linux, jdkLikeEntries())
	require.Len(t, catalogs, 2)

	g := goldie.New(t)
	g.Assert(t, "catalog_base_linux", catalogs["base"])
	g.Assert(t, "catalog_desktop_linux", catalogs["desktop"])
}

func TestEmit_Golden_Windows(t *testing.T) {
	entries := []domain.ResourceEntry{
		entry("base", "lib/java.dll", domain.TypeNativeLib),
		entry("base", "lib/java.pdb", domain.TypeNativeLib),
		entry("base", "lib/java.map", domain.TypeNativeLib),
		entry("base", "lib/java.diz", domain.TypeNativeLib),
		entry("base", "lib/java.lib", domain.TypeNativeLib),
		entry("base", "lib/server/jvm.dll", domain.TypeNativeLib),
		entry("base", "bin/java.exe", domain.TypeNativeCmd),
		entry("base", "conf/net.properties", domain.TypeConfig),
	}
	catalogs := emitAll(t, windows, entries)

	g := goldie.New(t)
	g.Assert(t, "catalog_base_windows", catalogs["base"])
}

func TestEmit_OrderIndependent(t *testing.T) {
	entries := jdkLikeEntries()
	want := emitAll(t, linux, entries)

	rng := rand.New(rand.NewPCG(1, 2))
	for range 10 {
		shuffled := append([]domain.ResourceEntry(nil), entries...)
		rng.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })
		assert.Equal(t, want, emitAll(t, linux, shuffled))
	}
}

func TestEmit_ModulesSorted(t *testing.T) {
	acc := catalog.NewAccumulator()
	acc.Add("zeta", catalog.Line{Type: domain.TypeConfig, Path: "conf/z"})
	acc.Add("alpha", catalog.Line{Type: domain.TypeConfig, Path: "conf/a"})
	acc.Add("mid", catalog.Line{Type: domain.TypeConfig, Path: "conf/m"})

	emitted, err := catalog.Emit(acc)
	require.NoError(t, err)

	var modules []string
	for _, e := range emitted {
		modules = append(modules, e.Module)
	}
	assert.Equal(t, []string{"alpha", "mid", "zeta"}, modules)
}

func TestEmit_NoTrailingNewline(t *testing.T) {
	acc := catalog.NewAccumulator()
	acc.Add("m", catalog.Line{Type: domain.TypeNativeLib, Path: "lib/libm.so"})

	emitted, err := catalog.Emit(acc)
	require.NoError(t, err)
	require.Len(t, emitted, 1)
	assert.Equal(t, "6|lib/libm.so", string(readContent(t, emitted[0].Content)))
}

func TestEmit_Empty(t *testing.T) {
	emitted, err := catalog.Emit(catalog.NewAccumulator())
	require.NoError(t, err)
	assert.Empty(t, emitted)
}

func TestEmit_ModuleWithoutLines(t *testing.T) {
	acc := catalog.NewAccumulator()
	acc.RegisterEmpty("ghost")

	_, err := catalog.Emit(acc)
	require.ErrorIs(t, err, domain.ErrEmptyCatalog)
}

func TestEmit_DuplicateLinesCollapse(t *testing.T) {
	acc := catalog.NewAccumulator()
	line := catalog.Line{Type: domain.TypeConfig, Path: "conf/x"}
	acc.Add("m", line)
	acc.Add("m", line)

	assert.Equal(t, []string{"1|conf/x"}, acc.Lines("m"))
}
