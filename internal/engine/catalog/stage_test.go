package catalog_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/relink/internal/core/domain"
	"go.trai.ch/relink/internal/core/ports"
	"go.trai.ch/relink/internal/core/ports/mocks"
	"go.trai.ch/relink/internal/engine/catalog"
	"go.trai.ch/relink/internal/engine/pass"
	"go.uber.org/mock/gomock"
)

func newRunner(t *testing.T) *pass.Runner {
	t.Helper()
	ctrl := gomock.NewController(t)

	vertex := mocks.NewMockVertex(ctrl)
	vertex.EXPECT().Log(gomock.Any(), gomock.Any()).AnyTimes()
	vertex.EXPECT().Complete(gomock.Any()).AnyTimes()

	telemetry := mocks.NewMockTelemetry(ctrl)
	telemetry.EXPECT().Record(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, _ string, _ ...ports.VertexOption) (context.Context, ports.Vertex) {
			return ctx, vertex
		}).AnyTimes()

	return pass.NewRunner(telemetry)
}

func catalogsOf(t *testing.T, pool *domain.Pool) map[string]string {
	t.Helper()
	out := make(map[string]string)
	for _, e := range pool.Entries {
		if e.Path == domain.CatalogPath(e.Module) {
			_, dup := out[e.Module]
			require.False(t, dup, "module %s has more than one catalog", e.Module)
			out[e.Module] = string(readContent(t, e.Content))
		}
	}
	return out
}

func TestStage_EndToEnd(t *testing.T) {
	pool := &domain.Pool{
		Modules: []domain.ModuleInfo{{Name: "m", Platform: "linux-x64"}},
		Entries: []domain.ResourceEntry{
			entry("m", "lib/libm.so", domain.TypeNativeLib),
			entry("m", "A.class", domain.TypeClassOrResource),
			entry("m", "B.class", domain.TypeClassOrResource),
		},
	}

	out, err := newRunner(t).Run(context.Background(), pool, 4, catalog.NewStage("m"))
	require.NoError(t, err)

	require.Len(t, out.Entries, 4)
	assert.Equal(t, "/m/lib/libm.so", out.Entries[0].Path)
	assert.Equal(t, "/m/A.class", out.Entries[1].Path)
	assert.Equal(t, "/m/B.class", out.Entries[2].Path)
	assert.Equal(t, map[string]string{"m": "6|lib/libm.so"}, catalogsOf(t, out))
}

func TestStage_RelinkDoesNotStackCatalogs(t *testing.T) {
	pool := &domain.Pool{
		Modules: []domain.ModuleInfo{{Name: "m", Platform: "linux-x64"}},
		Entries: []domain.ResourceEntry{
			entry("m", "lib/libm.so", domain.TypeNativeLib),
			entry("m", "A.class", domain.TypeClassOrResource),
		},
	}
	runner := newRunner(t)

	first, err := runner.Run(context.Background(), pool, 2, catalog.NewStage("m"))
	require.NoError(t, err)

	// The previous output, catalog included, becomes the next input.
	second, err := runner.Run(context.Background(), first, 2, catalog.NewStage("m"))
	require.NoError(t, err)

	assert.Len(t, second.Entries, len(first.Entries))
	assert.Equal(t, catalogsOf(t, first), catalogsOf(t, second))
}

func TestStage_CurrentPassOnly(t *testing.T) {
	stale := domain.ResourceEntry{
		Module:  "m",
		Path:    domain.CatalogPath("m"),
		Type:    domain.TypeClassOrResource,
		Content: domain.BytesContent("1|conf/gone.properties"),
	}
	pool := &domain.Pool{
		Modules: []domain.ModuleInfo{{Name: "m", Platform: "linux-x64"}},
		Entries: []domain.ResourceEntry{stale, entry("m", "conf/kept.properties", domain.TypeConfig)},
	}

	out, err := newRunner(t).Run(context.Background(), pool, 1, catalog.NewStage("m"))
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"m": "1|conf/kept.properties"}, catalogsOf(t, out))
}

func TestStage_PlatformUndetermined(t *testing.T) {
	pool := &domain.Pool{
		Modules: []domain.ModuleInfo{{Name: "m"}},
		Entries: []domain.ResourceEntry{entry("m", "lib/libm.so", domain.TypeNativeLib)},
	}

	_, err := newRunner(t).Run(context.Background(), pool, 1, catalog.NewStage("base"))
	require.ErrorIs(t, err, domain.ErrPlatformUndetermined)
}

func TestStage_TopEntryFailsPass(t *testing.T) {
	pool := &domain.Pool{
		Modules: []domain.ModuleInfo{{Name: "m", Platform: "linux-x64"}},
		Entries: []domain.ResourceEntry{
			entry("m", "lib/libm.so", domain.TypeNativeLib),
			entry("m", "release", domain.TypeTop),
		},
	}

	out, err := newRunner(t).Run(context.Background(), pool, 1, catalog.NewStage("m"))
	require.ErrorIs(t, err, domain.ErrUnexpectedTopEntry)
	assert.Nil(t, out)
}

func TestStage_Deterministic(t *testing.T) {
	pool := &domain.Pool{
		Modules: []domain.ModuleInfo{{Name: "base", Platform: "linux-x64"}, {Name: "desktop"}},
		Entries: jdkLikeEntries(),
	}
	runner := newRunner(t)

	serial, err := runner.Run(context.Background(), pool, 1, catalog.NewStage("base"))
	require.NoError(t, err)

	for range 5 {
		parallel, err := runner.Run(context.Background(), pool, 8, catalog.NewStage("base"))
		require.NoError(t, err)
		assert.Equal(t, catalogsOf(t, serial), catalogsOf(t, parallel))
	}
}
