package telemetry_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/relink/internal/adapters/telemetry"
	"go.trai.ch/relink/internal/core/domain"
	"go.trai.ch/relink/internal/core/ports"
)

func TestNoOp(t *testing.T) {
	tel := telemetry.NewNoOp()

	ctx, vertex := tel.Record(context.Background(), "stage catalog", ports.WithGroup("pass"))
	got, ok := ports.VertexFromContext(ctx)
	require.True(t, ok)
	assert.Same(t, vertex, got)

	n, err := vertex.Stdout().Write([]byte("discarded"))
	require.NoError(t, err)
	assert.Equal(t, 9, n)

	vertex.Log(domain.LogLevelInfo, "ignored")
	vertex.Cached()
	vertex.Complete(errors.New("ignored"))
	assert.NoError(t, tel.Close())
}
