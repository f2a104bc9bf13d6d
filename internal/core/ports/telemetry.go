package ports

import (
	"context"
	"io"

	"go.trai.ch/relink/internal/core/domain"
)

//go:generate mockgen -source=telemetry.go -destination=mocks/mock_telemetry.go -package=mocks

// Telemetry records the progress of a link as a set of vertices.
type Telemetry interface {
	// Record starts a new vertex and returns a context carrying it.
	Record(ctx context.Context, name string, opts ...VertexOption) (context.Context, Vertex)
	// Close flushes and ends the recording session.
	Close() error
}

// Vertex is one unit of recorded work, such as a pass stage or a module.
type Vertex interface {
	// Stdout returns a writer for the vertex output stream.
	Stdout() io.Writer
	// Stderr returns a writer for the vertex error stream.
	Stderr() io.Writer
	// Log records a message with the given level.
	Log(level domain.LogLevel, msg string)
	// Complete marks the vertex as finished, failed if err is not nil.
	Complete(err error)
	// Cached marks the vertex as reused from a previous run.
	Cached()
}

// VertexConfig holds configuration for a starting vertex.
type VertexConfig struct {
	// Group names the logical group the vertex belongs to.
	Group string
}

// VertexOption is a functional option for configuring a vertex.
type VertexOption func(*VertexConfig)

// WithGroup places the vertex in the named group.
func WithGroup(group string) VertexOption {
	return func(c *VertexConfig) {
		c.Group = group
	}
}

type vertexKey struct{}

// ContextWithVertex returns a copy of ctx carrying v.
func ContextWithVertex(ctx context.Context, v Vertex) context.Context {
	return context.WithValue(ctx, vertexKey{}, v)
}

// VertexFromContext returns the vertex carried by ctx, if any.
func VertexFromContext(ctx context.Context) (Vertex, bool) {
	v, ok := ctx.Value(vertexKey{}).(Vertex)
	return v, ok
}
