package catalog

import (
	"strings"

	"go.trai.ch/relink/internal/core/domain"
)

// Emit serializes every module catalog held by acc into one synthetic resource
// per module, in module name order. It must run after classification has finished.
func Emit(acc *Accumulator) ([]domain.ResourceEntry, error) {
	modules := acc.Modules()
	out := make([]domain.ResourceEntry, 0, len(modules))

	for _, module := range modules {
		lines := acc.Lines(module)
		if len(lines) == 0 {
			return nil, domain.Tag(domain.ErrEmptyCatalog, "module", module)
		}
		out = append(out, domain.ResourceEntry{
			Module:  module,
			Path:    domain.CatalogPath(module),
			Type:    domain.TypeClassOrResource,
			Content: domain.BytesContent(strings.Join(lines, "\n")),
		})
	}

	return out, nil
}
