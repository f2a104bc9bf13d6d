package catalog

import (
	"strconv"
	"strings"

	"go.trai.ch/relink/internal/core/domain"
	"go.trai.ch/zerr"
)

// Parse decodes catalog bytes into lines, in file order.
// Empty lines are skipped. Any other malformed line fails with domain.ErrCorruptCatalog.
func Parse(data []byte) ([]Line, error) {
	var lines []Line
	for i, raw := range strings.Split(string(data), "\n") {
		if raw == "" {
			continue
		}
		line, err := parseLine(raw)
		if err != nil {
			return nil, zerr.With(zerr.With(err, "line", i+1), "content", raw)
		}
		lines = append(lines, line)
	}
	return lines, nil
}

func parseLine(raw string) (Line, error) {
	ordinal, path, ok := strings.Cut(raw, Separator)
	if !ok {
		return Line{}, domain.Tag(domain.ErrCorruptCatalog, "reason", "missing separator")
	}

	n, err := strconv.Atoi(ordinal)
	if err != nil {
		return Line{}, domain.Cause(domain.ErrCorruptCatalog, err)
	}

	typ, err := domain.ResourceTypeFromOrdinal(n)
	if err != nil {
		return Line{}, domain.Cause(domain.ErrCorruptCatalog, err)
	}
	if typ == domain.TypeTop || typ.IsPrimary() {
		return Line{}, domain.Tag(domain.ErrCorruptCatalog, "type", typ.String())
	}

	if path == "" {
		return Line{}, domain.Tag(domain.ErrCorruptCatalog, "reason", "empty path")
	}

	return Line{Type: typ, Path: path}, nil
}
