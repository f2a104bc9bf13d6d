// Package catalog records the non-primary resources of each module during a pass
// and reads the recorded catalogs back.
package catalog

import (
	"strconv"

	"go.trai.ch/relink/internal/core/domain"
)

// Separator splits the type ordinal from the path in a catalog line.
const Separator = "|"

// Line is one record of a module catalog.
// Path is module-relative and already remapped to the installed location.
type Line struct {
	Type domain.ResourceType
	Path string
}

// String encodes the line as "<ordinal>|<path>".
func (l Line) String() string {
	return strconv.Itoa(l.Type.Ordinal()) + Separator + l.Path
}
