package catalog

import (
	"go.trai.ch/relink/internal/core/domain"
	"go.trai.ch/zerr"
)

// Decision is the outcome of classifying one entry.
type Decision int

const (
	// Keep passes the entry through unchanged.
	Keep Decision = iota
	// Drop removes the entry from the pass output.
	Drop
	// Record keeps the entry and adds a line to its module catalog.
	Record
)

// String returns the lower-case name of the decision.
func (d Decision) String() string {
	switch d {
	case Keep:
		return "keep"
	case Drop:
		return "drop"
	case Record:
		return "record"
	default:
		return "unknown"
	}
}

// Decide classifies an entry without side effects.
// For Record decisions the returned line is the one to add to the module catalog.
func Decide(entry domain.ResourceEntry, platform domain.Platform) (Decision, Line, error) {
	switch entry.Type {
	case domain.TypeTop:
		return Keep, Line{}, zerr.With(domain.Tag(domain.ErrUnexpectedTopEntry, "path", entry.Path), "module", entry.Module)
	case domain.TypeClassOrResource:
		// A catalog left over from a previous pass would otherwise stack with the new one.
		if entry.Path == domain.CatalogPath(entry.Module) {
			return Drop, Line{}, nil
		}
		return Keep, Line{}, nil
	}

	rel, err := entry.ModulePath()
	if err != nil {
		return Keep, Line{}, err
	}
	return Record, Line{Type: entry.Type, Path: domain.InstalledPath(entry.Type, rel, platform)}, nil
}

// Classifier classifies entries for one target platform and records
// non-primary resources into an accumulator.
type Classifier struct {
	platform domain.Platform
	acc      *Accumulator
}

// NewClassifier creates a Classifier recording into acc.
func NewClassifier(platform domain.Platform, acc *Accumulator) *Classifier {
	return &Classifier{platform: platform, acc: acc}
}

// Classify decides what happens to the entry and records it if needed.
// It is safe for concurrent use.
func (c *Classifier) Classify(entry domain.ResourceEntry) (Decision, error) {
	decision, line, err := Decide(entry, c.platform)
	if err != nil {
		return decision, err
	}
	if decision == Record {
		c.acc.Add(entry.Module, line)
	}
	return decision, nil
}
