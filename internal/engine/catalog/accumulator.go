package catalog

import (
	"slices"
	"sync"
)

// Accumulator collects catalog lines per module for the duration of one pass.
// Add may be called concurrently; Modules and Lines must only be called after
// every Add has returned.
type Accumulator struct {
	mu    sync.Mutex
	lines map[string][]string
}

// NewAccumulator creates an empty Accumulator.
func NewAccumulator() *Accumulator {
	return &Accumulator{lines: make(map[string][]string)}
}

// Add appends a line to the module's catalog, creating it on first use.
func (a *Accumulator) Add(module string, line Line) {
	encoded := line.String()

	a.mu.Lock()
	defer a.mu.Unlock()
	a.lines[module] = append(a.lines[module], encoded)
}

// Modules returns the names of every module with a catalog, sorted.
func (a *Accumulator) Modules() []string {
	a.mu.Lock()
	defer a.mu.Unlock()

	modules := make([]string, 0, len(a.lines))
	for m := range a.lines {
		modules = append(modules, m)
	}
	slices.Sort(modules)
	return modules
}

// Lines returns the encoded lines of a module, sorted and without duplicates.
func (a *Accumulator) Lines(module string) []string {
	a.mu.Lock()
	lines := slices.Clone(a.lines[module])
	a.mu.Unlock()

	slices.Sort(lines)
	// Equal lines name the same installed file; the image writer rejects
	// two resources installed there, so only one line is kept.
	return slices.Compact(lines)
}
