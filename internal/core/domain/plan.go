package domain

import "time"

// ModulePlan describes how one module is sourced for a link.
// An empty Source means the module is reconstructed from the base image.
type ModulePlan struct {
	Name     string
	Platform string
	Source   string
}

// LinkPlan is the validated content of a link configuration file.
// All paths are absolute.
type LinkPlan struct {
	Anchor      string
	Image       string
	Output      string
	StatePath   string
	Parallelism int
	Modules     []ModulePlan
}

// CatalogRecord remembers the catalog emitted for a module by a previous link.
type CatalogRecord struct {
	Module    string    `json:"module,omitzero"`
	Digest    string    `json:"digest,omitzero"`
	Lines     int       `json:"lines,omitzero"`
	Timestamp time.Time `json:"timestamp,omitzero"`
}
