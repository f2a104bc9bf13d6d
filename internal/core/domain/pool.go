package domain

import "go.trai.ch/zerr"

// ModuleInfo describes a module taking part in a pass.
// Platform is the raw "os-arch" string the module was built for; it may be empty.
// Uncatalogued marks an installed module that was written without a catalog
// because it has no non-primary resources.
type ModuleInfo struct {
	Name         string `yaml:"name"`
	Platform     string `yaml:"platform,omitempty"`
	Uncatalogued bool   `yaml:"uncatalogued,omitempty"`
}

// Pool is the set of modules and resources processed by one pass.
// Entries are kept in the order they were added.
type Pool struct {
	Modules []ModuleInfo
	Entries []ResourceEntry
}

// FindModule returns the module with the given name.
func (p *Pool) FindModule(name string) (ModuleInfo, bool) {
	for _, m := range p.Modules {
		if m.Name == name {
			return m, true
		}
	}
	return ModuleInfo{}, false
}

// TargetPlatform returns the platform of the anchor module.
// The anchor module must be present and must declare a platform.
func (p *Pool) TargetPlatform(anchor string) (Platform, error) {
	m, ok := p.FindModule(anchor)
	if !ok || m.Platform == "" {
		return Platform{}, Tag(ErrPlatformUndetermined, "anchor", anchor)
	}
	platform, err := ParsePlatform(m.Platform)
	if err != nil {
		return Platform{}, zerr.With(err, "anchor", anchor)
	}
	return platform, nil
}
