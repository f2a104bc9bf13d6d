package config

// Linkfile represents the structure of the relink.yaml configuration file.
type Linkfile struct {
	Version     string                `yaml:"version"`
	Anchor      string                `yaml:"anchor"`
	Image       string                `yaml:"image"`
	Output      string                `yaml:"output"`
	Parallelism int                   `yaml:"parallelism"`
	State       string                `yaml:"state"`
	Modules     map[string]*ModuleDTO `yaml:"modules"`
}

// ModuleDTO represents a module definition in the configuration.
type ModuleDTO struct {
	Platform string `yaml:"platform"`
	Source   string `yaml:"source"`
}
