// Package config provides the link plan loader for relink.
package config

import (
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"

	"go.trai.ch/relink/internal/core/domain"
	"go.trai.ch/relink/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// SupportedVersion is the only accepted value of the version key.
const SupportedVersion = "1"

var validModuleNameRegex = regexp.MustCompile(`^[A-Za-z0-9._-]+$`)

var _ ports.ConfigLoader = (*Loader)(nil)

// Loader implements ports.ConfigLoader using a YAML file.
type Loader struct {
	Logger ports.Logger
}

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger}
}

// Load reads the link plan at path. A directory is searched for relink.yaml.
func (l *Loader) Load(path string) (*domain.LinkPlan, error) {
	configPath, err := resolveConfigPath(path)
	if err != nil {
		return nil, err
	}

	var linkfile Linkfile
	if err := readAndUnmarshalYAML(configPath, &linkfile); err != nil {
		return nil, zerr.With(err, "path", configPath)
	}

	if err := validateLinkfile(&linkfile); err != nil {
		return nil, zerr.With(err, "path", configPath)
	}

	configDir := filepath.Dir(configPath)
	plan := &domain.LinkPlan{
		Anchor:      linkfile.Anchor,
		Output:      resolvePath(configDir, linkfile.Output),
		StatePath:   resolvePath(configDir, linkfile.State),
		Parallelism: linkfile.Parallelism,
		Modules:     make([]domain.ModulePlan, 0, len(linkfile.Modules)),
	}
	if linkfile.State == "" {
		plan.StatePath = resolvePath(configDir, domain.DefaultStatePath())
	}
	if linkfile.Image != "" {
		plan.Image = resolvePath(configDir, linkfile.Image)
	}

	reconstructed := 0
	for name, dto := range linkfile.Modules {
		module := domain.ModulePlan{Name: name}
		if dto != nil {
			module.Platform = dto.Platform
			if dto.Source != "" {
				module.Source = resolvePath(configDir, dto.Source)
			}
		}
		if module.Source == "" {
			reconstructed++
		}
		plan.Modules = append(plan.Modules, module)
	}
	slices.SortFunc(plan.Modules, func(a, b domain.ModulePlan) int {
		return strings.Compare(a.Name, b.Name)
	})

	if plan.Image != "" && reconstructed == 0 {
		l.Logger.Warn("base image is not used, every module has a source", "image", plan.Image)
	}
	if plan.Parallelism < 0 {
		l.Logger.Warn("negative parallelism, using the number of CPUs", "parallelism", plan.Parallelism)
		plan.Parallelism = 0
	}

	return plan, nil
}

func resolveConfigPath(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", zerr.With(domain.Cause(domain.ErrConfigReadFailed, err), "path", path)
	}
	if info, err := os.Stat(abs); err == nil && info.IsDir() {
		return filepath.Join(abs, domain.ConfigFileName), nil
	}
	return abs, nil
}

func validateLinkfile(linkfile *Linkfile) error {
	if linkfile.Version != SupportedVersion {
		return domain.Tag(domain.ErrUnsupportedConfigVersion, "version", linkfile.Version)
	}
	if linkfile.Output == "" {
		return domain.Tag(domain.ErrMissingOutput, "key", "output")
	}
	if linkfile.Anchor == "" {
		return domain.Tag(domain.ErrMissingAnchor, "key", "anchor")
	}
	if len(linkfile.Modules) == 0 {
		return domain.Tag(domain.ErrNoModules, "key", "modules")
	}
	if _, ok := linkfile.Modules[linkfile.Anchor]; !ok {
		return zerr.With(domain.Tag(domain.ErrModuleNotFound, "module", linkfile.Anchor), "reason", "anchor is not a linked module")
	}

	for name, dto := range linkfile.Modules {
		if err := validateModule(name, dto, linkfile.Image); err != nil {
			return err
		}
	}
	return nil
}

func validateModule(name string, dto *ModuleDTO, image string) error {
	if !validModuleNameRegex.MatchString(name) {
		return domain.Tag(domain.ErrInvalidModuleName, "module", name)
	}
	if dto == nil {
		dto = &ModuleDTO{}
	}
	if dto.Platform != "" {
		if _, err := domain.ParsePlatform(dto.Platform); err != nil {
			return zerr.With(err, "module", name)
		}
	}
	if dto.Source == "" && image == "" {
		return domain.Tag(domain.ErrMissingImage, "module", name)
	}
	return nil
}

func resolvePath(configDir, path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Clean(filepath.Join(configDir, path))
}

// readAndUnmarshalYAML reads a YAML file and unmarshals it into the target struct.
func readAndUnmarshalYAML[T any](configPath string, target *T) error {
	// #nosec G304 -- configPath is provided by the user
	configFile, err := os.ReadFile(configPath)
	if err != nil {
		return domain.Cause(domain.ErrConfigReadFailed, err)
	}

	if parseErr := yaml.Unmarshal(configFile, target); parseErr != nil {
		return domain.Cause(domain.ErrConfigParseFailed, parseErr)
	}

	return nil
}
