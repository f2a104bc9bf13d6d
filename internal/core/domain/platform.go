package domain

import "strings"

const (
	// LibDirName is the directory holding native libraries in an installed image.
	LibDirName = "lib"
	// BinDirName is the directory holding native commands in an installed image.
	BinDirName = "bin"

	osWindows = "windows"
)

// windowsRelocatedSuffixes lists the native library suffixes that the image
// builder moves from lib/ to bin/ on Windows. Any new suffix has to be added here.
var windowsRelocatedSuffixes = []string{".dll", ".diz", ".pdb", ".map"}

// Platform identifies a target operating system and architecture.
type Platform struct {
	OS   string
	Arch string
}

// ParsePlatform parses an "os-arch" string such as "linux-x64" or "windows-aarch64".
func ParsePlatform(s string) (Platform, error) {
	osName, arch, ok := strings.Cut(strings.TrimSpace(s), "-")
	if !ok || osName == "" || arch == "" {
		return Platform{}, Tag(ErrInvalidPlatform, "platform", s)
	}
	return Platform{OS: strings.ToLower(osName), Arch: strings.ToLower(arch)}, nil
}

// String returns the "os-arch" form of the platform.
func (p Platform) String() string {
	return p.OS + "-" + p.Arch
}

// IsWindows reports whether the platform targets Windows.
func (p Platform) IsWindows() bool {
	return p.OS == osWindows
}

// InstalledPath returns where a module-relative resource physically lives
// in an image built for the given platform.
//
// On Windows, native libraries with a relocated suffix are moved from lib/ to bin/.
// Everything else is installed at its module-relative path.
func InstalledPath(t ResourceType, rel string, p Platform) string {
	if !p.IsWindows() || t != TypeNativeLib {
		return rel
	}
	if !hasRelocatedSuffix(rel) {
		return rel
	}
	if rest, ok := strings.CutPrefix(rel, LibDirName+"/"); ok {
		return BinDirName + "/" + rest
	}
	return rel
}

func hasRelocatedSuffix(rel string) bool {
	for _, suffix := range windowsRelocatedSuffixes {
		if strings.HasSuffix(rel, suffix) {
			return true
		}
	}
	return false
}
