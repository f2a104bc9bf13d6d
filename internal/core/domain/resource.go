package domain

import (
	"bytes"
	"io"
	"strconv"
	"strings"

	"go.trai.ch/zerr"
)

// ResourceType classifies a resource inside a module.
// The numeric values are persisted in catalogs and must never be reordered.
type ResourceType int

const (
	// TypeClassOrResource is a class file or generic resource belonging to the module's code.
	TypeClassOrResource ResourceType = iota
	// TypeConfig is a configuration file installed under conf/.
	TypeConfig
	// TypeHeaderFile is a native header installed under include/.
	TypeHeaderFile
	// TypeLegalNotice is a license or notice file installed under legal/.
	TypeLegalNotice
	// TypeManPage is a manual page installed under man/.
	TypeManPage
	// TypeNativeCmd is an executable installed under bin/.
	TypeNativeCmd
	// TypeNativeLib is a native library installed under lib/ (bin/ on Windows for some suffixes).
	TypeNativeLib
	// TypeTop is a file placed directly in the image root. It is never catalogued.
	TypeTop
)

var resourceTypeNames = [...]string{
	TypeClassOrResource: "class-or-resource",
	TypeConfig:          "config",
	TypeHeaderFile:      "header-file",
	TypeLegalNotice:     "legal-notice",
	TypeManPage:         "man-page",
	TypeNativeCmd:       "native-cmd",
	TypeNativeLib:       "native-lib",
	TypeTop:             "top",
}

// String returns the kebab-case name of the type.
func (t ResourceType) String() string {
	if t < 0 || int(t) >= len(resourceTypeNames) {
		return "unknown(" + strconv.Itoa(int(t)) + ")"
	}
	return resourceTypeNames[t]
}

// Ordinal returns the integer persisted for the type in a catalog line.
func (t ResourceType) Ordinal() int {
	return int(t)
}

// IsPrimary reports whether the type is a class or generic resource.
func (t ResourceType) IsPrimary() bool {
	return t == TypeClassOrResource
}

// ResourceTypeFromOrdinal maps a persisted ordinal back to its type.
func ResourceTypeFromOrdinal(ordinal int) (ResourceType, error) {
	if ordinal < 0 || ordinal >= len(resourceTypeNames) {
		return 0, Tag(ErrUnknownResourceType, "ordinal", ordinal)
	}
	return ResourceType(ordinal), nil
}

// Content is the lazily resolved byte stream behind a resource.
// Implementations must not read anything until Size or Open is called.
type Content interface {
	Size() (int64, error)
	Open() (io.ReadCloser, error)
}

// BytesContent is in-memory content, used for synthesized resources.
type BytesContent []byte

// Size returns the length of the buffer.
func (b BytesContent) Size() (int64, error) {
	return int64(len(b)), nil
}

// Open returns a reader over the buffer.
func (b BytesContent) Open() (io.ReadCloser, error) {
	return io.NopCloser(bytes.NewReader(b)), nil
}

// ResourceEntry is one resource flowing through an assembly pass.
// Path is absolute within the pool: "/<module>/<module-relative path>".
type ResourceEntry struct {
	Module  string
	Path    string
	Type    ResourceType
	Content Content
}

// ModulePath returns Path with the leading "/<module>/" removed.
func (e ResourceEntry) ModulePath() (string, error) {
	prefix := "/" + e.Module + "/"
	if e.Module == "" || !strings.HasPrefix(e.Path, prefix) || len(e.Path) == len(prefix) {
		return "", zerr.With(Tag(ErrInvalidResourcePath, "path", e.Path), "module", e.Module)
	}
	return e.Path[len(prefix):], nil
}

// ResourcePath joins a module name and a module-relative path into a pool path.
func ResourcePath(module, rel string) string {
	return "/" + module + "/" + rel
}
