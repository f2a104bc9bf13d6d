package domain

import (
	"fmt"

	"go.trai.ch/zerr"
)

// Tag annotates a sentinel with metadata. The result still matches the sentinel
// with errors.Is, which zerr.With alone does not preserve.
func Tag(sentinel error, key string, value any) error {
	return zerr.With(zerr.Wrap(sentinel, ""), key, value)
}

// Cause wraps an underlying failure with a sentinel; both match with errors.Is.
func Cause(sentinel, cause error) error {
	return fmt.Errorf("%w: %w", sentinel, cause)
}

// Configuration errors.
var (
	// ErrModuleNotFound is returned when a module is not part of the installed platform.
	ErrModuleNotFound = zerr.New("module not part of the installed platform")

	// ErrPlatformUndetermined is returned when the anchor module does not declare a target platform.
	ErrPlatformUndetermined = zerr.New("target platform of the anchor module cannot be determined")

	// ErrInvalidPlatform is returned when a platform string is not of the form os-arch.
	ErrInvalidPlatform = zerr.New("invalid platform, expected format: os-arch")

	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrUnsupportedConfigVersion is returned when the config file declares an unknown version.
	ErrUnsupportedConfigVersion = zerr.New("unsupported config version")

	// ErrMissingOutput is returned when the link plan has no output directory.
	ErrMissingOutput = zerr.New("output directory is required")

	// ErrMissingAnchor is returned when the link plan has no anchor module.
	ErrMissingAnchor = zerr.New("anchor module is required")

	// ErrNoModules is returned when the link plan lists no modules.
	ErrNoModules = zerr.New("no modules specified")

	// ErrInvalidModuleName is returned when a module name contains invalid characters.
	ErrInvalidModuleName = zerr.New("module name can only contain alphanumeric characters, dots, hyphens and underscores")

	// ErrMissingImage is returned when a module must be reconstructed but no base image is configured.
	ErrMissingImage = zerr.New("module has no source and no base image is configured")
)

// Catalog errors.
var (
	// ErrCorruptCatalog is returned when a catalog line cannot be decoded.
	// Catalogs are machine-generated, so this means the image is broken.
	ErrCorruptCatalog = zerr.New("corrupt module catalog")

	// ErrMissingCatalog is returned when a module lacks its catalog resource.
	ErrMissingCatalog = zerr.New("module lacks its catalog")

	// ErrUnknownResourceType is returned when an ordinal does not map to a resource type.
	ErrUnknownResourceType = zerr.New("unknown resource type")

	// ErrUnexpectedTopEntry is returned when a top-level image file reaches the catalog stage.
	ErrUnexpectedTopEntry = zerr.New("top-level image files cannot be catalogued")

	// ErrEmptyCatalog is returned when a module is listed in the accumulator without any line.
	ErrEmptyCatalog = zerr.New("module listed, but no resources recorded")

	// ErrInvalidResourcePath is returned when a resource path does not start with its module prefix.
	ErrInvalidResourcePath = zerr.New("resource path is not inside its module")

	// ErrCatalogPathNotInstalled is returned when a catalog references a file missing from the image.
	ErrCatalogPathNotInstalled = zerr.New("catalog references a file that is not installed")
)

// I/O errors.
var (
	// ErrResourceNotFound is returned by module readers when a path does not exist.
	ErrResourceNotFound = zerr.New("resource not found")

	// ErrResourceReadFailed is returned when resource bytes cannot be read.
	ErrResourceReadFailed = zerr.New("failed to read resource")

	// ErrCatalogReadFailed is returned when the catalog resource cannot be read.
	ErrCatalogReadFailed = zerr.New("failed to read module catalog")

	// ErrModuleListFailed is returned when a module's resources cannot be listed.
	ErrModuleListFailed = zerr.New("failed to list module resources")

	// ErrImageWriteFailed is returned when the output image cannot be written.
	ErrImageWriteFailed = zerr.New("failed to write image")

	// ErrImageMetadataFailed is returned when image metadata cannot be read or parsed.
	ErrImageMetadataFailed = zerr.New("failed to read image metadata")

	// ErrUnknownSection is returned when an exploded module contains an unknown top-level entry.
	ErrUnknownSection = zerr.New("unknown module section")

	// ErrFileHashFailed is returned when hashing resource content fails.
	ErrFileHashFailed = zerr.New("failed to hash resource content")

	// ErrStoreReadFailed is returned when the catalog record store cannot be read.
	ErrStoreReadFailed = zerr.New("failed to read catalog records")

	// ErrStoreUnmarshalFailed is returned when the catalog record store cannot be decoded.
	ErrStoreUnmarshalFailed = zerr.New("failed to unmarshal catalog records")

	// ErrStoreMarshalFailed is returned when the catalog records cannot be encoded.
	ErrStoreMarshalFailed = zerr.New("failed to marshal catalog records")

	// ErrStoreWriteFailed is returned when the catalog record store cannot be written.
	ErrStoreWriteFailed = zerr.New("failed to write catalog records")
)

// Application errors.
var (
	// ErrLinkFailed is returned when a link run fails.
	ErrLinkFailed = zerr.New("link failed")

	// ErrVerifyFailed is returned when an image fails verification.
	ErrVerifyFailed = zerr.New("image verification failed")
)
