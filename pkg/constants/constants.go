// Package constants provides shared constants used throughout the hostlists codebase.
// This includes registry layout names, timeouts, file permissions, and other
// configuration values that should be consistent across the application.
package constants

import "time"

// Registry layout constants name the files and directories that make up a
// filter registry checkout
const (
	// FiltersDir is the directory holding one subdirectory per filter list
	FiltersDir = "filters"

	// ServicesDir is the directory holding one YAML descriptor per blockable service
	ServicesDir = "services"

	// TagsDir is the directory holding tag metadata
	TagsDir = "tags"

	// LocalesDir is the directory holding per-locale translation files
	LocalesDir = "locales"

	// AssetsDir is the default directory for published build artifacts
	AssetsDir = "assets"

	// MetadataFile is the per-filter descriptor file
	MetadataFile = "metadata.json"

	// ConfigurationFile is the per-filter compiler configuration file
	ConfigurationFile = "configuration.json"

	// RevisionFile is the per-filter revision state file
	RevisionFile = "revision.json"

	// FilterFile is the compiled filter list inside a filter directory
	FilterFile = "filter.txt"

	// TagsMetadataFile is the tag registry file inside TagsDir
	TagsMetadataFile = "metadata.json"

	// TagsLocaleFile is the tag translation file inside a locale directory
	TagsLocaleFile = "tags.json"

	// FiltersLocaleFile is the filter translation file inside a locale directory
	FiltersLocaleFile = "filters.json"
)

// Output constants name the aggregated artifacts written to the assets directory
const (
	// FiltersIndexFile is the production filter index
	FiltersIndexFile = "filters.json"

	// FiltersDevIndexFile is the full filter index including non-production lists
	FiltersDevIndexFile = "filters-dev.json"

	// FiltersI18NFile is the folded filter and tag translation map
	FiltersI18NFile = "filters_i18n.json"

	// ServicesIndexFile is the grouped service index
	ServicesIndexFile = "services.json"

	// FilterAssetPrefix is prepended to a filter ID to form its published filename
	FilterAssetPrefix = "filter_"

	// FilterAssetSuffix is appended to a filter ID to form its published filename
	FilterAssetSuffix = ".txt"

	// DefaultDownloadURLBase is the base URL under which filter assets are published
	DefaultDownloadURLBase = "https://agentstation.github.io/hostlists/assets"
)

// Expiry constants define how textual update periods convert to seconds
const (
	// SecondsPerDay converts a day count from an expires field to seconds
	SecondsPerDay = 86400

	// SecondsPerHour converts an hour count from an expires field to seconds
	SecondsPerHour = 3600

	// DefaultExpirySeconds is used when a filter declares no parseable update period
	DefaultExpirySeconds = SecondsPerDay
)

// Locale constants
const (
	// DefaultLocale is the canonical locale every translation key must exist in
	DefaultLocale = "en"
)

// Timeout constants define various timeout durations used in the application
const (
	// DefaultTimeout is the standard timeout for general operations
	DefaultTimeout = 10 * time.Second

	// CompileTimeout bounds a single filter list compilation
	CompileTimeout = 5 * time.Minute

	// CommandTimeout is the default timeout for CLI commands
	CommandTimeout = 10 * time.Minute
)

// File permission constants define standard Unix file permissions
const (
	// DirPermissions is the default permission for created directories (rwxr-xr-x)
	DirPermissions = 0755

	// FilePermissions is the default permission for created files (rw-r--r--)
	FilePermissions = 0644
)

// Limit constants define various limits and capacities
const (
	// MaxConcurrentCompiles is the maximum number of filter lists compiled concurrently
	MaxConcurrentCompiles = 5

	// ChannelBufferSize is the default buffer size for channels
	ChannelBufferSize = 100

	// MaxIDLength is the maximum allowed length for filter and service IDs
	MaxIDLength = 64
)
