// Package key defines the canonical set of configuration identifiers used for centralized settings management.
package key

// Source selection.
const (
	DefaultSources = "sources.default"
	SourcesRepo    = "sources.repo"
)

// Embed extraction - these keys tune how embed pages are fetched and turned into videos.
const (
	ExtractPreferredQuality = "extract.preferred_quality"
	ExtractConcurrency      = "extract.concurrency"
	ExtractTimeout          = "extract.timeout"
	ExtractRetries          = "extract.retries"
	ExtractTLSFingerprint   = "extract.tls_fingerprint"
	ExtractCacheTTL         = "extract.cache_ttl"
)

// Network.
const (
	NetworkRateLimit = "network.rate_limit"
	NetworkUserAgent = "network.user_agent"
)

// Playback.
const (
	PlayerName = "player.name"
)

// Inline mode.
const (
	InlineSortVideos = "inline.sort_videos"
)

// Search Interaction - these keys define completion behaviour for the CLI.
const (
	SearchShowURLSuggestions = "search.show_url_suggestions"
)

// Iconography.
const (
	IconsVariant = "icons.variant"
)

// Logging Infrastructure - these keys manage the application's internal diagnostics.
const (
	LogsWrite = "logs.write"
	LogsLevel = "logs.level"
	LogsJson  = "logs.json"
)

// CLI Execution Environment.
const (
	CliColored      = "cli.colored"
	CliVersionCheck = "cli.version_check"
)
