// Package constant defines immutable application-level identifiers and configuration defaults.
package constant

const (
	// App is the canonical application identifier used for filesystem paths and CLI branding.
	App = "streamkit"

	// Version is the current application semantic version string.
	Version = "0.3.1"

	// SourcesRepo is where "sources update" fetches scripts from by default.
	SourcesRepo = "https://raw.githubusercontent.com/anisan-cli/streamkit/main/sources/"

	// UserAgent is the default HTTP User-Agent string used for requests to embed hosts.
	UserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
)

// Build metadata, injected with -ldflags "-X".
var (
	BuiltAt  = "unknown"
	BuiltBy  = "unknown"
	Revision = "unknown"
)
