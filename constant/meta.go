// Package constant defines immutable application-level identifiers.
package constant

const (
	// Gxplayer is the application identifier used for filesystem paths, env prefixes and CLI branding.
	Gxplayer = "gxplayer"

	// Version is the current application semantic version string.
	Version = "0.3.0"

	// UserAgent is sent when fetching remote SDK scripts.
	UserAgent = Gxplayer + "/" + Version
)

// Build metadata, injected with -ldflags "-X".
var (
	BuiltAt  = "unknown"
	BuiltBy  = "unknown"
	Revision = "unknown"
)
