// Package key defines the canonical set of configuration identifiers.
package key

// Playback - shared by every player backend.
const (
	PlayerVolume         = "player.volume"
	PlayerSeekStep       = "player.seek_step"
	PlayerFollowInterval = "player.follow_interval"
)

// mpv - the native media element used by the CLI.
const (
	MpvBinary     = "mpv.binary"
	MpvSocketWait = "mpv.socket_wait"
	MpvExtraArgs  = "mpv.extra_args"
)

// Script loader - SDK bootstrap and remote script cache.
const (
	LoaderPollInterval = "loader.poll_interval"
	LoaderMaxWait      = "loader.max_wait"
	LoaderCacheTTL     = "loader.cache_ttl"
)

// YouTube widget defaults.
const (
	YouTubeSDKURL      = "youtube.sdk_url"
	YouTubeSDKProperty = "youtube.sdk_property"
	YouTubeWrapperID   = "youtube.wrapper_id"
	YouTubeEmbedID     = "youtube.embed_id"
	YouTubeWidth       = "youtube.width"
	YouTubeHeight      = "youtube.height"
)

// Logging.
const (
	LogsWrite = "logs.write"
	LogsLevel = "logs.level"
	LogsJson  = "logs.json"
)

// CLI and terminal rendering.
const (
	IconsVariant    = "icons.variant"
	CliColored      = "cli.colored"
	CliVersionCheck = "cli.version_check"
)
