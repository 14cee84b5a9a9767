package constant

// YouTube iframe API defaults.
const (
	YouTubeSDKURL      = "https://www.youtube.com/iframe_api"
	YouTubeSDKProperty = "YT.Player"
	YouTubeWrapperID   = "youtube-wrapper"
	YouTubeEmbedID     = "youtube-embedded"
	YouTubeWidth       = 640
	YouTubeHeight      = 360

	// YouTubeAspect divides an automatic width to obtain the embed height.
	YouTubeAspect = 1.77
)
