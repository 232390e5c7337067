package extractor

import (
	"regexp"
	"strings"
)

var (
	VidBomPattern     = regexp.MustCompile(`(v[aie]d[bp][aoe]?m|myvii?d|govad|segavid|v[aei]{1,2}dshar[er]?)\.(?:com|net|org|xyz)(?::\d+)?/(?:embed[/-])?([A-Za-z0-9]+)`)
	UQLoadPattern     = regexp.MustCompile(`(uqload|vudeo)\.[ic]om?/(?:embed-)?([0-9a-zA-Z]+)`)
	StreamWishPattern = regexp.MustCompile(`(embedwish|filelions)\.(?:com|to|sbs)/(?:e/|v/|f/)?([0-9a-zA-Z]+)`)
	JWPlayerPattern   = regexp.MustCompile(`(arabveturk|estream)\.(?:sbs|to)/(?:embed-)?([0-9a-zA-Z]+)`)
)

// VidBomLabel names the VidBom family members: Vidshare streams are always
// SD, Govad and everything else carry the script's own label.
// The family member is taken from the matched host, not from substrings of
// the whole URL, so a path containing "go" or "sha" does not change the label.
func VidBomLabel(host, quality string) string {
	switch {
	case strings.Contains(host, "shar"):
		return "Vidshare: SD"
	case host == "govad":
		return "Govad: " + quality
	default:
		return "Vidbom: " + quality
	}
}

// VidBom covers vidbom, vidshare, govad, myviid and segavid embeds.
func VidBom() Config {
	return Config{
		Name:      "vidbom",
		Pattern:   VidBomPattern,
		Sources:   FileList,
		Label:     VidBomLabel,
		Canonical: true,
	}
}

// StreamWish covers embedwish and filelions. Their player setup is always packed.
func StreamWish() Config {
	return Config{
		Name:    "streamwish",
		Pattern: StreamWishPattern,
		Unpack:  true,
		Sources: FirstFile,
		Label:   HostLabel,
		Headers: map[string]string{
			"Accept-Language": "en-US,en;q=0.5",
		},
	}
}

// UQLoad covers uqload and vudeo mirrors.
func UQLoad() Config {
	return Config{
		Name:      "uqload",
		Pattern:   UQLoadPattern,
		Sources:   BareList,
		Label:     MirrorLabel,
		Canonical: true,
	}
}

// JWPlayer covers plain JW Player embeds serving an HLS master playlist.
func JWPlayer() Config {
	return Config{
		Name:      "jwplayer",
		Pattern:   JWPlayerPattern,
		HostName:  "estream",
		Sources:   FirstFile,
		Label:     HostLabel,
		ExpandHLS: true,
	}
}

// Presets lists the built-in configs in match order.
func Presets() []Config {
	return []Config{VidBom(), UQLoad(), StreamWish(), JWPlayer()}
}
