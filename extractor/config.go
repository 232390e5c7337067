package extractor

import (
	"regexp"

	"github.com/anisan-cli/streamkit/util"
)

// Strategy selects how stream URLs are read out of the player script.
type Strategy int

const (
	// FileList reads every file:"…" entry of a `sources: [ … ],` array,
	// taking the quality from the entry's label:"…".
	FileList Strategy = iota

	// FirstFile reads the first file of a `sources: [{file: …` array and
	// one quality per value of the qualityLabels object, if any.
	FirstFile

	// BareList reads the first string of a `sources: ["…"` array.
	BareList
)

func (s Strategy) String() string {
	switch s {
	case FileList:
		return "file-list"
	case FirstFile:
		return "first-file"
	case BareList:
		return "bare-list"
	default:
		return "unknown"
	}
}

// LabelFunc turns a host family and a raw quality into the label shown to users.
type LabelFunc func(host, quality string) string

// HostLabel renders "Host: quality", or just "Host" when the quality is unknown.
func HostLabel(host, quality string) string {
	if quality == "" {
		return util.Capitalize(host)
	}
	return util.Capitalize(host) + ": " + quality
}

// MirrorLabel renders "Host Mirror".
func MirrorLabel(host, _ string) string {
	return util.Capitalize(host) + " Mirror"
}

// FixedLabel ignores its input and always renders label.
func FixedLabel(label string) LabelFunc {
	return func(string, string) string {
		return label
	}
}

// Config describes one embed host family.
type Config struct {
	// Name is the unique registry key.
	Name string

	// Pattern recognises embed URLs. Submatch 1 names the host family.
	Pattern *regexp.Regexp

	// HostName overrides the host family taken from Pattern.
	HostName string

	// ScriptMarker is searched in inline scripts to find the player setup.
	// Defaults to "sources".
	ScriptMarker string

	// Unpack makes the marker search run on unpacked script text.
	// Packed scripts are decoded either way.
	Unpack bool

	Sources Strategy
	Label   LabelFunc

	// Headers are sent with the page request and attached to every video.
	Headers map[string]string

	// ExpandHLS replaces a master playlist by one video per variant.
	ExpandHLS bool

	// Canonical rewrites matched URLs to https://www.<match>.html before fetching.
	Canonical bool
}

func (c Config) marker() string {
	if c.ScriptMarker == "" {
		return "sources"
	}
	return c.ScriptMarker
}

func (c Config) label(host, quality string) string {
	if c.Label == nil {
		return HostLabel(host, quality)
	}
	return c.Label(host, quality)
}
