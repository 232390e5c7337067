// Package player hands resolved videos to an external media player.
package player

import (
	"os/exec"

	"github.com/anisan-cli/streamkit/log"
	"github.com/anisan-cli/streamkit/source"
)

// Player plays a video without blocking until playback ends.
type Player interface {
	Name() string
	Play(video *source.Video, title string) error
}

// Find returns the player binary called name when it is on PATH and the
// system default handler otherwise.
func Find(name string) Player {
	if name != "" {
		if path, err := exec.LookPath(name); err == nil {
			return &MPV{Path: path}
		}
		log.Warnf("player %s not found in PATH, using the system handler", name)
	}

	return System{}
}
