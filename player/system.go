package player

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"github.com/anisan-cli/streamkit/constant"
	"github.com/anisan-cli/streamkit/log"
	"github.com/anisan-cli/streamkit/source"
)

// System opens the stream with the platform's default URL handler. Request
// headers cannot be passed, so hosts that check Referer may refuse it.
type System struct{}

func (System) Name() string {
	return "system"
}

func (System) Play(video *source.Video, _ string) error {
	target, err := sanitizeMediaTarget(video.URL)
	if err != nil {
		return fmt.Errorf("invalid media target: %w", err)
	}

	cmd, ok := command(target)
	if !ok {
		return fmt.Errorf("unsupported OS: %s", runtime.GOOS)
	}

	if len(video.Headers) > 0 {
		log.With(log.Fields{"url": video.URL}).Warn("system handler ignores request headers")
	}

	return cmd.Start()
}

func command(input string) (*exec.Cmd, bool) {
	switch runtime.GOOS {
	case constant.Windows:
		rundll := filepath.Join(os.Getenv("SYSTEMROOT"), "System32", "rundll32.exe")
		return exec.Command(rundll, "url.dll,FileProtocolHandler", input), true
	case constant.Darwin:
		return exec.Command("open", input), true
	case constant.Linux:
		return exec.Command("xdg-open", input), true
	case constant.Android:
		return exec.Command("termux-open", input), true
	default:
		return nil, false
	}
}
