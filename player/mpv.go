package player

import (
	"fmt"
	"net/url"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"

	"github.com/anisan-cli/streamkit/log"
	"github.com/anisan-cli/streamkit/source"
	"github.com/samber/lo"
)

// MPV launches mpv, or any player accepting mpv's command line, detached
// from the terminal so it outlives the command.
type MPV struct {
	Path string
}

func (m *MPV) Name() string {
	return filepath.Base(m.Path)
}

func (m *MPV) Play(video *source.Video, title string) error {
	args, err := Args(video, title)
	if err != nil {
		return err
	}

	cmd := exec.Command(m.Path, args...)
	cmd.SysProcAttr = sysProcAttr()

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start %s: %w", m.Name(), err)
	}

	log.With(log.Fields{"player": m.Name(), "url": video.URL}).Info("playback started")
	return cmd.Process.Release()
}

// Args builds the mpv command line for video. Headers the embed host expects,
// such as Referer, are passed along so the stream does not answer 403.
func Args(video *source.Video, title string) ([]string, error) {
	target, err := sanitizeMediaTarget(video.URL)
	if err != nil {
		return nil, fmt.Errorf("invalid media target: %w", err)
	}

	title = sanitizeTitle(title)
	if title == "" {
		title = video.String()
	}

	args := []string{
		"--no-terminal",
		"--really-quiet",
		fmt.Sprintf("--force-media-title=%s", title),
		"--force-window=yes",
	}

	headers := lo.OmitByKeys(video.Headers, []string{"User-Agent"})
	if ua, ok := video.Headers["User-Agent"]; ok {
		args = append(args, fmt.Sprintf("--user-agent=%s", ua))
	}

	if len(headers) > 0 {
		keys := lo.Keys(headers)
		sort.Strings(keys)

		fields := lo.Map(keys, func(k string, _ int) string {
			// mpv splits the list on commas
			return fmt.Sprintf("%s: %s", k, strings.ReplaceAll(headers[k], ",", "%2C"))
		})
		args = append(args, "--http-header-fields="+strings.Join(fields, ","))
	}

	return append(args, target), nil
}

// sanitizeMediaTarget rejects anything that mpv could read as a flag or a
// non-http protocol.
func sanitizeMediaTarget(link string) (string, error) {
	l := strings.TrimSpace(link)
	if l == "" {
		return "", fmt.Errorf("empty URL")
	}

	if strings.ContainsAny(l, "\x00\n\r") {
		return "", fmt.Errorf("invalid control characters in URL")
	}

	if strings.HasPrefix(l, "-") {
		return "", fmt.Errorf("url must not start with '-' (looks like a flag)")
	}

	if strings.Contains(l, "://") {
		u, err := url.Parse(l)
		if err != nil {
			return "", fmt.Errorf("invalid URL: %w", err)
		}
		switch strings.ToLower(u.Scheme) {
		case "http", "https":
			return l, nil
		default:
			return "", fmt.Errorf("unsupported URL scheme: %s", u.Scheme)
		}
	}

	return filepath.Clean(l), nil
}

func sanitizeTitle(title string) string {
	t := strings.NewReplacer("\n", " ", "\r", " ", "\t", " ", "\x00", "").Replace(title)
	return strings.TrimSpace(t)
}
