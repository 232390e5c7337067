// Package version checks for newer releases of the application.
package version

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/anisan-cli/streamkit/filesystem"
	"github.com/anisan-cli/streamkit/network"
	"github.com/anisan-cli/streamkit/where"
	"github.com/metafates/gache"
)

// ReleasesURL is the GitHub endpoint describing the latest release.
const ReleasesURL = "https://api.github.com/repos/anisan-cli/streamkit/releases/latest"

// Getter fetches a URL body.
type Getter interface {
	Get(ctx context.Context, url string, headers map[string]string) (string, error)
}

var (
	versionCacher     *gache.Cache[string]
	versionCacherOnce sync.Once
)

func cacher() *gache.Cache[string] {
	versionCacherOnce.Do(func() {
		versionCacher = gache.New[string](&gache.Options{
			Path:       filepath.Join(where.Cache(), "version.json"),
			Lifetime:   time.Hour * 24 * 2,
			FileSystem: &filesystem.GacheFs{},
		})
	})
	return versionCacher
}

// Latest returns the newest released version, cached for two days.
func Latest() (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return latest(ctx, network.Default(), ReleasesURL)
}

func latest(ctx context.Context, client Getter, url string) (string, error) {
	ver, expired, err := cacher().Get()
	if err != nil {
		return "", err
	}

	if !expired && ver != "" {
		return ver, nil
	}

	body, err := client.Get(ctx, url, map[string]string{"Accept": "application/vnd.github+json"})
	if err != nil {
		return "", err
	}

	var release struct {
		TagName string `json:"tag_name"`
	}

	if err := json.Unmarshal([]byte(body), &release); err != nil {
		return "", fmt.Errorf("decode release: %w", err)
	}

	if release.TagName == "" {
		return "", errors.New("empty tag name")
	}

	version := strings.TrimPrefix(release.TagName, "v")
	_ = cacher().Set(version)
	return version, nil
}
