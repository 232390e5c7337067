package scraper

import (
	"context"
	"crypto/sha256"
	"fmt"

	"github.com/anisan-cli/streamkit/filesystem"
)

// Fetcher downloads a remote file.
type Fetcher interface {
	Get(ctx context.Context, url string, headers map[string]string) (string, error)
}

// Update downloads remoteURL and replaces localPath when the content differs.
// It reports whether the file changed.
func Update(ctx context.Context, client Fetcher, remoteURL, localPath string) (bool, error) {
	body, err := client.Get(ctx, remoteURL, nil)
	if err != nil {
		return false, fmt.Errorf("download %s: %w", remoteURL, err)
	}

	fs := filesystem.API()
	remote := []byte(body)
	if local, err := fs.ReadFile(localPath); err == nil && sha256.Sum256(local) == sha256.Sum256(remote) {
		return false, nil
	}

	tmpPath := localPath + ".tmp"
	if err := fs.WriteFile(tmpPath, remote, 0o644); err != nil {
		return false, err
	}

	if err := fs.Rename(tmpPath, localPath); err != nil {
		_ = fs.Remove(tmpPath)
		return false, err
	}

	Forget(localPath)
	return true, nil
}
