// Package cache keeps scraped search and episode results on disk for a week.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/anisan-cli/streamkit/filesystem"
	"github.com/anisan-cli/streamkit/log"
	"github.com/anisan-cli/streamkit/where"
)

const TTL = 7 * 24 * time.Hour

// Dir is where entries are stored.
func Dir() string {
	dir := filepath.Join(where.Cache(), "results")
	_ = filesystem.API().MkdirAll(dir, os.ModePerm)
	return dir
}

// GenerateKey hashes a query and the provider it was sent to.
func GenerateKey(query, provider string) string {
	sanitized := strings.ToLower(strings.ReplaceAll(query, " ", "")) + provider
	hash := sha256.Sum256([]byte(sanitized))
	return hex.EncodeToString(hash[:])
}

// Read decodes the entry stored under key into target.
// Missing, expired and unreadable entries all report false.
func Read(key string, target any) bool {
	fs := filesystem.API()
	path := filepath.Join(Dir(), key)

	info, err := fs.Stat(path)
	if err != nil || time.Since(info.ModTime()) > TTL {
		return false
	}

	f, err := fs.Open(path)
	if err != nil {
		return false
	}
	defer f.Close()

	return json.NewDecoder(f).Decode(target) == nil
}

// Write stores data under key. The file is swapped in whole.
func Write(key string, data any) error {
	fs := filesystem.API()
	path := filepath.Join(Dir(), key)
	tmpPath := path + ".tmp"

	f, err := fs.Create(tmpPath)
	if err != nil {
		return err
	}

	if err := json.NewEncoder(f).Encode(data); err != nil {
		f.Close()
		_ = fs.Remove(tmpPath)
		return err
	}
	f.Close()

	return fs.Rename(tmpPath, path)
}

// Clear removes every entry.
func Clear() error {
	return filesystem.API().RemoveAll(Dir())
}

// Prune deletes expired entries and returns how many were removed.
func Prune() int {
	fs := filesystem.API()
	removed := 0
	_ = fs.Walk(Dir(), func(path string, info os.FileInfo, err error) error {
		if err != nil || info.IsDir() {
			return nil
		}
		if time.Since(info.ModTime()) > TTL {
			if fs.Remove(path) == nil {
				removed++
			}
		}
		return nil
	})
	return removed
}

// CollectGarbage prunes expired entries in the background.
func CollectGarbage() {
	go func() {
		if n := Prune(); n > 0 {
			log.Infof("pruned %d expired cache entries", n)
		}
	}()
}
