// Package util holds small helpers shared by commands and extractors.
package util

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/anisan-cli/streamkit/filesystem"
)

var (
	invalidFilenameChars = regexp.MustCompile(`[\\/<>:;"'|?!*{}#%&^+,~\s]`)
	repeatedUnderscores  = regexp.MustCompile(`__+`)
	edgeSeparators       = regexp.MustCompile(`^[_\-.]+|[_\-.]+$`)
)

// SanitizeFilename makes a string safe to use as a file name on every platform.
func SanitizeFilename(filename string) string {
	filename = invalidFilenameChars.ReplaceAllString(filename, "_")
	filename = repeatedUnderscores.ReplaceAllString(filename, "_")
	return edgeSeparators.ReplaceAllString(filename, "")
}

// Quantify formats a count with the matching singular or plural noun.
func Quantify(count int, singular, plural string) string {
	if count == 1 {
		return fmt.Sprintf("%d %s", count, singular)
	}
	return fmt.Sprintf("%d %s", count, plural)
}

// Capitalize upper-cases the first letter.
func Capitalize(s string) string {
	if len(s) == 0 {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// FileStem is the base name of path without its extension.
func FileStem(path string) string {
	return strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
}

// PrintErasable writes msg to stderr and returns a func that wipes it.
func PrintErasable(msg string) (eraser func()) {
	_, _ = fmt.Fprintf(os.Stderr, "\r%s", msg)
	return func() {
		_, _ = fmt.Fprintf(os.Stderr, "\r%s\r", strings.Repeat(" ", len(msg)))
	}
}

// Ignore calls f and drops its error.
func Ignore(f func() error) {
	_ = f()
}

// Delete removes a file, or a directory with everything in it.
func Delete(path string) error {
	fs := filesystem.API()
	stat, err := fs.Stat(path)
	if err != nil {
		return err
	}

	if stat.IsDir() {
		return fs.RemoveAll(path)
	}
	return fs.Remove(path)
}
