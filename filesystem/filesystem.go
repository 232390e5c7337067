// Package filesystem routes every file access through a swappable afero backend.
package filesystem

import (
	"io"

	"github.com/spf13/afero"
)

var backend = afero.Afero{Fs: afero.NewOsFs()}

// API returns the active backend.
func API() afero.Afero {
	return backend
}

// SetMemMapFs switches to a volatile in-memory filesystem. Tests use it to keep the real home directory untouched.
func SetMemMapFs() {
	backend = afero.Afero{Fs: afero.NewMemMapFs()}
}

// ReadFileOrStdin reads path, or stdin when path is "-" or empty.
func ReadFileOrStdin(path string, stdin io.Reader) ([]byte, error) {
	if path == "" || path == "-" {
		return io.ReadAll(stdin)
	}
	return backend.ReadFile(path)
}
