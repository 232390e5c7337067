//go:build !windows

package player

import "syscall"

// sysProcAttr starts the player in its own process group so Ctrl-C in the
// terminal does not stop playback.
func sysProcAttr() *syscall.SysProcAttr {
	return &syscall.SysProcAttr{
		Setpgid: true,
	}
}
