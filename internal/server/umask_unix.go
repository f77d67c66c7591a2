//go:build unix

package server

import (
	"os"

	"golang.org/x/sys/unix"
)

// withSocketMode runs bind with the process umask set so that files it
// creates get at most mode. The previous umask is restored afterwards.
func withSocketMode(mode os.FileMode, bind func() error) error {
	old := unix.Umask(int(0o777 &^ mode.Perm()))
	defer unix.Umask(old)
	return bind()
}
