//go:build linux

package server

import (
	"net"

	"golang.org/x/sys/unix"
)

// peerPID returns the PID of the process on the other end of conn, read with
// SO_PEERCRED.
func peerPID(conn *net.UnixConn) (int32, bool) {
	raw, err := conn.SyscallConn()
	if err != nil {
		return 0, false
	}

	var cred *unix.Ucred
	var credErr error
	err = raw.Control(func(fd uintptr) {
		cred, credErr = unix.GetsockoptUcred(int(fd), unix.SOL_SOCKET, unix.SO_PEERCRED)
	})
	if err != nil || credErr != nil {
		return 0, false
	}
	return cred.Pid, true
}
