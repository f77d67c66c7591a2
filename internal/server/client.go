package server

import (
	"context"
	"fmt"
	"io"
	"net"
)

// Query connects to the status socket and returns the response unchanged.
// The context bounds both the dial and the read.
func Query(ctx context.Context, socket string) ([]byte, error) {
	var d net.Dialer
	conn, err := d.DialContext(ctx, "unix", socket)
	if err != nil {
		return nil, fmt.Errorf("connecting to %s: %w", socket, err)
	}
	defer conn.Close()

	if deadline, ok := ctx.Deadline(); ok {
		if err := conn.SetReadDeadline(deadline); err != nil {
			return nil, fmt.Errorf("setting read deadline: %w", err)
		}
	}

	data, err := io.ReadAll(conn)
	if err != nil {
		return nil, fmt.Errorf("reading status line: %w", err)
	}
	return data, nil
}
