package client

import "github.com/charlie0129/xbat/internal/client"

var (
	// ErrDaemonNotRunning is returned when the daemon is not running
	ErrDaemonNotRunning = client.ErrDaemonNotRunning

	// ErrPermissionDenied is returned when the user may not access the daemon socket
	ErrPermissionDenied = client.ErrPermissionDenied

	// ErrNotFound is returned when 404 is returned from the daemon
	ErrNotFound = client.ErrNotFound
)
