package ports

import "context"

// Handle is the live communication handle to a started runtime. It is
// opaque to the lifecycle layer; only the Bootstrap that produced it
// knows how to drive it.
type Handle interface {
	// PID returns the OS process ID of the runtime, or -1 if the
	// runtime is not backed by a separate process.
	PID() int
}

// Bootstrap abstracts the foreign Equinox bootstrap entry points. Only
// one runtime may be active per Bootstrap at a time; the lifecycle layer
// enforces the strictly sequential start → run → shutdown usage.
type Bootstrap interface {
	// Start boots the runtime with the final framework properties and
	// program arguments, returning a non-nil handle on success.
	Start(ctx context.Context, props map[string]string, args []string) (Handle, error)

	// Run executes the runtime's default application and returns its
	// exit status. Status 0 is success.
	Run(ctx context.Context, handle Handle) (int, error)

	// Shutdown stops the runtime behind the handle. It must be safe to
	// call after Run has returned.
	Shutdown(handle Handle) error
}
