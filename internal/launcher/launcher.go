// Package launcher manages the lifecycle of an Equinox runtime: it
// merges the default framework properties with caller overrides, boots
// the runtime through an injected bootstrap, and wraps the running
// instance in a scoped handle whose Close is guaranteed to shut the
// runtime down.
package launcher

import (
	"context"
	"fmt"
	"sync"

	"equinox.tools/cli/internal/core/bundle"
	"equinox.tools/cli/internal/core/launch"
	"equinox.tools/cli/internal/core/ports"
)

// UnexpectedExitError reports a runtime application that finished with a
// non-zero exit status.
type UnexpectedExitError struct {
	Status int
}

func (e *UnexpectedExitError) Error() string {
	return fmt.Sprintf("equinox application exited with status %d, expected 0", e.Status)
}

// Launcher launches Equinox instances from a validated installation.
// Arguments and property overrides are set up front; Open and Run must
// not be invoked concurrently from multiple call sites.
type Launcher struct {
	inventory *bundle.Inventory
	bootstrap ports.Bootstrap
	config    launch.Config
}

// New creates a launcher for the given installation inventory, bound to
// the given bootstrap.
func New(inventory *bundle.Inventory, bootstrap ports.Bootstrap) *Launcher {
	return &Launcher{
		inventory: inventory,
		bootstrap: bootstrap,
	}
}

// SetArgs sets the program arguments passed to the runtime. The slice is
// copied.
func (l *Launcher) SetArgs(args []string) *Launcher {
	l.config = l.config.WithArgs(args)
	return l
}

// SetProps sets the framework property overrides applied on top of the
// defaults. Setting a key to the empty string clears that default. The
// map is copied.
func (l *Launcher) SetProps(props map[string]string) *Launcher {
	l.config = l.config.WithProps(props)
	return l
}

// Properties returns the final property set that Open would hand to the
// bootstrap: the installation defaults with the configured overrides
// applied.
func (l *Launcher) Properties() (map[string]string, error) {
	defaults, err := launch.DefaultProperties(l.inventory)
	if err != nil {
		return nil, err
	}
	return launch.Merge(defaults, l.config.Props()), nil
}

// Open boots the runtime and returns the running instance. The caller
// owns the instance and must Close it.
func (l *Launcher) Open(ctx context.Context) (*Running, error) {
	props, err := l.Properties()
	if err != nil {
		return nil, err
	}

	handle, err := l.bootstrap.Start(ctx, props, l.config.Args())
	if err != nil {
		return nil, fmt.Errorf("equinox bootstrap failed: %w", err)
	}
	if handle == nil {
		return nil, fmt.Errorf("equinox bootstrap returned no handle")
	}

	return &Running{bootstrap: l.bootstrap, handle: handle}, nil
}

// Run opens the runtime, runs its default application, and shuts it
// down, as a single scoped operation. Shutdown executes even when the
// application fails.
func (l *Launcher) Run(ctx context.Context) (err error) {
	running, err := l.Open(ctx)
	if err != nil {
		return err
	}
	defer func() {
		closeErr := running.Close()
		if err == nil {
			err = closeErr
		}
	}()
	return running.Run(ctx)
}

// Running is a live Equinox instance, valid between Open and Close.
type Running struct {
	bootstrap ports.Bootstrap
	handle    ports.Handle

	mu     sync.Mutex
	closed bool
}

// Handle exposes the communication handle of the running instance.
func (r *Running) Handle() ports.Handle {
	return r.handle
}

// Run executes the runtime's default application, as selected by the
// -application argument. A non-zero exit status is an error.
func (r *Running) Run(ctx context.Context) error {
	status, err := r.bootstrap.Run(ctx, r.handle)
	if err != nil {
		return fmt.Errorf("equinox application failed: %w", err)
	}
	if status != 0 {
		return &UnexpectedExitError{Status: status}
	}
	return nil
}

// Close shuts the runtime down. Closing an already-closed instance is a
// no-op.
func (r *Running) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return nil
	}
	r.closed = true
	return r.bootstrap.Shutdown(r.handle)
}
