// Package equinox binds the bootstrap port to a real Equinox runtime by
// launching the installation's OSGi framework jar as an external java
// process. Framework properties travel as -D system properties, program
// arguments as the process argument list.
package equinox

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"sort"
	"sync"
	"syscall"
	"time"

	"equinox.tools/cli/internal/core/launch"
	"equinox.tools/cli/internal/core/ports"
)

// shutdownGrace is how long Shutdown waits for the runtime to exit after
// SIGTERM before killing it.
const shutdownGrace = 10 * time.Second

// Starter implements ports.Bootstrap by spawning a java process.
type Starter struct {
	java    string
	workDir string
	env     []string
	stdout  io.Writer
	stderr  io.Writer
	debug   bool
}

// NewStarter creates a starter that runs "java" from PATH with the
// current environment, passing runtime output through to the parent's
// stdout and stderr.
func NewStarter() *Starter {
	return &Starter{
		java:   "java",
		env:    os.Environ(),
		stdout: os.Stdout,
		stderr: os.Stderr,
	}
}

// NewStarterWithOptions creates a starter with a custom java executable,
// working directory, and environment. A nil env means the current
// environment.
func NewStarterWithOptions(java, workDir string, env []string, debug bool) *Starter {
	if java == "" {
		java = "java"
	}
	if env == nil {
		env = os.Environ()
	}
	return &Starter{
		java:    java,
		workDir: workDir,
		env:     env,
		stdout:  os.Stdout,
		stderr:  os.Stderr,
		debug:   debug,
	}
}

// Start launches the framework jar named by the osgi.framework property
// and returns a handle to the live process.
func (s *Starter) Start(ctx context.Context, props map[string]string, args []string) (ports.Handle, error) {
	argv, err := JavaArgs(props, args)
	if err != nil {
		return nil, err
	}

	if s.debug {
		fmt.Printf("[Equinox] Starting: %s %v\n", s.java, argv)
	}

	cmd := exec.CommandContext(ctx, s.java, argv...)
	cmd.Dir = s.workDir
	cmd.Env = s.env
	cmd.Stdout = s.stdout
	cmd.Stderr = s.stderr

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("failed to start equinox process: %w", err)
	}

	handle := &processHandle{
		cmd:  cmd,
		done: make(chan struct{}),
	}
	go handle.monitor()

	return handle, nil
}

// Run waits for the runtime application to finish and returns its exit
// status. If the context is canceled first, the process is killed and
// the context error returned.
func (s *Starter) Run(ctx context.Context, handle ports.Handle) (int, error) {
	proc, err := asProcessHandle(handle)
	if err != nil {
		return -1, err
	}

	select {
	case <-proc.done:
		return proc.exitStatus(), nil
	case <-ctx.Done():
		proc.kill()
		return -1, ctx.Err()
	}
}

// Shutdown asks the runtime to stop with SIGTERM and kills it if it does
// not exit within the grace period. Shutting down an already-exited
// runtime is a no-op.
func (s *Starter) Shutdown(handle ports.Handle) error {
	proc, err := asProcessHandle(handle)
	if err != nil {
		return err
	}

	select {
	case <-proc.done:
		return nil
	default:
	}

	if err := proc.cmd.Process.Signal(syscall.SIGTERM); err != nil {
		return fmt.Errorf("failed to signal equinox process: %w", err)
	}

	select {
	case <-proc.done:
		return nil
	case <-time.After(shutdownGrace):
		if s.debug {
			fmt.Printf("[Equinox] Process %d did not exit after SIGTERM, killing\n", proc.PID())
		}
		proc.kill()
		<-proc.done
		return nil
	}
}

// JavaArgs builds the java argument list for a launch: one -D flag per
// framework property (sorted for a stable command line), then -jar with
// the framework implementation path, then the program arguments. The
// osgi.framework property itself is consumed here rather than forwarded.
func JavaArgs(props map[string]string, args []string) ([]string, error) {
	frameworkURI, ok := props[launch.PropFramework]
	if !ok || frameworkURI == "" {
		return nil, fmt.Errorf("property %s is required to locate the framework jar", launch.PropFramework)
	}
	frameworkJar := launch.PathFromURI(frameworkURI)

	keys := make([]string, 0, len(props))
	for key := range props {
		if key != launch.PropFramework {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)

	argv := make([]string, 0, len(keys)+2+len(args))
	for _, key := range keys {
		argv = append(argv, fmt.Sprintf("-D%s=%s", key, props[key]))
	}
	argv = append(argv, "-jar", frameworkJar)
	argv = append(argv, args...)
	return argv, nil
}

func asProcessHandle(handle ports.Handle) (*processHandle, error) {
	proc, ok := handle.(*processHandle)
	if !ok {
		return nil, fmt.Errorf("handle was not created by this starter")
	}
	return proc, nil
}

// processHandle wraps the live java process behind ports.Handle.
type processHandle struct {
	cmd  *exec.Cmd
	done chan struct{}

	mu       sync.RWMutex
	exitCode int
	waitErr  error
}

// PID returns the OS process ID of the runtime.
func (p *processHandle) PID() int {
	if p.cmd == nil || p.cmd.Process == nil {
		return -1
	}
	return p.cmd.Process.Pid
}

// monitor waits for the process and records its exit status.
func (p *processHandle) monitor() {
	err := p.cmd.Wait()

	p.mu.Lock()
	p.waitErr = err
	if exitError, ok := err.(*exec.ExitError); ok {
		p.exitCode = exitError.ExitCode()
	} else if err == nil {
		p.exitCode = 0
	} else {
		p.exitCode = -1
	}
	p.mu.Unlock()

	close(p.done)
}

func (p *processHandle) exitStatus() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.exitCode
}

func (p *processHandle) kill() {
	if p.cmd != nil && p.cmd.Process != nil {
		p.cmd.Process.Kill()
	}
}
