package cmd

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"equinox.tools/cli/internal/launcher"
)

// newConsoleCommand creates the console subcommand.
func newConsoleCommand() *cobra.Command {
	flags := &launchFlags{}

	cmd := &cobra.Command{
		Use:   "console <installation-root> [flags] [-- <program-args>...]",
		Short: "Launch the runtime with a live terminal view",
		Long: `Console launches the Equinox runtime like run does, but inside an
interactive terminal view showing the runtime state, process ID, and
uptime. Press q to shut the runtime down and quit.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConsole(args[0], args[1:], flags)
		},
	}

	registerLaunchFlags(cmd, flags)

	return cmd
}

func runConsole(installRoot string, programArgs []string, flags *launchFlags) error {
	l, err := buildLauncher(installRoot, programArgs, flags)
	if err != nil {
		return err
	}

	model := newConsoleModel(installRoot, l)
	program := tea.NewProgram(model, tea.WithAltScreen())

	final, err := program.Run()
	if err != nil {
		return fmt.Errorf("console failed: %w", err)
	}

	if m, ok := final.(consoleModel); ok && m.runErr != nil {
		return m.runErr
	}
	return nil
}

// Runtime states shown in the console view.
type consoleState string

const (
	consoleStarting consoleState = "starting"
	consoleRunning  consoleState = "running"
	consoleFinished consoleState = "finished"
	consoleClosed   consoleState = "closed"
	consoleFailed   consoleState = "failed"
)

type consoleModel struct {
	installRoot string
	launcher    *launcher.Launcher

	state     consoleState
	running   *launcher.Running
	pid       int
	startTime time.Time
	now       time.Time
	runErr    error

	windowWidth  int
	windowHeight int
}

type consoleTickMsg time.Time

type openedMsg struct {
	running *launcher.Running
}

type runFinishedMsg struct {
	err error
}

type consoleErrMsg struct {
	err error
}

func newConsoleModel(installRoot string, l *launcher.Launcher) consoleModel {
	return consoleModel{
		installRoot: installRoot,
		launcher:    l,
		state:       consoleStarting,
		startTime:   time.Now(),
		now:         time.Now(),
	}
}

// Init implements the Bubble Tea init method
func (m consoleModel) Init() tea.Cmd {
	return tea.Batch(m.tickCmd(), m.openCmd())
}

// Update implements the Bubble Tea update method
func (m consoleModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.windowWidth = msg.Width
		m.windowHeight = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			if m.running != nil {
				m.running.Close()
				m.state = consoleClosed
			}
			return m, tea.Quit
		}

	case consoleTickMsg:
		m.now = time.Time(msg)
		return m, m.tickCmd()

	case openedMsg:
		m.state = consoleRunning
		m.running = msg.running
		m.pid = msg.running.Handle().PID()
		m.startTime = time.Now()
		return m, m.runCmd(msg.running)

	case runFinishedMsg:
		if msg.err != nil {
			m.state = consoleFailed
			m.runErr = msg.err
		} else {
			m.state = consoleFinished
		}
		if m.running != nil {
			m.running.Close()
		}
		return m, nil

	case consoleErrMsg:
		m.state = consoleFailed
		m.runErr = msg.err
		return m, nil
	}

	return m, nil
}

// View implements the Bubble Tea view method
func (m consoleModel) View() string {
	title := titleStyle.Render("eqx console")

	stateStyle := okStyle
	if m.state == consoleFailed {
		stateStyle = failStyle
	}

	lines := []string{
		title,
		"",
		fmt.Sprintf("Installation: %s", bundleNameStyle.Render(m.installRoot)),
		fmt.Sprintf("State:        %s", stateStyle.Render(string(m.state))),
	}

	if m.pid > 0 {
		lines = append(lines, fmt.Sprintf("PID:          %d", m.pid))
	}
	if m.state == consoleRunning {
		lines = append(lines, fmt.Sprintf("Uptime:       %s", m.now.Sub(m.startTime).Round(time.Second)))
	}
	if m.runErr != nil {
		lines = append(lines, "", failStyle.Render(fmt.Sprintf("Error: %v", m.runErr)))
	}

	lines = append(lines, "", dimStyle.Render("q: shut down and quit"))

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m consoleModel) tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return consoleTickMsg(t)
	})
}

// openCmd boots the runtime off the Bubble Tea event loop.
func (m consoleModel) openCmd() tea.Cmd {
	l := m.launcher
	return func() tea.Msg {
		running, err := l.Open(context.Background())
		if err != nil {
			return consoleErrMsg{err: err}
		}
		return openedMsg{running: running}
	}
}

// runCmd waits for the default application to finish.
func (m consoleModel) runCmd(running *launcher.Running) tea.Cmd {
	return func() tea.Msg {
		return runFinishedMsg{err: running.Run(context.Background())}
	}
}
