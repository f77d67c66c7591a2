// Package autostart installs statusbar as a per-user background service so
// the socket is ready before tmux asks for its first status line.
package autostart

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
)

// ServiceName is the unit name under systemd and the label suffix under launchd.
const ServiceName = "statusbar"

// ErrUnsupported is returned by New on platforms without a known service manager.
var ErrUnsupported = errors.New("autostart is not supported on this platform")

// Manager provides platform-specific autostart installation.
type Manager interface {
	IsInstalled() (bool, error)
	// Install writes the service definition running execPath with args and starts it.
	Install(execPath string, args []string) error
	Uninstall() error
	ServiceName() string
	// Path is the service definition file managed by this Manager.
	Path() string
}

// Runner executes a service manager command.
type Runner func(name string, args ...string) error

// ExecRunner runs the command and folds its combined output into the error.
func ExecRunner(name string, args ...string) error {
	out, err := exec.Command(name, args...).CombinedOutput()
	if err != nil {
		msg := strings.TrimSpace(string(out))
		if msg == "" {
			return fmt.Errorf("running %s %s: %w", name, strings.Join(args, " "), err)
		}
		return fmt.Errorf("running %s %s: %w: %s", name, strings.Join(args, " "), err, msg)
	}
	return nil
}

// New returns the Manager for the running platform: a systemd user unit on
// Linux, a launchd agent on macOS.
func New() (Manager, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolving home directory: %w", err)
	}
	switch runtime.GOOS {
	case "linux":
		configHome := os.Getenv("XDG_CONFIG_HOME")
		if configHome == "" {
			configHome = filepath.Join(home, ".config")
		}
		return NewSystemd(filepath.Join(configHome, "systemd", "user"), ExecRunner), nil
	case "darwin":
		return NewLaunchd(filepath.Join(home, "Library", "LaunchAgents"), filepath.Join(home, "Library", "Logs"), ExecRunner), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupported, runtime.GOOS)
	}
}

// fileExists reports whether path exists, distinguishing absence from other errors.
func fileExists(path string) (bool, error) {
	_, err := os.Stat(path)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("checking %s: %w", path, err)
	}
	return true, nil
}
