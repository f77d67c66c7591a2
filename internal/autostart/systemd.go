package autostart

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// unitTemplate is the systemd user unit written during installation.
// The placeholder {execStart} is replaced with the quoted command line.
const unitTemplate = `[Unit]
Description=tmux status line daemon
Documentation=https://github.com/kotet/tmux-status-bar

[Service]
Type=simple
ExecStart={execStart}
Restart=on-failure
RestartSec=5
SyslogIdentifier=statusbar

[Install]
WantedBy=default.target
`

// Systemd implements Manager with a systemd user unit driven by systemctl --user.
type Systemd struct {
	unitDir string
	run     Runner
}

// NewSystemd returns a Manager writing its unit into unitDir.
func NewSystemd(unitDir string, run Runner) *Systemd {
	return &Systemd{unitDir: unitDir, run: run}
}

// ServiceName returns the systemd unit name.
func (s *Systemd) ServiceName() string { return ServiceName + ".service" }

// Path returns the unit file location.
func (s *Systemd) Path() string { return filepath.Join(s.unitDir, s.ServiceName()) }

// IsInstalled checks whether the unit file exists.
func (s *Systemd) IsInstalled() (bool, error) { return fileExists(s.Path()) }

// Install writes the unit file, reloads the user manager, enables and starts the service.
func (s *Systemd) Install(execPath string, args []string) error {
	if err := os.MkdirAll(s.unitDir, 0755); err != nil {
		return fmt.Errorf("creating unit directory: %w", err)
	}
	if err := os.WriteFile(s.Path(), []byte(renderUnit(execPath, args)), 0644); err != nil {
		return fmt.Errorf("writing unit file: %w", err)
	}

	commands := [][]string{
		{"systemctl", "--user", "daemon-reload"},
		{"systemctl", "--user", "enable", "--now", s.ServiceName()},
	}
	for _, c := range commands {
		if err := s.run(c[0], c[1:]...); err != nil {
			return err
		}
	}
	return nil
}

// Uninstall stops, disables, and removes the unit.
func (s *Systemd) Uninstall() error {
	// Best-effort; the unit may already be inactive or unknown to systemd.
	_ = s.run("systemctl", "--user", "disable", "--now", s.ServiceName())

	if err := os.Remove(s.Path()); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing unit file: %w", err)
	}

	_ = s.run("systemctl", "--user", "daemon-reload")
	return nil
}

func renderUnit(execPath string, args []string) string {
	words := make([]string, 0, len(args)+1)
	for _, w := range append([]string{execPath}, args...) {
		words = append(words, quoteUnitWord(w))
	}
	return strings.ReplaceAll(unitTemplate, "{execStart}", strings.Join(words, " "))
}

// quoteUnitWord quotes w for an ExecStart line when it holds whitespace,
// quotes, backslashes, or specifier percent signs.
func quoteUnitWord(w string) string {
	w = strings.ReplaceAll(w, "%", "%%")
	if w != "" && !strings.ContainsAny(w, " \t\"'\\") {
		return w
	}
	r := strings.NewReplacer(`\`, `\\`, `"`, `\"`)
	return `"` + r.Replace(w) + `"`
}
