package autostart

import (
	"fmt"
	"os"
	"path/filepath"

	"howett.net/plist"
)

const launchdLabel = "io.github.kotet." + ServiceName

// launchAgent is the subset of launchd.plist(5) keys written for the agent.
type launchAgent struct {
	Label             string   `plist:"Label"`
	ProgramArguments  []string `plist:"ProgramArguments"`
	RunAtLoad         bool     `plist:"RunAtLoad"`
	KeepAlive         bool     `plist:"KeepAlive"`
	ProcessType       string   `plist:"ProcessType,omitempty"`
	StandardErrorPath string   `plist:"StandardErrorPath,omitempty"`
}

// Launchd implements Manager with a per-user launchd agent.
type Launchd struct {
	agentDir string
	logDir   string
	run      Runner
}

// NewLaunchd returns a Manager writing its plist into agentDir. The agent's
// stderr goes to logDir.
func NewLaunchd(agentDir, logDir string, run Runner) *Launchd {
	return &Launchd{agentDir: agentDir, logDir: logDir, run: run}
}

func (l *Launchd) ServiceName() string { return launchdLabel }

func (l *Launchd) Path() string { return filepath.Join(l.agentDir, launchdLabel+".plist") }

func (l *Launchd) IsInstalled() (bool, error) { return fileExists(l.Path()) }

// Install writes the agent plist and loads it.
func (l *Launchd) Install(execPath string, args []string) error {
	if err := os.MkdirAll(l.agentDir, 0755); err != nil {
		return fmt.Errorf("creating LaunchAgents directory: %w", err)
	}
	if err := os.MkdirAll(l.logDir, 0755); err != nil {
		return fmt.Errorf("creating log directory: %w", err)
	}

	data, err := l.marshal(execPath, args)
	if err != nil {
		return err
	}
	if err := os.WriteFile(l.Path(), data, 0644); err != nil {
		return fmt.Errorf("creating plist: %w", err)
	}
	return l.run("launchctl", "load", "-w", l.Path())
}

// Uninstall unloads the agent and removes its plist.
func (l *Launchd) Uninstall() error {
	_ = l.run("launchctl", "unload", "-w", l.Path())
	if err := os.Remove(l.Path()); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing plist: %w", err)
	}
	return nil
}

func (l *Launchd) marshal(execPath string, args []string) ([]byte, error) {
	agent := launchAgent{
		Label:             launchdLabel,
		ProgramArguments:  append([]string{execPath}, args...),
		RunAtLoad:         true,
		KeepAlive:         true,
		ProcessType:       "Background",
		StandardErrorPath: filepath.Join(l.logDir, ServiceName+".log"),
	}
	data, err := plist.MarshalIndent(agent, plist.XMLFormat, "\t")
	if err != nil {
		return nil, fmt.Errorf("encoding plist: %w", err)
	}
	return data, nil
}
