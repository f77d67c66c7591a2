package autostart

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"howett.net/plist"
)

type recorder struct {
	calls []string
	fail  map[string]error
}

func (r *recorder) run(name string, args ...string) error {
	line := strings.Join(append([]string{name}, args...), " ")
	r.calls = append(r.calls, line)
	return r.fail[line]
}

func TestSystemd_InstallWritesUnitAndEnables(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "systemd", "user")
	rec := &recorder{}
	m := NewSystemd(dir, rec.run)

	installed, err := m.IsInstalled()
	require.NoError(t, err)
	assert.False(t, installed)

	require.NoError(t, m.Install("/usr/local/bin/statusbar", []string{"serve", "--config", "/home/me/my config.yaml"}))

	installed, err = m.IsInstalled()
	require.NoError(t, err)
	assert.True(t, installed)
	assert.Equal(t, filepath.Join(dir, "statusbar.service"), m.Path())

	data, err := os.ReadFile(m.Path())
	require.NoError(t, err)
	assert.Contains(t, string(data), `ExecStart=/usr/local/bin/statusbar serve --config "/home/me/my config.yaml"`+"\n")
	assert.Contains(t, string(data), "WantedBy=default.target")

	assert.Equal(t, []string{
		"systemctl --user daemon-reload",
		"systemctl --user enable --now statusbar.service",
	}, rec.calls)
}

func TestSystemd_InstallReportsCommandFailure(t *testing.T) {
	boom := errors.New("no user bus")
	rec := &recorder{fail: map[string]error{"systemctl --user daemon-reload": boom}}
	m := NewSystemd(t.TempDir(), rec.run)

	err := m.Install("/bin/statusbar", nil)
	assert.ErrorIs(t, err, boom)
	assert.Len(t, rec.calls, 1)
}

func TestSystemd_Uninstall(t *testing.T) {
	rec := &recorder{fail: map[string]error{
		"systemctl --user disable --now statusbar.service": errors.New("unit not loaded"),
	}}
	m := NewSystemd(t.TempDir(), rec.run)
	require.NoError(t, m.Install("/bin/statusbar", nil))

	require.NoError(t, m.Uninstall())
	installed, err := m.IsInstalled()
	require.NoError(t, err)
	assert.False(t, installed)

	// Removing twice is not an error.
	assert.NoError(t, m.Uninstall())
}

func TestQuoteUnitWord(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"/usr/bin/statusbar", "/usr/bin/statusbar"},
		{"my file", `"my file"`},
		{`a"b`, `"a\"b"`},
		{"100%", "100%%"},
		{"", `""`},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, quoteUnitWord(tt.in), "quoteUnitWord(%q)", tt.in)
	}
}

func TestLaunchd_InstallWritesAgent(t *testing.T) {
	root := t.TempDir()
	rec := &recorder{}
	m := NewLaunchd(filepath.Join(root, "LaunchAgents"), filepath.Join(root, "Logs"), rec.run)

	require.NoError(t, m.Install("/opt/bin/statusbar", []string{"serve"}))

	data, err := os.ReadFile(m.Path())
	require.NoError(t, err)

	var got launchAgent
	format, err := plist.Unmarshal(data, &got)
	require.NoError(t, err)
	assert.Equal(t, plist.XMLFormat, format)
	assert.Equal(t, "io.github.kotet.statusbar", got.Label)
	assert.Equal(t, []string{"/opt/bin/statusbar", "serve"}, got.ProgramArguments)
	assert.True(t, got.RunAtLoad)
	assert.True(t, got.KeepAlive)
	assert.Equal(t, filepath.Join(root, "Logs", "statusbar.log"), got.StandardErrorPath)

	assert.Equal(t, []string{"launchctl load -w " + m.Path()}, rec.calls)
}

func TestLaunchd_Uninstall(t *testing.T) {
	rec := &recorder{}
	m := NewLaunchd(t.TempDir(), t.TempDir(), rec.run)
	require.NoError(t, m.Install("/opt/bin/statusbar", nil))

	require.NoError(t, m.Uninstall())
	installed, err := m.IsInstalled()
	require.NoError(t, err)
	assert.False(t, installed)
	assert.Equal(t, "launchctl unload -w "+m.Path(), rec.calls[len(rec.calls)-1])
}
