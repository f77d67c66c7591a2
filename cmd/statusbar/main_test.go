package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/kotet/tmux-status-bar/internal/config"
	"github.com/kotet/tmux-status-bar/internal/platform"
	"github.com/kotet/tmux-status-bar/internal/server"
)

func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())
	for _, k := range []string{"STATUSBAR_SOCKET", "STATUSBAR_LOG_LEVEL", "STATUSBAR_PROC", "STATUSBAR_SYS"} {
		t.Setenv(k, "")
	}
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "statusbar dev\n", out)
}

func TestConfigShow_AppliesFlags(t *testing.T) {
	isolate(t)
	out, err := execute(t, "config", "show", "--socket", "/run/test.sock", "--log-level", "debug")
	require.NoError(t, err)

	var cfg config.Config
	require.NoError(t, yaml.Unmarshal([]byte(out), &cfg))
	assert.Equal(t, "/run/test.sock", cfg.Server.Socket)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Len(t, cfg.Collectors, 7)
}

func TestConfigInit(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "statusbar.yaml")

	_, err := execute(t, "config", "init", path)
	require.NoError(t, err)
	_, err = os.Stat(path)
	require.NoError(t, err)

	_, err = execute(t, "config", "init", path)
	assert.ErrorContains(t, err, "already exists")

	_, err = execute(t, "config", "init", "--force", path)
	assert.NoError(t, err)
}

func TestServe_RejectsInvalidConfig(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("collectors:\n  - name: gpu\n    interval: 1s\n"), 0644))

	_, err := execute(t, "serve", "--config", path)
	assert.ErrorContains(t, err, "unknown collector")
}

func TestBuildRegistry_FollowsConfigOrder(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Collectors = []config.CollectorConfig{
		{Name: "clock", Interval: config.Duration{Duration: time.Second}},
		{Name: "memory", Interval: config.Duration{Duration: 5 * time.Second}},
	}
	host := platform.NewHost(platform.DefaultOptions(), nil, zap.NewNop())

	registry, err := buildRegistry(cfg, host, zap.NewNop())
	require.NoError(t, err)
	var names []string
	for _, c := range registry.Collectors() {
		names = append(names, c.Name())
	}
	assert.Equal(t, []string{"clock", "memory"}, names)
}

func TestServiceArgs(t *testing.T) {
	args, err := serviceArgs(&globalFlags{socket: "/run/s.sock"})
	require.NoError(t, err)
	assert.Equal(t, []string{"serve", "--socket", "/run/s.sock"}, args)

	args, err = serviceArgs(&globalFlags{configPath: "/etc/statusbar.yaml"})
	require.NoError(t, err)
	assert.Equal(t, []string{"serve", "--config", "/etc/statusbar.yaml"}, args)
}

func TestServeAndQuery(t *testing.T) {
	isolate(t)
	socket := filepath.Join(t.TempDir(), "sb.sock")
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := "server:\n  socket: " + socket + "\nclock:\n  format: \"%Y\"\ncollectors:\n  - name: clock\n    interval: 1s\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		cmd := newRootCmd()
		cmd.SetArgs([]string{"serve", "--config", path, "--log-level", "error"})
		done <- cmd.ExecuteContext(ctx)
	}()

	require.Eventually(t, func() bool {
		_, err := os.Stat(socket)
		return err == nil
	}, 5*time.Second, 10*time.Millisecond)

	out, err := execute(t, "query", "--config", path)
	require.NoError(t, err)
	assert.Equal(t, " "+time.Now().Format("2006"), out)

	line, err := server.Query(context.Background(), socket)
	require.NoError(t, err)
	assert.Equal(t, out, string(line))

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("serve did not stop after cancellation")
	}
}
