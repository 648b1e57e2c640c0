package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Cleanup(viper.Reset)

	s, err := Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "info", s.LogLevel)
	assert.Equal(t, TransportUnix, s.Transport)
	assert.Equal(t, "/tmp/brood.sock", s.SocketPath)
	assert.Equal(t, "127.0.0.1:8765", s.ListenAddr)
	assert.Equal(t, "", s.ProfilePath)
	assert.Equal(t, uint64(0), s.Seed)
	assert.Equal(t, "", s.JournalDir)
	assert.Equal(t, "", s.DBPath)
}

func TestLoad_WithConfigFile(t *testing.T) {
	t.Cleanup(viper.Reset)

	dir := t.TempDir()
	cfg := `
logLevel: debug
transport: websocket
listenAddr: 0.0.0.0:9000
seed: 42
dbPath: /var/lib/brood/matches.db
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "brood.yaml"), []byte(cfg), 0644))

	s, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "debug", s.LogLevel)
	assert.Equal(t, TransportWebSocket, s.Transport)
	assert.Equal(t, "0.0.0.0:9000", s.ListenAddr)
	assert.Equal(t, uint64(42), s.Seed)
	assert.Equal(t, "/var/lib/brood/matches.db", s.DBPath)
	assert.Equal(t, "/tmp/brood.sock", s.SocketPath)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Cleanup(viper.Reset)
	t.Setenv("BROOD_SOCKETPATH", "/run/brood.sock")

	s, err := Load(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "/run/brood.sock", s.SocketPath)
}

func TestLoad_UnknownTransport(t *testing.T) {
	t.Cleanup(viper.Reset)

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "brood.yaml"), []byte("transport: carrier-pigeon\n"), 0644))

	_, err := Load(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown transport")
}

func TestLoad_BrokenFile(t *testing.T) {
	t.Cleanup(viper.Reset)

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "brood.yaml"), []byte("logLevel: [unclosed\n"), 0644))

	_, err := Load(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error reading config file")
}

func TestSlogLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, Settings{LogLevel: "debug"}.SlogLevel())
	assert.Equal(t, slog.LevelWarn, Settings{LogLevel: "WARN"}.SlogLevel())
	assert.Equal(t, slog.LevelInfo, Settings{LogLevel: "chatty"}.SlogLevel())
}
