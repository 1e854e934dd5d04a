package main

import (
	"TTSAnnouncer/internal/config"
	"bytes"
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCommand(config.Defaults())
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestSayDisabled(t *testing.T) {
	t.Setenv(config.EnvEnableTTS, "false")
	dir := t.TempDir()

	out, err := run(t, "say", "x", "--provider", "openai", "--audio-dir", dir)
	require.NoError(t, err)
	assert.Equal(t, "TTS disabled: x\n", out)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestSayJoinsArgs(t *testing.T) {
	t.Setenv(config.EnvEnableTTS, "FALSE")

	out, err := run(t, "say", "Build", "complete", "--provider", "openai", "--audio-dir", t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "TTS disabled: Build complete\n", out)
}

func TestInvalidConfigRejected(t *testing.T) {
	_, err := run(t, "say", "x", "--provider", "festival")
	assert.ErrorContains(t, err, "unknown tts provider")

	_, err = run(t, "say", "x", "--provider", "openai", "--player", "vlc")
	assert.ErrorContains(t, err, "unknown player backend")
}

func TestVoicesUnsupportedProvider(t *testing.T) {
	_, err := run(t, "voices", "--provider", "openai")
	assert.ErrorContains(t, err, "voice listing is not supported")
}

func TestSayRequiresMessage(t *testing.T) {
	_, err := run(t, "say")
	assert.Error(t, err)
}
