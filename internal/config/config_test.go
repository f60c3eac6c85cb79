package config

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"
)

func flagSet() *pflag.FlagSet {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String("rpc-url", "https://default", "")
	fs.String("ca", "", "")
	fs.Uint64("block", 0, "")
	fs.Bool("verbose", false, "")
	return fs
}

func TestDefaults(t *testing.T) {
	v, err := Load(flagSet(), filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
	require.Equal(t, "https://default", v.GetString("rpc-url"))
	require.Equal(t, uint64(0), v.GetUint64("block"))
}

func TestEnvOverridesDefault(t *testing.T) {
	t.Setenv("NFTPROOF_CA", "0xbb")
	t.Setenv("NFTPROOF_BLOCK", "42")

	v, err := Load(flagSet(), filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
	require.Equal(t, "0xbb", v.GetString("ca"))
	require.Equal(t, uint64(42), v.GetUint64("block"))
}

func TestRPCURLAlias(t *testing.T) {
	t.Setenv("RPC_URL", "https://alias")

	v, err := Load(flagSet(), filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
	require.Equal(t, "https://alias", v.GetString("rpc-url"))

	// prefixed form takes precedence over the alias
	t.Setenv("NFTPROOF_RPC_URL", "https://prefixed")
	v, err = Load(flagSet(), filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
	require.Equal(t, "https://prefixed", v.GetString("rpc-url"))
}

func TestFlagOverridesEnv(t *testing.T) {
	t.Setenv("NFTPROOF_CA", "0xbb")

	fs := flagSet()
	require.NoError(t, fs.Parse([]string{"--ca", "0xcc"}))

	v, err := Load(fs, filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
	require.Equal(t, "0xcc", v.GetString("ca"))
}

func TestDotEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("NFTPROOF_VERBOSE=true\n"), 0o644))
	// godotenv writes into the process environment
	t.Setenv("NFTPROOF_VERBOSE", "")
	require.NoError(t, os.Unsetenv("NFTPROOF_VERBOSE"))

	v, err := Load(flagSet(), path)
	require.NoError(t, err)
	require.True(t, v.GetBool("verbose"))
}

func TestLoggerLevel(t *testing.T) {
	var buf bytes.Buffer

	l := Logger(&buf, false)
	l.Debug().Msg("hidden")
	require.NotContains(t, buf.String(), "hidden")
	l.Info().Msg("shown")
	require.Contains(t, buf.String(), "shown")

	buf.Reset()
	l = Logger(&buf, true)
	l.Debug().Msg("details")
	require.Contains(t, buf.String(), "details")
	Logger(io.Discard, false)
}
