package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/yourorg/nftproof/internal/host"
)

func run(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()

	log := zerolog.Nop()
	cmd := newRootCmd(&log)

	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)

	err = cmd.ExecuteContext(context.Background())
	return out.String(), errOut.String(), err
}

/* ---------------- configuration ---------------- */

func TestModeErrorWithoutWallet(t *testing.T) {
	_, stderr, err := run(t, "--execute", "--prove")
	require.ErrorIs(t, err, host.ErrConfiguration)
	require.NotContains(t, stderr, "required flag")
	require.NotContains(t, stderr, "Error:")
}

func TestMissingWalletIsInvalidAddress(t *testing.T) {
	_, _, err := run(t, "--execute", "--token-id", "7", "--ca", "0x"+strings.Repeat("bb", 20))
	require.ErrorIs(t, err, host.ErrInvalidAddress)
}

func TestMissingTokenID(t *testing.T) {
	_, _, err := run(t, "--execute",
		"--wallet", "0x"+strings.Repeat("aa", 20),
		"--ca", "0x"+strings.Repeat("bb", 20))
	require.ErrorIs(t, err, host.ErrInvalidTokenID)
}

/* ---------------- execute ---------------- */

func TestWalletFromEnv(t *testing.T) {
	wallet := "0x" + strings.Repeat("aa", 20)
	t.Setenv("NFTPROOF_WALLET", wallet)
	t.Setenv("NFTPROOF_CA", "0x"+strings.Repeat("bb", 20))

	stdout, stderr, err := run(t, "--execute", "--token-id", "7", "--owner", wallet)
	require.NoError(t, err)
	require.Contains(t, stdout, "wallet:   "+wallet)
	require.Contains(t, stdout, "token_id: 7\n")
	require.Contains(t, stdout, "wallet owns this token")
	require.NotContains(t, stderr, "Error:")
}
