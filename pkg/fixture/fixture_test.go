package fixture

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/require"

	"github.com/yourorg/nftproof/pkg/publicvalues"
	"github.com/yourorg/nftproof/pkg/zkvm"
)

func sample(t *testing.T) (publicvalues.Record, []byte) {
	t.Helper()
	rec := publicvalues.Record{
		Wallet:   common.HexToAddress("0x" + strings.Repeat("aa", 20)),
		Contract: common.HexToAddress("0x" + strings.Repeat("bb", 20)),
		TokenID:  publicvalues.MaxTokenID,
		HasNFT:   true,
	}
	pv, err := rec.MarshalBinary()
	require.NoError(t, err)
	return rec, pv
}

func TestWriteRead(t *testing.T) {
	rec, pv := sample(t)
	owner := rec.Wallet

	f, err := New(pv, owner, "0x"+strings.Repeat("01", 32), []byte{0xde, 0xad})
	require.NoError(t, err)

	path, _, _ := Paths(filepath.Join(t.TempDir(), "fixtures"), zkvm.Plonk)
	require.Equal(t, "plonk-fixture.json", filepath.Base(path))
	require.NoError(t, Write(path, f))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	var keys map[string]any
	require.NoError(t, json.Unmarshal(raw, &keys))
	require.Equal(t, map[string]any{
		"walletAddress":   "0x" + strings.Repeat("aa", 20),
		"contractAddress": "0x" + strings.Repeat("bb", 20),
		"tokenId":         "0xffffffffffffffffffffffffffffffff",
		"ownerAddress":    "0x" + strings.Repeat("aa", 20),
		"verifyingKey":    "0x" + strings.Repeat("01", 32),
		"publicValues":    hexutil.Encode(pv),
		"proof":           "0xdead",
	}, keys)

	got, err := Read(path)
	require.NoError(t, err)
	require.Equal(t, f, got)

	back, err := got.Record()
	require.NoError(t, err)
	require.Equal(t, rec, back)
}

func TestRecordMismatch(t *testing.T) {
	_, pv := sample(t)

	f, err := New(pv, common.Address{}, "", nil)
	require.NoError(t, err)
	f.TokenID = "0x8"
	_, err = f.Record()
	require.ErrorIs(t, err, ErrMismatch)

	f, _ = New(pv, common.Address{}, "", nil)
	f.TokenID = "not a number"
	_, err = f.Record()
	require.ErrorIs(t, err, publicvalues.ErrInvalidTokenID)

	f, _ = New(pv, common.Address{}, "", nil)
	f.Contract = "0x" + strings.Repeat("cc", 20)
	_, err = f.Record()
	require.ErrorIs(t, err, ErrMismatch)

	f, _ = New(pv, common.Address{}, "", nil)
	f.PublicValues = f.PublicValues[:10]
	_, err = f.Record()
	require.ErrorIs(t, err, publicvalues.ErrMalformed)
}

func TestTokenIDHex(t *testing.T) {
	rec := publicvalues.Record{TokenID: *uint256.NewInt(7)}
	pv, err := rec.MarshalBinary()
	require.NoError(t, err)

	f, err := New(pv, common.Address{}, "", nil)
	require.NoError(t, err)
	require.Equal(t, "0x7", f.TokenID)

	back, err := f.Record()
	require.NoError(t, err)
	require.Equal(t, uint64(7), back.TokenID.Uint64())
}

func TestPaths(t *testing.T) {
	fx, proof, vk := Paths("out", zkvm.Groth16)
	require.Equal(t, filepath.Join("out", "groth16-fixture.json"), fx)
	require.Equal(t, filepath.Join("out", "groth16-proof.bin"), proof)
	require.Equal(t, filepath.Join("out", "groth16-vk.bin"), vk)
}
