package keccak_test

import (
	"crypto/rand"
	"testing"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark/backend"
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/std/math/uints"
	"github.com/consensys/gnark/test"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/require"

	"github.com/yourorg/nftproof/internal/keccak"
)

/* ---------------- circuit ---------------- */

type digest57Circuit struct {
	In     [57]uints.U8
	Digest frontend.Variable `gnark:",public"`
}

func (c *digest57Circuit) Define(api frontend.API) error {
	api.AssertIsEqual(keccak.Sum(api, c.In[:20], c.In[20:]), c.Digest)
	return nil
}

/* ---------------- tests ------------------- */

func TestDigestMasksTopBits(t *testing.T) {
	msg := []byte("owner of token 7")
	full := crypto.Keccak256(msg)

	got := keccak.Digest(msg).FillBytes(make([]byte, 32))
	require.Equal(t, full[0]&0x1f, got[0])
	require.Equal(t, full[1:], got[1:])
	require.Less(t, keccak.Digest(msg).BitLen(), 254)
	require.Equal(t, -1, keccak.Digest(msg).Cmp(ecc.BN254.ScalarField()))
}

func TestDigestConcatenates(t *testing.T) {
	require.Equal(t, keccak.Digest([]byte("ab")), keccak.Digest([]byte("a"), []byte("b")))
}

func TestSumMatchesDigest(t *testing.T) {
	var msg [57]byte
	_, _ = rand.Read(msg[:])

	var w digest57Circuit
	for i, b := range msg {
		w.In[i] = uints.NewU8(b)
	}
	w.Digest = keccak.Digest(msg[:])

	require.NoError(t, test.IsSolved(new(digest57Circuit), &w, ecc.BN254.ScalarField()))

	w.Digest = keccak.Digest(msg[:56])
	require.Error(t, test.IsSolved(new(digest57Circuit), &w, ecc.BN254.ScalarField()))
}

func TestSumProver(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping keccak prover in short mode")
	}
	assert := test.NewAssert(t)

	var msg [57]byte
	_, _ = rand.Read(msg[:])

	var w digest57Circuit
	for i, b := range msg {
		w.In[i] = uints.NewU8(b)
	}
	w.Digest = keccak.Digest(msg[:])

	assert.ProverSucceeded(new(digest57Circuit), &w,
		test.WithCurves(ecc.BN254), test.WithBackends(backend.GROTH16))
}
