package circuits_test

import (
	"bytes"
	"testing"

	"github.com/consensys/gnark/backend"
	"github.com/consensys/gnark/std/math/uints"
	"github.com/consensys/gnark/test"
	"github.com/stretchr/testify/require"

	"github.com/yourorg/nftproof/circuits"
	"github.com/yourorg/nftproof/internal/keccak"
)

/* ---------------- helpers ---------------- */

func fill(dst []uints.U8, src []byte) {
	for i, b := range src {
		dst[i] = uints.NewU8(b)
	}
}

func tokenLE(id byte) []byte {
	out := make([]byte, circuits.TokenIDLen)
	out[0] = id
	return out
}

func assignment(wallet, contract, token, owner []byte, hasNFT byte) *circuits.OwnershipCircuit {
	var w circuits.OwnershipCircuit
	fill(w.Wallet[:], wallet)
	fill(w.Contract[:], contract)
	fill(w.TokenID[:], token)
	fill(w.Owner[:], owner)
	w.PublicValuesDigest = keccak.Digest(wallet, contract, token, []byte{hasNFT})
	return &w
}

var (
	aaaa = bytes.Repeat([]byte{0xaa}, circuits.AddressLen)
	bbbb = bytes.Repeat([]byte{0xbb}, circuits.AddressLen)
	cccc = bytes.Repeat([]byte{0xcc}, circuits.AddressLen)
)

/* ---------------- tests ---------------- */

func TestOwnershipOwner(t *testing.T) {
	w := assignment(aaaa, bbbb, tokenLE(7), aaaa, 1)
	require.NoError(t, test.IsSolved(new(circuits.OwnershipCircuit), w, circuits.Curve().ScalarField()))
}

func TestOwnershipNotOwner(t *testing.T) {
	w := assignment(aaaa, bbbb, tokenLE(7), cccc, 0)
	require.NoError(t, test.IsSolved(new(circuits.OwnershipCircuit), w, circuits.Curve().ScalarField()))
}

func TestOwnershipClaimedWithoutOwnership(t *testing.T) {
	// digest says hasNFT=1 but owner differs from wallet
	w := assignment(aaaa, bbbb, tokenLE(7), cccc, 1)
	require.Error(t, test.IsSolved(new(circuits.OwnershipCircuit), w, circuits.Curve().ScalarField()))
}

func TestOwnershipDeniedDespiteOwnership(t *testing.T) {
	w := assignment(aaaa, bbbb, tokenLE(7), aaaa, 0)
	require.Error(t, test.IsSolved(new(circuits.OwnershipCircuit), w, circuits.Curve().ScalarField()))
}

func TestOwnershipTamperedToken(t *testing.T) {
	w := assignment(aaaa, bbbb, tokenLE(7), aaaa, 1)
	fill(w.TokenID[:], tokenLE(8))
	require.Error(t, test.IsSolved(new(circuits.OwnershipCircuit), w, circuits.Curve().ScalarField()))
}

func TestOwnershipProver(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping groth16 prover in short mode")
	}
	assert := test.NewAssert(t)
	assert.ProverSucceeded(
		new(circuits.OwnershipCircuit),
		assignment(aaaa, bbbb, tokenLE(7), aaaa, 1),
		test.WithCurves(circuits.Curve()),
		test.WithBackends(backend.GROTH16),
	)
}
