package circuits

import (
	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/std/math/uints"
	"github.com/consensys/gnark/std/rangecheck"

	"github.com/yourorg/nftproof/internal/keccak"
)

const (
	AddressLen = 20
	TokenIDLen = 16
)

func Curve() ecc.ID { return ecc.BN254 }

// OwnershipCircuit binds the committed public values to the ownership
// predicate. The only public input is the folded keccak-256 of
//
//	wallet ‖ contract ‖ u128le(tokenId) ‖ hasNFT
//
// where hasNFT is recomputed here from the private wallet and owner.
type OwnershipCircuit struct {
	PublicValuesDigest frontend.Variable `gnark:",public"`

	Wallet   [AddressLen]uints.U8
	Contract [AddressLen]uints.U8
	TokenID  [TokenIDLen]uints.U8
	Owner    [AddressLen]uints.U8
}

func (c *OwnershipCircuit) Define(api frontend.API) error {
	rc := rangecheck.New(api)
	for _, bs := range [][]uints.U8{c.Wallet[:], c.Contract[:], c.TokenID[:], c.Owner[:]} {
		for _, b := range bs {
			rc.Check(b.Val, 8)
		}
	}

	hasNFT := HasNFT(api, c.Wallet[:], c.Owner[:])

	digest := keccak.Sum(api,
		c.Wallet[:],
		c.Contract[:],
		c.TokenID[:],
		[]uints.U8{{Val: hasNFT}},
	)
	api.AssertIsEqual(digest, c.PublicValuesDigest)
	return nil
}

// HasNFT returns 1 when wallet and owner are byte-for-byte equal, 0 otherwise.
func HasNFT(api frontend.API, wallet, owner []uints.U8) frontend.Variable {
	eq := frontend.Variable(1)
	for i := range wallet {
		eq = api.Mul(eq, api.IsZero(api.Sub(wallet[i].Val, owner[i].Val)))
	}
	return eq
}
