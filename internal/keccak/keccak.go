// Package keccak wraps the legacy Keccak-256 gadget and folds a digest into a
// single BN254 scalar, both in-circuit and natively, so the two sides agree
// bit for bit.
package keccak

import (
	"math/big"

	"github.com/consensys/gnark/frontend"
	stdhash "github.com/consensys/gnark/std/hash"
	"github.com/consensys/gnark/std/hash/sha3"
	"github.com/consensys/gnark/std/math/uints"
	"github.com/ethereum/go-ethereum/crypto"
)

// digestMask clears the top 3 bits of the first digest byte; 2^253 is below
// the BN254 scalar modulus.
const digestMask = 0x1f

func New(api frontend.API) stdhash.BinaryHasher {
	h, err := sha3.NewLegacyKeccak256(api)
	if err != nil {
		panic(err)
	}
	return h
}

// Sum hashes data in-circuit and returns the folded digest.
func Sum(api frontend.API, data ...[]uints.U8) frontend.Variable {
	h := New(api)
	for _, d := range data {
		h.Write(d)
	}
	return Fold(api, h.Sum())
}

// Fold packs a 32-byte big-endian digest into one field element with the top
// 3 bits dropped.
func Fold(api frontend.API, digest []uints.U8) frontend.Variable {
	bits := api.ToBinary(digest[0].Val, 8) // LSB first
	acc := api.FromBinary(bits[:5]...)
	for _, b := range digest[1:] {
		acc = api.Mul(acc, 256)
		acc = api.Add(acc, b.Val)
	}
	return acc
}

// Digest is the native counterpart of Sum.
func Digest(data ...[]byte) *big.Int {
	h := crypto.Keccak256(data...)
	h[0] &= digestMask
	return new(big.Int).SetBytes(h)
}
