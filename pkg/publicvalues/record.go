// Package publicvalues defines the record a guest run commits as its public
// output, and the 57-byte layout external verifiers parse.
package publicvalues

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

const (
	walletOffset   = 0
	contractOffset = walletOffset + common.AddressLength
	tokenIDOffset  = contractOffset + common.AddressLength
	hasNFTOffset   = tokenIDOffset + TokenIDSize

	// TokenIDSize is the width of the serialized token id (u128, little-endian).
	TokenIDSize = 16
	// Size is the length of a serialized Record.
	Size = hasNFTOffset + 1
)

var (
	ErrInvalidTokenID = errors.New("invalid token id")
	ErrTokenIDRange   = fmt.Errorf("%w: exceeds 128 bits", ErrInvalidTokenID)
	ErrMalformed      = errors.New("malformed public values")
)

// Record is committed once per run. Field order and widths are part of the
// on-chain contract and must not change.
type Record struct {
	Wallet   common.Address
	Contract common.Address
	TokenID  uint256.Int
	HasNFT   bool
}

// MarshalBinary encodes r as wallet ‖ contract ‖ u128le(token id) ‖ bool.
func (r Record) MarshalBinary() ([]byte, error) {
	if !FitsTokenID(&r.TokenID) {
		return nil, fmt.Errorf("%w: %s", ErrTokenIDRange, r.TokenID.Dec())
	}
	out := make([]byte, Size)
	copy(out[walletOffset:], r.Wallet[:])
	copy(out[contractOffset:], r.Contract[:])
	PutTokenID(out[tokenIDOffset:hasNFTOffset], &r.TokenID)
	if r.HasNFT {
		out[hasNFTOffset] = 1
	}
	return out, nil
}

// UnmarshalBinary is the inverse of MarshalBinary. Any bool byte other than
// 0 or 1 is rejected.
func (r *Record) UnmarshalBinary(b []byte) error {
	if len(b) != Size {
		return fmt.Errorf("%w: want %d bytes, got %d", ErrMalformed, Size, len(b))
	}
	var flag bool
	switch b[hasNFTOffset] {
	case 0:
	case 1:
		flag = true
	default:
		return fmt.Errorf("%w: invalid bool byte 0x%02x", ErrMalformed, b[hasNFTOffset])
	}

	copy(r.Wallet[:], b[walletOffset:contractOffset])
	copy(r.Contract[:], b[contractOffset:tokenIDOffset])
	r.TokenID = TokenID(b[tokenIDOffset:hasNFTOffset])
	r.HasNFT = flag
	return nil
}

// Decode is a convenience wrapper around UnmarshalBinary.
func Decode(b []byte) (Record, error) {
	var r Record
	err := r.UnmarshalBinary(b)
	return r, err
}

// PutTokenID writes the low 128 bits of id into dst (len 16) little-endian.
func PutTokenID(dst []byte, id *uint256.Int) {
	binary.LittleEndian.PutUint64(dst[0:8], id[0])
	binary.LittleEndian.PutUint64(dst[8:16], id[1])
}

// TokenID reads a little-endian u128 from src (len 16).
func TokenID(src []byte) uint256.Int {
	var id uint256.Int
	id[0] = binary.LittleEndian.Uint64(src[0:8])
	id[1] = binary.LittleEndian.Uint64(src[8:16])
	return id
}
