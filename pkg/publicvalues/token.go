package publicvalues

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/holiman/uint256"
)

// MaxTokenID is 2^128-1, the largest token id the record can carry.
var MaxTokenID = func() uint256.Int {
	var m uint256.Int
	m[0], m[1] = ^uint64(0), ^uint64(0)
	return m
}()

// FitsTokenID reports whether id fits in the 128-bit wire field.
func FitsTokenID(id *uint256.Int) bool {
	return id.BitLen() <= 8*TokenIDSize
}

// ParseTokenID accepts a decimal or 0x-prefixed hex token id no wider than
// 128 bits.
func ParseTokenID(s string) (uint256.Int, error) {
	s = strings.TrimSpace(s)

	var (
		b  *big.Int
		ok bool
	)
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		b, ok = new(big.Int).SetString(s[2:], 16)
	} else {
		b, ok = new(big.Int).SetString(s, 10)
	}
	if !ok || b.Sign() < 0 {
		return uint256.Int{}, fmt.Errorf("%w: %q", ErrInvalidTokenID, s)
	}
	id, overflow := uint256.FromBig(b)
	if overflow || !FitsTokenID(id) {
		return uint256.Int{}, fmt.Errorf("%w: %s", ErrTokenIDRange, b)
	}
	return *id, nil
}
