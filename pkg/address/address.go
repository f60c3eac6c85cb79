package address

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// ErrInvalid is returned for anything that is not exactly 40 hex characters
// once the optional 0x prefix is removed.
var ErrInvalid = errors.New("invalid address")

// Normalize trims s, drops an optional 0x/0X prefix and lowercases the rest.
func Normalize(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		s = s[2:]
	}
	return strings.ToLower(s)
}

// Parse decodes a 20-byte address. Unlike common.HexToAddress it never pads
// or truncates: wrong length or non-hex input is an error.
func Parse(s string) (common.Address, error) {
	clean := Normalize(s)
	if len(clean) != 2*common.AddressLength {
		return common.Address{}, fmt.Errorf("%w %q: want %d hex characters, got %d",
			ErrInvalid, s, 2*common.AddressLength, len(clean))
	}
	raw, err := hexutil.Decode("0x" + clean)
	if err != nil {
		return common.Address{}, fmt.Errorf("%w %q: %v", ErrInvalid, s, err)
	}
	return common.BytesToAddress(raw), nil
}

// Hex renders a in lowercase with the 0x prefix, the form used in fixtures.
func Hex(a common.Address) string {
	return hexutil.Encode(a.Bytes())
}
