package guest

import (
	"errors"
	"fmt"
	"io"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"

	"github.com/yourorg/nftproof/pkg/publicvalues"
)

// InputSize is the encoded length of Input.
const InputSize = 3*common.AddressLength + publicvalues.TokenIDSize

var ErrMalformedInput = errors.New("malformed guest input")

// Input is the private tuple the host hands to the guest:
// wallet ‖ contract ‖ u128le(tokenId) ‖ owner.
type Input struct {
	Wallet   common.Address
	Contract common.Address
	TokenID  uint256.Int
	Owner    common.Address
}

func (in Input) MarshalBinary() ([]byte, error) {
	if !publicvalues.FitsTokenID(&in.TokenID) {
		return nil, fmt.Errorf("%w: %s", publicvalues.ErrTokenIDRange, in.TokenID.Dec())
	}
	out := make([]byte, 0, InputSize)
	out = append(out, in.Wallet[:]...)
	out = append(out, in.Contract[:]...)
	var tid [publicvalues.TokenIDSize]byte
	publicvalues.PutTokenID(tid[:], &in.TokenID)
	out = append(out, tid[:]...)
	out = append(out, in.Owner[:]...)
	return out, nil
}

func (in *Input) UnmarshalBinary(b []byte) error {
	if len(b) != InputSize {
		return fmt.Errorf("%w: want %d bytes, got %d", ErrMalformedInput, InputSize, len(b))
	}
	off := 0
	off += copy(in.Wallet[:], b[off:])
	off += copy(in.Contract[:], b[off:])
	in.TokenID = publicvalues.TokenID(b[off : off+publicvalues.TokenIDSize])
	off += publicvalues.TokenIDSize
	copy(in.Owner[:], b[off:])
	return nil
}

// ReadInput consumes exactly one encoded Input from r.
func ReadInput(r io.Reader) (Input, error) {
	var buf [InputSize]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return Input{}, fmt.Errorf("%w: %w", ErrMalformedInput, err)
	}
	var in Input
	err := in.UnmarshalBinary(buf[:])
	return in, err
}
