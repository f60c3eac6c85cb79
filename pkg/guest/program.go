package guest

import (
	"bytes"
	"io"

	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/std/math/uints"

	"github.com/yourorg/nftproof/circuits"
	"github.com/yourorg/nftproof/internal/keccak"
	"github.com/yourorg/nftproof/pkg/publicvalues"
	"github.com/yourorg/nftproof/pkg/zkvm"
)

// Program is the zkvm.Program for NFT ownership.
type Program struct{}

var _ zkvm.Program = Program{}

func (Program) Name() string { return "nft_ownership" }

func (Program) Execute(stdin io.Reader, sink zkvm.Sink) error { return Main(stdin, sink) }

func (Program) Circuit() frontend.Circuit { return new(circuits.OwnershipCircuit) }

func (Program) Assign(stdin, publicValues []byte) (frontend.Circuit, error) {
	in, err := ReadInput(bytes.NewReader(stdin))
	if err != nil {
		return nil, err
	}
	if _, err := publicvalues.Decode(publicValues); err != nil {
		return nil, err
	}

	var tid [publicvalues.TokenIDSize]byte
	publicvalues.PutTokenID(tid[:], &in.TokenID)

	var w circuits.OwnershipCircuit
	fill(w.Wallet[:], in.Wallet[:])
	fill(w.Contract[:], in.Contract[:])
	fill(w.TokenID[:], tid[:])
	fill(w.Owner[:], in.Owner[:])
	w.PublicValuesDigest = keccak.Digest(publicValues)
	return &w, nil
}

func (Program) Public(publicValues []byte) (frontend.Circuit, error) {
	if _, err := publicvalues.Decode(publicValues); err != nil {
		return nil, err
	}
	return &circuits.OwnershipCircuit{PublicValuesDigest: keccak.Digest(publicValues)}, nil
}

func fill(dst []uints.U8, src []byte) {
	for i, b := range src {
		dst[i] = uints.NewU8(b)
	}
}
