package zkvm

import (
	"bytes"
	"fmt"
	"io"

	"github.com/consensys/gnark/backend/groth16"
	"github.com/consensys/gnark/backend/plonk"
	"github.com/consensys/gnark/constraint"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/yourorg/nftproof/circuits"
)

// ProvingKey bundles the compiled constraint system with the backend key.
type ProvingKey struct {
	system  ProofSystem
	program Program
	ccs     constraint.ConstraintSystem

	groth16 groth16.ProvingKey
	plonk   plonk.ProvingKey
}

func (pk *ProvingKey) System() ProofSystem { return pk.system }
func (pk *ProvingKey) Program() Program    { return pk.program }

type VerifyingKey struct {
	system  ProofSystem
	program Program

	groth16 groth16.VerifyingKey
	plonk   plonk.VerifyingKey
}

func (vk *VerifyingKey) System() ProofSystem { return vk.system }

func (vk *VerifyingKey) codec() keyCodec {
	if vk.system == Plonk {
		return vk.plonk
	}
	return vk.groth16
}

// WriteTo serializes the backend verifying key.
func (vk *VerifyingKey) WriteTo(w io.Writer) (int64, error) {
	return vk.codec().WriteTo(w)
}

// Bytes32 is the 0x-prefixed keccak-256 digest of the serialized key. It
// identifies the program/setup pair in fixtures.
func (vk *VerifyingKey) Bytes32() (string, error) {
	var buf bytes.Buffer
	if _, err := vk.WriteTo(&buf); err != nil {
		return "", err
	}
	return hexutil.Encode(crypto.Keccak256(buf.Bytes())), nil
}

// ExportSolidity writes the on-chain verifier contract for this key.
func (vk *VerifyingKey) ExportSolidity(w io.Writer) error {
	if vk.system == Plonk {
		return vk.plonk.ExportSolidity(w)
	}
	return vk.groth16.ExportSolidity(w)
}

// ReadVerifyingKey loads a key written by VerifyingKey.WriteTo. Trailing
// bytes are an error.
func ReadVerifyingKey(p Program, system ProofSystem, b []byte) (*VerifyingKey, error) {
	vk := &VerifyingKey{system: system, program: p}
	switch system {
	case Groth16:
		vk.groth16 = groth16.NewVerifyingKey(circuits.Curve())
	case Plonk:
		vk.plonk = plonk.NewVerifyingKey(circuits.Curve())
	default:
		return nil, fmt.Errorf("unsupported proof system %s", system)
	}
	n, err := vk.codec().ReadFrom(bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("reading verifying key: %w", err)
	}
	if int(n) != len(b) {
		return nil, fmt.Errorf("invalid key length: expected %d, got %d", len(b), n)
	}
	return vk, nil
}

type keyCodec interface {
	io.WriterTo
	io.ReaderFrom
}
