package zkvm

import (
	"bytes"
	"fmt"
	"io"

	"github.com/consensys/gnark/backend/groth16"
	"github.com/consensys/gnark/backend/plonk"

	"github.com/yourorg/nftproof/circuits"
)

// ProofWithPublicValues is a proof together with the public output it binds.
type ProofWithPublicValues struct {
	System       ProofSystem
	PublicValues []byte

	groth16 groth16.Proof
	plonk   plonk.Proof
}

func (p *ProofWithPublicValues) codec() keyCodec {
	if p.System == Plonk {
		return p.plonk
	}
	return p.groth16
}

// Bytes returns the proof in the encoding the Solidity verifier expects when
// the backend provides one, raw point encoding otherwise.
func (p *ProofWithPublicValues) Bytes() ([]byte, error) {
	c := p.codec()
	if s, ok := c.(interface{ MarshalSolidity() []byte }); ok {
		return s.MarshalSolidity(), nil
	}

	var buf bytes.Buffer
	if r, ok := c.(interface {
		WriteRawTo(io.Writer) (int64, error)
	}); ok {
		_, err := r.WriteRawTo(&buf)
		return buf.Bytes(), err
	}
	_, err := c.WriteTo(&buf)
	return buf.Bytes(), err
}

// WriteTo writes the gnark encoding of the proof (public values excluded).
func (p *ProofWithPublicValues) WriteTo(w io.Writer) (int64, error) {
	return p.codec().WriteTo(w)
}

// ReadProof is the inverse of WriteTo.
func ReadProof(system ProofSystem, publicValues []byte, r io.Reader) (*ProofWithPublicValues, error) {
	p := &ProofWithPublicValues{System: system, PublicValues: bytes.Clone(publicValues)}
	switch system {
	case Groth16:
		p.groth16 = groth16.NewProof(circuits.Curve())
	case Plonk:
		p.plonk = plonk.NewProof(circuits.Curve())
	default:
		return nil, fmt.Errorf("unsupported proof system %s", system)
	}
	if _, err := p.codec().ReadFrom(r); err != nil {
		return nil, fmt.Errorf("reading proof: %w", err)
	}
	return p, nil
}
