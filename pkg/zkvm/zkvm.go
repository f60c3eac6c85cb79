// Package zkvm is the proving environment guest programs run in. A Program
// executes natively against a private stdin and commits its public output to
// a write-once Sink; the same Program supplies a gnark circuit so the run can
// be proven with Groth16 or PLONK over BN254 and verified by an EVM contract.
package zkvm

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/consensys/gnark/frontend"
	"github.com/spf13/pflag"
)

var (
	ErrExecution    = errors.New("guest execution failed")
	ErrSetup        = errors.New("setup failed")
	ErrProving      = errors.New("proof generation failed")
	ErrVerification = errors.New("proof verification failed")
)

// Program is a guest program together with the circuit that proves it.
type Program interface {
	// Name identifies the program; it also names cached key files.
	Name() string
	// Execute runs the guest natively.
	Execute(stdin io.Reader, sink Sink) error
	// Circuit returns an empty blueprint used for compilation.
	Circuit() frontend.Circuit
	// Assign returns the full assignment for a run.
	Assign(stdin, publicValues []byte) (frontend.Circuit, error)
	// Public returns the public-only assignment derived from public values.
	Public(publicValues []byte) (frontend.Circuit, error)
}

// ProofSystem selects the gnark backend.
type ProofSystem int

var _ pflag.Value = (*ProofSystem)(nil)

const (
	Groth16 ProofSystem = iota
	Plonk
)

func (s ProofSystem) String() string {
	switch s {
	case Groth16:
		return "groth16"
	case Plonk:
		return "plonk"
	default:
		return fmt.Sprintf("ProofSystem(%d)", int(s))
	}
}

func (s *ProofSystem) Set(v string) error {
	p, err := ParseProofSystem(v)
	if err != nil {
		return err
	}
	*s = p
	return nil
}

func (s *ProofSystem) Type() string { return "system" }

func ParseProofSystem(v string) (ProofSystem, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "groth16":
		return Groth16, nil
	case "plonk":
		return Plonk, nil
	default:
		return 0, fmt.Errorf("unknown proof system %q (want groth16 or plonk)", v)
	}
}
