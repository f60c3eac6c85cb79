package zkvm

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/consensys/gnark/backend"
	"github.com/consensys/gnark/backend/groth16"
	"github.com/consensys/gnark/backend/plonk"
	"github.com/consensys/gnark/backend/solidity"
	"github.com/consensys/gnark/constraint"
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/frontend/cs/r1cs"
	"github.com/consensys/gnark/frontend/cs/scs"
	"github.com/consensys/gnark/test/unsafekzg"
	"github.com/rs/zerolog"

	"github.com/yourorg/nftproof/circuits"
)

// Client drives setup, execution, proving and verification of Programs.
type Client struct {
	keyDir string
	log    zerolog.Logger
}

type Option func(*Client)

// WithKeyDir caches the compiled circuit and keys in dir. Setup reuses them
// on later runs.
func WithKeyDir(dir string) Option {
	return func(c *Client) { c.keyDir = dir }
}

func WithLogger(l zerolog.Logger) Option {
	return func(c *Client) { c.log = l }
}

func NewClient(opts ...Option) *Client {
	c := &Client{log: zerolog.Nop()}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Setup compiles p for the given backend and derives its keys. The PLONK SRS
// comes from unsafekzg and is only fit for testing and demos.
func (c *Client) Setup(p Program, system ProofSystem) (*ProvingKey, *VerifyingKey, error) {
	start := time.Now()
	log := c.log.With().Str("program", p.Name()).Stringer("system", system).Logger()

	if pk, vk, err := c.loadKeys(p, system); err == nil {
		log.Info().Str("dir", c.keyDir).Dur("took", time.Since(start)).Msg("loaded cached keys")
		return pk, vk, nil
	} else if c.keyDir != "" {
		log.Debug().Err(err).Msg("no usable key cache")
	}

	ccs, err := compile(p, system)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: compile %s: %w", ErrSetup, p.Name(), err)
	}
	log.Debug().
		Int("constraints", ccs.GetNbConstraints()).
		Dur("took", time.Since(start)).
		Msg("circuit compiled")

	pk := &ProvingKey{system: system, program: p, ccs: ccs}
	vk := &VerifyingKey{system: system, program: p}

	switch system {
	case Groth16:
		pk.groth16, vk.groth16, err = groth16.Setup(ccs)
	case Plonk:
		srs, srsLagrange, srsErr := unsafekzg.NewSRS(ccs)
		if srsErr != nil {
			return nil, nil, fmt.Errorf("%w: kzg srs: %w", ErrSetup, srsErr)
		}
		pk.plonk, vk.plonk, err = plonk.Setup(ccs, srs, srsLagrange)
	default:
		err = fmt.Errorf("unsupported proof system %s", system)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrSetup, err)
	}
	log.Info().Dur("took", time.Since(start)).Msg("setup done")

	if err := c.saveKeys(pk, vk); err != nil {
		log.Warn().Err(err).Msg("failed to cache keys")
	}
	return pk, vk, nil
}

// Execute runs the guest natively and returns its committed public values.
// No proof is produced.
func (c *Client) Execute(p Program, stdin *Stdin) ([]byte, error) {
	start := time.Now()

	var out OutputBuffer
	if err := p.Execute(bytes.NewReader(stdin.Bytes()), &out); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExecution, err)
	}
	if !out.Committed() {
		return nil, fmt.Errorf("%w: %w", ErrExecution, ErrNoOutput)
	}

	c.log.Debug().
		Str("program", p.Name()).
		Int("public_values", len(out.Bytes())).
		Dur("took", time.Since(start)).
		Msg("executed")
	return out.Bytes(), nil
}

// Prove executes the guest and proves the run with pk's backend. Proofs
// target the Solidity verifier exported from the matching VerifyingKey.
func (c *Client) Prove(pk *ProvingKey, stdin *Stdin) (*ProofWithPublicValues, error) {
	publicValues, err := c.Execute(pk.program, stdin)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	assignment, err := pk.program.Assign(stdin.Bytes(), publicValues)
	if err != nil {
		return nil, fmt.Errorf("%w: assignment: %w", ErrProving, err)
	}
	w, err := frontend.NewWitness(assignment, circuits.Curve().ScalarField())
	if err != nil {
		return nil, fmt.Errorf("%w: witness: %w", ErrProving, err)
	}
	c.log.Debug().Dur("took", time.Since(start)).Msg("witness generated")

	start = time.Now()
	proof := &ProofWithPublicValues{System: pk.system, PublicValues: publicValues}
	switch pk.system {
	case Groth16:
		proof.groth16, err = groth16.Prove(pk.ccs, pk.groth16, w,
			solidity.WithProverTargetSolidityVerifier(backend.GROTH16))
	case Plonk:
		proof.plonk, err = plonk.Prove(pk.ccs, pk.plonk, w,
			solidity.WithProverTargetSolidityVerifier(backend.PLONK))
	default:
		err = fmt.Errorf("unsupported proof system %s", pk.system)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrProving, err)
	}

	c.log.Info().
		Str("program", pk.program.Name()).
		Stringer("system", pk.system).
		Dur("took", time.Since(start)).
		Msg("proof created")
	return proof, nil
}

// Verify checks proof against vk, recomputing the public input from the
// proof's public values.
func (c *Client) Verify(proof *ProofWithPublicValues, vk *VerifyingKey) error {
	if proof.System != vk.system {
		return fmt.Errorf("%w: %s proof against %s key", ErrVerification, proof.System, vk.system)
	}

	start := time.Now()
	assignment, err := vk.program.Public(proof.PublicValues)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrVerification, err)
	}
	pw, err := frontend.NewWitness(assignment, circuits.Curve().ScalarField(), frontend.PublicOnly())
	if err != nil {
		return fmt.Errorf("%w: public witness: %w", ErrVerification, err)
	}

	switch vk.system {
	case Groth16:
		err = groth16.Verify(proof.groth16, vk.groth16, pw,
			solidity.WithVerifierTargetSolidityVerifier(backend.GROTH16))
	case Plonk:
		err = plonk.Verify(proof.plonk, vk.plonk, pw,
			solidity.WithVerifierTargetSolidityVerifier(backend.PLONK))
	default:
		err = fmt.Errorf("unsupported proof system %s", vk.system)
	}
	if err != nil {
		return fmt.Errorf("%w: %w", ErrVerification, err)
	}

	c.log.Info().Stringer("system", vk.system).Dur("took", time.Since(start)).Msg("proof verified")
	return nil
}

func compile(p Program, system ProofSystem) (constraint.ConstraintSystem, error) {
	var builder frontend.NewBuilder = r1cs.NewBuilder
	if system == Plonk {
		builder = scs.NewBuilder
	}
	return frontend.Compile(circuits.Curve().ScalarField(), builder, p.Circuit())
}

// -----------------------------------------------------------------------------
// Key cache
// -----------------------------------------------------------------------------

func (c *Client) keyPaths(p Program, system ProofSystem) (ccsPath, pkPath, vkPath string) {
	base := filepath.Join(c.keyDir, fmt.Sprintf("%s_%s", p.Name(), system))
	return base + ".ccs", base + "_pk.bin", base + "_vk.bin"
}

func (c *Client) loadKeys(p Program, system ProofSystem) (*ProvingKey, *VerifyingKey, error) {
	if c.keyDir == "" {
		return nil, nil, os.ErrNotExist
	}
	ccsPath, pkPath, vkPath := c.keyPaths(p, system)

	pk := &ProvingKey{system: system, program: p}
	var pkCodec keyCodec
	switch system {
	case Groth16:
		pk.ccs = groth16.NewCS(circuits.Curve())
		pk.groth16 = groth16.NewProvingKey(circuits.Curve())
		pkCodec = pk.groth16
	case Plonk:
		pk.ccs = plonk.NewCS(circuits.Curve())
		pk.plonk = plonk.NewProvingKey(circuits.Curve())
		pkCodec = pk.plonk
	default:
		return nil, nil, fmt.Errorf("unsupported proof system %s", system)
	}

	if err := readFile(ccsPath, pk.ccs); err != nil {
		return nil, nil, err
	}
	if err := readFile(pkPath, pkCodec); err != nil {
		return nil, nil, err
	}
	vkBytes, err := os.ReadFile(vkPath)
	if err != nil {
		return nil, nil, err
	}
	vk, err := ReadVerifyingKey(p, system, vkBytes)
	if err != nil {
		return nil, nil, err
	}
	return pk, vk, nil
}

func (c *Client) saveKeys(pk *ProvingKey, vk *VerifyingKey) error {
	if c.keyDir == "" {
		return nil
	}
	if err := os.MkdirAll(c.keyDir, 0o755); err != nil {
		return err
	}
	ccsPath, pkPath, vkPath := c.keyPaths(pk.program, pk.system)

	var pkCodec keyCodec = pk.groth16
	if pk.system == Plonk {
		pkCodec = pk.plonk
	}
	for path, obj := range map[string]io.WriterTo{
		ccsPath: pk.ccs,
		pkPath:  pkCodec,
		vkPath:  vk,
	} {
		if err := writeFile(path, obj); err != nil {
			return err
		}
	}
	return nil
}

func readFile(path string, into io.ReaderFrom) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	if _, err := into.ReadFrom(bufio.NewReader(f)); err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	return nil
}

func writeFile(path string, from io.WriterTo) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	w := bufio.NewWriter(f)
	if _, err := from.WriteTo(w); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
