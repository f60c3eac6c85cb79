// Package host resolves the token owner, feeds the guest its private input
// and either executes it or proves and verifies the run.
package host

import (
	"context"
	"fmt"
	"io"
	"math/big"
	"os"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/rs/zerolog"

	"github.com/yourorg/nftproof/pkg/address"
	"github.com/yourorg/nftproof/pkg/fixture"
	"github.com/yourorg/nftproof/pkg/guest"
	"github.com/yourorg/nftproof/pkg/publicvalues"
	"github.com/yourorg/nftproof/pkg/zkvm"
)

type OwnerResolver interface {
	OwnerOf(ctx context.Context, contract common.Address, tokenID *big.Int, block uint64) (common.Address, error)
}

// Prover is the subset of *zkvm.Client the host drives.
type Prover interface {
	Setup(p zkvm.Program, system zkvm.ProofSystem) (*zkvm.ProvingKey, *zkvm.VerifyingKey, error)
	Execute(p zkvm.Program, stdin *zkvm.Stdin) ([]byte, error)
	Prove(pk *zkvm.ProvingKey, stdin *zkvm.Stdin) (*zkvm.ProofWithPublicValues, error)
	Verify(proof *zkvm.ProofWithPublicValues, vk *zkvm.VerifyingKey) error
}

var _ Prover = (*zkvm.Client)(nil)

type Host struct {
	Owners  OwnerResolver // may be nil when every run supplies an owner
	Prover  Prover
	Program zkvm.Program
	Out     io.Writer
	Log     zerolog.Logger
}

// Report is what a run produced. Proof fields are empty in execute mode.
type Report struct {
	Mode         Mode
	Owner        common.Address
	Record       publicvalues.Record
	PublicValues []byte

	Proof        *zkvm.ProofWithPublicValues
	VerifyingKey *zkvm.VerifyingKey
	VKey         string
	FixturePath  string
}

func New(owners OwnerResolver, prover Prover) *Host {
	return &Host{
		Owners:  owners,
		Prover:  prover,
		Program: guest.Program{},
		Out:     os.Stdout,
		Log:     zerolog.Nop(),
	}
}

func (h *Host) Run(ctx context.Context, cfg Config) (*Report, error) {
	// -----------------------------------------------------------------
	// Arguments
	// -----------------------------------------------------------------
	req, err := cfg.Parse()
	if err != nil {
		return nil, err
	}
	log := h.Log.With().Stringer("mode", req.Mode).Logger()

	// -----------------------------------------------------------------
	// Owner
	// -----------------------------------------------------------------
	owner, err := h.resolveOwner(ctx, req, cfg.Block)
	if err != nil {
		return nil, err
	}
	log.Debug().
		Str("wallet", address.Hex(req.Wallet)).
		Str("owner", address.Hex(owner)).
		Bool("match", req.Wallet == owner).
		Msg("owner resolved")

	// -----------------------------------------------------------------
	// Guest input
	// -----------------------------------------------------------------
	stdin := zkvm.NewStdin()
	err = stdin.Write(guest.Input{
		Wallet:   req.Wallet,
		Contract: req.Contract,
		TokenID:  req.TokenID,
		Owner:    owner,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfiguration, err)
	}

	rep := &Report{Mode: req.Mode, Owner: owner}
	if req.Mode == ModeExecute {
		rep.PublicValues, err = h.Prover.Execute(h.Program, stdin)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrProving, err)
		}
	} else {
		if err := h.prove(rep, stdin, cfg.System); err != nil {
			return nil, err
		}
	}

	if rep.Record, err = publicvalues.Decode(rep.PublicValues); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrProving, err)
	}

	// -----------------------------------------------------------------
	// Outputs
	// -----------------------------------------------------------------
	if cfg.Fixture {
		if rep.FixturePath, err = h.persist(rep, cfg.FixtureDir); err != nil {
			return nil, err
		}
		log.Info().Str("path", rep.FixturePath).Msg("fixture written")
	}
	h.report(rep)
	return rep, nil
}

func (h *Host) resolveOwner(ctx context.Context, req *Request, block uint64) (common.Address, error) {
	if req.Owner != nil {
		return *req.Owner, nil
	}
	if h.Owners == nil {
		return common.Address{}, fmt.Errorf("%w: no owner given and no rpc configured", ErrConfiguration)
	}

	start := time.Now()
	owner, err := h.Owners.OwnerOf(ctx, req.Contract, req.TokenID.ToBig(), block)
	if err != nil {
		return common.Address{}, fmt.Errorf("%w: %w", ErrRPC, err)
	}
	h.Log.Debug().Dur("took", time.Since(start)).Msg("ownerOf")
	return owner, nil
}

func (h *Host) prove(rep *Report, stdin *zkvm.Stdin, system zkvm.ProofSystem) error {
	pk, vk, err := h.Prover.Setup(h.Program, system)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrProving, err)
	}
	proof, err := h.Prover.Prove(pk, stdin)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrProving, err)
	}
	fmt.Fprintln(h.Out, "proof generated")

	if err := h.Prover.Verify(proof, vk); err != nil {
		return fmt.Errorf("%w: %w", ErrVerification, err)
	}
	fmt.Fprintln(h.Out, "proof verified")

	digest, err := vk.Bytes32()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrProving, err)
	}
	rep.Proof, rep.VerifyingKey, rep.VKey = proof, vk, digest
	rep.PublicValues = proof.PublicValues
	return nil
}

// persist writes the JSON fixture plus the binary proof and verifying key
// the standalone verifier reads back.
func (h *Host) persist(rep *Report, dir string) (string, error) {
	if dir == "" {
		dir = fixture.DefaultDir
	}
	fxPath, proofPath, vkPath := fixture.Paths(dir, rep.Proof.System)

	raw, err := rep.Proof.Bytes()
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrProving, err)
	}
	fx, err := fixture.New(rep.PublicValues, rep.Owner, rep.VKey, raw)
	if err != nil {
		return "", err
	}
	if err := fixture.Write(fxPath, fx); err != nil {
		return "", err
	}
	if err := writeTo(proofPath, rep.Proof); err != nil {
		return "", err
	}
	if err := writeTo(vkPath, rep.VerifyingKey); err != nil {
		return "", err
	}
	return fxPath, nil
}

func (h *Host) report(rep *Report) {
	rec := rep.Record
	fmt.Fprintf(h.Out, "wallet:   %s\n", address.Hex(rec.Wallet))
	fmt.Fprintf(h.Out, "ca:       %s\n", address.Hex(rec.Contract))
	fmt.Fprintf(h.Out, "token_id: %s\n", rec.TokenID.Dec())
	if rep.Proof != nil {
		fmt.Fprintf(h.Out, "vkey:     %s\n", rep.VKey)
		fmt.Fprintf(h.Out, "public:   %s\n", hexutil.Encode(rep.PublicValues))
	}
	if rep.FixturePath != "" {
		fmt.Fprintf(h.Out, "fixture:  %s\n", rep.FixturePath)
	}
	if rec.HasNFT {
		fmt.Fprintln(h.Out, "wallet owns this token")
	} else {
		fmt.Fprintln(h.Out, "wallet does not own this token")
	}
}

func writeTo(path string, from io.WriterTo) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if _, err := from.WriteTo(f); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return f.Close()
}
