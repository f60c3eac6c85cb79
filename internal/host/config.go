package host

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"

	"github.com/yourorg/nftproof/pkg/address"
	"github.com/yourorg/nftproof/pkg/publicvalues"
	"github.com/yourorg/nftproof/pkg/zkvm"
)

var (
	ErrInvalidAddress = address.ErrInvalid
	ErrInvalidTokenID = publicvalues.ErrInvalidTokenID
	ErrConfiguration  = errors.New("invalid configuration")
	ErrRPC            = errors.New("rpc")
	ErrProving        = errors.New("proving")
	ErrVerification   = errors.New("verification")
)

type Mode int

const (
	ModeExecute Mode = iota + 1
	ModeProve
)

func (m Mode) String() string {
	switch m {
	case ModeExecute:
		return "execute"
	case ModeProve:
		return "prove"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// Config holds the raw command-line values.
type Config struct {
	Wallet   string
	Contract string
	TokenID  string
	Owner    string // empty: resolve via ownerOf

	Execute bool
	Prove   bool
	System  zkvm.ProofSystem

	Block      uint64
	Fixture    bool
	FixtureDir string
}

// Request is a validated Config.
type Request struct {
	Mode     Mode
	Wallet   common.Address
	Contract common.Address
	TokenID  uint256.Int
	Owner    *common.Address
}

// Parse validates c. The mode is checked first so a bad invocation fails
// before any address or token id is looked at.
func (c Config) Parse() (*Request, error) {
	var req Request
	switch {
	case c.Execute && c.Prove:
		return nil, fmt.Errorf("%w: choose one of --execute or --prove, not both", ErrConfiguration)
	case c.Execute:
		req.Mode = ModeExecute
	case c.Prove:
		req.Mode = ModeProve
	default:
		return nil, fmt.Errorf("%w: one of --execute or --prove is required", ErrConfiguration)
	}
	if c.Fixture && req.Mode != ModeProve {
		return nil, fmt.Errorf("%w: --fixture requires --prove", ErrConfiguration)
	}
	if strings.TrimSpace(c.Contract) == "" {
		return nil, fmt.Errorf("%w: contract address is required", ErrConfiguration)
	}

	var err error
	if req.Wallet, err = address.Parse(c.Wallet); err != nil {
		return nil, fmt.Errorf("wallet: %w", err)
	}
	if req.Contract, err = address.Parse(c.Contract); err != nil {
		return nil, fmt.Errorf("contract: %w", err)
	}
	if req.TokenID, err = publicvalues.ParseTokenID(c.TokenID); err != nil {
		return nil, err
	}
	if c.Owner != "" {
		owner, err := address.Parse(c.Owner)
		if err != nil {
			return nil, fmt.Errorf("owner: %w", err)
		}
		req.Owner = &owner
	}
	return &req, nil
}
