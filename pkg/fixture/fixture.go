// Package fixture reads and writes the JSON fixture consumed by the Solidity
// verifier tests, alongside the binary proof and verifying key.
package fixture

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"

	"github.com/yourorg/nftproof/pkg/address"
	"github.com/yourorg/nftproof/pkg/publicvalues"
	"github.com/yourorg/nftproof/pkg/zkvm"
)

// DefaultDir is where fixtures land unless overridden.
const DefaultDir = "contracts/src/fixtures"

var ErrMismatch = errors.New("fixture does not match its public values")

// Fixture addresses and the token id are 0x-prefixed lowercase hex.
type Fixture struct {
	Wallet       string        `json:"walletAddress"`
	Contract     string        `json:"contractAddress"`
	TokenID      string        `json:"tokenId"`
	Owner        string        `json:"ownerAddress"`
	VerifyingKey string        `json:"verifyingKey"`
	PublicValues hexutil.Bytes `json:"publicValues"`
	Proof        hexutil.Bytes `json:"proof"`
}

// New echoes the decoded public values next to the proof artifacts.
func New(publicValues []byte, owner common.Address, vkey string, proof []byte) (*Fixture, error) {
	rec, err := publicvalues.Decode(publicValues)
	if err != nil {
		return nil, err
	}
	return &Fixture{
		Wallet:       address.Hex(rec.Wallet),
		Contract:     address.Hex(rec.Contract),
		TokenID:      rec.TokenID.Hex(),
		Owner:        address.Hex(owner),
		VerifyingKey: vkey,
		PublicValues: publicValues,
		Proof:        proof,
	}, nil
}

// Record decodes the fixture's public values and checks the echoed wallet,
// contract and token id against them.
func (f *Fixture) Record() (publicvalues.Record, error) {
	rec, err := publicvalues.Decode(f.PublicValues)
	if err != nil {
		return rec, err
	}

	wallet, err := address.Parse(f.Wallet)
	if err != nil {
		return rec, fmt.Errorf("walletAddress: %w", err)
	}
	contract, err := address.Parse(f.Contract)
	if err != nil {
		return rec, fmt.Errorf("contractAddress: %w", err)
	}
	tokenID, err := publicvalues.ParseTokenID(f.TokenID)
	if err != nil {
		return rec, err
	}

	switch {
	case wallet != rec.Wallet:
		return rec, fmt.Errorf("%w: walletAddress %s", ErrMismatch, f.Wallet)
	case contract != rec.Contract:
		return rec, fmt.Errorf("%w: contractAddress %s", ErrMismatch, f.Contract)
	case !tokenID.Eq(&rec.TokenID):
		return rec, fmt.Errorf("%w: tokenId %s", ErrMismatch, f.TokenID)
	}
	return rec, nil
}

// Paths returns the fixture, proof and verifying key locations for system
// under dir.
func Paths(dir string, system zkvm.ProofSystem) (fixture, proof, vk string) {
	base := filepath.Join(dir, system.String())
	return base + "-fixture.json", base + "-proof.bin", base + "-vk.bin"
}

func Write(path string, f *Fixture) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	b, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(b, '\n'), 0o644)
}

func Read(path string) (*Fixture, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var f Fixture
	if err := json.Unmarshal(b, &f); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &f, nil
}
