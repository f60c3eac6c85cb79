package publicvalues

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

// HasNFT reports whether wallet is owner. Both sides must already be
// normalized; this is a plain byte comparison.
func HasNFT(wallet, owner common.Address) bool {
	return wallet == owner
}

// New builds the record for one run.
func New(wallet, contract common.Address, tokenID uint256.Int, owner common.Address) Record {
	return Record{
		Wallet:   wallet,
		Contract: contract,
		TokenID:  tokenID,
		HasNFT:   HasNFT(wallet, owner),
	}
}
