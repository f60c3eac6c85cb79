package chain

import (
	"context"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
)

const erc721OwnerOfABI = `[{
	"name": "ownerOf",
	"type": "function",
	"stateMutability": "view",
	"inputs":  [{"name": "tokenId", "type": "uint256"}],
	"outputs": [{"name": "", "type": "address"}]
}]`

var erc721 = mustParseABI(erc721OwnerOfABI)

func mustParseABI(s string) abi.ABI {
	a, err := abi.JSON(strings.NewReader(s))
	if err != nil {
		panic(err)
	}
	return a
}

// Client performs read-only ERC-721 calls.
type Client struct {
	eth *ethclient.Client
}

func Dial(ctx context.Context, url string) (*Client, error) {
	eth, err := ethclient.DialContext(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", url, err)
	}
	return NewClient(eth), nil
}

func NewClient(eth *ethclient.Client) *Client {
	return &Client{eth: eth}
}

// OwnerOf calls ownerOf(tokenID) on contract. block 0 reads the latest state.
func (c *Client) OwnerOf(
	ctx context.Context,
	contract common.Address,
	tokenID *big.Int,
	block uint64,
) (common.Address, error) {

	data, err := erc721.Pack("ownerOf", tokenID)
	if err != nil {
		return common.Address{}, fmt.Errorf("pack ownerOf: %w", err)
	}

	var blockNum *big.Int // nil = latest
	if block != 0 {
		blockNum = new(big.Int).SetUint64(block)
	}

	out, err := c.eth.CallContract(ctx, ethereum.CallMsg{To: &contract, Data: data}, blockNum)
	if err != nil {
		return common.Address{}, fmt.Errorf("ownerOf(%s) on %s: %w", tokenID, contract.Hex(), err)
	}

	res, err := erc721.Unpack("ownerOf", out)
	if err != nil {
		return common.Address{}, fmt.Errorf("decode ownerOf result %#x: %w", out, err)
	}
	return res[0].(common.Address), nil
}

func (c *Client) Close() { c.eth.Close() }
