// Package guest is the ownership program run inside the zkvm.
package guest

import (
	"io"

	"github.com/yourorg/nftproof/pkg/publicvalues"
	"github.com/yourorg/nftproof/pkg/zkvm"
)

// Main reads the private input, evaluates the ownership predicate and commits
// the serialized record. It commits exactly once or returns an error.
func Main(stdin io.Reader, sink zkvm.Sink) error {
	in, err := ReadInput(stdin)
	if err != nil {
		return err
	}

	rec := publicvalues.New(in.Wallet, in.Contract, in.TokenID, in.Owner)
	out, err := rec.MarshalBinary()
	if err != nil {
		return err
	}
	return sink.Commit(out)
}
