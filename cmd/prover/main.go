package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/yourorg/nftproof/internal/config"
	"github.com/yourorg/nftproof/internal/host"
	"github.com/yourorg/nftproof/pkg/chain"
	"github.com/yourorg/nftproof/pkg/fixture"
	"github.com/yourorg/nftproof/pkg/zkvm"
)

// contextKey is a custom type for context keys to avoid conflicts
type contextKey string

const startTimeKey contextKey = "start"

const defaultRPCURL = "https://rpc.berachain.com"

func main() {
	log := config.Logger(os.Stderr, false)

	rootCmd := newRootCmd(&log)
	rootCmd.SetContext(context.WithValue(context.Background(), startTimeKey, time.Now()))
	if err := rootCmd.Execute(); err != nil {
		log.Fatal().Err(err).Msg("prover failed")
	}
}

// newRootCmd builds the prover command. Errors are returned, not printed;
// the caller reports them through *logp, which RunE replaces once the
// verbosity is known.
func newRootCmd(logp *zerolog.Logger) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "prover",
		Short:         "Prove whether a wallet owns an ERC-721 token",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			v, err := config.Load(cmd.Flags())
			if err != nil {
				return err
			}
			*logp = config.Logger(cmd.ErrOrStderr(), v.GetBool("verbose"))
			log := *logp

			system, err := zkvm.ParseProofSystem(v.GetString("system"))
			if err != nil {
				return fmt.Errorf("%w: %w", host.ErrConfiguration, err)
			}
			cfg := host.Config{
				Wallet:     v.GetString("wallet"),
				Contract:   v.GetString("ca"),
				TokenID:    v.GetString("token-id"),
				Owner:      v.GetString("owner"),
				Execute:    v.GetBool("execute"),
				Prove:      v.GetBool("prove"),
				System:     system,
				Block:      v.GetUint64("block"),
				Fixture:    v.GetBool("fixture"),
				FixtureDir: v.GetString("fixture-dir"),
			}

			// -----------------------------------------------------------------
			// Validate before touching the network
			// -----------------------------------------------------------------
			if _, err := cfg.Parse(); err != nil {
				return err
			}

			// -----------------------------------------------------------------
			// RPC (only when the owner is not given)
			// -----------------------------------------------------------------
			var owners host.OwnerResolver
			if cfg.Owner == "" {
				rpcURL := v.GetString("rpc-url")
				cli, err := chain.Dial(cmd.Context(), rpcURL)
				if err != nil {
					return fmt.Errorf("%w: %w", host.ErrRPC, err)
				}
				defer cli.Close()
				owners = cli
				log.Debug().Str("rpc", rpcURL).Msg("connected")
			}

			// -----------------------------------------------------------------
			// Execute or prove
			// -----------------------------------------------------------------
			client := zkvm.NewClient(
				zkvm.WithKeyDir(v.GetString("key-dir")),
				zkvm.WithLogger(log),
			)
			h := host.New(owners, client)
			h.Out = cmd.OutOrStdout()
			h.Log = log

			if _, err := h.Run(cmd.Context(), cfg); err != nil {
				return err
			}

			if start, ok := cmd.Context().Value(startTimeKey).(time.Time); ok {
				log.Info().Dur("took", time.Since(start)).Msg("done")
			}
			return nil
		},
	}

	f := rootCmd.Flags()
	f.String("wallet", "", "Wallet address (hex, 0x optional, any case)")
	f.String("ca", "", "NFT contract address (env NFTPROOF_CA)")
	f.String("token-id", "", "Token ID, decimal or 0x-hex, at most 2^128-1")
	f.String("owner", "", "Owner address; skips the ownerOf RPC call")
	f.Bool("execute", false, "Run the guest without producing a proof")
	f.Bool("prove", false, "Produce and verify a proof")
	system := zkvm.Groth16
	f.Var(&system, "system", "Proof system: groth16 or plonk")
	f.String("rpc-url", defaultRPCURL, "JSON-RPC endpoint (env NFTPROOF_RPC_URL or RPC_URL)")
	f.Uint64("block", 0, "Block number for the ownerOf call (0 = latest)")
	f.Bool("fixture", false, "Write the Solidity test fixture (requires --prove)")
	f.String("fixture-dir", fixture.DefaultDir, "Fixture output directory")
	f.String("key-dir", "", "Cache directory for the compiled circuit and keys")
	f.BoolP("verbose", "v", false, "Debug logging, including gnark internals")
	return rootCmd
}
