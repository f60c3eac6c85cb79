package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/yourorg/nftproof/internal/config"
	"github.com/yourorg/nftproof/pkg/guest"
	"github.com/yourorg/nftproof/pkg/zkvm"
)

func main() {
	log := config.Logger(os.Stderr, false)

	cmd := &cobra.Command{
		Use:           "vkey",
		Short:         "Print the verifying key digest of the ownership program",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			v, err := config.Load(cmd.Flags())
			if err != nil {
				return err
			}
			log = config.Logger(os.Stderr, v.GetBool("verbose"))

			system, err := zkvm.ParseProofSystem(v.GetString("system"))
			if err != nil {
				return err
			}

			client := zkvm.NewClient(
				zkvm.WithKeyDir(v.GetString("key-dir")),
				zkvm.WithLogger(log),
			)
			_, vk, err := client.Setup(guest.Program{}, system)
			if err != nil {
				return err
			}
			digest, err := vk.Bytes32()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), digest)

			// -----------------------------------------------------------------
			// Solidity verifier
			// -----------------------------------------------------------------
			if path := v.GetString("sol"); path != "" {
				if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
					return err
				}
				f, err := os.Create(path)
				if err != nil {
					return err
				}
				if err := vk.ExportSolidity(f); err != nil {
					f.Close()
					return err
				}
				if err := f.Close(); err != nil {
					return err
				}
				log.Info().Str("path", path).Msg("solidity verifier written")
			}
			return nil
		},
	}

	system := zkvm.Groth16
	cmd.Flags().Var(&system, "system", "Proof system: groth16 or plonk")
	cmd.Flags().String("key-dir", "", "Cache directory for the compiled circuit and keys")
	cmd.Flags().String("sol", "", "Also write the Solidity verifier contract to this path")
	cmd.Flags().BoolP("verbose", "v", false, "Debug logging, including gnark internals")

	if err := cmd.ExecuteContext(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("vkey failed")
	}
}
