package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yourorg/nftproof/internal/config"
	"github.com/yourorg/nftproof/pkg/address"
	"github.com/yourorg/nftproof/pkg/fixture"
	"github.com/yourorg/nftproof/pkg/guest"
	"github.com/yourorg/nftproof/pkg/zkvm"
)

func main() {
	log := config.Logger(os.Stderr, false)

	cmd := &cobra.Command{
		Use:           "verifier",
		Short:         "Verify an NFT ownership proof fixture",
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
			fxPath, proofPath, vkPath := fixture.Paths(v.GetString("fixture-dir"), system)
			if p := v.GetString("fixture"); p != "" {
				fxPath = p
			}
			if p := v.GetString("proof"); p != "" {
				proofPath = p
			}
			if p := v.GetString("vk"); p != "" {
				vkPath = p
			}

			// -----------------------------------------------------------------
			// Load
			// -----------------------------------------------------------------
			fx, err := fixture.Read(fxPath)
			if err != nil {
				return err
			}
			rec, err := fx.Record()
			if err != nil {
				return fmt.Errorf("%s: %w", fxPath, err)
			}

			vkBytes, err := os.ReadFile(vkPath)
			if err != nil {
				return err
			}
			vk, err := zkvm.ReadVerifyingKey(guest.Program{}, system, vkBytes)
			if err != nil {
				return err
			}
			digest, err := vk.Bytes32()
			if err != nil {
				return err
			}
			if digest != fx.VerifyingKey {
				return fmt.Errorf("%s: verifyingKey %s does not match %s (%s)", fxPath, fx.VerifyingKey, vkPath, digest)
			}

			f, err := os.Open(proofPath)
			if err != nil {
				return err
			}
			defer f.Close()
			proof, err := zkvm.ReadProof(system, fx.PublicValues, f)
			if err != nil {
				return err
			}

			// -----------------------------------------------------------------
			// Verify
			// -----------------------------------------------------------------
			client := zkvm.NewClient(zkvm.WithLogger(log))
			if err := client.Verify(proof, vk); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "wallet:   %s\n", address.Hex(rec.Wallet))
			fmt.Fprintf(out, "ca:       %s\n", address.Hex(rec.Contract))
			fmt.Fprintf(out, "token_id: %s\n", rec.TokenID.Dec())
			fmt.Fprintf(out, "has_nft:  %t\n", rec.HasNFT)
			fmt.Fprintln(out, "proof verified ✅")
			return nil
		},
	}

	system := zkvm.Groth16
	cmd.Flags().Var(&system, "system", "Proof system: groth16 or plonk")
	cmd.Flags().String("fixture-dir", fixture.DefaultDir, "Directory holding <system>-fixture.json, -proof.bin and -vk.bin")
	cmd.Flags().String("fixture", "", "Fixture JSON (overrides --fixture-dir)")
	cmd.Flags().String("proof", "", "Binary proof (overrides --fixture-dir)")
	cmd.Flags().String("vk", "", "Binary verifying key (overrides --fixture-dir)")
	cmd.Flags().BoolP("verbose", "v", false, "Debug logging")

	if err := cmd.ExecuteContext(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("verification failed")
	}
}
