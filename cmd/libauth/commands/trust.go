package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"libauth/internal/domain"
)

// trust <name> <pubkey-file>: add another party's public key.
func trustCmd() *cobra.Command {
	var hexKey bool
	cmd := &cobra.Command{
		Use:   "trust <name> <pubkey-file>",
		Short: "Trust a raw 32-byte public key under name",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			pub, err := os.ReadFile(args[1])
			if err != nil {
				return err
			}
			if hexKey {
				if pub, err = decodeHexKey(pub); err != nil {
					return err
				}
			}
			fp, err := appCtx.Verification.Trust(domain.KeyName(args[0]), pub)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Trusted %s.\nFingerprint: %s\n", args[0], fp)
			fmt.Fprintln(cmd.OutOrStdout(), "Compare the fingerprint with its owner over a separate channel.")
			return nil
		},
	}
	cmd.Flags().BoolVar(&hexKey, "hex", false, "the key file holds hex instead of raw bytes")
	return cmd
}

func untrustCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "untrust <name>",
		Short: "Remove a trusted key from the local trust directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := appCtx.Trust.Untrust(domain.KeyName(args[0])); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %s.\n", args[0])
			return nil
		},
	}
}
