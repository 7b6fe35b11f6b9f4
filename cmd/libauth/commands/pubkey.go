package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"libauth/internal/crypto"
	"libauth/internal/domain"
)

func pubkeyCmd() *cobra.Command {
	var (
		out      string
		asBase64 bool
	)
	cmd := &cobra.Command{
		Use:   "pubkey <name>",
		Short: "Print a stored public key as hex or base64, or write it raw with --out",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			vk, err := appCtx.Signing.VerifyingKey(domain.KeyName(args[0]))
			if err != nil {
				return err
			}
			if out != "" {
				return writeOutput(cmd.OutOrStdout(), out, vk.Slice())
			}
			if asBase64 {
				fmt.Fprintln(cmd.OutOrStdout(), crypto.B64(vk.Slice()))
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), vk)
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "write the 32 raw key bytes to this file")
	cmd.Flags().BoolVar(&asBase64, "base64", false, "print base64, as used in verifyd request bodies")
	return cmd
}
