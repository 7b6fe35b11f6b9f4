package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"libauth/internal/domain"
)

// keygen <name>: create and store a new key pair.
func keygenCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "keygen <name>",
		Short: "Generate a key pair and store it under name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			vk, fp, err := appCtx.Signing.GenerateKey(domain.KeyName(args[0]))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Key %s created.\nPublic key: %s\nFingerprint: %s\n", args[0], vk, fp)
			return nil
		},
	}
}
