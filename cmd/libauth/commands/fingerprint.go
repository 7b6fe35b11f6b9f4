package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"libauth/internal/crypto"
	"libauth/internal/domain"
	"libauth/internal/store"
)

func fingerprintCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fingerprint <name>",
		Short: "Print the fingerprint of an own or trusted key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := domain.KeyName(args[0])
			fp, err := appCtx.Signing.Fingerprint(name)
			if errors.Is(err, store.ErrKeyNotFound) {
				vk, ok, terr := appCtx.Trust.Trusted(name)
				if terr != nil {
					return terr
				}
				if !ok {
					return err
				}
				fp, err = crypto.Fingerprint(vk), nil
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Fingerprint: %s\n", fp)
			return nil
		},
	}
}
