package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"libauth/internal/crypto"
	"libauth/internal/domain"
	"libauth/internal/envelope"
)

// sign <name> [message]: sign a message with a stored key.
func signCmd() *cobra.Command {
	var (
		in         string
		out        string
		asEnvelope bool
		asBase64   bool
	)
	cmd := &cobra.Command{
		Use:   "sign <name> [message]",
		Short: "Sign a message with a stored key",
		Long: `Sign a message with a stored key.

The message is the second argument or the contents of --in ("-" reads stdin).
By default the signature is printed as hex. --out writes the 64 raw signature
bytes instead; with --envelope a msgpack envelope carrying the message, key
and timestamp is written.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := domain.KeyName(args[0])
			msg, err := readMessage(args[1:], in, cmd.InOrStdin())
			if err != nil {
				return err
			}
			if asEnvelope {
				return signEnvelope(cmd, name, msg, out)
			}

			sig, err := appCtx.Signing.Sign(name, msg)
			if err != nil {
				return err
			}
			if out != "" {
				return writeOutput(cmd.OutOrStdout(), out, sig.Slice())
			}
			if asBase64 {
				fmt.Fprintln(cmd.OutOrStdout(), crypto.B64(sig.Slice()))
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), sig)
			return nil
		},
	}
	cmd.Flags().StringVar(&in, "in", "", `read the message from this file ("-" for stdin)`)
	cmd.Flags().StringVarP(&out, "out", "o", "", "write raw output to this file")
	cmd.Flags().BoolVar(&asEnvelope, "envelope", false, "produce a msgpack envelope instead of a bare signature")
	cmd.Flags().BoolVar(&asBase64, "base64", false, "print the signature as base64 instead of hex")
	return cmd
}

func signEnvelope(cmd *cobra.Command, name domain.KeyName, msg []byte, out string) error {
	env, err := appCtx.Signing.SignEnvelope(name, msg)
	if err != nil {
		return err
	}
	b, err := envelope.Marshal(env)
	if err != nil {
		return err
	}
	return writeOutput(cmd.OutOrStdout(), out, b)
}
