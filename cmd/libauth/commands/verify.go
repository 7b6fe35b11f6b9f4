package commands

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"libauth/internal/crypto"
	"libauth/internal/domain"
	"libauth/internal/envelope"
	"libauth/internal/services/verification"
	"libauth/internal/store"
)

// verify [message]: check a signature locally or against verifyd.
func verifyCmd() *cobra.Command {
	var (
		in      string
		keyName string
		pubFile string
		sigFile string
		sigHex  string
		envFile string
	)
	cmd := &cobra.Command{
		Use:   "verify [message]",
		Short: "Verify a signature or an envelope",
		Long: `Verify a signature or an envelope.

The key is a trusted or own key name (--key) or a raw 32-byte public key file
(--pubkey). The signature is a raw 64-byte file (--sig) or hex (--sig-hex).
--envelope checks a msgpack envelope, which carries its own message, key and
signature; its key must be trusted. --remote sends the check to verifyd, which
uses its own trust store.

Exit status is 0 when the signature is valid, 1 when it is not, and 2 when the
input is malformed or the check could not be made.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if envFile != "" {
				if len(args) > 0 || in != "" || keyName != "" || pubFile != "" || sigFile != "" || sigHex != "" {
					return errors.New("--envelope carries its own message, key and signature")
				}
				return verifyEnvelopeFile(cmd, envFile)
			}

			msg, err := readMessage(args, in, cmd.InOrStdin())
			if err != nil {
				return err
			}
			sig, err := readSignature(sigFile, sigHex)
			if err != nil {
				return err
			}
			req := domain.VerifyRequest{Message: msg, Signature: sig}
			switch {
			case keyName != "" && pubFile != "":
				return errors.New("use --key or --pubkey, not both")
			case keyName != "":
				req.KeyName = domain.KeyName(keyName)
			case pubFile != "":
				if req.PublicKey, err = os.ReadFile(pubFile); err != nil {
					return err
				}
			default:
				return errors.New("a key is required: use --key or --pubkey")
			}

			valid, fp, err := verifyRequest(cmd.Context(), req)
			if err != nil {
				return err
			}
			return report(cmd, valid, fp)
		},
	}
	cmd.Flags().StringVar(&in, "in", "", `read the message from this file ("-" for stdin)`)
	cmd.Flags().StringVarP(&keyName, "key", "k", "", "name of a trusted or own key")
	cmd.Flags().StringVar(&pubFile, "pubkey", "", "file holding a raw 32-byte public key")
	cmd.Flags().StringVar(&sigFile, "sig", "", "file holding a raw 64-byte signature")
	cmd.Flags().StringVar(&sigHex, "sig-hex", "", "signature as hex")
	cmd.Flags().StringVar(&envFile, "envelope", "", "msgpack envelope file to verify")
	cmd.Flags().StringVar(&remoteURL, "remote", "", "verifyd base URL (e.g. http://127.0.0.1:8080)")
	return cmd
}

func readSignature(file, hexSig string) ([]byte, error) {
	switch {
	case file != "" && hexSig != "":
		return nil, errors.New("use --sig or --sig-hex, not both")
	case file != "":
		return os.ReadFile(file)
	case hexSig != "":
		b, err := crypto.DecodeHex(hexSig)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", crypto.ErrMalformedSignature, err)
		}
		return b, nil
	default:
		return nil, errors.New("a signature is required: use --sig or --sig-hex")
	}
}

func verifyRequest(ctx context.Context, req domain.VerifyRequest) (bool, domain.Fingerprint, error) {
	if appCtx.Remote != nil {
		resp, err := appCtx.Remote.Verify(ctx, req)
		return resp.Valid, resp.Fingerprint, err
	}
	if req.KeyName == "" {
		return appCtx.Verification.VerifyRaw(req.PublicKey, req.Message, req.Signature)
	}

	valid, fp, err := appCtx.Verification.Verify(req.KeyName, req.Message, req.Signature)
	if !errors.Is(err, verification.ErrUnknownKey) {
		return valid, fp, err
	}
	// Not trusted; fall back to one of our own keys.
	vk, ownErr := appCtx.Keys.LoadVerifyingKey(req.KeyName)
	if errors.Is(ownErr, store.ErrKeyNotFound) {
		return false, "", err
	}
	if ownErr != nil {
		return false, "", ownErr
	}
	return appCtx.Verification.VerifyRaw(vk.Slice(), req.Message, req.Signature)
}

func verifyEnvelopeFile(cmd *cobra.Command, path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	env, err := envelope.Unmarshal(raw)
	if err != nil {
		return err
	}

	var (
		valid bool
		fp    domain.Fingerprint
	)
	if appCtx.Remote != nil {
		resp, rerr := appCtx.Remote.VerifyEnvelope(cmd.Context(), env)
		valid, fp, err = resp.Valid, resp.Fingerprint, rerr
	} else {
		valid, fp, err = appCtx.Verification.VerifyEnvelope(env)
	}
	if err != nil {
		return err
	}
	if valid {
		fmt.Fprintf(cmd.OutOrStdout(), "Key: %s\nSigned at: %s\n",
			env.KeyName, envelope.SignedTime(env).Format("2006-01-02T15:04:05Z07:00"))
	}
	return report(cmd, valid, fp)
}

func report(cmd *cobra.Command, valid bool, fp domain.Fingerprint) error {
	if !valid {
		fmt.Fprintln(cmd.OutOrStdout(), "INVALID")
		return ErrInvalidSignature
	}
	fmt.Fprintf(cmd.OutOrStdout(), "VALID\nFingerprint: %s\n", fp)
	return nil
}
