package commands

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"libauth/cmd/internal/env"
	"libauth/internal/app"
	"libauth/internal/logging"
)

const envPrefix = "libauth"

// ErrInvalidSignature is returned by verify when the signature does not match.
var ErrInvalidSignature = errors.New("signature is not valid")

var (
	home      string
	logLevel  string
	logFormat string
	appCtx    *app.Wire

	remoteURL string
)

// Execute runs the CLI with os.Args.
func Execute() error {
	root := NewRootCommand()
	err := root.Execute()
	if err != nil && !errors.Is(err, ErrInvalidSignature) {
		fmt.Fprintln(root.ErrOrStderr(), "libauth:", err)
	}
	return err
}

// ExitCode maps a command error to the process exit status: 1 for a
// signature that did not verify, 2 for malformed input or any other failure.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, ErrInvalidSignature):
		return 1
	default:
		return 2
	}
}

// NewRootCommand builds the command tree. Flags are rebound on every call.
func NewRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "libauth",
		Short:         "Ed25519 message signing and verification",
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := env.CheckEnvironmentVariables(envPrefix, cmd); err != nil {
				return err
			}
			if home == "" {
				dir, err := os.UserHomeDir()
				if err != nil {
					return err
				}
				home = filepath.Join(dir, ".libauth")
			}
			if err := os.MkdirAll(home, 0o700); err != nil {
				return err
			}

			logger, err := logging.New(cmd.ErrOrStderr(), logLevel, logFormat)
			if err != nil {
				return err
			}
			appCtx, err = app.NewWire(app.Config{
				Home:      home,
				ServerURL: remoteURL,
				HTTP:      &http.Client{Timeout: 10 * time.Second},
				Logger:    logger,
			})
			return err
		},
	}

	root.PersistentFlags().StringVar(&home, "home", "", "key directory (default ~/.libauth)")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level: debug, info, warn, error")
	root.PersistentFlags().StringVar(&logFormat, "log-format", "text", "log format: text, json, json-pretty")

	root.AddCommand(
		keygenCmd(),
		pubkeyCmd(),
		fingerprintCmd(),
		signCmd(),
		verifyCmd(),
		trustCmd(),
		untrustCmd(),
		listCmd(),
		deleteCmd(),
	)
	return root
}
