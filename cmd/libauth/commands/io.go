package commands

import (
	"errors"
	"fmt"
	"io"
	"os"

	"libauth/internal/crypto"
)

// readMessage takes the message from the positional argument or from the
// --in file, where "-" means stdin. Exactly one source must be given.
func readMessage(args []string, in string, stdin io.Reader) ([]byte, error) {
	switch {
	case len(args) > 0 && in != "":
		return nil, errors.New("give the message as an argument or with --in, not both")
	case len(args) > 0:
		return []byte(args[0]), nil
	case in == "-":
		return io.ReadAll(stdin)
	case in != "":
		return os.ReadFile(in)
	default:
		return nil, errors.New("message required: pass it as an argument or with --in")
	}
}

// writeOutput writes b to path, or to w when path is empty.
func writeOutput(w io.Writer, path string, b []byte) error {
	if path == "" {
		_, err := w.Write(b)
		return err
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

func decodeHexKey(b []byte) ([]byte, error) {
	return crypto.DecodeHex(string(b))
}
