package crypto

import (
	"encoding/base64"
	"encoding/hex"
	"strings"
)

// B64 returns standard base64 encoding without newlines.
func B64(b []byte) string { return base64.StdEncoding.EncodeToString(b) }

// DecodeHex decodes s, ignoring surrounding whitespace and an optional 0x
// prefix, so values pasted from terminals or files decode cleanly.
func DecodeHex(s string) ([]byte, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	return hex.DecodeString(s)
}
