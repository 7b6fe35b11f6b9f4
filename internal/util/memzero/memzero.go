// Package memzero wipes secret buffers.
package memzero

import (
	"crypto/subtle"
	"runtime"
)

// Zero overwrites b with zeros in a constant-time friendly way.
//
// This is best-effort: Go may have copied the bytes elsewhere (stack growth,
// earlier conversions), so callers should still keep secret lifetimes short.
//
//go:noinline
func Zero(b []byte) {
	if len(b) == 0 {
		return
	}
	subtle.XORBytes(b, b, b)
	runtime.KeepAlive(b)
}
