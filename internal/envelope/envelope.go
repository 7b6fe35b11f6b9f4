package envelope

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"libauth/internal/crypto"
	"libauth/internal/domain"
)

// Version is the only envelope format this package produces and accepts.
const Version uint8 = 1

// ContentType is the media type used when envelopes travel over HTTP.
const ContentType = "application/msgpack"

const transcriptContext = "libauth/envelope/v1"

var (
	// ErrUnsupportedVersion is returned for envelopes from a newer format.
	ErrUnsupportedVersion = errors.New("unsupported envelope version")
	// ErrMalformedEnvelope is returned when the bytes are not an envelope.
	ErrMalformedEnvelope = errors.New("malformed envelope")
)

// wire is the msgpack layout. Keys travel as bin so lengths can be checked
// before they are copied into fixed-size arrays. Version is decoded wide so
// out-of-range values are rejected rather than truncated.
type wire struct {
	Version      int64  `msgpack:"v"`
	KeyName      string `msgpack:"kn,omitempty"`
	VerifyingKey []byte `msgpack:"vk"`
	Message      []byte `msgpack:"msg"`
	Signature    []byte `msgpack:"sig"`
	SignedAt     int64  `msgpack:"ts"`
}

// Seal signs msg with sk and returns the envelope. The signature binds the
// key name and timestamp as well as the message.
func Seal(sk domain.SigningKey, name domain.KeyName, msg []byte, now time.Time) (domain.SignedMessage, error) {
	if len(name) > math.MaxUint16 {
		return domain.SignedMessage{}, fmt.Errorf("key name too long: %d bytes", len(name))
	}
	env := domain.SignedMessage{
		Version:      Version,
		KeyName:      name,
		VerifyingKey: crypto.DeriveVerifyingKey(sk),
		Message:      append([]byte{}, msg...),
		SignedAt:     now.Unix(),
	}
	env.Signature = crypto.Sign(sk, transcript(env))
	return env, nil
}

// Open checks the envelope's signature against the key it carries.
//
// A malformed key or signature is reported as an error wrapping
// crypto.ErrMalformedKey or crypto.ErrMalformedSignature; a signature that
// simply does not match returns false and a nil error. Callers decide
// separately whether they trust env.VerifyingKey.
func Open(env domain.SignedMessage) (bool, error) {
	if env.Version != Version {
		return false, fmt.Errorf("%w: %d", ErrUnsupportedVersion, env.Version)
	}
	if len(env.KeyName) > math.MaxUint16 {
		return false, fmt.Errorf("%w: key name too long", ErrMalformedEnvelope)
	}
	vk, err := crypto.ParseVerifyingKey(env.VerifyingKey[:])
	if err != nil {
		return false, err
	}
	sig, err := crypto.ParseSignature(env.Signature[:])
	if err != nil {
		return false, err
	}
	return crypto.Verify(vk, transcript(env), sig), nil
}

// SignedTime returns the envelope timestamp.
func SignedTime(env domain.SignedMessage) time.Time {
	return time.Unix(env.SignedAt, 0).UTC()
}

// Marshal encodes env with msgpack.
func Marshal(env domain.SignedMessage) ([]byte, error) {
	return msgpack.Marshal(wire{
		Version:      int64(env.Version),
		KeyName:      env.KeyName.String(),
		VerifyingKey: env.VerifyingKey[:],
		Message:      env.Message,
		Signature:    env.Signature[:],
		SignedAt:     env.SignedAt,
	})
}

// Unmarshal decodes an envelope produced by Marshal. Field lengths are
// checked here; curve-level validation happens in Open. data must hold
// exactly one envelope.
func Unmarshal(data []byte) (domain.SignedMessage, error) {
	var w wire
	r := bytes.NewReader(data)
	if err := msgpack.NewDecoder(r).Decode(&w); err != nil {
		return domain.SignedMessage{}, fmt.Errorf("%w: %v", ErrMalformedEnvelope, err)
	}
	if r.Len() != 0 {
		return domain.SignedMessage{}, fmt.Errorf("%w: %d trailing bytes", ErrMalformedEnvelope, r.Len())
	}
	if w.Version != int64(Version) {
		return domain.SignedMessage{}, fmt.Errorf("%w: %d", ErrUnsupportedVersion, w.Version)
	}
	if len(w.VerifyingKey) != domain.VerifyingKeySize {
		return domain.SignedMessage{}, fmt.Errorf("%w: verifying key: want %d bytes, got %d",
			crypto.ErrMalformedKey, domain.VerifyingKeySize, len(w.VerifyingKey))
	}
	if len(w.Signature) != domain.SignatureSize {
		return domain.SignedMessage{}, fmt.Errorf("%w: want %d bytes, got %d",
			crypto.ErrMalformedSignature, domain.SignatureSize, len(w.Signature))
	}

	env := domain.SignedMessage{
		Version:  Version,
		KeyName:  domain.KeyName(w.KeyName),
		Message:  w.Message,
		SignedAt: w.SignedAt,
	}
	if env.Message == nil {
		env.Message = []byte{}
	}
	copy(env.VerifyingKey[:], w.VerifyingKey)
	copy(env.Signature[:], w.Signature)
	return env, nil
}

// transcript is the byte string actually signed:
//
//	context || 0x00 || version || u64be(signed_at) || u16be(len(name)) || name || message
func transcript(env domain.SignedMessage) []byte {
	buf := make([]byte, 0, len(transcriptContext)+2+8+2+len(env.KeyName)+len(env.Message))
	buf = append(buf, transcriptContext...)
	buf = append(buf, 0, env.Version)
	buf = binary.BigEndian.AppendUint64(buf, uint64(env.SignedAt))
	buf = binary.BigEndian.AppendUint16(buf, uint16(len(env.KeyName)))
	buf = append(buf, string(env.KeyName)...)
	return append(buf, env.Message...)
}
