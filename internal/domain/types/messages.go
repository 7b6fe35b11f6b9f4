package types

// SignedMessage is an application envelope pairing a message with its
// signature and the verifying key that produced it.
type SignedMessage struct {
	Version      uint8        `json:"version"`
	KeyName      KeyName      `json:"key_name,omitempty"`
	VerifyingKey VerifyingKey `json:"verifying_key"`
	Message      []byte       `json:"message"`
	Signature    Signature    `json:"signature"`
	SignedAt     int64        `json:"signed_at"`
}

// VerifyRequest is the JSON body accepted by the verification API.
// Exactly one of KeyName or PublicKey identifies the verifying key.
// Byte fields are base64-encoded automatically.
type VerifyRequest struct {
	KeyName   KeyName `json:"key_name,omitempty"`
	PublicKey []byte  `json:"public_key,omitempty"`
	Message   []byte  `json:"message"`
	Signature []byte  `json:"signature"`
}

// VerifyResponse reports the outcome of a verification.
type VerifyResponse struct {
	Valid       bool        `json:"valid"`
	Fingerprint Fingerprint `json:"fingerprint,omitempty"`
}

// ErrorResponse is returned by the verification API with non-2xx statuses.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}
