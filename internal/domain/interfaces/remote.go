package interfaces

import (
	"context"

	domaintypes "libauth/internal/domain/types"
)

// VerifierClient talks to a remote verification daemon, all with context.
type VerifierClient interface {
	Verify(
		ctx context.Context,
		request domaintypes.VerifyRequest,
	) (domaintypes.VerifyResponse, error)
	VerifyEnvelope(
		ctx context.Context,
		envelope domaintypes.SignedMessage,
	) (domaintypes.VerifyResponse, error)
	Health(ctx context.Context) error
}
