package app

import (
	"errors"
	"net/http"

	"libauth/internal/domain"
	"libauth/internal/logging"
	"libauth/internal/remote"
	signingsvc "libauth/internal/services/signing"
	verificationsvc "libauth/internal/services/verification"
	"libauth/internal/store"
)

// ErrNoHome is returned when Config.Home is empty.
var ErrNoHome = errors.New("app: home directory not set")

// Wire bundles all stores, services, and clients for the CLI.
type Wire struct {
	Keys         domain.KeyStore
	Trust        domain.TrustStore
	Signing      domain.SigningService
	Verification domain.VerificationService
	Remote       domain.VerifierClient // nil when no ServerURL is configured
}

// NewWire constructs the dependency graph from cfg.
func NewWire(cfg Config) (*Wire, error) {
	if cfg.Home == "" {
		return nil, ErrNoHome
	}
	log := cfg.Logger
	if log == nil {
		log = logging.Discard()
	}

	// File-based stores
	storeLog := store.WithLogger(log.WithField("component", "store"))
	keyStore := store.NewKeyFileStore(cfg.Home, storeLog)
	trustStore := store.NewTrustFileStore(cfg.Home, storeLog)

	// Ensure an HTTP client is available for outbound calls
	httpClient := cfg.HTTP
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	var rc domain.VerifierClient
	if cfg.ServerURL != "" {
		rc = remote.NewClient(cfg.ServerURL, httpClient)
	}

	return &Wire{
		Keys:         keyStore,
		Trust:        trustStore,
		Signing:      signingsvc.New(keyStore, log.WithField("component", "signing")),
		Verification: verificationsvc.New(trustStore, log.WithField("component", "verification")),
		Remote:       rc,
	}, nil
}
