// Package domain defines core data models and interfaces shared across libauth.
// It contains plain types (keys, signatures, envelopes, API bodies) and
// contracts (stores, services, clients) only.
package domain
