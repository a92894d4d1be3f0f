package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Stores and adapters return
// these (optionally wrapped) so services can translate them into domain errors.
//
// These represent factual states about resources, not validation failures:
// - ErrNotFound: record does not exist in store or registry
// - ErrConflict: compare-and-swap lost against a concurrent writer
// - ErrAlreadyUsed: unique key (declaration number) already taken
// - ErrExpired: registry entry or cached record has expired
// - ErrUnavailable: backing service temporarily unavailable
//
// For validation errors (bad input, missing fields), use pkg/domain-errors directly.
var (
	ErrNotFound    = errors.New("not found")
	ErrConflict    = errors.New("conflict")
	ErrAlreadyUsed = errors.New("already used")
	ErrExpired     = errors.New("expired")
	ErrUnavailable = errors.New("unavailable")
)
