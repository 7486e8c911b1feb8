package services

import "errors"

// Shared service-level errors, mapped to HTTP statuses in the handlers.
var (
	// Missing resources
	ErrTournamentNotFound   = errors.New("tournament not found")
	ErrGroupNotFound        = errors.New("group not found")
	ErrMatchNotFound        = errors.New("match not found")
	ErrTriggerMatchNotFound = errors.New("trigger match not found in tournament")

	// Input contract violations
	ErrInvalidGroupLabel    = errors.New("invalid group label")
	ErrInvalidGroupPosition = errors.New("invalid group position")

	// Stored data inconsistencies. These are fatal: they mean the fixture
	// data itself is broken, not that a result is still pending.
	ErrDataIntegrity = errors.New("tournament data integrity violation")
)
