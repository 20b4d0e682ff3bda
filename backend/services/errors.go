package services

import (
	"errors"
	"fmt"

	"dsatracker/backend/engine"
	"dsatracker/backend/repository"
)

var (
	// ErrNotFound covers unknown users and topics.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput is shared with the engine so either side can be matched with errors.Is.
	ErrInvalidInput = engine.ErrInvalidInput

	// ErrStoreUnavailable marks a failed or timed out store call. Nothing was committed; retrying is safe.
	ErrStoreUnavailable = errors.New("store unavailable")

	// ErrInconsistentState is returned instead of a made-up number, e.g. overall progress without topics.
	ErrInconsistentState = errors.New("inconsistent state")

	ErrInvalidCredentials = errors.New("invalid credentials")
)

// classify maps a store error to one of the sentinels above, keeping already classified errors.
func classify(op string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrNotFound),
		errors.Is(err, ErrInvalidInput),
		errors.Is(err, ErrStoreUnavailable),
		errors.Is(err, ErrInconsistentState),
		errors.Is(err, ErrInvalidCredentials):
		return err
	case errors.Is(err, repository.ErrNotFound):
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	default:
		return fmt.Errorf("%s: %w: %w", op, ErrStoreUnavailable, err)
	}
}
