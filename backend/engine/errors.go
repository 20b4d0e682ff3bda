package engine

import "errors"

var (
	// ErrInvalidInput is returned for a topic field or value the calculator does not accept.
	ErrInvalidInput = errors.New("invalid input")
	// ErrNoTopics is returned when overall progress is requested for a user without topics.
	ErrNoTopics = errors.New("user has no topics")
)
