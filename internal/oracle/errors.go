package oracle

import "errors"

var (
	// ErrCompletionRequest wraps transport or API failures of a
	// chat-completion call.
	ErrCompletionRequest = errors.New("completion request failed")

	// ErrNoCompletionChoices is returned when the endpoint answers
	// successfully but carries no choices.
	ErrNoCompletionChoices = errors.New("completion response contains no choices")
)
