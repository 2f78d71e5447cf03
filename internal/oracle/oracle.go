// Package oracle talks to an OpenAI-compatible chat-completion endpoint.
//
// It exposes exactly two capabilities to the rest of the application:
// classifying a user message into a structured note intent, and producing a
// free-form conversational reply. Everything model-specific — the prompts,
// the temperature, the defensive decoding of model output — stays inside
// this package.
package oracle

import (
	"context"

	"github.com/oneday-app/oneday-server/models"
)

// Turn is one prior exchange turn passed to the model as context.
type Turn struct {
	Role    string
	Content string
}

// Oracle is the language-model boundary of the application.
type Oracle interface {
	// Classify interprets a user message as a note action. It never
	// fails: transport errors, malformed model output, and unknown
	// actions all degrade to an intent with [models.ActionNone].
	Classify(ctx context.Context, message string, history []Turn) models.Intent

	// Converse produces a free-form assistant reply to a user message.
	Converse(ctx context.Context, message string, history []Turn) (string, error)
}
