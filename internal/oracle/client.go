package oracle

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/oneday-app/oneday-server/internal/config"
	"github.com/oneday-app/oneday-server/internal/logger"
	"github.com/oneday-app/oneday-server/models"
	"github.com/sashabaranov/go-openai"
)

// classifyHistoryWindow is how many trailing conversation turns the
// classifier sees. Older turns rarely change the reading of the current
// message and only inflate the prompt.
const classifyHistoryWindow = 6

const classifyInstruction = `You are an intent classifier for a note-taking assistant.
Given a user message, respond with ONLY a JSON object, no prose, no markdown.

The JSON object has these fields:
  "action": one of "list", "read", "update", "delete", "create", "none"
  "noteId": string, the exact note id if the user referenced one, else omit
  "query": string, a short description of which note the user means, else omit
  "selection": number, the 1-based position when the user refers to a numbered
               list ("the second one" -> 2), else omit
  "newText": string, the replacement content for an update, else omit
  "title": string, the title of a note to create, else omit
  "description": string, the body of a note to create, else omit
  "limit": number, how many notes to list when the user asked for a count, else omit

Use "none" when the message is not about managing notes.`

const converseInstruction = `You are One Day AI, a friendly assistant inside a personal note-taking app.
Help the user think through their day and their notes. Be concise and warm.
Never invent notes the user has not mentioned; if you are unsure what the user
has saved, say so instead of guessing.`

// Client is the go-openai backed implementation of [Oracle]. Any
// OpenAI-compatible endpoint works; the base URL and model come from
// configuration.
type Client struct {
	api     *openai.Client
	model   string
	timeout time.Duration
	logger  *logger.Logger
}

// NewClient constructs a [Client] from oracle configuration.
func NewClient(cfg config.Oracle, log *logger.Logger) *Client {
	apiConfig := openai.DefaultConfig(cfg.APIKey)
	apiConfig.BaseURL = cfg.BaseURL

	return &Client{
		api:     openai.NewClientWithConfig(apiConfig),
		model:   cfg.Model,
		timeout: cfg.RequestTimeout,
		logger:  log,
	}
}

// Classify interprets a user message as a note action.
//
// The call runs at temperature zero with at most the trailing
// classifyHistoryWindow turns of context. Failures of any kind — transport,
// missing choices, non-JSON output, an action outside the known set — are
// logged and degrade to an intent with [models.ActionNone], so the caller
// can always fall through to a conversational reply.
func (c *Client) Classify(ctx context.Context, message string, history []Turn) models.Intent {
	log := logger.FromContext(ctx)

	// go-openai drops a zero temperature during encoding, so the smallest
	// representable value is used to keep the classifier deterministic.
	reply, err := c.complete(ctx, classifyInstruction, message, tail(history, classifyHistoryWindow), math.SmallestNonzeroFloat32)
	if err != nil {
		log.Warn().Err(err).
			Str("func", "*Client.Classify").
			Msg("classification call failed, treating message as conversational")
		return models.Intent{Action: models.ActionNone}
	}

	intent, err := parseIntent(reply)
	if err != nil {
		log.Warn().Err(err).
			Str("func", "*Client.Classify").
			Str("reply", reply).
			Msg("classifier output is not a usable intent, treating message as conversational")
		return models.Intent{Action: models.ActionNone}
	}

	return intent
}

// Converse produces a free-form assistant reply to a user message.
func (c *Client) Converse(ctx context.Context, message string, history []Turn) (string, error) {
	log := logger.FromContext(ctx)

	reply, err := c.complete(ctx, converseInstruction, message, history, 1)
	if err != nil {
		log.Err(err).
			Str("func", "*Client.Converse").
			Msg("conversational call failed")
		return "", err
	}

	return reply, nil
}

func (c *Client) complete(ctx context.Context, instruction, message string, history []Turn, temperature float32) (string, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	messages := make([]openai.ChatCompletionMessage, 0, len(history)+2)
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleSystem,
		Content: instruction,
	})
	for _, turn := range history {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    turn.Role,
			Content: turn.Content,
		})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: message,
	})

	response, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		Messages:    messages,
		Temperature: temperature,
	})
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrCompletionRequest, err)
	}
	if len(response.Choices) == 0 {
		return "", ErrNoCompletionChoices
	}

	return response.Choices[0].Message.Content, nil
}

// tail returns at most the last n elements of turns.
func tail(turns []Turn, n int) []Turn {
	if len(turns) <= n {
		return turns
	}
	return turns[len(turns)-n:]
}
