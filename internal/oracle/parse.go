package oracle

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/oneday-app/oneday-server/models"
)

var errEmptyReply = errors.New("empty classifier reply")

// intentPayload mirrors the JSON object the classifier is instructed to
// produce. Numeric fields are decoded from raw JSON so that a model emitting
// the wrong type ("selection": "2") loses that one field instead of the
// whole intent.
type intentPayload struct {
	Action      string          `json:"action"`
	NoteID      string          `json:"noteId"`
	Query       string          `json:"query"`
	Selection   json.RawMessage `json:"selection"`
	NewText     string          `json:"newText"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Limit       json.RawMessage `json:"limit"`
}

// parseIntent decodes a classifier reply into a [models.Intent].
//
// Models routinely wrap JSON in markdown fences or pad it with prose, so the
// reply is trimmed down to its outermost braces before decoding. An action
// outside the known set is an error; the caller degrades it to
// [models.ActionNone].
func parseIntent(reply string) (models.Intent, error) {
	body, err := extractJSONObject(reply)
	if err != nil {
		return models.Intent{}, err
	}

	var payload intentPayload
	if err := json.Unmarshal([]byte(body), &payload); err != nil {
		return models.Intent{}, fmt.Errorf("decoding classifier reply: %w", err)
	}

	action := models.IntentAction(strings.ToLower(strings.TrimSpace(payload.Action)))
	if !models.KnownAction(action) {
		return models.Intent{}, fmt.Errorf("unknown action %q", payload.Action)
	}

	return models.Intent{
		Action:      action,
		NoteID:      strings.TrimSpace(payload.NoteID),
		Query:       strings.TrimSpace(payload.Query),
		Selection:   decodePositiveInt(payload.Selection),
		NewText:     payload.NewText,
		Title:       strings.TrimSpace(payload.Title),
		Description: strings.TrimSpace(payload.Description),
		Limit:       decodePositiveInt(payload.Limit),
	}, nil
}

// extractJSONObject strips markdown fences and surrounding prose, returning
// the substring from the first '{' to the last '}'.
func extractJSONObject(reply string) (string, error) {
	s := strings.TrimSpace(reply)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")

	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start == -1 || end == -1 || end < start {
		return "", errEmptyReply
	}

	return s[start : end+1], nil
}

// decodePositiveInt reads a raw JSON value as a positive integer. Anything
// else — absent, null, a string, a fraction, zero or negative — counts as
// absent.
func decodePositiveInt(raw json.RawMessage) int {
	if len(raw) == 0 {
		return 0
	}

	var n int
	if err := json.Unmarshal(raw, &n); err != nil {
		return 0
	}
	if n <= 0 {
		return 0
	}

	return n
}
