package models

// IntentAction enumerates the note actions the classifier may detect in a
// user message.
type IntentAction string

const (
	ActionList   IntentAction = "list"
	ActionRead   IntentAction = "read"
	ActionUpdate IntentAction = "update"
	ActionDelete IntentAction = "delete"
	ActionCreate IntentAction = "create"
	ActionNone   IntentAction = "none"
)

// KnownAction reports whether a is one of the enumerated intent actions.
func KnownAction(a IntentAction) bool {
	switch a {
	case ActionList, ActionRead, ActionUpdate, ActionDelete, ActionCreate, ActionNone:
		return true
	}
	return false
}

// Intent is the classified, structured interpretation of a user message with
// respect to note actions. It is ephemeral and never persisted.
//
// At most one of NoteID, Query, and Selection is expected to be meaningful
// per resolution attempt; absence of all three signals an underspecified
// request.
type Intent struct {
	// Action is the detected note action. Classification failures of any
	// kind degrade to ActionNone.
	Action IntentAction

	// NoteID is a direct note identifier, when the user referenced one.
	NoteID string

	// Query is a free-text description of the target note.
	Query string

	// Selection is a 1-based ordinal reference into a previously rendered
	// list ("the second one"). Zero means absent.
	Selection int

	// NewText is the replacement content for an update action.
	NewText string

	// Title and Description carry the parts of a create action.
	Title       string
	Description string

	// Limit is the requested list size. Zero means absent.
	Limit int
}
