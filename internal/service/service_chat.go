package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/oneday-app/oneday-server/internal/logger"
	"github.com/oneday-app/oneday-server/internal/oracle"
	"github.com/oneday-app/oneday-server/internal/store"
	"github.com/oneday-app/oneday-server/models"
)

const (
	// historyWindow is how many trailing conversation turns accompany each
	// oracle call.
	historyWindow = 10

	// listLimitDefault and listLimitMax bound how many notes a chat
	// listing renders.
	listLimitDefault = 10
	listLimitMax     = 20

	// previewLength caps rendered note previews, in runes.
	previewLength = 120

	// titleLength caps a conversation title derived from its first
	// message, in runes.
	titleLength = 50

	defaultConversationTitle = "New Chat"
)

// chatService implements [ChatService]. Each message runs through four
// stages: the oracle classifies it into an intent, the resolver pins the
// intent to a concrete note, the executor performs the action and writes the
// reply, and the recorder persists the exchange atomically.
type chatService struct {
	conversations store.ConversationRepository
	notes         store.NoteRepository
	llm           oracle.Oracle
	logger        *logger.Logger
}

// NewChatService constructs a [ChatService].
func NewChatService(conversations store.ConversationRepository, notes store.NoteRepository, llm oracle.Oracle, log *logger.Logger) ChatService {
	log.Debug().Msg("creating chat service")
	return &chatService{
		conversations: conversations,
		notes:         notes,
		llm:           llm,
		logger:        log,
	}
}

// SendMessage processes one user message end to end.
func (s *chatService) SendMessage(ctx context.Context, userID string, req models.ChatRequest) (models.ChatReply, error) {
	log := logger.FromContext(ctx)

	message := strings.TrimSpace(req.Message)
	if message == "" {
		return models.ChatReply{}, fmt.Errorf("%w: message is required", ErrInvalidDataProvided)
	}

	var (
		turns       []oracle.Turn
		lastListing string
	)
	if req.ConversationID != "" {
		if _, err := s.conversations.GetConversation(ctx, req.ConversationID, userID); err != nil {
			return models.ChatReply{}, err
		}

		messages, err := s.conversations.ListMessages(ctx, req.ConversationID, userID)
		if err != nil {
			return models.ChatReply{}, err
		}
		turns, lastListing = historyTurns(messages)
	}

	intent := s.llm.Classify(ctx, message, turns)
	log.Debug().
		Str("func", "*chatService.SendMessage").
		Str("action", string(intent.Action)).
		Msg("message classified")

	reply, notesChanged, err := s.execute(ctx, userID, intent, message, turns, lastListing)
	if err != nil {
		return models.ChatReply{}, err
	}

	exchange := models.Exchange{
		UserID:           userID,
		ConversationID:   req.ConversationID,
		UserContent:      message,
		AssistantContent: reply,
	}
	if req.ConversationID == "" {
		exchange.Title = deriveTitle(message)
	}

	conversationID, err := s.conversations.RecordExchange(ctx, exchange)
	if err != nil {
		return models.ChatReply{}, err
	}

	return models.ChatReply{
		Message:        reply,
		ConversationID: conversationID,
		NotesChanged:   notesChanged,
	}, nil
}

// execute performs the classified action and produces the assistant's reply
// text. The second return value reports whether note data was mutated.
func (s *chatService) execute(ctx context.Context, userID string, intent models.Intent, message string, turns []oracle.Turn, lastListing string) (string, bool, error) {
	switch intent.Action {
	case models.ActionCreate:
		return s.executeCreate(ctx, userID, intent)
	case models.ActionList:
		reply, err := s.executeList(ctx, userID, intent.Limit)
		return reply, false, err
	case models.ActionRead, models.ActionUpdate, models.ActionDelete:
		return s.executeTargeted(ctx, userID, intent, lastListing)
	default:
		return s.executeConversational(ctx, userID, message, turns)
	}
}

func (s *chatService) executeCreate(ctx context.Context, userID string, intent models.Intent) (string, bool, error) {
	text := composeNoteText(intent)
	if text == "" {
		return "What would you like the note to say?", false, nil
	}

	note, err := s.notes.CreateNote(ctx, models.Note{
		UserID: userID,
		Text:   text,
		Color:  defaultNoteColor,
	})
	if err != nil {
		return "", false, err
	}

	return "Created a note: " + preview(note.Text), true, nil
}

func (s *chatService) executeList(ctx context.Context, userID string, limit int) (string, error) {
	notes, err := s.notes.ListNotes(ctx, userID, clampLimit(limit))
	if err != nil {
		return "", err
	}

	if len(notes) == 0 {
		return "You don't have any notes yet. Tell me something to remember and I'll save it for you.", nil
	}

	return renderNoteList("Here are your notes:", notes), nil
}

func (s *chatService) executeTargeted(ctx context.Context, userID string, intent models.Intent, lastListing string) (string, bool, error) {
	// an update needs replacement text before it is worth resolving a target
	newText := strings.TrimSpace(intent.NewText)
	if intent.Action == models.ActionUpdate && newText == "" {
		return "What should the note say instead?", false, nil
	}

	notes, err := s.notes.ListNotes(ctx, userID, 0)
	if err != nil {
		return "", false, err
	}

	res := resolveNoteReference(intent, notes, lastListing)
	switch res.outcome {
	case resolvedUnderspecified:
		return "Which note do you mean? Tell me what it's about.", false, nil
	case resolvedNotFound:
		return "I couldn't find a matching note.", false, nil
	case resolvedAmbiguous:
		return renderNoteList("I found a few notes like that. Which one do you mean?", res.candidates), false, nil
	}

	switch intent.Action {
	case models.ActionRead:
		return "Here's your note:\n\n" + res.note.Text, false, nil

	case models.ActionUpdate:
		updated, err := s.notes.UpdateNoteText(ctx, res.note.ID, userID, newText)
		if err != nil {
			return "", false, err
		}
		return "Updated the note: " + preview(updated.Text), true, nil

	case models.ActionDelete:
		if err := s.notes.DeleteNote(ctx, res.note.ID, userID); err != nil {
			return "", false, err
		}
		return "Deleted the note: " + preview(res.note.Text), true, nil
	}

	return "I couldn't find a matching note.", false, nil
}

// executeConversational handles messages without a detected note action.
// When the text still reads like a notes request, listing beats letting the
// oracle invent note content it cannot see.
func (s *chatService) executeConversational(ctx context.Context, userID string, message string, turns []oracle.Turn) (string, bool, error) {
	if looksLikeNoteRequest(message) {
		reply, err := s.executeList(ctx, userID, listLimitDefault)
		return reply, false, err
	}

	reply, err := s.llm.Converse(ctx, message, turns)
	if err != nil {
		return "", false, fmt.Errorf("%w: %w", ErrOracleUnavailable, err)
	}

	return reply, false, nil
}

// ListConversations returns the account's threads ordered by last activity.
func (s *chatService) ListConversations(ctx context.Context, userID string) ([]models.Conversation, error) {
	return s.conversations.ListConversations(ctx, userID)
}

// ListMessages returns the messages of one conversation in order.
func (s *chatService) ListMessages(ctx context.Context, userID, conversationID string) ([]models.Message, error) {
	if conversationID == "" {
		return nil, fmt.Errorf("%w: conversation id is required", ErrInvalidDataProvided)
	}

	if _, err := s.conversations.GetConversation(ctx, conversationID, userID); err != nil {
		return nil, err
	}

	return s.conversations.ListMessages(ctx, conversationID, userID)
}

// DeleteConversation removes a conversation and its messages.
func (s *chatService) DeleteConversation(ctx context.Context, userID, conversationID string) error {
	if conversationID == "" {
		return fmt.Errorf("%w: conversation id is required", ErrInvalidDataProvided)
	}

	return s.conversations.DeleteConversation(ctx, conversationID, userID)
}

// historyTurns converts stored messages into oracle turns, keeping the
// trailing historyWindow of them, and returns the content of the most recent
// assistant turn that rendered a numbered list, for ordinal reference
// recovery. Assistant turns without a list (small talk between the listing
// and the selection) are skipped.
func historyTurns(messages []models.Message) ([]oracle.Turn, string) {
	var lastListing string
	for i := len(messages) - 1; i >= 0; i-- {
		if messages[i].Role == models.RoleAssistant && numberedLine.MatchString(messages[i].Content) {
			lastListing = messages[i].Content
			break
		}
	}

	if len(messages) > historyWindow {
		messages = messages[len(messages)-historyWindow:]
	}

	turns := make([]oracle.Turn, 0, len(messages))
	for _, msg := range messages {
		turns = append(turns, oracle.Turn{Role: msg.Role, Content: msg.Content})
	}

	return turns, lastListing
}

// composeNoteText builds the content of a note to create from the intent's
// optional title and description.
func composeNoteText(intent models.Intent) string {
	title := strings.TrimSpace(intent.Title)
	description := strings.TrimSpace(intent.Description)

	switch {
	case title != "" && description != "":
		return title + ": " + description
	case title != "":
		return title
	default:
		return description
	}
}

// clampLimit bounds a requested list size to [1, listLimitMax], defaulting
// to listLimitDefault when absent.
func clampLimit(limit int) int {
	if limit <= 0 {
		return listLimitDefault
	}
	if limit > listLimitMax {
		return listLimitMax
	}
	return limit
}

// renderNoteList renders notes as a 1-based numbered list of previews under
// a header line. The resolver's ordinal recovery re-parses this exact shape.
func renderNoteList(header string, notes []models.Note) string {
	var b strings.Builder
	b.WriteString(header)
	for i, note := range notes {
		b.WriteString(fmt.Sprintf("\n%d. %s", i+1, preview(note.Text)))
	}
	return b.String()
}

// preview truncates text to previewLength runes with an ellipsis suffix.
func preview(text string) string {
	runes := []rune(text)
	if len(runes) <= previewLength {
		return text
	}
	return string(runes[:previewLength]) + "…"
}

// deriveTitle produces a conversation title from its first user message.
func deriveTitle(message string) string {
	runes := []rune(message)
	if len(runes) > titleLength {
		return string(runes[:titleLength]) + "..."
	}
	if message == "" {
		return defaultConversationTitle
	}
	return message
}

// looksLikeNoteRequest is the keyword fallback for classifier misses: an
// action verb next to the word "note(s)" strongly suggests the user wants
// their notes, not a freeform chat.
func looksLikeNoteRequest(message string) bool {
	lowered := strings.ToLower(message)
	if !strings.Contains(lowered, "note") {
		return false
	}

	for _, verb := range []string{"list", "show", "see", "view", "display", "what", "my"} {
		if strings.Contains(lowered, verb) {
			return true
		}
	}

	return false
}
