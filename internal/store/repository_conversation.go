package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/oneday-app/oneday-server/internal/logger"
	"github.com/oneday-app/oneday-server/internal/utils"
	"github.com/oneday-app/oneday-server/models"
	"github.com/sethvargo/go-retry"
)

// conversationRepository is the PostgreSQL-backed implementation of
// [ConversationRepository]. It owns the "conversations" and "messages"
// tables; the two are only ever written together inside [RecordExchange]'s
// transaction.
type conversationRepository struct {
	logger *logger.Logger
	db     *DB
	ids    *utils.UUIDGenerator
}

// NewConversationRepository constructs a [ConversationRepository] backed by
// the provided database connection and logger.
func NewConversationRepository(db *DB, logger *logger.Logger) ConversationRepository {
	logger.Debug().Msg("creating conversation repository")
	return &conversationRepository{
		db:     db,
		logger: logger,
		ids:    utils.NewUUIDGenerator(),
	}
}

// ListConversations retrieves the owner's conversations ordered by
// last-activity descending. Each conversation carries its most recent
// message so clients can render a preview line.
func (r *conversationRepository) ListConversations(ctx context.Context, userID string) ([]models.Conversation, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildListConversationsQuery(userID)
	if err != nil {
		log.Err(err).
			Str("func", "*conversationRepository.ListConversations").
			Str("user_id", userID).
			Msg("failed to build conversation listing query")
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "*conversationRepository.ListConversations").
			Str("user_id", userID).
			Msg("failed to execute conversation listing query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	conversations := make([]models.Conversation, 0, 10)

	for rows.Next() {
		var conv models.Conversation

		scanErr := rows.Scan(&conv.ID, &conv.UserID, &conv.Title, &conv.CreatedAt, &conv.UpdatedAt)
		if scanErr != nil {
			log.Err(scanErr).
				Str("func", "*conversationRepository.ListConversations").
				Str("user_id", userID).
				Msg("failed to scan conversation row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}

		conversations = append(conversations, conv)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).
			Str("func", "*conversationRepository.ListConversations").
			Str("user_id", userID).
			Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	if err := r.attachLastMessages(ctx, userID, conversations); err != nil {
		return nil, err
	}

	return conversations, nil
}

// attachLastMessages fills the LastMessage field of each conversation with
// its most recent message, using a single DISTINCT ON query.
func (r *conversationRepository) attachLastMessages(ctx context.Context, userID string, conversations []models.Conversation) error {
	if len(conversations) == 0 {
		return nil
	}

	log := logger.FromContext(ctx)

	rows, err := r.db.QueryContext(ctx, lastMessages, userID)
	if err != nil {
		log.Err(err).
			Str("func", "*conversationRepository.attachLastMessages").
			Str("user_id", userID).
			Msg("failed to query last messages")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	latest := make(map[string]models.Message, len(conversations))
	for rows.Next() {
		var msg models.Message

		scanErr := rows.Scan(&msg.ID, &msg.UserID, &msg.ConversationID, &msg.Role, &msg.Content, &msg.CreatedAt)
		if scanErr != nil {
			log.Err(scanErr).
				Str("func", "*conversationRepository.attachLastMessages").
				Str("user_id", userID).
				Msg("failed to scan message row")
			return fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}

		latest[msg.ConversationID] = msg
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		return fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	for i := range conversations {
		if msg, ok := latest[conversations[i].ID]; ok {
			m := msg
			conversations[i].LastMessage = &m
		}
	}

	return nil
}

// GetConversation retrieves one conversation by (id, owner).
//
// Returns [ErrConversationNotFound] when the conversation does not exist or
// belongs to a different account.
func (r *conversationRepository) GetConversation(ctx context.Context, conversationID, userID string) (models.Conversation, error) {
	log := logger.FromContext(ctx)

	var conv models.Conversation
	err := r.db.QueryRowContext(ctx, getConversation, conversationID, userID).
		Scan(&conv.ID, &conv.UserID, &conv.Title, &conv.CreatedAt, &conv.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Conversation{}, ErrConversationNotFound
		}

		log.Err(err).
			Str("func", "*conversationRepository.GetConversation").
			Str("user_id", userID).
			Msg("failed to query conversation")
		return models.Conversation{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return conv, nil
}

// ListMessages retrieves the messages of one conversation in their stable
// total order: creation time ascending, tie-broken by insertion order.
func (r *conversationRepository) ListMessages(ctx context.Context, conversationID, userID string) ([]models.Message, error) {
	log := logger.FromContext(ctx)

	rows, err := r.db.QueryContext(ctx, listMessages, conversationID, userID)
	if err != nil {
		log.Err(err).
			Str("func", "*conversationRepository.ListMessages").
			Str("user_id", userID).
			Msg("failed to execute message listing query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	messages := make([]models.Message, 0, 20)

	for rows.Next() {
		var msg models.Message

		scanErr := rows.Scan(&msg.ID, &msg.UserID, &msg.ConversationID, &msg.Role, &msg.Content, &msg.CreatedAt)
		if scanErr != nil {
			log.Err(scanErr).
				Str("func", "*conversationRepository.ListMessages").
				Str("user_id", userID).
				Msg("failed to scan message row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}

		messages = append(messages, msg)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).
			Str("func", "*conversationRepository.ListMessages").
			Str("user_id", userID).
			Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return messages, nil
}

// recordExchangeBackoff bounds the retry schedule for a deadlocked or
// serialization-failed exchange transaction: up to two extra attempts with a
// constant pause between them.
func recordExchangeBackoff() retry.Backoff {
	return retry.WithMaxRetries(2, retry.NewConstant(100*time.Millisecond))
}

// RecordExchange atomically persists one chat round trip.
//
// Inside a single transaction it:
//  1. creates the conversation (empty ex.ConversationID) or bumps the
//     existing one's updated_at — [ErrConversationNotFound] when the
//     referenced conversation is missing or foreign;
//  2. appends the user message;
//  3. appends the assistant message.
//
// A failure at any step rolls the whole exchange back; no partial state is
// ever visible. When the error classifies as [Retryable] (deadlock,
// serialization failure, dropped connection) the whole transaction is
// retried per [recordExchangeBackoff].
func (r *conversationRepository) RecordExchange(ctx context.Context, ex models.Exchange) (string, error) {
	var conversationID string

	err := retry.Do(ctx, recordExchangeBackoff(), func(ctx context.Context) error {
		id, err := r.recordExchange(ctx, ex)
		if err != nil {
			if r.db.errorClassificator.Classify(err) == Retryable {
				return retry.RetryableError(err)
			}
			return err
		}

		conversationID = id
		return nil
	})
	if err != nil {
		return "", err
	}

	return conversationID, nil
}

// recordExchange is one attempt at the exchange transaction.
func (r *conversationRepository) recordExchange(ctx context.Context, ex models.Exchange) (string, error) {
	log := logger.FromContext(ctx)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).
			Str("func", "*conversationRepository.RecordExchange").
			Str("user_id", ex.UserID).
			Msg("failed to begin transaction")
		return "", fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	conversationID := ex.ConversationID
	if conversationID == "" {
		conversationID = r.ids.Generate()
		if _, err := tx.ExecContext(ctx, createConversation, conversationID, ex.UserID, ex.Title); err != nil {
			log.Err(err).
				Str("func", "*conversationRepository.RecordExchange").
				Str("user_id", ex.UserID).
				Msg("failed to create conversation")
			return "", fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}
	} else {
		result, err := tx.ExecContext(ctx, touchConversation, conversationID, ex.UserID)
		if err != nil {
			log.Err(err).
				Str("func", "*conversationRepository.RecordExchange").
				Str("user_id", ex.UserID).
				Msg("failed to touch conversation")
			return "", fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}

		affected, err := result.RowsAffected()
		if err != nil {
			return "", fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}
		if affected == 0 {
			return "", ErrConversationNotFound
		}
	}

	// user turn first, assistant turn second — insertion order is part of
	// the message ordering contract
	if _, err := tx.ExecContext(ctx, insertMessage, r.ids.Generate(), ex.UserID, conversationID, models.RoleUser, ex.UserContent); err != nil {
		log.Err(err).
			Str("func", "*conversationRepository.RecordExchange").
			Str("user_id", ex.UserID).
			Msg("failed to append user message")
		return "", fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	if _, err := tx.ExecContext(ctx, insertMessage, r.ids.Generate(), ex.UserID, conversationID, models.RoleAssistant, ex.AssistantContent); err != nil {
		log.Err(err).
			Str("func", "*conversationRepository.RecordExchange").
			Str("user_id", ex.UserID).
			Msg("failed to append assistant message")
		return "", fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	if err := tx.Commit(); err != nil {
		log.Err(err).
			Str("func", "*conversationRepository.RecordExchange").
			Str("user_id", ex.UserID).
			Bool("retryable", r.db.errorClassificator.Classify(err) == Retryable).
			Msg("failed to commit exchange")
		return "", fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	return conversationID, nil
}

// DeleteConversation removes a conversation; its messages go with it via the
// ON DELETE CASCADE constraint.
//
// Returns [ErrConversationNotFound] when the conversation does not exist or
// belongs to a different account.
func (r *conversationRepository) DeleteConversation(ctx context.Context, conversationID, userID string) error {
	log := logger.FromContext(ctx)

	result, err := r.db.ExecContext(ctx, deleteConversation, conversationID, userID)
	if err != nil {
		log.Err(err).
			Str("func", "*conversationRepository.DeleteConversation").
			Str("user_id", userID).
			Msg("failed to delete conversation")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrConversationNotFound
	}

	return nil
}
