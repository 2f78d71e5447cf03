package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/oneday-app/oneday-server/internal/logger"
	"github.com/oneday-app/oneday-server/internal/service"
	"github.com/oneday-app/oneday-server/internal/utils"
	"github.com/oneday-app/oneday-server/models"
)

// getChat serves two reads from one route: without a conversationId query
// parameter it lists the account's conversations; with one it lists that
// conversation's messages.
func (h *Handler) getChat(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		log.Error().Msg("no user id in request context")
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	conversationID := r.URL.Query().Get("conversationId")
	if conversationID == "" {
		conversations, err := h.services.ChatService.ListConversations(ctx, userID)
		if err != nil {
			log.Err(err).Msg("failed to list conversations")
			http.Error(w, http.StatusText(statusFromError(err)), statusFromError(err))
			return
		}

		utils.WriteJSON(w, models.ConversationsResponse{Conversations: conversations}, http.StatusOK)
		return
	}

	messages, err := h.services.ChatService.ListMessages(ctx, userID, conversationID)
	if err != nil {
		log.Err(err).Msg("failed to list messages")
		http.Error(w, http.StatusText(statusFromError(err)), statusFromError(err))
		return
	}

	utils.WriteJSON(w, models.MessagesResponse{Messages: messages}, http.StatusOK)
}

func (h *Handler) postChat(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		log.Error().Msg("no user id in request context")
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	var req models.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	reply, err := h.services.ChatService.SendMessage(ctx, userID, req)
	if err != nil {
		// an oracle outage gets an explicit body so clients can tell it
		// apart from other server errors
		if errors.Is(err, service.ErrOracleUnavailable) {
			log.Err(err).Msg("oracle is unavailable")
			http.Error(w, "assistant is unavailable, try again later", http.StatusInternalServerError)
			return
		}

		log.Err(err).Msg("failed to process chat message")
		http.Error(w, http.StatusText(statusFromError(err)), statusFromError(err))
		return
	}

	utils.WriteJSON(w, reply, http.StatusOK)
}

func (h *Handler) deleteChat(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		log.Error().Msg("no user id in request context")
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	conversationID := r.URL.Query().Get("conversationId")
	if conversationID == "" {
		log.Error().Msg("missing conversation id")
		http.Error(w, "missing conversation id", http.StatusBadRequest)
		return
	}

	if err := h.services.ChatService.DeleteConversation(ctx, userID, conversationID); err != nil {
		log.Err(err).Msg("failed to delete conversation")
		http.Error(w, http.StatusText(statusFromError(err)), statusFromError(err))
		return
	}

	utils.WriteJSON(w, models.SuccessResponse{Success: true}, http.StatusOK)
}
