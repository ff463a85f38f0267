package chat

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/gabble-labs/gabble/backend/internal/model/chat"
	turnService "github.com/gabble-labs/gabble/backend/internal/service/turn"
	"github.com/gabble-labs/gabble/backend/pkg/utils"
)

// Handler exposes the turn-processing endpoint.
type Handler struct {
	turnSvc *turnService.Service
}

// New creates the chat handler.
func New(turnSvc *turnService.Service) *Handler {
	return &Handler{turnSvc: turnSvc}
}

// RegisterRoutes registers the chat routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/chat", h.handleChat)
}

type chatRequest struct {
	Messages    []chat.ChatMessage `json:"messages"`
	Personality string             `json:"personality"`
	Language    string             `json:"language"`
}

type chatResponse struct {
	Response string `json:"response"`
}

// handleChat runs one conversational turn.
func (h *Handler) handleChat(w http.ResponseWriter, r *http.Request) {
	var payload chatRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.turnSvc.ProcessTurn(r.Context(), turnService.Request{
		Messages:    payload.Messages,
		Personality: payload.Personality,
		Language:    payload.Language,
	})
	if err != nil {
		respondTurnError(w, err)
		return
	}

	utils.RespondJSON(w, http.StatusOK, chatResponse{Response: result.Response})
}

// respondTurnError maps the turn error taxonomy onto HTTP statuses. The
// upstream detail is logged server-side, never shown verbatim to users.
func respondTurnError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, turnService.ErrInvalidHistory):
		utils.RespondError(w, http.StatusBadRequest, "conversation must contain at least one user message")
	case errors.Is(err, turnService.ErrRateLimited):
		utils.RespondError(w, http.StatusTooManyRequests, "Rate limit exceeded. Please try again in a moment.")
	case errors.Is(err, turnService.ErrMisconfigured):
		log.Printf("[chat] inference credential missing: %v", err)
		utils.RespondError(w, http.StatusInternalServerError, "chat service is not configured")
	default:
		log.Printf("[chat] turn processing failed: %v", err)
		utils.RespondError(w, http.StatusInternalServerError, "failed to generate a response")
	}
}
