package session

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/gabble-labs/gabble/backend/internal/model/chat"
	"github.com/gabble-labs/gabble/backend/internal/model/personality"
	chatService "github.com/gabble-labs/gabble/backend/internal/service/chat"
	"github.com/gabble-labs/gabble/backend/pkg/utils"
)

// Handler serves the session, transcript and preference routes.
type Handler struct {
	chatSvc  *chatService.Service
	profiles personality.Store
}

// New creates the session handler.
func New(chatSvc *chatService.Service, profiles personality.Store) *Handler {
	return &Handler{chatSvc: chatSvc, profiles: profiles}
}

// RegisterRoutes registers session-related routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/session", h.handleCreateSession)
	r.Post("/messages", h.handleSaveMessage)
	r.Get("/session/{sessionID}/messages", h.handleTranscript)
	r.Get("/session/{sessionID}/preferences", h.handleGetPreferences)
	r.Put("/session/{sessionID}/preferences", h.handleSavePreferences)
}

func (h *Handler) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Personality string `json:"personality"`
	}

	// An empty or absent body is allowed; the session then uses the
	// default profile.
	_ = json.NewDecoder(r.Body).Decode(&payload)

	profile := personality.Resolve(h.profiles, payload.Personality)

	session, err := h.chatSvc.CreateSession(r.Context(), profile.ID)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	utils.RespondJSON(w, http.StatusCreated, session)
}

func (h *Handler) handleSaveMessage(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		SessionID string `json:"sessionId"`
		Sender    string `json:"sender"`
		Content   string `json:"content"`
		Emotion   string `json:"emotion"`
	}

	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	message := chat.Message{
		SessionID: payload.SessionID,
		Sender:    payload.Sender,
		Content:   payload.Content,
		Emotion:   payload.Emotion,
	}

	if err := h.chatSvc.SaveMessage(r.Context(), message); err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, chatService.ErrSessionNotFound) {
			status = http.StatusNotFound
		}
		utils.RespondError(w, status, err.Error())
		return
	}

	utils.RespondJSON(w, http.StatusAccepted, map[string]string{"status": "queued"})
}

func (h *Handler) handleTranscript(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	messages, err := h.chatSvc.LoadTranscript(r.Context(), sessionID)
	if err != nil {
		utils.RespondError(w, http.StatusNotFound, err.Error())
		return
	}

	utils.RespondJSON(w, http.StatusOK, messages)
}

func (h *Handler) handleGetPreferences(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	prefs, err := h.chatSvc.GetPreferences(r.Context(), sessionID)
	if err != nil {
		utils.RespondError(w, http.StatusNotFound, err.Error())
		return
	}

	utils.RespondJSON(w, http.StatusOK, prefs)
}

func (h *Handler) handleSavePreferences(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	var prefs chat.Preferences
	if err := json.NewDecoder(r.Body).Decode(&prefs); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.chatSvc.SavePreferences(r.Context(), sessionID, prefs); err != nil {
		utils.RespondError(w, http.StatusNotFound, err.Error())
		return
	}

	utils.RespondJSON(w, http.StatusOK, prefs)
}
