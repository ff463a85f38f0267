package analytics

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	analyticsService "github.com/gabble-labs/gabble/backend/internal/service/analytics"
	"github.com/gabble-labs/gabble/backend/pkg/utils"
)

// Handler serves the analytics event log.
type Handler struct {
	svc *analyticsService.Service
}

// New creates the analytics handler.
func New(svc *analyticsService.Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes registers analytics routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/events", h.handleRecordEvent)
	r.Get("/analytics/summary", h.handleSummary)
}

func (h *Handler) handleRecordEvent(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		SessionID string         `json:"sessionId"`
		EventType string         `json:"eventType"`
		EventData map[string]any `json:"eventData"`
	}

	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if payload.EventType == "" {
		utils.RespondError(w, http.StatusBadRequest, "eventType is required")
		return
	}

	h.svc.Record(r.Context(), analyticsService.Event{
		SessionID: payload.SessionID,
		EventType: payload.EventType,
		EventData: payload.EventData,
	})

	utils.RespondJSON(w, http.StatusAccepted, map[string]string{"status": "recorded"})
}

func (h *Handler) handleSummary(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, h.svc.Summary(r.Context()))
}
