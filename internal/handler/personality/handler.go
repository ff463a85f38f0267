package personality

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/gabble-labs/gabble/backend/internal/analysis/language"
	"github.com/gabble-labs/gabble/backend/internal/model/personality"
	"github.com/gabble-labs/gabble/backend/pkg/utils"
)

// Handler serves the catalogs behind the client's settings panel.
type Handler struct {
	profiles personality.Store
}

// New creates the catalog handler.
func New(profiles personality.Store) *Handler {
	return &Handler{profiles: profiles}
}

// RegisterRoutes registers the catalog routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/personalities", h.handleListPersonalities)
	r.Get("/languages", h.handleListLanguages)
}

func (h *Handler) handleListPersonalities(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, h.profiles.List())
}

type languageEntry struct {
	Tag       string `json:"tag"`
	Directive string `json:"directive"`
}

func (h *Handler) handleListLanguages(w http.ResponseWriter, r *http.Request) {
	tags := language.Supported()
	entries := make([]languageEntry, 0, len(tags))
	for _, tag := range tags {
		entries = append(entries, languageEntry{
			Tag:       string(tag),
			Directive: language.Directive(tag),
		})
	}
	utils.RespondJSON(w, http.StatusOK, entries)
}
