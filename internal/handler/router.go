package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	analyticsHandler "github.com/gabble-labs/gabble/backend/internal/handler/analytics"
	chatHandler "github.com/gabble-labs/gabble/backend/internal/handler/chat"
	personalityHandler "github.com/gabble-labs/gabble/backend/internal/handler/personality"
	sessionHandler "github.com/gabble-labs/gabble/backend/internal/handler/session"
	voiceHandler "github.com/gabble-labs/gabble/backend/internal/handler/voice"
	middlewarePkg "github.com/gabble-labs/gabble/backend/internal/middleware"
	personalityModel "github.com/gabble-labs/gabble/backend/internal/model/personality"
	analyticsService "github.com/gabble-labs/gabble/backend/internal/service/analytics"
	chatService "github.com/gabble-labs/gabble/backend/internal/service/chat"
	turnService "github.com/gabble-labs/gabble/backend/internal/service/turn"
)

// NewRouter wires HTTP routes to core services.
func NewRouter(profiles personalityModel.Store, turnSvc *turnService.Service, chatSvc *chatService.Service, analyticsSvc *analyticsService.Service) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middlewarePkg.CORS)

	r.Route("/api", func(api chi.Router) {
		chatHandler.New(turnSvc).RegisterRoutes(api)
		sessionHandler.New(chatSvc, profiles).RegisterRoutes(api)
		personalityHandler.New(profiles).RegisterRoutes(api)
		analyticsHandler.New(analyticsSvc).RegisterRoutes(api)
		voiceHandler.New(turnSvc, chatSvc).RegisterRoutes(api)
	})

	return r
}
