package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cloudwego/eino/components/model"
	"github.com/joho/godotenv"

	"github.com/gabble-labs/gabble/backend/internal/config"
	"github.com/gabble-labs/gabble/backend/internal/handler"
	"github.com/gabble-labs/gabble/backend/internal/model/personality"
	"github.com/gabble-labs/gabble/backend/internal/service/analytics"
	"github.com/gabble-labs/gabble/backend/internal/service/chat"
	"github.com/gabble-labs/gabble/backend/internal/service/turn"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("warning: failed to load .env file: %v", err)
		log.Println("continuing with system environment variables only")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	profileStore := personality.NewMemoryStore(personality.Seed())
	chatSvc := chat.NewService()
	analyticsSvc := analytics.NewService()

	// A failed model construction (ark without credentials) is not fatal:
	// the turn service reports misconfiguration per request instead.
	var chatModel model.ChatModel
	chatModel, err = cfg.Chat.NewChatModel(ctx)
	if err != nil {
		log.Printf("warning: failed to initialize chat model: %v", err)
		chatModel = nil
	}
	turnSvc := turn.NewService(chatModel, profileStore)

	router := handler.NewRouter(profileStore, turnSvc, chatSvc, analyticsSvc)

	startServer(ctx, cfg.Server, router)
}

func startServer(ctx context.Context, serverCfg config.ServerConfig, router http.Handler) {
	srv := &http.Server{
		Addr:              serverCfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	log.Printf("Gabble backend listening on %s", serverCfg.Addr)
	if err := runServer(ctx, srv); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

func runServer(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		err := <-errCh
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
