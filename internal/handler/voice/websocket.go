// Package voice carries the voice conversation loop over a WebSocket:
// the browser does speech capture and synthesis, the socket only moves
// transcripts in and reply text out. Each chat frame is one full turn
// request, so the relay stays as stateless as the REST endpoint.
package voice

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/gabble-labs/gabble/backend/internal/model/chat"
	chatService "github.com/gabble-labs/gabble/backend/internal/service/chat"
	turnService "github.com/gabble-labs/gabble/backend/internal/service/turn"
)

// Handler upgrades connections and relays chat frames through the turn
// pipeline.
type Handler struct {
	turnSvc  *turnService.Service
	chatSvc  *chatService.Service
	upgrader websocket.Upgrader
}

// New creates the WebSocket handler.
func New(turnSvc *turnService.Service, chatSvc *chatService.Service) *Handler {
	return &Handler{
		turnSvc: turnSvc,
		chatSvc: chatSvc,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// RegisterRoutes registers the WebSocket route.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/ws/{sessionID}", h.handleWebSocket)
}

type inboundFrame struct {
	Type        string             `json:"type"`
	Messages    []chat.ChatMessage `json:"messages"`
	Personality string             `json:"personality"`
	Language    string             `json:"language"`
}

type outgoingFrame struct {
	Type      string `json:"type"`
	Response  string `json:"response,omitempty"`
	Emotion   string `json:"emotion,omitempty"`
	Language  string `json:"language,omitempty"`
	Error     string `json:"error,omitempty"`
	Code      string `json:"code,omitempty"`
	Timestamp int64  `json:"timestamp"`
}

func (h *Handler) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[voice] upgrade failed for session=%s: %v", sessionID, err)
		return
	}
	defer conn.Close()

	log.Printf("[voice] connection opened for session=%s", sessionID)

	for {
		var frame inboundFrame
		if err := conn.ReadJSON(&frame); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Printf("[voice] read error for session=%s: %v", sessionID, err)
			}
			return
		}

		switch frame.Type {
		case "chat":
			h.processChatFrame(r.Context(), conn, sessionID, frame)
		case "ping":
			h.writeFrame(conn, outgoingFrame{Type: "pong"})
		default:
			h.writeFrame(conn, outgoingFrame{Type: "error", Error: "unknown frame type", Code: "bad_frame"})
		}
	}
}

func (h *Handler) processChatFrame(ctx context.Context, conn *websocket.Conn, sessionID string, frame inboundFrame) {
	result, err := h.turnSvc.ProcessTurn(ctx, turnService.Request{
		Messages:    frame.Messages,
		Personality: frame.Personality,
		Language:    frame.Language,
	})
	if err != nil {
		h.writeFrame(conn, errorFrame(err))
		return
	}

	// Mirror the turn into the transcript when the session is known;
	// the relay works for anonymous sessions too.
	if len(frame.Messages) > 0 {
		h.appendTranscript(ctx, sessionID, frame.Messages[len(frame.Messages)-1].Content, result)
	}

	h.writeFrame(conn, outgoingFrame{
		Type:     "response",
		Response: result.Response,
		Emotion:  string(result.Emotion),
		Language: string(result.Language),
	})
}

// appendTranscript mirrors the processed turn into the session transcript.
// Unknown sessions are skipped silently; transcript sync is best-effort.
func (h *Handler) appendTranscript(ctx context.Context, sessionID, userContent string, result *turnService.Result) {
	_ = h.chatSvc.SaveMessage(ctx, chat.Message{
		SessionID: sessionID,
		Sender:    string(chat.RoleUser),
		Content:   userContent,
		Emotion:   string(result.Emotion),
	})
	_ = h.chatSvc.SaveMessage(ctx, chat.Message{
		SessionID: sessionID,
		Sender:    string(chat.RoleAssistant),
		Content:   result.Response,
	})
}

func errorFrame(err error) outgoingFrame {
	frame := outgoingFrame{Type: "error"}
	switch {
	case errors.Is(err, turnService.ErrInvalidHistory):
		frame.Error = "conversation must contain at least one user message"
		frame.Code = "invalid_history"
	case errors.Is(err, turnService.ErrRateLimited):
		frame.Error = "Rate limit exceeded. Please try again in a moment."
		frame.Code = "rate_limited"
	default:
		frame.Error = "failed to generate a response"
		frame.Code = "inference_failed"
	}
	return frame
}

func (h *Handler) writeFrame(conn *websocket.Conn, frame outgoingFrame) {
	frame.Timestamp = time.Now().UnixMilli()
	if err := conn.WriteJSON(frame); err != nil {
		log.Printf("[voice] write failed: %v", err)
	}
}
