package chat

import (
	"context"
	"errors"
	"testing"

	"github.com/gabble-labs/gabble/backend/internal/model/chat"
)

func TestCreateSessionAssignsID(t *testing.T) {
	svc := NewService()

	session, err := svc.CreateSession(context.Background(), "helpful")
	if err != nil {
		t.Fatalf("CreateSession err: %v", err)
	}
	if session.ID == "" {
		t.Fatal("expected a session id")
	}
	if session.Personality != "helpful" {
		t.Fatalf("unexpected personality: %s", session.Personality)
	}

	got, err := svc.GetSession(context.Background(), session.ID)
	if err != nil {
		t.Fatalf("GetSession err: %v", err)
	}
	if got.ID != session.ID {
		t.Fatalf("expected %s, got %s", session.ID, got.ID)
	}
}

func TestSaveMessageRequiresSession(t *testing.T) {
	svc := NewService()

	err := svc.SaveMessage(context.Background(), chat.Message{SessionID: "missing", Content: "hi"})
	if !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}

	err = svc.SaveMessage(context.Background(), chat.Message{Content: "hi"})
	if !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound for empty session id, got %v", err)
	}
}

func TestTranscriptOrderPreserved(t *testing.T) {
	svc := NewService()
	session, _ := svc.CreateSession(context.Background(), "helpful")

	contents := []string{"first", "second", "third"}
	for _, content := range contents {
		if err := svc.SaveMessage(context.Background(), chat.Message{
			SessionID: session.ID,
			Sender:    "user",
			Content:   content,
		}); err != nil {
			t.Fatalf("SaveMessage err: %v", err)
		}
	}

	messages, err := svc.LoadTranscript(context.Background(), session.ID)
	if err != nil {
		t.Fatalf("LoadTranscript err: %v", err)
	}
	if len(messages) != len(contents) {
		t.Fatalf("expected %d messages, got %d", len(contents), len(messages))
	}
	for i, content := range contents {
		if messages[i].Content != content {
			t.Fatalf("message %d: expected %q, got %q", i, content, messages[i].Content)
		}
		if messages[i].ID == "" {
			t.Fatalf("message %d missing id", i)
		}
	}
}

func TestPreferencesDefaultUntilSaved(t *testing.T) {
	svc := NewService()
	session, _ := svc.CreateSession(context.Background(), "helpful")

	prefs, err := svc.GetPreferences(context.Background(), session.ID)
	if err != nil {
		t.Fatalf("GetPreferences err: %v", err)
	}
	if prefs != chat.DefaultPreferences() {
		t.Fatalf("expected defaults, got %+v", prefs)
	}

	saved := chat.Preferences{VoiceName: "aria", VoicePitch: 1.1, VoiceRate: 1.0, Language: "es-ES", Personality: "casual"}
	if err := svc.SavePreferences(context.Background(), session.ID, saved); err != nil {
		t.Fatalf("SavePreferences err: %v", err)
	}

	prefs, err = svc.GetPreferences(context.Background(), session.ID)
	if err != nil {
		t.Fatalf("GetPreferences err: %v", err)
	}
	if prefs != saved {
		t.Fatalf("expected %+v, got %+v", saved, prefs)
	}
}
