package voiceagent

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func newTestClient(url string) *Client {
	c := NewClient("test-key", "agent_123", "https://hooks.example.com/api/webhooks/elevenlabs")
	c.SetBaseURL(url)
	c.maxElapsed = 2 * time.Second
	return c
}

func TestSetupAgent(t *testing.T) {
	var gotDef AgentDefinition
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/conversational-ai/agents" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.Header.Get("xi-api-key") != "test-key" {
			t.Errorf("missing api key header")
		}
		if err := json.NewDecoder(r.Body).Decode(&gotDef); err != nil {
			t.Errorf("decode: %v", err)
		}
		json.NewEncoder(w).Encode(Agent{AgentID: "agent_123", Name: gotDef.Name})
	}))
	defer srv.Close()

	agent, err := newTestClient(srv.URL).SetupAgent(context.Background(), "Dealer Logic Arizona")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if agent.AgentID != "agent_123" {
		t.Fatalf("unexpected agent: %+v", agent)
	}
	if len(gotDef.Tools) != 4 {
		t.Fatalf("expected 4 tools, got %d", len(gotDef.Tools))
	}
	if gotDef.Voice.Stability != 0.8 || gotDef.Voice.SimilarityBoost != 0.75 {
		t.Fatalf("unexpected voice settings: %+v", gotDef.Voice)
	}
	if gotDef.Webhooks.PostCallTranscription != "https://hooks.example.com/api/webhooks/elevenlabs/transcription" {
		t.Fatalf("unexpected transcription webhook: %s", gotDef.Webhooks.PostCallTranscription)
	}
}

func TestStartConversationRetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		json.NewEncoder(w).Encode(Conversation{ConversationID: "conv_1", Status: "active"})
	}))
	defer srv.Close()

	conv, err := newTestClient(srv.URL).StartConversation(context.Background(), nil)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if conv.ConversationID != "conv_1" {
		t.Fatalf("unexpected conversation: %+v", conv)
	}
	if calls.Load() < 2 {
		t.Fatalf("expected a retry, got %d calls", calls.Load())
	}
}

func TestClientErrorsAreNotRetried(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).ConversationStatus(context.Background(), "conv_1")
	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 APIError, got %v", err)
	}
	if calls.Load() != 1 {
		t.Fatalf("4xx must not be retried, got %d calls", calls.Load())
	}
}
