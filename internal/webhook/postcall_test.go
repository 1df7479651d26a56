package webhook

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/MichaelCrowe11/dealer-logic-pilot/internal/crm"
)

func postCallRouter(archive *MemoryArchive, mem *crm.MemoryClient) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := PostCallHandlers{Archive: archive, CRM: mem}
	r := gin.New()
	r.POST("/transcription", h.HandleTranscription)
	r.POST("/audio", h.HandleAudio)
	return r
}

func TestHandleTranscriptionOpensProvisionalLead(t *testing.T) {
	archive := NewMemoryArchive()
	mem := crm.NewMemoryClient(nil)
	r := postCallRouter(archive, mem)

	w := postJSON(t, r, "/transcription", gin.H{
		"call_id":    "call_1",
		"transcript": "My name is Jane Doe, you can reach me at 415-555-2671 or jane@example.com",
		"duration":   95,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	stored := archive.Transcripts()
	if len(stored) != 1 || stored[0].CallID != "call_1" {
		t.Fatalf("transcript not archived: %+v", stored)
	}

	leads := mem.Leads()
	if len(leads) != 1 {
		t.Fatalf("expected one provisional lead, got %d", len(leads))
	}
	if leads[0].Email != "jane@example.com" || leads[0].Name != "Jane Doe" {
		t.Fatalf("unexpected lead: %+v", leads[0])
	}
}

func TestHandleTranscriptionWithoutContactInfo(t *testing.T) {
	archive := NewMemoryArchive()
	mem := crm.NewMemoryClient(nil)
	r := postCallRouter(archive, mem)

	w := postJSON(t, r, "/transcription", gin.H{
		"call_id":    "call_2",
		"transcript": "What time do you close today?",
		"duration":   20,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if len(archive.Transcripts()) != 1 {
		t.Fatalf("transcript should still be archived")
	}
	if len(mem.Leads()) != 0 {
		t.Fatalf("no lead expected without contact info")
	}
}

func TestHandleAudio(t *testing.T) {
	archive := NewMemoryArchive()
	r := postCallRouter(archive, crm.NewMemoryClient(nil))

	w := postJSON(t, r, "/audio", gin.H{
		"call_id":      "call_3",
		"audio_base64": "UklGRg==",
		"duration":     42,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	audio := archive.Audio()
	if len(audio) != 1 || audio[0].CallID != "call_3" {
		t.Fatalf("audio not archived: %+v", audio)
	}
}
