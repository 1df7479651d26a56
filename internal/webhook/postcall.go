package webhook

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/MichaelCrowe11/dealer-logic-pilot/internal/crm"
	"github.com/MichaelCrowe11/dealer-logic-pilot/internal/extract"
	"github.com/MichaelCrowe11/dealer-logic-pilot/pkg/logger"
)

// PostCallHandlers receives the platform's post-call deliveries.
//
// Both endpoints acknowledge with 200 even when processing fails:
// a non-2xx would make the platform retry a payload we already cannot
// handle, and the transcript itself is preserved before anything that
// can fail.
type PostCallHandlers struct {
	Archive CallArchive
	CRM     crm.Client

	Now func() time.Time
}

type transcriptionPayload struct {
	CallID     string         `json:"call_id"`
	Transcript string         `json:"transcript"`
	Duration   int            `json:"duration"`
	Metadata   map[string]any `json:"metadata"`
}

// HandleTranscription handles POST /transcription. Beyond archiving,
// it mines the transcript for contact details and opens a provisional
// lead so no caller who left a number goes uncontacted, even if the
// richer completion pipeline never fires for this call.
func (h PostCallHandlers) HandleTranscription(c *gin.Context) {
	log := logger.FromGin(c)
	now := time.Now
	if h.Now != nil {
		now = h.Now
	}

	var p transcriptionPayload
	if err := c.ShouldBindJSON(&p); err != nil {
		log.Warn("transcription payload rejected", "err", err)
		c.JSON(http.StatusOK, gin.H{"received": true, "error": "invalid payload"})
		return
	}

	if err := h.Archive.SaveTranscript(c.Request.Context(), StoredTranscript{
		CallID:     p.CallID,
		Transcript: p.Transcript,
		Duration:   p.Duration,
		Metadata:   p.Metadata,
		ReceivedAt: now().UTC(),
	}); err != nil {
		log.Error("transcript archive failed", "call_id", p.CallID, "err", err)
		c.JSON(http.StatusOK, gin.H{"received": true, "error": err.Error()})
		return
	}

	phone := extract.Phone(p.Transcript)
	email := extract.Email(p.Transcript)
	if phone == "" && email == "" {
		c.JSON(http.StatusOK, gin.H{"received": true})
		return
	}

	lead, err := h.CRM.CreateLead(c.Request.Context(), extract.LeadInfo{
		Name:              extract.Name(p.Transcript),
		Phone:             phone,
		Email:             email,
		Budget:            extract.Budget(p.Transcript),
		Timeline:          extract.Classify(p.Transcript),
		FinancingInterest: extract.FinancingInterest(p.Transcript),
	})
	if err != nil {
		log.Error("provisional lead creation failed", "call_id", p.CallID, "err", err)
		c.JSON(http.StatusOK, gin.H{"received": true, "error": err.Error()})
		return
	}

	log.Info("provisional lead opened from transcript", "call_id", p.CallID, "lead_id", lead.ID)
	c.JSON(http.StatusOK, gin.H{"received": true})
}

type audioPayload struct {
	CallID      string `json:"call_id"`
	AudioBase64 string `json:"audio_base64"`
	Duration    int    `json:"duration"`
}

// HandleAudio handles POST /audio.
func (h PostCallHandlers) HandleAudio(c *gin.Context) {
	log := logger.FromGin(c)
	now := time.Now
	if h.Now != nil {
		now = h.Now
	}

	var p audioPayload
	if err := c.ShouldBindJSON(&p); err != nil {
		log.Warn("audio payload rejected", "err", err)
		c.JSON(http.StatusOK, gin.H{"received": true, "error": "invalid payload"})
		return
	}

	if err := h.Archive.SaveAudio(c.Request.Context(), StoredAudio{
		CallID:      p.CallID,
		AudioBase64: p.AudioBase64,
		Duration:    p.Duration,
		ReceivedAt:  now().UTC(),
	}); err != nil {
		log.Error("audio archive failed", "call_id", p.CallID, "err", err)
		c.JSON(http.StatusOK, gin.H{"received": true, "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"received": true})
}
