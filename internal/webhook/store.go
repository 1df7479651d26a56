package webhook

import (
	"context"
	"sync"
	"time"
)

// StoredTranscript is one post-call transcription delivery.
type StoredTranscript struct {
	CallID     string         `json:"call_id"`
	Transcript string         `json:"transcript"`
	Duration   int            `json:"duration"`
	Metadata   map[string]any `json:"metadata,omitempty"`
	ReceivedAt time.Time      `json:"received_at"`
}

// StoredAudio is one post-call audio delivery, kept for QA review.
type StoredAudio struct {
	CallID      string    `json:"call_id"`
	AudioBase64 string    `json:"-"`
	Duration    int       `json:"duration"`
	ReceivedAt  time.Time `json:"received_at"`
}

// CallArchive persists post-call deliveries.
type CallArchive interface {
	SaveTranscript(ctx context.Context, t StoredTranscript) error
	SaveAudio(ctx context.Context, a StoredAudio) error
}

// MemoryArchive keeps deliveries in memory. The pilot reviews calls
// from here; object storage takes over in production.
type MemoryArchive struct {
	mu          sync.Mutex
	transcripts []StoredTranscript
	audio       []StoredAudio
}

func NewMemoryArchive() *MemoryArchive { return &MemoryArchive{} }

func (a *MemoryArchive) SaveTranscript(_ context.Context, t StoredTranscript) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.transcripts = append(a.transcripts, t)
	return nil
}

func (a *MemoryArchive) SaveAudio(_ context.Context, s StoredAudio) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.audio = append(a.audio, s)
	return nil
}

func (a *MemoryArchive) Transcripts() []StoredTranscript {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]StoredTranscript(nil), a.transcripts...)
}

func (a *MemoryArchive) Audio() []StoredAudio {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]StoredAudio(nil), a.audio...)
}
