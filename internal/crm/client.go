package crm

import (
	"context"
	"errors"
	"time"

	"github.com/MichaelCrowe11/dealer-logic-pilot/internal/extract"
)

// Client is the capability interface the completion pipeline depends on.
//
// Contract:
// - UpsertCustomer matches on phone: it creates when no record exists and
//   updates in place otherwise. Partial fields are allowed; empty fields
//   never overwrite populated ones.
// - LogConversation and CreateLead are append-only.
// - Implementations own concurrency: concurrent upserts for the same phone
//   must resolve to one record (atomic upsert or last-write-wins).
type Client interface {
	FindCustomerByPhone(ctx context.Context, phone string) (Customer, bool, error)
	UpsertCustomer(ctx context.Context, info extract.CustomerInfo) (Customer, error)
	LogConversation(ctx context.Context, log ConversationLog) (Activity, error)
	CreateLead(ctx context.Context, info extract.LeadInfo) (Lead, error)
	ScheduleFollowUp(ctx context.Context, req FollowUpRequest) (FollowUpTask, error)
}

// ConversationLog captures one completed voice call against a customer.
type ConversationLog struct {
	CustomerID       string
	ConversationID   string
	Duration         int
	Summary          string
	Sentiment        string
	Outcome          string
	FollowUpRequired bool
	RecordingURL     string
}

// FollowUpRequest schedules a follow-up task for a created lead.
type FollowUpRequest struct {
	CustomerID   string
	LeadID       string
	ScheduledFor time.Time
	Priority     string
	Notes        string
	AssignedTo   string
}

var (
	ErrPhoneRequired      = errors.New("crm: customer phone is required")
	ErrCustomerIDRequired = errors.New("crm: customer id is required")
	ErrLeadIDRequired     = errors.New("crm: lead id is required")
)
