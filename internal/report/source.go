package report

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/MichaelCrowe11/dealer-logic-pilot/internal/crm"
)

// Source reads the CRM records a report window covers.
type Source interface {
	Activities(ctx context.Context, since time.Time) ([]crm.Activity, error)
	Leads(ctx context.Context, since time.Time) ([]crm.Lead, error)
}

// PostgresSource reads from the same tables the CRM client writes.
type PostgresSource struct {
	db *sql.DB
}

func NewPostgresSource(db *sql.DB) *PostgresSource {
	return &PostgresSource{db: db}
}

func (s *PostgresSource) Activities(ctx context.Context, since time.Time) ([]crm.Activity, error) {
	const q = `
SELECT id, customer_id, type, duration, summary, sentiment, outcome, follow_up_required, agent_type, recording_url, created_at
FROM activities
WHERE created_at >= $1
ORDER BY created_at
`
	rows, err := s.db.QueryContext(ctx, q, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []crm.Activity
	for rows.Next() {
		var (
			a         crm.Activity
			recording sql.NullString
		)
		if err := rows.Scan(
			&a.ID, &a.CustomerID, &a.Type, &a.Duration, &a.Summary,
			&a.Sentiment, &a.Outcome, &a.FollowUpRequired, &a.AgentType,
			&recording, &a.CreatedAt,
		); err != nil {
			return nil, err
		}
		a.RecordingURL = recording.String
		out = append(out, a)
	}
	return out, rows.Err()
}

func (s *PostgresSource) Leads(ctx context.Context, since time.Time) ([]crm.Lead, error) {
	const q = `
SELECT id, source, status, score, name, phone, email, interests, budget, timeline, trade_in, financing_interest, assigned_to, created_at
FROM leads
WHERE created_at >= $1
ORDER BY created_at
`
	rows, err := s.db.QueryContext(ctx, q, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []crm.Lead
	for rows.Next() {
		var (
			l         crm.Lead
			name      sql.NullString
			email     sql.NullString
			interests []byte
			budget    sql.NullInt64
		)
		if err := rows.Scan(
			&l.ID, &l.Source, &l.Status, &l.Score, &name, &l.Phone, &email,
			&interests, &budget, &l.Timeline, &l.TradeIn, &l.FinancingInterest,
			&l.AssignedTo, &l.CreatedAt,
		); err != nil {
			return nil, err
		}
		l.Name = name.String
		l.Email = email.String
		if len(interests) > 0 {
			if err := json.Unmarshal(interests, &l.Interests); err != nil {
				return nil, err
			}
		}
		if budget.Valid {
			b := int(budget.Int64)
			l.Budget = &b
		}
		out = append(out, l)
	}
	return out, rows.Err()
}
