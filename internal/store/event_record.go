package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"forgepulse.app/tracker/internal/model"
)

type eventStore struct {
	pool *pgxpool.Pool
}

func newEventStore(pool *pgxpool.Pool) EventStore {
	return &eventStore{pool: pool}
}

func (s *eventStore) CreateOrGet(ctx context.Context, record *model.EventRecord) (bool, error) {
	tag, err := s.pool.Exec(ctx, `
		INSERT INTO events (
			id, external_id, type, action, category, repo, actor,
			issue_number, link_url, link_label, commit_count, is_public, occurred_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		ON CONFLICT (external_id) DO NOTHING`,
		record.ID, record.ExternalID, record.Type, record.Action, record.Category,
		record.Repo, record.Actor, record.IssueNumber, record.LinkURL,
		record.LinkLabel, record.CommitCount, record.Public, record.OccurredAt,
	)
	if err != nil {
		return false, fmt.Errorf("inserting event record: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (s *eventStore) List(ctx context.Context, filter EventFilter) ([]model.EventRecord, error) {
	query := `
		SELECT id, external_id, type, action, category, repo, actor,
		       issue_number, link_url, link_label, commit_count, is_public,
		       occurred_at, created_at
		FROM events
		WHERE ($1 = '' OR category = $1)
		  AND ($2 = '' OR repo = $2)
		  AND ($3 = '' OR actor = $3)
		ORDER BY occurred_at DESC
		LIMIT $4`

	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}

	rows, err := s.pool.Query(ctx, query, filter.Category, filter.Repo, filter.Actor, limit)
	if err != nil {
		return nil, fmt.Errorf("listing event records: %w", err)
	}
	defer rows.Close()

	var records []model.EventRecord
	for rows.Next() {
		var r model.EventRecord
		if err := rows.Scan(
			&r.ID, &r.ExternalID, &r.Type, &r.Action, &r.Category, &r.Repo,
			&r.Actor, &r.IssueNumber, &r.LinkURL, &r.LinkLabel, &r.CommitCount,
			&r.Public, &r.OccurredAt, &r.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning event record: %w", err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}
