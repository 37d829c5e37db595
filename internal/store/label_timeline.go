package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"forgepulse.app/tracker/internal/model"
)

type labelTimelineStore struct {
	pool *pgxpool.Pool
}

func newLabelTimelineStore(pool *pgxpool.Pool) LabelTimelineStore {
	return &labelTimelineStore{pool: pool}
}

func (s *labelTimelineStore) GetByLabelAndIssue(ctx context.Context, label, issueKey string) (*model.LabelTimeline, error) {
	var entry model.LabelTimeline
	err := s.pool.QueryRow(ctx, `
		SELECT id, label, issue_key, status, labeled_at, unlabeled_at
		FROM label_timelines
		WHERE label = $1 AND issue_key = $2`,
		label, issueKey,
	).Scan(&entry.ID, &entry.Label, &entry.IssueKey, &entry.Status, &entry.LabeledAt, &entry.UnlabeledAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("fetching label timeline: %w", err)
	}
	return &entry, nil
}

func (s *labelTimelineStore) Save(ctx context.Context, entry *model.LabelTimeline) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO label_timelines (id, label, issue_key, status, labeled_at, unlabeled_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (label, issue_key) DO UPDATE
		SET status = EXCLUDED.status,
		    labeled_at = EXCLUDED.labeled_at,
		    unlabeled_at = EXCLUDED.unlabeled_at`,
		entry.ID, entry.Label, entry.IssueKey, entry.Status, entry.LabeledAt, entry.UnlabeledAt,
	)
	if err != nil {
		return fmt.Errorf("saving label timeline: %w", err)
	}
	return nil
}

func (s *labelTimelineStore) List(ctx context.Context, filter LabelTimelineFilter) ([]model.LabelTimeline, error) {
	query := `
		SELECT id, label, issue_key, status, labeled_at, unlabeled_at
		FROM label_timelines
		WHERE ($1 = '' OR label = $1)
		  AND ($2 = '' OR issue_key = $2)
		ORDER BY label, issue_key
		LIMIT $3`

	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}

	rows, err := s.pool.Query(ctx, query, filter.Label, filter.IssueKey, limit)
	if err != nil {
		return nil, fmt.Errorf("listing label timelines: %w", err)
	}
	defer rows.Close()

	var entries []model.LabelTimeline
	for rows.Next() {
		var entry model.LabelTimeline
		if err := rows.Scan(
			&entry.ID, &entry.Label, &entry.IssueKey, &entry.Status,
			&entry.LabeledAt, &entry.UnlabeledAt,
		); err != nil {
			return nil, fmt.Errorf("scanning label timeline: %w", err)
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}
