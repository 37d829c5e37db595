package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"forgepulse.app/tracker/internal/model"
)

type issueStore struct {
	pool *pgxpool.Pool
}

func newIssueStore(pool *pgxpool.Pool) IssueStore {
	return &issueStore{pool: pool}
}

const issueColumns = `id, repo, number, kind, state, title, labels, comment_count, creator, created_at, updated_at`

func (s *issueStore) GetByRepoAndNumber(ctx context.Context, repo string, number int) (*model.Issue, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+issueColumns+` FROM issues WHERE repo = $1 AND number = $2`,
		repo, number,
	)
	issue, err := scanIssue(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("fetching issue: %w", err)
	}
	return issue, nil
}

func (s *issueStore) Create(ctx context.Context, issue *model.Issue) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO issues (id, repo, number, kind, state, title, labels, comment_count, creator, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		issue.ID, issue.Repo, issue.Number, issue.Kind, issue.State,
		issue.Title, issue.Labels, issue.CommentCount, issue.Creator, issue.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("inserting issue: %w", err)
	}
	return nil
}

func (s *issueStore) Update(ctx context.Context, issue *model.Issue) error {
	tag, err := s.pool.Exec(ctx, `
		UPDATE issues
		SET kind = $3, state = $4, title = $5, labels = $6, comment_count = $7, updated_at = now()
		WHERE repo = $1 AND number = $2`,
		issue.Repo, issue.Number, issue.Kind, issue.State,
		issue.Title, issue.Labels, issue.CommentCount,
	)
	if err != nil {
		return fmt.Errorf("updating issue: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *issueStore) List(ctx context.Context, filter IssueFilter) ([]model.Issue, error) {
	query := `
		SELECT ` + issueColumns + `
		FROM issues
		WHERE ($1 = '' OR repo = $1)
		  AND ($2 = '' OR state = $2)
		  AND ($3 = '' OR kind = $3)
		  AND ($4 = '' OR creator = $4)
		  AND ($5 = '' OR labels @> ARRAY[$5]::text[])
		ORDER BY updated_at DESC
		LIMIT $6`

	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}

	rows, err := s.pool.Query(ctx, query,
		filter.Repo, filter.State, filter.Kind, filter.Creator, filter.Label, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("listing issues: %w", err)
	}
	defer rows.Close()

	var issues []model.Issue
	for rows.Next() {
		issue, err := scanIssue(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning issue: %w", err)
		}
		issues = append(issues, *issue)
	}
	return issues, rows.Err()
}

func scanIssue(row pgx.Row) (*model.Issue, error) {
	var issue model.Issue
	if err := row.Scan(
		&issue.ID, &issue.Repo, &issue.Number, &issue.Kind, &issue.State,
		&issue.Title, &issue.Labels, &issue.CommentCount, &issue.Creator,
		&issue.CreatedAt, &issue.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &issue, nil
}
