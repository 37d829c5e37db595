package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"forgepulse.app/tracker/common/id"
	"forgepulse.app/tracker/internal/model"
	"forgepulse.app/tracker/internal/store"
)

// IssueDetails is the slice of an event the reconciler needs to
// converge the per-issue aggregate.
type IssueDetails struct {
	Repo         string
	Number       int
	Kind         model.IssueKind
	State        model.IssueState
	Title        string
	Labels       []string
	CommentCount int
	Creator      string
	OccurredAt   time.Time
}

type IssueReconciler interface {
	Upsert(ctx context.Context, details IssueDetails) error
}

type issueReconciler struct {
	issues store.IssueStore
	logger *slog.Logger
}

func NewIssueReconciler(issues store.IssueStore, logger *slog.Logger) IssueReconciler {
	if logger == nil {
		logger = slog.Default()
	}
	return &issueReconciler{issues: issues, logger: logger}
}

// Upsert converges the aggregate for (details.Repo, details.Number).
// On first sight the aggregate is created with created_at fixed at the
// event's timestamp; afterwards state, labels, comment count, and
// title are overwritten in place and created_at never changes.
// Read-then-write; correctness relies on the single-active-run
// guarantee.
func (r *issueReconciler) Upsert(ctx context.Context, details IssueDetails) error {
	if details.Repo == "" || details.Number <= 0 {
		return fmt.Errorf("repo and number are required")
	}

	existing, err := r.issues.GetByRepoAndNumber(ctx, details.Repo, details.Number)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("fetching issue aggregate: %w", err)
		}

		issue := &model.Issue{
			ID:           id.New(),
			Repo:         details.Repo,
			Number:       details.Number,
			Kind:         details.Kind,
			State:        details.State,
			Title:        details.Title,
			Labels:       details.Labels,
			CommentCount: details.CommentCount,
			Creator:      details.Creator,
			CreatedAt:    details.OccurredAt,
		}
		if err := r.issues.Create(ctx, issue); err != nil {
			return fmt.Errorf("creating issue aggregate: %w", err)
		}
		r.logger.InfoContext(ctx, "issue aggregate created", "repo", details.Repo, "number", details.Number, "kind", details.Kind)
		return nil
	}

	existing.Kind = details.Kind
	existing.State = details.State
	existing.Title = details.Title
	existing.Labels = details.Labels
	existing.CommentCount = details.CommentCount
	if err := r.issues.Update(ctx, existing); err != nil {
		return fmt.Errorf("updating issue aggregate: %w", err)
	}
	return nil
}
