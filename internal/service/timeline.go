package service

import (
	"context"
	"errors"
	"log/slog"
	"sort"

	"forgepulse.app/tracker/common/id"
	"forgepulse.app/tracker/internal/github"
	"forgepulse.app/tracker/internal/model"
	"forgepulse.app/tracker/internal/store"
)

// ReplayStats summarizes one replay pass.
type ReplayStats struct {
	Applied int
	Skipped int
}

// TimelineProcessor replays issue sub-events in chronological order
// onto issue aggregates and per-label timeline entries. Replaying the
// same set of sub-events any number of times converges to the same
// final state.
type TimelineProcessor interface {
	Replay(ctx context.Context, subEvents []github.IssueSubEvent) ReplayStats
}

type timelineProcessor struct {
	issues    store.IssueStore
	timelines store.LabelTimelineStore
	logger    *slog.Logger
}

func NewTimelineProcessor(issues store.IssueStore, timelines store.LabelTimelineStore, logger *slog.Logger) TimelineProcessor {
	if logger == nil {
		logger = slog.Default()
	}
	return &timelineProcessor{issues: issues, timelines: timelines, logger: logger}
}

func (p *timelineProcessor) Replay(ctx context.Context, subEvents []github.IssueSubEvent) ReplayStats {
	ordered := make([]github.IssueSubEvent, len(subEvents))
	copy(ordered, subEvents)

	// Ascending by timestamp; exact ties keep input order.
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].CreatedAt.Before(ordered[j].CreatedAt)
	})

	var stats ReplayStats
	for _, sub := range ordered {
		if p.apply(ctx, sub) {
			stats.Applied++
		} else {
			stats.Skipped++
		}
	}
	return stats
}

func (p *timelineProcessor) apply(ctx context.Context, sub github.IssueSubEvent) bool {
	issue, err := p.issues.GetByRepoAndNumber(ctx, sub.Repo, sub.Number)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			// Sub-events cannot attach to state that was never ingested.
			return false
		}
		p.logger.WarnContext(ctx, "skipping sub-event, aggregate lookup failed", "repo", sub.Repo, "number", sub.Number, "error", err)
		return false
	}

	switch sub.Kind {
	case github.SubEventClosed:
		issue.State = model.IssueStateClosed
	case github.SubEventReopened:
		issue.State = model.IssueStateOpen
	case github.SubEventLabeled:
		issue.AddLabel(sub.Label)
	case github.SubEventUnlabeled:
		issue.RemoveLabel(sub.Label)
	default:
		return false
	}

	if err := p.issues.Update(ctx, issue); err != nil {
		p.logger.WarnContext(ctx, "skipping sub-event, aggregate update failed", "repo", sub.Repo, "number", sub.Number, "error", err)
		return false
	}

	if sub.Kind == github.SubEventLabeled || sub.Kind == github.SubEventUnlabeled {
		if err := p.mergeTimeline(ctx, sub, issue.Key()); err != nil {
			p.logger.WarnContext(ctx, "label timeline merge failed", "repo", sub.Repo, "number", sub.Number, "label", sub.Label, "error", err)
			return false
		}
	}

	return true
}

// mergeTimeline applies load-merge-save semantics: only the status and
// the timestamp matching the sub-event kind are overwritten, the other
// timestamp is preserved.
func (p *timelineProcessor) mergeTimeline(ctx context.Context, sub github.IssueSubEvent, issueKey string) error {
	entry, err := p.timelines.GetByLabelAndIssue(ctx, sub.Label, issueKey)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			return err
		}
		entry = &model.LabelTimeline{
			ID:       id.New(),
			Label:    sub.Label,
			IssueKey: issueKey,
		}
	}

	ts := sub.CreatedAt
	if sub.Kind == github.SubEventLabeled {
		entry.Status = model.LabelStatusLabeled
		entry.LabeledAt = &ts
	} else {
		entry.Status = model.LabelStatusUnlabeled
		entry.UnlabeledAt = &ts
	}

	return p.timelines.Save(ctx, entry)
}
