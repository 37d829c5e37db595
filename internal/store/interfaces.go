package store

import (
	"context"
	"errors"

	"forgepulse.app/tracker/internal/model"
)

// ErrNotFound is returned when a requested entity does not exist
var ErrNotFound = errors.New("not found")

// EventFilter selects event records by exact-match tags. Empty fields
// match everything.
type EventFilter struct {
	Category string
	Repo     string
	Actor    string
	Limit    int32
}

// IssueFilter selects issue aggregates by exact-match tags. Empty
// fields match everything; Label matches set membership.
type IssueFilter struct {
	Repo    string
	State   string
	Kind    string
	Creator string
	Label   string
	Limit   int32
}

// LabelTimelineFilter selects timeline entries. Empty fields match
// everything.
type LabelTimelineFilter struct {
	Label    string
	IssueKey string
	Limit    int32
}

// EventStore is the existence-indexed record store for ingested events.
// Records are created once and never mutated or deleted.
type EventStore interface {
	// CreateOrGet persists the record unless one with the same
	// external id already exists. Returns whether a new row was
	// created; the insert is a no-op for duplicates.
	CreateOrGet(ctx context.Context, record *model.EventRecord) (bool, error)
	List(ctx context.Context, filter EventFilter) ([]model.EventRecord, error)
}

// IssueStore holds the long-lived per-issue aggregates keyed by
// (repo, number).
type IssueStore interface {
	GetByRepoAndNumber(ctx context.Context, repo string, number int) (*model.Issue, error)
	Create(ctx context.Context, issue *model.Issue) error
	// Update overwrites the mutable fields (kind, state, title, labels,
	// comment count); the identity key and created_at are untouched.
	Update(ctx context.Context, issue *model.Issue) error
	List(ctx context.Context, filter IssueFilter) ([]model.Issue, error)
}

// LabelTimelineStore holds one entry per (label, issue key) pair.
type LabelTimelineStore interface {
	GetByLabelAndIssue(ctx context.Context, label, issueKey string) (*model.LabelTimeline, error)
	// Save upserts the full entry on its (label, issue_key) key.
	// Callers load-merge-save so untouched timestamps survive.
	Save(ctx context.Context, entry *model.LabelTimeline) error
	List(ctx context.Context, filter LabelTimelineFilter) ([]model.LabelTimeline, error)
}

// ActorStore holds the lazily-built profile cache keyed by login.
type ActorStore interface {
	GetByLogin(ctx context.Context, login string) (*model.Actor, error)
	Exists(ctx context.Context, login string) (bool, error)
	Create(ctx context.Context, actor *model.Actor) error
}
