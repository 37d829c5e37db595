package model

import "time"

// Category is the canonical, human-readable bucket assigned to a raw
// platform event by the classifier.
type Category string

const (
	CategoryIssueOpened  Category = "Issue Opened"
	CategoryIssueClosed  Category = "Issue Closed"
	CategoryIssueTouched Category = "Issue touched"
	CategoryPROpened     Category = "PR Opened"
	CategoryPRClosed     Category = "PR Closed"
	CategoryPRTouched    Category = "PR touched"
	CategoryComment      Category = "Comment"
	CategoryReviewedPR   Category = "Reviewed a PR"
	CategoryPushed       Category = "Pushed"
	CategoryCreated      Category = "Created a branch or tag"
	CategoryReleased     Category = "Published a release"
	CategoryDeleted      Category = "Deleted a branch or tag"
	CategoryWikiEdit     Category = "Edited a wiki page"
	CategoryForked       Category = "Forked a repo"
	CategoryDefault      Category = "Did something"
)

// EventRecord is the persisted projection of one platform activity
// event. Records are written once and never mutated; uniqueness is
// enforced on ExternalID, which carries the platform's stable event id.
type EventRecord struct {
	ID          int64      `json:"id"`
	ExternalID  string     `json:"external_id"`
	Type        string     `json:"type"`
	Action      string     `json:"action,omitempty"`
	Category    Category   `json:"category"`
	Repo        string     `json:"repo"`
	Actor       string     `json:"actor"`
	IssueNumber *int       `json:"issue_number,omitempty"`
	LinkURL     *string    `json:"link_url,omitempty"`
	LinkLabel   string     `json:"link_label"`
	CommitCount *int       `json:"commit_count,omitempty"`
	Public      bool       `json:"public"`
	OccurredAt  time.Time  `json:"occurred_at"`
	CreatedAt   time.Time  `json:"created_at"`
}
