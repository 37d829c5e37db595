package model

import "time"

type LabelStatus string

const (
	LabelStatusLabeled   LabelStatus = "labeled"
	LabelStatusUnlabeled LabelStatus = "unlabeled"
	LabelStatusClosed    LabelStatus = "closed"
	LabelStatusReopened  LabelStatus = "reopened"
)

// LabelTimeline records the most recent label activity for one
// (label, issue) pair. The issue side of the key is the "repo#number"
// composite. Applies follow load-merge-save semantics: only Status and
// the timestamp matching the applied sub-event are overwritten, the
// other timestamp is preserved.
type LabelTimeline struct {
	ID          int64       `json:"id"`
	Label       string      `json:"label"`
	IssueKey    string      `json:"issue_key"`
	Status      LabelStatus `json:"status"`
	LabeledAt   *time.Time  `json:"labeled_at,omitempty"`
	UnlabeledAt *time.Time  `json:"unlabeled_at,omitempty"`
}
