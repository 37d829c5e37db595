package model

import (
	"fmt"
	"time"
)

type IssueKind string

const (
	IssueKindIssue       IssueKind = "issue"
	IssueKindPullRequest IssueKind = "pull_request"
)

type IssueState string

const (
	IssueStateOpen   IssueState = "open"
	IssueStateClosed IssueState = "closed"
)

// Issue is the long-lived aggregate for one issue or pull request,
// keyed by (Repo, Number). CreatedAt is fixed at the first qualifying
// event and never changes afterwards; every other field is updated in
// place as later events arrive.
type Issue struct {
	ID           int64      `json:"id"`
	Repo         string     `json:"repo"`
	Number       int        `json:"number"`
	Kind         IssueKind  `json:"kind"`
	State        IssueState `json:"state"`
	Title        string     `json:"title"`
	Labels       []string   `json:"labels"`
	CommentCount int        `json:"comment_count"`
	Creator      string     `json:"creator,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// Key returns the "repo#number" composite used to address label
// timeline entries.
func (i *Issue) Key() string {
	return IssueKey(i.Repo, i.Number)
}

func IssueKey(repo string, number int) string {
	return fmt.Sprintf("%s#%d", repo, number)
}

// HasLabel reports whether the aggregate currently carries the label.
func (i *Issue) HasLabel(name string) bool {
	for _, l := range i.Labels {
		if l == name {
			return true
		}
	}
	return false
}

// AddLabel adds the label if absent (set semantics).
func (i *Issue) AddLabel(name string) {
	if !i.HasLabel(name) {
		i.Labels = append(i.Labels, name)
	}
}

// RemoveLabel removes the label if present.
func (i *Issue) RemoveLabel(name string) {
	for idx, l := range i.Labels {
		if l == name {
			i.Labels = append(i.Labels[:idx], i.Labels[idx+1:]...)
			return
		}
	}
}
