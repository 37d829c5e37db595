package github

import "time"

// RawEvent is the in-memory, normalized form of one platform activity
// event, decoded at the fetch boundary and discarded after persistence.
// Payload carries one of a closed set of per-type variants; an
// unrecognized or malformed payload leaves it nil and the event routes
// through the default classification path.
type RawEvent struct {
	ID        string
	Type      string
	Action    string
	Public    bool
	CreatedAt time.Time
	Actor     Actor
	Repo      string
	Payload   Payload
}

type Actor struct {
	Login       string
	DisplayName string
}

// Payload is the closed set of event payload variants.
type Payload interface {
	isPayload()
}

// IssuePayload covers IssuesEvent.
type IssuePayload struct {
	Number   int
	Title    string
	State    string
	Author   string
	Labels   []string
	Comments int
	URL      string
}

// PullRequestPayload covers PullRequestEvent.
type PullRequestPayload struct {
	Number   int
	Title    string
	State    string
	Author   string
	Labels   []string
	Comments int
	URL      string
	Merged   bool
}

// CommentPayload covers IssueCommentEvent and CommitCommentEvent.
type CommentPayload struct {
	URL         string
	IssueNumber *int
}

// ReviewCommentPayload covers PullRequestReviewCommentEvent.
type ReviewCommentPayload struct {
	URL      string
	PRNumber *int
}

// PushPayload covers PushEvent.
type PushPayload struct {
	Ref         string
	Head        string
	CommitCount int
}

// RefPayload covers CreateEvent and DeleteEvent.
type RefPayload struct {
	Ref     string
	RefType string
}

// ReleasePayload covers ReleaseEvent.
type ReleasePayload struct {
	Name string
	URL  string
}

// ForkPayload covers ForkEvent.
type ForkPayload struct {
	ForkFullName string
	URL          string
}

// WikiPayload covers GollumEvent; only the first edited page is kept.
type WikiPayload struct {
	PageTitle string
	URL       string
}

func (IssuePayload) isPayload()         {}
func (PullRequestPayload) isPayload()   {}
func (CommentPayload) isPayload()       {}
func (ReviewCommentPayload) isPayload() {}
func (PushPayload) isPayload()          {}
func (RefPayload) isPayload()           {}
func (ReleasePayload) isPayload()       {}
func (ForkPayload) isPayload()          {}
func (WikiPayload) isPayload()          {}
