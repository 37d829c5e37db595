package github

import "context"

// Profile is the platform's view of one user, fetched during actor
// enrichment.
type Profile struct {
	Login     string
	Name      string
	AvatarURL string
	Bio       string
}

// Feeds is the outbound query surface of the tracker. Every method
// performs independent, blocking queries with no retry; callers degrade
// a failed feed to an empty result and proceed, leaving retries to the
// next scheduled run.
type Feeds interface {
	// UserEvents returns the activity feed for one login.
	UserEvents(ctx context.Context, login string) ([]RawEvent, error)

	// RepoEvents returns the activity feed for one "owner/name" repo.
	RepoEvents(ctx context.Context, fullName string) ([]RawEvent, error)

	// IssueSubEvents returns a repo's issue-events feed. A positive
	// number scopes the feed to that single issue.
	IssueSubEvents(ctx context.Context, fullName string, number int) ([]IssueSubEvent, error)

	// Profile fetches one user's profile.
	Profile(ctx context.Context, login string) (*Profile, error)

	// Organizations returns the login names of the user's organizations.
	Organizations(ctx context.Context, login string) ([]string, error)
}
