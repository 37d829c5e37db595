package github

import (
	"fmt"
	"strings"
	"time"
)

// SubEventKind is one of the four issue sub-event kinds the timeline
// processor replays.
type SubEventKind string

const (
	SubEventLabeled   SubEventKind = "labeled"
	SubEventUnlabeled SubEventKind = "unlabeled"
	SubEventClosed    SubEventKind = "closed"
	SubEventReopened  SubEventKind = "reopened"
)

// IssueSubEvent is one entry of a repo's issue-events feed, already
// resolved to a target repo and issue number. Label is set only for
// labeled/unlabeled kinds.
type IssueSubEvent struct {
	Kind      SubEventKind
	Repo      string
	Number    int
	Label     string
	CreatedAt time.Time
}

const apiRepoPrefix = "https://api.github.com/repos/"

// ParseRepoFromIssueURL extracts the "owner/name" repo from an issue's
// repository_url ("https://api.github.com/repos/{owner}/{name}").
// Sub-events whose repo cannot be extracted are not actionable and
// must be skipped by the caller.
func ParseRepoFromIssueURL(repositoryURL string) (string, error) {
	rest, ok := strings.CutPrefix(repositoryURL, apiRepoPrefix)
	if !ok {
		return "", fmt.Errorf("unexpected repository url: %q", repositoryURL)
	}
	parts := strings.Split(rest, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", fmt.Errorf("unexpected repository path: %q", rest)
	}
	return parts[0] + "/" + parts[1], nil
}
