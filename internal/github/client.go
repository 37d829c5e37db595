package github

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	gh "github.com/google/go-github/v66/github"
)

// Client implements Feeds against the GitHub REST API, one HTTP GET
// per logical query, paginated at up to 100 items per page.
type Client struct {
	gh     *gh.Client
	logger *slog.Logger
}

func NewClient(token string, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		gh:     gh.NewClient(nil).WithAuthToken(token),
		logger: logger,
	}
}

func (c *Client) UserEvents(ctx context.Context, login string) ([]RawEvent, error) {
	var out []RawEvent
	opts := &gh.ListOptions{PerPage: 100}
	for {
		events, resp, err := c.gh.Activity.ListEventsPerformedByUser(ctx, login, false, opts)
		if err != nil {
			return nil, fmt.Errorf("fetching user events for %s: %w", login, err)
		}
		out = append(out, c.normalizeEvents(ctx, events)...)
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}
	return out, nil
}

func (c *Client) RepoEvents(ctx context.Context, fullName string) ([]RawEvent, error) {
	owner, repo, err := splitFullName(fullName)
	if err != nil {
		return nil, err
	}

	var out []RawEvent
	opts := &gh.ListOptions{PerPage: 100}
	for {
		events, resp, err := c.gh.Activity.ListRepositoryEvents(ctx, owner, repo, opts)
		if err != nil {
			return nil, fmt.Errorf("fetching repo events for %s: %w", fullName, err)
		}
		out = append(out, c.normalizeEvents(ctx, events)...)
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}
	return out, nil
}

func (c *Client) IssueSubEvents(ctx context.Context, fullName string, number int) ([]IssueSubEvent, error) {
	owner, repo, err := splitFullName(fullName)
	if err != nil {
		return nil, err
	}

	var out []IssueSubEvent
	opts := &gh.ListOptions{PerPage: 100}
	for {
		var (
			events []*gh.IssueEvent
			resp   *gh.Response
		)
		if number > 0 {
			events, resp, err = c.gh.Issues.ListIssueEvents(ctx, owner, repo, number, opts)
		} else {
			events, resp, err = c.gh.Issues.ListRepositoryEvents(ctx, owner, repo, opts)
		}
		if err != nil {
			return nil, fmt.Errorf("fetching issue events for %s: %w", fullName, err)
		}
		out = append(out, c.normalizeSubEvents(ctx, fullName, events)...)
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}
	return out, nil
}

func (c *Client) Profile(ctx context.Context, login string) (*Profile, error) {
	user, _, err := c.gh.Users.Get(ctx, login)
	if err != nil {
		return nil, fmt.Errorf("fetching profile for %s: %w", login, err)
	}
	return &Profile{
		Login:     user.GetLogin(),
		Name:      user.GetName(),
		AvatarURL: user.GetAvatarURL(),
		Bio:       user.GetBio(),
	}, nil
}

func (c *Client) Organizations(ctx context.Context, login string) ([]string, error) {
	var out []string
	opts := &gh.ListOptions{PerPage: 100}
	for {
		orgs, resp, err := c.gh.Organizations.List(ctx, login, opts)
		if err != nil {
			return nil, fmt.Errorf("fetching organizations for %s: %w", login, err)
		}
		for _, org := range orgs {
			out = append(out, org.GetLogin())
		}
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}
	return out, nil
}

func (c *Client) normalizeEvents(ctx context.Context, events []*gh.Event) []RawEvent {
	out := make([]RawEvent, 0, len(events))
	for _, e := range events {
		if e == nil || e.GetID() == "" {
			continue
		}

		raw := RawEvent{
			ID:        e.GetID(),
			Type:      e.GetType(),
			Public:    e.GetPublic(),
			CreatedAt: e.GetCreatedAt().Time,
			Repo:      e.GetRepo().GetName(),
			Actor: Actor{
				Login:       e.GetActor().GetLogin(),
				DisplayName: e.GetActor().GetName(),
			},
		}

		payload, err := e.ParsePayload()
		if err != nil {
			// Unknown shape: keep the event, route it through the
			// default classification path.
			c.logger.DebugContext(ctx, "unparseable event payload", "event_id", raw.ID, "type", raw.Type, "error", err)
			out = append(out, raw)
			continue
		}

		raw.Action, raw.Payload = normalizePayload(payload)
		out = append(out, raw)
	}
	return out
}

func normalizePayload(payload any) (action string, variant Payload) {
	switch p := payload.(type) {
	case *gh.IssuesEvent:
		issue := p.GetIssue()
		return p.GetAction(), IssuePayload{
			Number:   issue.GetNumber(),
			Title:    issue.GetTitle(),
			State:    issue.GetState(),
			Author:   issue.GetUser().GetLogin(),
			Labels:   labelNames(issue.Labels),
			Comments: issue.GetComments(),
			URL:      issue.GetHTMLURL(),
		}
	case *gh.PullRequestEvent:
		pr := p.GetPullRequest()
		return p.GetAction(), PullRequestPayload{
			Number:   p.GetNumber(),
			Title:    pr.GetTitle(),
			State:    pr.GetState(),
			Author:   pr.GetUser().GetLogin(),
			Labels:   labelNames(pr.Labels),
			Comments: pr.GetComments(),
			URL:      pr.GetHTMLURL(),
			Merged:   pr.GetMerged(),
		}
	case *gh.IssueCommentEvent:
		comment := CommentPayload{URL: p.GetComment().GetHTMLURL()}
		if issue := p.GetIssue(); issue != nil {
			n := issue.GetNumber()
			comment.IssueNumber = &n
		}
		return p.GetAction(), comment
	case *gh.CommitCommentEvent:
		return p.GetAction(), CommentPayload{URL: p.GetComment().GetHTMLURL()}
	case *gh.PullRequestReviewCommentEvent:
		review := ReviewCommentPayload{URL: p.GetComment().GetHTMLURL()}
		if pr := p.GetPullRequest(); pr != nil {
			n := pr.GetNumber()
			review.PRNumber = &n
		}
		return p.GetAction(), review
	case *gh.PushEvent:
		return "", PushPayload{
			Ref:         p.GetRef(),
			Head:        p.GetHead(),
			CommitCount: len(p.Commits),
		}
	case *gh.CreateEvent:
		return "", RefPayload{Ref: p.GetRef(), RefType: p.GetRefType()}
	case *gh.DeleteEvent:
		return "", RefPayload{Ref: p.GetRef(), RefType: p.GetRefType()}
	case *gh.ReleaseEvent:
		return p.GetAction(), ReleasePayload{
			Name: p.GetRelease().GetName(),
			URL:  p.GetRelease().GetHTMLURL(),
		}
	case *gh.ForkEvent:
		return "", ForkPayload{
			ForkFullName: p.GetForkee().GetFullName(),
			URL:          p.GetForkee().GetHTMLURL(),
		}
	case *gh.GollumEvent:
		wiki := WikiPayload{}
		if len(p.Pages) > 0 {
			wiki.PageTitle = p.Pages[0].GetTitle()
			wiki.URL = p.Pages[0].GetHTMLURL()
		}
		return "", wiki
	default:
		return "", nil
	}
}

func (c *Client) normalizeSubEvents(ctx context.Context, fullName string, events []*gh.IssueEvent) []IssueSubEvent {
	var out []IssueSubEvent
	for _, e := range events {
		if e == nil {
			continue
		}

		kind := SubEventKind(e.GetEvent())
		switch kind {
		case SubEventLabeled, SubEventUnlabeled, SubEventClosed, SubEventReopened:
		default:
			continue
		}

		issue := e.GetIssue()
		if issue == nil || issue.GetNumber() == 0 {
			continue
		}

		repo, err := ParseRepoFromIssueURL(issue.GetRepositoryURL())
		if err != nil {
			// Not actionable without a target repo.
			c.logger.DebugContext(ctx, "skipping sub-event with unparseable repo", "feed_repo", fullName, "error", err)
			continue
		}

		sub := IssueSubEvent{
			Kind:      kind,
			Repo:      repo,
			Number:    issue.GetNumber(),
			CreatedAt: e.GetCreatedAt().Time,
		}
		if kind == SubEventLabeled || kind == SubEventUnlabeled {
			sub.Label = e.GetLabel().GetName()
			if sub.Label == "" {
				continue
			}
		}
		out = append(out, sub)
	}
	return out
}

func labelNames(labels []*gh.Label) []string {
	out := make([]string, 0, len(labels))
	for _, l := range labels {
		if name := l.GetName(); name != "" {
			out = append(out, name)
		}
	}
	return out
}

func splitFullName(fullName string) (owner, repo string, err error) {
	parts := strings.Split(fullName, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("expected owner/name, got %q", fullName)
	}
	return parts[0], parts[1], nil
}
