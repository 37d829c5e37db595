package classify

import (
	"fmt"

	"forgepulse.app/tracker/internal/github"
	"forgepulse.app/tracker/internal/model"
)

// Link is the resolved presentation of one event: an optional target
// URL plus a display label. A Link with a nil URL degrades to
// label-only output.
type Link struct {
	URL   *string
	Label string
}

// LinkOverride may adjust the resolved link and label for presentation.
type LinkOverride func(link Link, event github.RawEvent) Link

// LinkResolver extracts the canonical target URL from an event's
// payload variant. It never fails: unrecognized or malformed shapes
// yield the classification label with no URL.
type LinkResolver struct {
	override LinkOverride
}

// NewLinkResolver builds a resolver with an optional presentation
// override hook. A nil override is a no-op.
func NewLinkResolver(override LinkOverride) *LinkResolver {
	if override == nil {
		override = func(link Link, _ github.RawEvent) Link { return link }
	}
	return &LinkResolver{override: override}
}

func (r *LinkResolver) Resolve(event github.RawEvent, category model.Category) Link {
	return r.override(resolve(event, category), event)
}

func resolve(event github.RawEvent, category model.Category) Link {
	link := Link{Label: string(category)}

	switch p := event.Payload.(type) {
	case github.IssuePayload:
		link = withURL(link, p.URL)
	case github.PullRequestPayload:
		link = withURL(link, p.URL)
	case github.CommentPayload:
		link = withURL(link, p.URL)
	case github.ReviewCommentPayload:
		link = withURL(link, p.URL)
	case github.PushPayload:
		if event.Repo != "" && p.Head != "" {
			link = withURL(link, fmt.Sprintf("https://github.com/%s/commit/%s", event.Repo, p.Head))
		}
	case github.RefPayload:
		if event.Repo != "" && p.Ref != "" {
			link = withURL(link, fmt.Sprintf("https://github.com/%s/tree/%s", event.Repo, p.Ref))
		}
	case github.ReleasePayload:
		link = withURL(link, p.URL)
		if p.Name != "" {
			link.Label = fmt.Sprintf("%s: %s", category, p.Name)
		}
	case github.ForkPayload:
		link = withURL(link, p.URL)
	case github.WikiPayload:
		link = withURL(link, p.URL)
	}

	return link
}

func withURL(link Link, url string) Link {
	if url != "" {
		link.URL = &url
	}
	return link
}
