package classify_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"forgepulse.app/tracker/internal/classify"
	"forgepulse.app/tracker/internal/github"
	"forgepulse.app/tracker/internal/model"
)

var _ = Describe("LinkResolver", func() {
	var resolver *classify.LinkResolver

	BeforeEach(func() {
		resolver = classify.NewLinkResolver(nil)
	})

	It("uses the issue URL directly", func() {
		event := github.RawEvent{
			Type:    "IssuesEvent",
			Repo:    "acme/widgets",
			Payload: github.IssuePayload{Number: 7, URL: "https://github.com/acme/widgets/issues/7"},
		}

		link := resolver.Resolve(event, model.CategoryIssueOpened)
		Expect(link.URL).NotTo(BeNil())
		Expect(*link.URL).To(Equal("https://github.com/acme/widgets/issues/7"))
		Expect(link.Label).To(Equal("Issue Opened"))
	})

	It("constructs a commit URL for pushes", func() {
		event := github.RawEvent{
			Type:    "PushEvent",
			Repo:    "acme/widgets",
			Payload: github.PushPayload{Ref: "refs/heads/main", Head: "abc123", CommitCount: 3},
		}

		link := resolver.Resolve(event, model.CategoryPushed)
		Expect(link.URL).NotTo(BeNil())
		Expect(*link.URL).To(Equal("https://github.com/acme/widgets/commit/abc123"))
	})

	It("constructs a tree URL for created refs", func() {
		event := github.RawEvent{
			Type:    "CreateEvent",
			Repo:    "acme/widgets",
			Payload: github.RefPayload{Ref: "v1.2.0", RefType: "tag"},
		}

		link := resolver.Resolve(event, model.CategoryCreated)
		Expect(link.URL).NotTo(BeNil())
		Expect(*link.URL).To(Equal("https://github.com/acme/widgets/tree/v1.2.0"))
	})

	It("appends the release name to the label", func() {
		event := github.RawEvent{
			Type:    "ReleaseEvent",
			Repo:    "acme/widgets",
			Payload: github.ReleasePayload{Name: "v2.0", URL: "https://github.com/acme/widgets/releases/tag/v2.0"},
		}

		link := resolver.Resolve(event, model.CategoryReleased)
		Expect(link.Label).To(Equal("Published a release: v2.0"))
	})

	It("degrades to a label-only link when the payload is nil", func() {
		event := github.RawEvent{Type: "UnknownEvent", Repo: "acme/widgets"}

		link := resolver.Resolve(event, model.CategoryDefault)
		Expect(link.URL).To(BeNil())
		Expect(link.Label).To(Equal("Did something"))
	})

	It("degrades when a push lacks a head SHA", func() {
		event := github.RawEvent{
			Type:    "PushEvent",
			Repo:    "acme/widgets",
			Payload: github.PushPayload{Ref: "refs/heads/main"},
		}

		link := resolver.Resolve(event, model.CategoryPushed)
		Expect(link.URL).To(BeNil())
	})

	Describe("with an override hook", func() {
		It("lets the override adjust the label", func() {
			resolver = classify.NewLinkResolver(func(link classify.Link, event github.RawEvent) classify.Link {
				link.Label = link.Label + " on " + event.Repo
				return link
			})

			event := github.RawEvent{Type: "ForkEvent", Repo: "acme/widgets", Payload: github.ForkPayload{URL: "https://github.com/alice/widgets"}}
			link := resolver.Resolve(event, model.CategoryForked)
			Expect(link.Label).To(Equal("Forked a repo on acme/widgets"))
		})
	})
})
