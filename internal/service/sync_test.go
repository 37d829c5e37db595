package service_test

import (
	"context"
	"errors"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"forgepulse.app/tracker/common/id"
	"forgepulse.app/tracker/internal/classify"
	"forgepulse.app/tracker/internal/github"
	"forgepulse.app/tracker/internal/model"
	"forgepulse.app/tracker/internal/service"
)

type mockReconciler struct {
	upsertFn func(ctx context.Context, details service.IssueDetails) error
	calls    []service.IssueDetails
}

func (m *mockReconciler) Upsert(ctx context.Context, details service.IssueDetails) error {
	m.calls = append(m.calls, details)
	if m.upsertFn != nil {
		return m.upsertFn(ctx, details)
	}
	return nil
}

type mockEnricher struct {
	logins []string
}

func (m *mockEnricher) Ensure(ctx context.Context, login string) error {
	m.logins = append(m.logins, login)
	return nil
}

type mockTimeline struct {
	replayFn func(ctx context.Context, subs []github.IssueSubEvent) service.ReplayStats
	batches  [][]github.IssueSubEvent
}

func (m *mockTimeline) Replay(ctx context.Context, subs []github.IssueSubEvent) service.ReplayStats {
	m.batches = append(m.batches, subs)
	if m.replayFn != nil {
		return m.replayFn(ctx, subs)
	}
	return service.ReplayStats{Applied: len(subs)}
}

var _ = Describe("SyncService", func() {
	var (
		svc        service.SyncService
		events     *mockEventStore
		feeds      *mockFeeds
		reconciler *mockReconciler
		enricher   *mockEnricher
		timeline   *mockTimeline
		cfg        service.SyncConfig
		ctx        context.Context
	)

	occurred := time.Date(2026, 5, 10, 12, 0, 0, 0, time.UTC)

	issueEvent := func(externalID, repo, login string, number int) github.RawEvent {
		return github.RawEvent{
			ID:        externalID,
			Type:      "IssuesEvent",
			Action:    "opened",
			Public:    true,
			CreatedAt: occurred,
			Actor:     github.Actor{Login: login},
			Repo:      repo,
			Payload: github.IssuePayload{
				Number: number,
				Title:  "something broke",
				State:  "open",
				Author: login,
				URL:    "https://github.com/" + repo + "/issues/1",
			},
		}
	}

	newService := func() service.SyncService {
		return service.NewSyncService(service.SyncParams{
			Events:     events,
			Feeds:      feeds,
			Classifier: classify.NewClassifier(nil),
			Links:      classify.NewLinkResolver(nil),
			Reconciler: reconciler,
			Enricher:   enricher,
			Timeline:   timeline,
			Config:     cfg,
		})
	}

	BeforeEach(func() {
		ctx = context.Background()
		events = &mockEventStore{}
		feeds = &mockFeeds{}
		reconciler = &mockReconciler{}
		enricher = &mockEnricher{}
		timeline = &mockTimeline{}
		cfg = service.SyncConfig{
			Usernames:      []string{"alice"},
			MonitoredRepos: []string{"acme/widgets"},
		}

		Expect(id.Init(1)).To(Succeed())

		svc = newService()
	})

	It("ingests fetched events and reports counts", func() {
		feeds.userEventsFn = func(_ context.Context, login string) ([]github.RawEvent, error) {
			return []github.RawEvent{issueEvent("1001", "acme/widgets", "alice", 1)}, nil
		}
		feeds.repoEventsFn = func(_ context.Context, repo string) ([]github.RawEvent, error) {
			return []github.RawEvent{issueEvent("1002", "acme/widgets", "bob", 2)}, nil
		}

		summary := svc.Run(ctx)

		Expect(summary.Fetched).To(Equal(2))
		Expect(summary.Ingested).To(Equal(2))
		Expect(summary.Duplicates).To(Equal(0))
		Expect(events.records).To(HaveLen(2))
		Expect(events.records[0].Category).To(Equal(model.CategoryIssueOpened))
		Expect(events.records[0].IssueNumber).NotTo(BeNil())
		Expect(*events.records[0].IssueNumber).To(Equal(1))
	})

	It("persists an event seen on two feeds exactly once", func() {
		shared := issueEvent("2001", "acme/widgets", "alice", 3)
		feeds.userEventsFn = func(_ context.Context, login string) ([]github.RawEvent, error) {
			return []github.RawEvent{shared}, nil
		}
		feeds.repoEventsFn = func(_ context.Context, repo string) ([]github.RawEvent, error) {
			return []github.RawEvent{shared}, nil
		}

		summary := svc.Run(ctx)

		Expect(summary.Fetched).To(Equal(2))
		Expect(summary.Ingested).To(Equal(1))
		Expect(summary.Duplicates).To(Equal(1))
		Expect(events.records).To(HaveLen(1))
	})

	It("is idempotent across consecutive runs", func() {
		feeds.userEventsFn = func(_ context.Context, login string) ([]github.RawEvent, error) {
			return []github.RawEvent{issueEvent("3001", "acme/widgets", "alice", 4)}, nil
		}

		first := svc.Run(ctx)
		second := svc.Run(ctx)

		Expect(first.Ingested).To(Equal(1))
		Expect(second.Ingested).To(Equal(0))
		Expect(second.Duplicates).To(Equal(1))
		Expect(events.records).To(HaveLen(1))
	})

	It("filters private events unless configured otherwise", func() {
		private := issueEvent("4001", "acme/widgets", "alice", 5)
		private.Public = false
		feeds.userEventsFn = func(_ context.Context, login string) ([]github.RawEvent, error) {
			return []github.RawEvent{private}, nil
		}

		summary := svc.Run(ctx)
		Expect(summary.PrivateFiltered).To(Equal(1))
		Expect(summary.Ingested).To(Equal(0))

		cfg.IncludePrivate = true
		svc = newService()
		events.records = nil

		summary = svc.Run(ctx)
		Expect(summary.PrivateFiltered).To(Equal(0))
		Expect(summary.Ingested).To(Equal(1))
	})

	It("degrades a failed feed to empty without aborting the run", func() {
		feeds.userEventsFn = func(_ context.Context, login string) ([]github.RawEvent, error) {
			return nil, errors.New("503 from upstream")
		}
		feeds.repoEventsFn = func(_ context.Context, repo string) ([]github.RawEvent, error) {
			return []github.RawEvent{issueEvent("5001", "acme/widgets", "bob", 6)}, nil
		}

		summary := svc.Run(ctx)

		Expect(summary.FeedFailures).To(Equal(1))
		Expect(summary.Ingested).To(Equal(1))
	})

	It("dispatches issue events on monitored repos to the reconciler", func() {
		feeds.userEventsFn = func(_ context.Context, login string) ([]github.RawEvent, error) {
			return []github.RawEvent{
				issueEvent("6001", "acme/widgets", "alice", 7),
				issueEvent("6002", "elsewhere/repo", "alice", 8),
			}, nil
		}

		svc.Run(ctx)

		Expect(reconciler.calls).To(HaveLen(1))
		Expect(reconciler.calls[0].Repo).To(Equal("acme/widgets"))
		Expect(reconciler.calls[0].Number).To(Equal(7))
		Expect(reconciler.calls[0].Creator).To(Equal("alice"))
	})

	It("skips reconciliation for duplicate events", func() {
		feeds.userEventsFn = func(_ context.Context, login string) ([]github.RawEvent, error) {
			return []github.RawEvent{issueEvent("7001", "acme/widgets", "alice", 9)}, nil
		}

		svc.Run(ctx)
		svc.Run(ctx)

		Expect(reconciler.calls).To(HaveLen(1))
	})

	It("enriches each actor at most once per run", func() {
		feeds.userEventsFn = func(_ context.Context, login string) ([]github.RawEvent, error) {
			return []github.RawEvent{
				issueEvent("8001", "acme/widgets", "alice", 10),
				issueEvent("8002", "acme/widgets", "alice", 11),
				issueEvent("8003", "acme/widgets", "bob", 12),
			}, nil
		}

		svc.Run(ctx)

		Expect(enricher.logins).To(Equal([]string{"alice", "bob"}))
	})

	It("replays each monitored repo's sub-event feed", func() {
		subs := []github.IssueSubEvent{
			{Kind: github.SubEventLabeled, Repo: "acme/widgets", Number: 1, Label: "bug", CreatedAt: occurred},
		}
		feeds.issueSubsFn = func(_ context.Context, repo string, number int) ([]github.IssueSubEvent, error) {
			Expect(repo).To(Equal("acme/widgets"))
			Expect(number).To(Equal(0))
			return subs, nil
		}

		summary := svc.Run(ctx)

		Expect(timeline.batches).To(HaveLen(1))
		Expect(summary.SubEventsApplied).To(Equal(1))
	})

	It("counts a failed sub-event feed and finishes the run", func() {
		feeds.issueSubsFn = func(_ context.Context, repo string, number int) ([]github.IssueSubEvent, error) {
			return nil, errors.New("502 from upstream")
		}

		summary := svc.Run(ctx)

		Expect(summary.FeedFailures).To(Equal(1))
		Expect(timeline.batches).To(BeEmpty())
	})

	Describe("ReplayIssue", func() {
		It("scopes the feed to a single issue", func() {
			feeds.issueSubsFn = func(_ context.Context, repo string, number int) ([]github.IssueSubEvent, error) {
				Expect(repo).To(Equal("acme/widgets"))
				Expect(number).To(Equal(42))
				return []github.IssueSubEvent{
					{Kind: github.SubEventClosed, Repo: repo, Number: number, CreatedAt: occurred},
				}, nil
			}

			stats, err := svc.ReplayIssue(ctx, "acme/widgets", 42)
			Expect(err).NotTo(HaveOccurred())
			Expect(stats.Applied).To(Equal(1))
		})

		It("propagates the feed failure", func() {
			feeds.issueSubsFn = func(_ context.Context, repo string, number int) ([]github.IssueSubEvent, error) {
				return nil, errors.New("rate limited")
			}

			_, err := svc.ReplayIssue(ctx, "acme/widgets", 42)
			Expect(err).To(HaveOccurred())
		})
	})

	It("records a push event with its commit count and no issue dispatch", func() {
		feeds.userEventsFn = func(_ context.Context, login string) ([]github.RawEvent, error) {
			return []github.RawEvent{{
				ID:        "9001",
				Type:      "PushEvent",
				Public:    true,
				CreatedAt: occurred,
				Actor:     github.Actor{Login: "alice"},
				Repo:      "acme/widgets",
				Payload:   github.PushPayload{Ref: "refs/heads/main", Head: "abc123", CommitCount: 4},
			}}, nil
		}

		summary := svc.Run(ctx)

		Expect(summary.Ingested).To(Equal(1))
		Expect(reconciler.calls).To(BeEmpty())
		Expect(events.records[0].Category).To(Equal(model.CategoryPushed))
		Expect(events.records[0].CommitCount).NotTo(BeNil())
		Expect(*events.records[0].CommitCount).To(Equal(4))
	})
})
