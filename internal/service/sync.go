package service

import (
	"context"
	"log/slog"
	"slices"
	"time"

	"github.com/google/uuid"

	"forgepulse.app/tracker/common/id"
	"forgepulse.app/tracker/common/logger"
	"forgepulse.app/tracker/internal/classify"
	"forgepulse.app/tracker/internal/github"
	"forgepulse.app/tracker/internal/metrics"
	"forgepulse.app/tracker/internal/model"
	"forgepulse.app/tracker/internal/store"
)

// RepoFilter decides whether issue and pull-request events on a repo
// feed the issue reconciler. The default accepts monitored repos.
type RepoFilter func(repo string) bool

type SyncConfig struct {
	Usernames      []string
	MonitoredRepos []string
	IncludePrivate bool
}

// RunSummary reports the best-effort outcome of one full pass.
type RunSummary struct {
	RunID            string        `json:"run_id"`
	Fetched          int           `json:"fetched"`
	Ingested         int           `json:"ingested"`
	Duplicates       int           `json:"duplicates"`
	PrivateFiltered  int           `json:"private_filtered"`
	FeedFailures     int           `json:"feed_failures"`
	SubEventsApplied int           `json:"subevents_applied"`
	SubEventsSkipped int           `json:"subevents_skipped"`
	Duration         time.Duration `json:"duration"`
}

// SyncService runs the ingestion pipeline: fetch the configured user
// and repo feeds, filter private events, idempotently persist new
// event records, dispatch issue details to the reconciler and actor
// logins to the enricher, then replay each monitored repo's issue
// sub-events. No step aborts the run; failed feeds degrade to empty
// results and are retried on the next scheduled pass.
type SyncService interface {
	Run(ctx context.Context) *RunSummary
	ReplayIssue(ctx context.Context, repo string, number int) (ReplayStats, error)
}

type SyncParams struct {
	Events     store.EventStore
	Feeds      github.Feeds
	Classifier *classify.Classifier
	Links      *classify.LinkResolver
	Reconciler IssueReconciler
	Enricher   ActorEnricher
	Timeline   TimelineProcessor
	Metrics    *metrics.Metrics

	// RepoFilter overrides the monitored-repo membership test for the
	// reconciler dispatch. Nil keeps the default.
	RepoFilter RepoFilter

	Config SyncConfig
	Logger *slog.Logger
}

type syncService struct {
	events     store.EventStore
	feeds      github.Feeds
	classifier *classify.Classifier
	links      *classify.LinkResolver
	reconciler IssueReconciler
	enricher   ActorEnricher
	timeline   TimelineProcessor
	metrics    *metrics.Metrics
	repoFilter RepoFilter
	cfg        SyncConfig
	logger     *slog.Logger
}

func NewSyncService(params SyncParams) SyncService {
	if params.Logger == nil {
		params.Logger = slog.Default()
	}
	if params.Metrics == nil {
		params.Metrics = metrics.New()
	}
	if params.RepoFilter == nil {
		monitored := params.Config.MonitoredRepos
		params.RepoFilter = func(repo string) bool {
			return slices.Contains(monitored, repo)
		}
	}
	return &syncService{
		events:     params.Events,
		feeds:      params.Feeds,
		classifier: params.Classifier,
		links:      params.Links,
		reconciler: params.Reconciler,
		enricher:   params.Enricher,
		timeline:   params.Timeline,
		metrics:    params.Metrics,
		repoFilter: params.RepoFilter,
		cfg:        params.Config,
		logger:     params.Logger,
	}
}

func (s *syncService) Run(ctx context.Context) *RunSummary {
	start := time.Now()
	runID := uuid.NewString()
	ctx = logger.WithLogFields(ctx, logger.LogFields{
		RunID:     &runID,
		Component: "tracker.service.sync",
	})

	sc := logger.StartSpan(ctx, "tracker.sync.run")
	defer sc.End()
	ctx = sc.Context()

	summary := &RunSummary{RunID: runID}
	s.logger.InfoContext(ctx, "sync run starting",
		"usernames", len(s.cfg.Usernames),
		"monitored_repos", len(s.cfg.MonitoredRepos))

	raws := s.fetchEvents(ctx, summary)
	summary.Fetched = len(raws)

	enriched := make(map[string]bool)
	for _, raw := range raws {
		if !raw.Public && !s.cfg.IncludePrivate {
			summary.PrivateFiltered++
			s.metrics.EventsPrivate.Inc()
			continue
		}

		created, err := s.ingest(ctx, raw)
		if err != nil {
			// Leave the record absent; the next run retries it.
			s.logger.WarnContext(ctx, "event persistence failed", "event_id", raw.ID, "error", err)
			continue
		}
		if !created {
			summary.Duplicates++
			s.metrics.EventsDuplicate.Inc()
			continue
		}
		summary.Ingested++
		s.metrics.EventsIngested.Inc()

		if details, ok := issueDetails(raw); ok && s.repoFilter(raw.Repo) {
			if err := s.reconciler.Upsert(ctx, details); err != nil {
				s.logger.WarnContext(ctx, "issue reconciliation failed", "repo", raw.Repo, "number", details.Number, "error", err)
			}
		}

		if login := raw.Actor.Login; login != "" && !enriched[login] {
			enriched[login] = true
			if err := s.enricher.Ensure(ctx, login); err != nil {
				s.logger.WarnContext(ctx, "actor enrichment failed", "login", login, "error", err)
			}
		}
	}

	s.replayMonitoredRepos(ctx, summary)

	summary.Duration = time.Since(start)
	s.metrics.Runs.WithLabelValues("success").Inc()
	s.metrics.RunDuration.Observe(summary.Duration.Seconds())

	s.logger.InfoContext(ctx, "sync run finished",
		"fetched", summary.Fetched,
		"ingested", summary.Ingested,
		"duplicates", summary.Duplicates,
		"private_filtered", summary.PrivateFiltered,
		"feed_failures", summary.FeedFailures,
		"subevents_applied", summary.SubEventsApplied,
		"subevents_skipped", summary.SubEventsSkipped,
		"duration", summary.Duration)
	return summary
}

// ReplayIssue re-runs the timeline pass for a single issue's sub-event
// feed on demand.
func (s *syncService) ReplayIssue(ctx context.Context, repo string, number int) (ReplayStats, error) {
	subs, err := s.feeds.IssueSubEvents(ctx, repo, number)
	if err != nil {
		s.metrics.FeedFailures.WithLabelValues("issue_events").Inc()
		return ReplayStats{}, err
	}
	return s.timeline.Replay(ctx, subs), nil
}

// fetchEvents pulls each configured feed independently; one failed
// feed contributes nothing and never aborts the others.
func (s *syncService) fetchEvents(ctx context.Context, summary *RunSummary) []github.RawEvent {
	var raws []github.RawEvent

	for _, login := range s.cfg.Usernames {
		events, err := s.feeds.UserEvents(ctx, login)
		if err != nil {
			summary.FeedFailures++
			s.metrics.FeedFailures.WithLabelValues("user_events").Inc()
			s.logger.WarnContext(ctx, "user event feed degraded to empty", "login", login, "error", err)
			continue
		}
		raws = append(raws, events...)
	}

	for _, repo := range s.cfg.MonitoredRepos {
		events, err := s.feeds.RepoEvents(ctx, repo)
		if err != nil {
			summary.FeedFailures++
			s.metrics.FeedFailures.WithLabelValues("repo_events").Inc()
			s.logger.WarnContext(ctx, "repo event feed degraded to empty", "repo", repo, "error", err)
			continue
		}
		raws = append(raws, events...)
	}

	return raws
}

func (s *syncService) replayMonitoredRepos(ctx context.Context, summary *RunSummary) {
	for _, repo := range s.cfg.MonitoredRepos {
		subs, err := s.feeds.IssueSubEvents(ctx, repo, 0)
		if err != nil {
			summary.FeedFailures++
			s.metrics.FeedFailures.WithLabelValues("issue_events").Inc()
			s.logger.WarnContext(ctx, "issue event feed degraded to empty", "repo", repo, "error", err)
			continue
		}
		stats := s.timeline.Replay(ctx, subs)
		summary.SubEventsApplied += stats.Applied
		summary.SubEventsSkipped += stats.Skipped
		s.metrics.SubEventsApplied.Add(float64(stats.Applied))
		s.metrics.SubEventsSkipped.Add(float64(stats.Skipped))
	}
}

// ingest classifies, resolves, and persists one raw event. The unique
// index on the platform event id makes re-ingestion a no-op.
func (s *syncService) ingest(ctx context.Context, raw github.RawEvent) (bool, error) {
	category := s.classifier.Classify(raw.Type, raw.Action)
	link := s.links.Resolve(raw, category)

	record := &model.EventRecord{
		ID:         id.New(),
		ExternalID: raw.ID,
		Type:       raw.Type,
		Action:     raw.Action,
		Category:   category,
		Repo:       raw.Repo,
		Actor:      raw.Actor.Login,
		LinkURL:    link.URL,
		LinkLabel:  link.Label,
		Public:     raw.Public,
		OccurredAt: raw.CreatedAt,
	}

	switch p := raw.Payload.(type) {
	case github.IssuePayload:
		n := p.Number
		record.IssueNumber = &n
	case github.PullRequestPayload:
		n := p.Number
		record.IssueNumber = &n
	case github.CommentPayload:
		record.IssueNumber = p.IssueNumber
	case github.ReviewCommentPayload:
		record.IssueNumber = p.PRNumber
	case github.PushPayload:
		n := p.CommitCount
		record.CommitCount = &n
	}

	return s.events.CreateOrGet(ctx, record)
}

// issueDetails extracts reconciler input from issue and pull-request
// events. The creator prefers the acting user on an "opened" action,
// then the payload's author, and degrades to empty.
func issueDetails(raw github.RawEvent) (IssueDetails, bool) {
	switch p := raw.Payload.(type) {
	case github.IssuePayload:
		return IssueDetails{
			Repo:         raw.Repo,
			Number:       p.Number,
			Kind:         model.IssueKindIssue,
			State:        issueState(p.State),
			Title:        p.Title,
			Labels:       p.Labels,
			CommentCount: p.Comments,
			Creator:      creatorFor(raw, p.Author),
			OccurredAt:   raw.CreatedAt,
		}, p.Number > 0
	case github.PullRequestPayload:
		return IssueDetails{
			Repo:         raw.Repo,
			Number:       p.Number,
			Kind:         model.IssueKindPullRequest,
			State:        issueState(p.State),
			Title:        p.Title,
			Labels:       p.Labels,
			CommentCount: p.Comments,
			Creator:      creatorFor(raw, p.Author),
			OccurredAt:   raw.CreatedAt,
		}, p.Number > 0
	default:
		return IssueDetails{}, false
	}
}

func creatorFor(raw github.RawEvent, author string) string {
	if raw.Action == "opened" && raw.Actor.Login != "" {
		return raw.Actor.Login
	}
	return author
}

func issueState(state string) model.IssueState {
	if state == string(model.IssueStateClosed) {
		return model.IssueStateClosed
	}
	return model.IssueStateOpen
}
