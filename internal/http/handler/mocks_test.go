package handler_test

import (
	"context"

	"forgepulse.app/tracker/internal/model"
	"forgepulse.app/tracker/internal/service"
	"forgepulse.app/tracker/internal/store"
)

type mockEventStore struct {
	listFn func(ctx context.Context, filter store.EventFilter) ([]model.EventRecord, error)
}

func (m *mockEventStore) CreateOrGet(ctx context.Context, record *model.EventRecord) (bool, error) {
	return false, nil
}

func (m *mockEventStore) List(ctx context.Context, filter store.EventFilter) ([]model.EventRecord, error) {
	if m.listFn != nil {
		return m.listFn(ctx, filter)
	}
	return []model.EventRecord{}, nil
}

type mockIssueStore struct {
	getFn  func(ctx context.Context, repo string, number int) (*model.Issue, error)
	listFn func(ctx context.Context, filter store.IssueFilter) ([]model.Issue, error)
}

func (m *mockIssueStore) GetByRepoAndNumber(ctx context.Context, repo string, number int) (*model.Issue, error) {
	if m.getFn != nil {
		return m.getFn(ctx, repo, number)
	}
	return nil, store.ErrNotFound
}

func (m *mockIssueStore) Create(ctx context.Context, issue *model.Issue) error {
	return nil
}

func (m *mockIssueStore) Update(ctx context.Context, issue *model.Issue) error {
	return nil
}

func (m *mockIssueStore) List(ctx context.Context, filter store.IssueFilter) ([]model.Issue, error) {
	if m.listFn != nil {
		return m.listFn(ctx, filter)
	}
	return []model.Issue{}, nil
}

type mockLabelTimelineStore struct {
	listFn func(ctx context.Context, filter store.LabelTimelineFilter) ([]model.LabelTimeline, error)
}

func (m *mockLabelTimelineStore) GetByLabelAndIssue(ctx context.Context, label, issueKey string) (*model.LabelTimeline, error) {
	return nil, store.ErrNotFound
}

func (m *mockLabelTimelineStore) Save(ctx context.Context, entry *model.LabelTimeline) error {
	return nil
}

func (m *mockLabelTimelineStore) List(ctx context.Context, filter store.LabelTimelineFilter) ([]model.LabelTimeline, error) {
	if m.listFn != nil {
		return m.listFn(ctx, filter)
	}
	return []model.LabelTimeline{}, nil
}

type mockActorStore struct {
	getByLoginFn func(ctx context.Context, login string) (*model.Actor, error)
}

func (m *mockActorStore) GetByLogin(ctx context.Context, login string) (*model.Actor, error) {
	if m.getByLoginFn != nil {
		return m.getByLoginFn(ctx, login)
	}
	return nil, store.ErrNotFound
}

func (m *mockActorStore) Exists(ctx context.Context, login string) (bool, error) {
	return false, nil
}

func (m *mockActorStore) Create(ctx context.Context, actor *model.Actor) error {
	return nil
}

type mockSyncService struct {
	runFn         func(ctx context.Context) *service.RunSummary
	replayIssueFn func(ctx context.Context, repo string, number int) (service.ReplayStats, error)
	runCalls      int
}

func (m *mockSyncService) Run(ctx context.Context) *service.RunSummary {
	m.runCalls++
	if m.runFn != nil {
		return m.runFn(ctx)
	}
	return &service.RunSummary{RunID: "test-run"}
}

func (m *mockSyncService) ReplayIssue(ctx context.Context, repo string, number int) (service.ReplayStats, error) {
	if m.replayIssueFn != nil {
		return m.replayIssueFn(ctx, repo, number)
	}
	return service.ReplayStats{}, nil
}

type mockRunLock struct {
	acquireFn func(ctx context.Context) (string, error)
	released  []string
}

func (m *mockRunLock) Acquire(ctx context.Context) (string, error) {
	if m.acquireFn != nil {
		return m.acquireFn(ctx)
	}
	return "token", nil
}

func (m *mockRunLock) Release(ctx context.Context, token string) error {
	m.released = append(m.released, token)
	return nil
}
