package service_test

import (
	"context"

	"forgepulse.app/tracker/internal/github"
	"forgepulse.app/tracker/internal/model"
	"forgepulse.app/tracker/internal/store"
)

type mockEventStore struct {
	createOrGetFn func(ctx context.Context, record *model.EventRecord) (bool, error)
	records       []*model.EventRecord
}

func (m *mockEventStore) CreateOrGet(ctx context.Context, record *model.EventRecord) (bool, error) {
	if m.createOrGetFn != nil {
		return m.createOrGetFn(ctx, record)
	}
	for _, r := range m.records {
		if r.ExternalID == record.ExternalID {
			return false, nil
		}
	}
	m.records = append(m.records, record)
	return true, nil
}

func (m *mockEventStore) List(ctx context.Context, filter store.EventFilter) ([]model.EventRecord, error) {
	out := make([]model.EventRecord, 0, len(m.records))
	for _, r := range m.records {
		out = append(out, *r)
	}
	return out, nil
}

type mockIssueStore struct {
	getFn    func(ctx context.Context, repo string, number int) (*model.Issue, error)
	createFn func(ctx context.Context, issue *model.Issue) error
	updateFn func(ctx context.Context, issue *model.Issue) error
	issues   map[string]*model.Issue
}

func newMockIssueStore() *mockIssueStore {
	return &mockIssueStore{issues: make(map[string]*model.Issue)}
}

func (m *mockIssueStore) GetByRepoAndNumber(ctx context.Context, repo string, number int) (*model.Issue, error) {
	if m.getFn != nil {
		return m.getFn(ctx, repo, number)
	}
	issue, ok := m.issues[model.IssueKey(repo, number)]
	if !ok {
		return nil, store.ErrNotFound
	}
	copied := *issue
	return &copied, nil
}

func (m *mockIssueStore) Create(ctx context.Context, issue *model.Issue) error {
	if m.createFn != nil {
		return m.createFn(ctx, issue)
	}
	copied := *issue
	m.issues[issue.Key()] = &copied
	return nil
}

func (m *mockIssueStore) Update(ctx context.Context, issue *model.Issue) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, issue)
	}
	existing, ok := m.issues[issue.Key()]
	if !ok {
		return store.ErrNotFound
	}
	existing.Kind = issue.Kind
	existing.State = issue.State
	existing.Title = issue.Title
	existing.Labels = append([]string(nil), issue.Labels...)
	existing.CommentCount = issue.CommentCount
	return nil
}

func (m *mockIssueStore) List(ctx context.Context, filter store.IssueFilter) ([]model.Issue, error) {
	return nil, nil
}

type mockLabelTimelineStore struct {
	saveFn  func(ctx context.Context, entry *model.LabelTimeline) error
	entries map[string]*model.LabelTimeline
}

func newMockLabelTimelineStore() *mockLabelTimelineStore {
	return &mockLabelTimelineStore{entries: make(map[string]*model.LabelTimeline)}
}

func timelineKey(label, issueKey string) string {
	return label + "|" + issueKey
}

func (m *mockLabelTimelineStore) GetByLabelAndIssue(ctx context.Context, label, issueKey string) (*model.LabelTimeline, error) {
	entry, ok := m.entries[timelineKey(label, issueKey)]
	if !ok {
		return nil, store.ErrNotFound
	}
	copied := *entry
	return &copied, nil
}

func (m *mockLabelTimelineStore) Save(ctx context.Context, entry *model.LabelTimeline) error {
	if m.saveFn != nil {
		return m.saveFn(ctx, entry)
	}
	copied := *entry
	m.entries[timelineKey(entry.Label, entry.IssueKey)] = &copied
	return nil
}

func (m *mockLabelTimelineStore) List(ctx context.Context, filter store.LabelTimelineFilter) ([]model.LabelTimeline, error) {
	return nil, nil
}

type mockActorStore struct {
	existsFn func(ctx context.Context, login string) (bool, error)
	createFn func(ctx context.Context, actor *model.Actor) error
	actors   map[string]*model.Actor
}

func newMockActorStore() *mockActorStore {
	return &mockActorStore{actors: make(map[string]*model.Actor)}
}

func (m *mockActorStore) GetByLogin(ctx context.Context, login string) (*model.Actor, error) {
	actor, ok := m.actors[login]
	if !ok {
		return nil, store.ErrNotFound
	}
	copied := *actor
	return &copied, nil
}

func (m *mockActorStore) Exists(ctx context.Context, login string) (bool, error) {
	if m.existsFn != nil {
		return m.existsFn(ctx, login)
	}
	_, ok := m.actors[login]
	return ok, nil
}

func (m *mockActorStore) Create(ctx context.Context, actor *model.Actor) error {
	if m.createFn != nil {
		return m.createFn(ctx, actor)
	}
	if _, ok := m.actors[actor.Login]; ok {
		return nil
	}
	copied := *actor
	m.actors[actor.Login] = &copied
	return nil
}

type mockFeeds struct {
	userEventsFn    func(ctx context.Context, login string) ([]github.RawEvent, error)
	repoEventsFn    func(ctx context.Context, fullName string) ([]github.RawEvent, error)
	issueSubsFn     func(ctx context.Context, fullName string, number int) ([]github.IssueSubEvent, error)
	profileFn       func(ctx context.Context, login string) (*github.Profile, error)
	organizationsFn func(ctx context.Context, login string) ([]string, error)
}

func (m *mockFeeds) UserEvents(ctx context.Context, login string) ([]github.RawEvent, error) {
	if m.userEventsFn != nil {
		return m.userEventsFn(ctx, login)
	}
	return nil, nil
}

func (m *mockFeeds) RepoEvents(ctx context.Context, fullName string) ([]github.RawEvent, error) {
	if m.repoEventsFn != nil {
		return m.repoEventsFn(ctx, fullName)
	}
	return nil, nil
}

func (m *mockFeeds) IssueSubEvents(ctx context.Context, fullName string, number int) ([]github.IssueSubEvent, error) {
	if m.issueSubsFn != nil {
		return m.issueSubsFn(ctx, fullName, number)
	}
	return nil, nil
}

func (m *mockFeeds) Profile(ctx context.Context, login string) (*github.Profile, error) {
	if m.profileFn != nil {
		return m.profileFn(ctx, login)
	}
	return &github.Profile{Login: login}, nil
}

func (m *mockFeeds) Organizations(ctx context.Context, login string) ([]string, error) {
	if m.organizationsFn != nil {
		return m.organizationsFn(ctx, login)
	}
	return nil, nil
}
