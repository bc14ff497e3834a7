package service

import (
	"context"
	"sync"
	"time"

	"github.com/gestaoplus/admin-gateway/internal/entity"
)

// fakeBackend implements the methods a test cares about through function
// fields; anything else panics via the embedded nil interface, which is
// exactly what a test asserting "no backend round-trip" wants.
type fakeBackend struct {
	Backend

	loginFn          func(ctx context.Context, email, password string) (string, entity.User, error)
	activityFn       func(ctx context.Context, id int64) (entity.Activity, error)
	createActivityFn func(ctx context.Context, a entity.Activity) (entity.Activity, error)
	updateActivityFn func(ctx context.Context, a entity.Activity) (entity.Activity, error)
	deleteActivityFn func(ctx context.Context, id int64) error
	completeFn       func(ctx context.Context, projectID int64) (entity.Project, []entity.Activity, error)
	createProjectFn  func(ctx context.Context, p entity.Project) (entity.Project, error)

	createProjectCalls int
}

func (f *fakeBackend) Login(ctx context.Context, email, password string) (string, entity.User, error) {
	return f.loginFn(ctx, email, password)
}

func (f *fakeBackend) Activity(ctx context.Context, id int64) (entity.Activity, error) {
	return f.activityFn(ctx, id)
}

func (f *fakeBackend) CreateActivity(ctx context.Context, a entity.Activity) (entity.Activity, error) {
	return f.createActivityFn(ctx, a)
}

func (f *fakeBackend) UpdateActivity(ctx context.Context, a entity.Activity) (entity.Activity, error) {
	return f.updateActivityFn(ctx, a)
}

func (f *fakeBackend) DeleteActivity(ctx context.Context, id int64) error {
	return f.deleteActivityFn(ctx, id)
}

func (f *fakeBackend) CompleteProject(ctx context.Context, projectID int64) (entity.Project, []entity.Activity, error) {
	return f.completeFn(ctx, projectID)
}

func (f *fakeBackend) CreateProject(ctx context.Context, p entity.Project) (entity.Project, error) {
	f.createProjectCalls++
	return f.createProjectFn(ctx, p)
}

// fakeSessionStore is an in-memory SessionRepository.
type fakeSessionStore struct {
	mu       sync.Mutex
	sessions map[string]entity.Session
}

func newFakeSessionStore() *fakeSessionStore {
	return &fakeSessionStore{sessions: map[string]entity.Session{}}
}

func (f *fakeSessionStore) SaveSession(_ context.Context, s entity.Session) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.sessions[s.Token] = s

	return nil
}

func (f *fakeSessionStore) SessionByToken(_ context.Context, token string) (entity.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	s, ok := f.sessions[token]
	if !ok {
		return entity.Session{}, entity.ErrNotFound
	}

	return s, nil
}

func (f *fakeSessionStore) DeleteSession(_ context.Context, token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	delete(f.sessions, token)

	return nil
}

func (f *fakeSessionStore) DeleteByUserID(_ context.Context, userID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for token, s := range f.sessions {
		if s.User.ID == userID {
			delete(f.sessions, token)
		}
	}

	return nil
}

func (f *fakeSessionStore) CleanExpired(_ context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	now := time.Now()
	for token, s := range f.sessions {
		if s.Expired(now) {
			delete(f.sessions, token)
		}
	}

	return nil
}
