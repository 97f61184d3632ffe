package mocks

import (
	"context"
	"sync"
	"time"

	"github.com/architeacher/users/services/svc-users/internal/domain/model"
	"github.com/architeacher/users/services/svc-users/internal/ports"
)

// FakeUsersCache is an in-memory UsersCache keyed by the criteria rendering.
type FakeUsersCache struct {
	mu sync.Mutex

	entries map[string][]*model.User

	GetErr        error
	InvalidateErr error

	getCalls        int
	setCalls        int
	invalidateCalls int
}

var _ ports.UsersCache = (*FakeUsersCache)(nil)

func NewFakeUsersCache() *FakeUsersCache {
	return &FakeUsersCache{entries: make(map[string][]*model.User)}
}

func (f *FakeUsersCache) GetUsers(_ context.Context, criteria model.QueryCriteria) ([]*model.User, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.getCalls++

	if f.GetErr != nil {
		return nil, false, f.GetErr
	}

	users, ok := f.entries[criteria.String()]

	return users, ok, nil
}

func (f *FakeUsersCache) SetUsers(_ context.Context, criteria model.QueryCriteria, users []*model.User, _ time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.setCalls++
	f.entries[criteria.String()] = users

	return nil
}

func (f *FakeUsersCache) InvalidateAll(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.invalidateCalls++

	if f.InvalidateErr != nil {
		return f.InvalidateErr
	}

	clear(f.entries)

	return nil
}

func (f *FakeUsersCache) Ping(context.Context) error { return nil }

func (f *FakeUsersCache) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return len(f.entries)
}

func (f *FakeUsersCache) GetCallCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.getCalls
}

func (f *FakeUsersCache) SetCallCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.setCalls
}

func (f *FakeUsersCache) InvalidateCallCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.invalidateCalls
}
