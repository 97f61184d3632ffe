package mocks

import (
	"context"
	"sync"

	"github.com/architeacher/users/services/svc-users/internal/domain/model"
	"github.com/architeacher/users/services/svc-users/internal/ports"
)

// FakeUsersService records calls and delegates to the configured stubs.
// Unstubbed methods return zero values.
type FakeUsersService struct {
	mu sync.Mutex

	FindUsersStub   func(context.Context, model.FilterSpec) ([]*model.User, error)
	GetUserStub     func(context.Context, model.UserID) (*model.User, error)
	CreateUserStub  func(context.Context, string, *model.GroupID) (*model.User, error)
	UpdateUserStub  func(context.Context, model.UserID, string, *model.GroupID) (*model.User, error)
	DeleteUserStub  func(context.Context, model.UserID) error
	CreateGroupStub func(context.Context, string) (*model.Group, error)

	findUsersArgs   []model.FilterSpec
	createUserCalls int
	updateUserCalls int
	deleteUserCalls int
	createGroupArgs []string
}

var _ ports.UsersService = (*FakeUsersService)(nil)

func (f *FakeUsersService) FindUsers(ctx context.Context, spec model.FilterSpec) ([]*model.User, error) {
	f.mu.Lock()
	f.findUsersArgs = append(f.findUsersArgs, spec)
	stub := f.FindUsersStub
	f.mu.Unlock()

	if stub != nil {
		return stub(ctx, spec)
	}

	return nil, nil
}

func (f *FakeUsersService) FindUsersCallCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return len(f.findUsersArgs)
}

func (f *FakeUsersService) FindUsersArgsForCall(i int) model.FilterSpec {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.findUsersArgs[i]
}

func (f *FakeUsersService) GetUser(ctx context.Context, id model.UserID) (*model.User, error) {
	if f.GetUserStub != nil {
		return f.GetUserStub(ctx, id)
	}

	return nil, nil
}

func (f *FakeUsersService) CreateUser(ctx context.Context, email string, groupID *model.GroupID) (*model.User, error) {
	f.mu.Lock()
	f.createUserCalls++
	f.mu.Unlock()

	if f.CreateUserStub != nil {
		return f.CreateUserStub(ctx, email, groupID)
	}

	return nil, nil
}

func (f *FakeUsersService) CreateUserCallCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.createUserCalls
}

func (f *FakeUsersService) UpdateUser(ctx context.Context, id model.UserID, email string, groupID *model.GroupID) (*model.User, error) {
	f.mu.Lock()
	f.updateUserCalls++
	f.mu.Unlock()

	if f.UpdateUserStub != nil {
		return f.UpdateUserStub(ctx, id, email, groupID)
	}

	return nil, nil
}

func (f *FakeUsersService) UpdateUserCallCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.updateUserCalls
}

func (f *FakeUsersService) DeleteUser(ctx context.Context, id model.UserID) error {
	f.mu.Lock()
	f.deleteUserCalls++
	f.mu.Unlock()

	if f.DeleteUserStub != nil {
		return f.DeleteUserStub(ctx, id)
	}

	return nil
}

func (f *FakeUsersService) DeleteUserCallCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.deleteUserCalls
}

func (f *FakeUsersService) CreateGroup(ctx context.Context, name string) (*model.Group, error) {
	f.mu.Lock()
	f.createGroupArgs = append(f.createGroupArgs, name)
	f.mu.Unlock()

	if f.CreateGroupStub != nil {
		return f.CreateGroupStub(ctx, name)
	}

	return nil, nil
}

func (f *FakeUsersService) CreateGroupArgsForCall(i int) string {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.createGroupArgs[i]
}
