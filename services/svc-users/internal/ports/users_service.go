package ports

import (
	"context"

	"github.com/architeacher/users/services/svc-users/internal/domain/model"
)

// UsersService defines the user business operations.
type UsersService interface {
	// FindUsers compiles the filter and returns matching users with their groups.
	FindUsers(ctx context.Context, spec model.FilterSpec) ([]*model.User, error)

	GetUser(ctx context.Context, id model.UserID) (*model.User, error)

	CreateUser(ctx context.Context, email string, groupID *model.GroupID) (*model.User, error)

	UpdateUser(ctx context.Context, id model.UserID, email string, groupID *model.GroupID) (*model.User, error)

	DeleteUser(ctx context.Context, id model.UserID) error

	CreateGroup(ctx context.Context, name string) (*model.Group, error)
}
