package ports

import (
	"context"

	"github.com/architeacher/users/services/svc-users/internal/domain/model"
)

type (
	Finder interface {
		// Find returns the users matching criteria, loading the requested relations.
		// Empty criteria match every user.
		Find(ctx context.Context, criteria model.QueryCriteria, relations ...model.Relation) ([]*model.User, error)
	}

	Fetcher interface {
		// FetchByID retrieves a user with its group, or model.ErrUserNotFound.
		FetchByID(ctx context.Context, id model.UserID) (*model.User, error)
	}

	Saver interface {
		Create(ctx context.Context, user *model.User) error
		Update(ctx context.Context, user *model.User) error
	}

	Deleter interface {
		Delete(ctx context.Context, id model.UserID) error
	}

	GroupsRepository interface {
		CreateGroup(ctx context.Context, group *model.Group) error
		FetchGroupByID(ctx context.Context, id model.GroupID) (*model.Group, error)
	}

	// UsersRepository defines the persistence operations on users and their groups.
	UsersRepository interface {
		Finder
		Fetcher
		Saver
		Deleter
		GroupsRepository
	}
)
