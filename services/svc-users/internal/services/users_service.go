package services

import (
	"context"

	"github.com/architeacher/users/pkg/circuitbreaker"
	"github.com/architeacher/users/pkg/logger"
	"github.com/architeacher/users/services/svc-users/internal/domain/model"
	"github.com/architeacher/users/services/svc-users/internal/ports"
)

type (
	UsersService struct {
		repo    ports.UsersRepository
		breaker *circuitbreaker.CircuitBreaker[[]*model.User]
		logger  logger.Logger
	}

	Option func(*UsersService)
)

// WithCircuitBreaker guards repository searches with cb. A nil breaker calls
// straight through.
func WithCircuitBreaker(cb *circuitbreaker.CircuitBreaker[[]*model.User]) Option {
	return func(s *UsersService) {
		s.breaker = cb
	}
}

func NewUsersService(repo ports.UsersRepository, log logger.Logger, opts ...Option) *UsersService {
	svc := &UsersService{
		repo:   repo,
		logger: log,
	}

	for _, opt := range opts {
		opt(svc)
	}

	return svc
}

func (s *UsersService) FindUsers(ctx context.Context, spec model.FilterSpec) ([]*model.User, error) {
	criteria := model.Compile(spec)

	s.logger.Debug().
		Str("criteria", criteria.String()).
		Msg("finding users")

	return circuitbreaker.Execute(s.breaker, func() ([]*model.User, error) {
		return s.repo.Find(ctx, criteria, model.RelationGroup)
	})
}

func (s *UsersService) GetUser(ctx context.Context, id model.UserID) (*model.User, error) {
	return s.repo.FetchByID(ctx, id)
}

func (s *UsersService) CreateUser(ctx context.Context, email string, groupID *model.GroupID) (*model.User, error) {
	group, err := s.resolveGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}

	user := model.NewUser(email, group)

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

func (s *UsersService) UpdateUser(ctx context.Context, id model.UserID, email string, groupID *model.GroupID) (*model.User, error) {
	user, err := s.repo.FetchByID(ctx, id)
	if err != nil {
		return nil, err
	}

	group, err := s.resolveGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}

	user.Update(email, group)

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

func (s *UsersService) DeleteUser(ctx context.Context, id model.UserID) error {
	return s.repo.Delete(ctx, id)
}

func (s *UsersService) CreateGroup(ctx context.Context, name string) (*model.Group, error) {
	group := model.NewGroup(name)

	if err := s.repo.CreateGroup(ctx, group); err != nil {
		return nil, err
	}

	return group, nil
}

func (s *UsersService) resolveGroup(ctx context.Context, groupID *model.GroupID) (*model.Group, error) {
	if groupID == nil {
		return nil, nil
	}

	return s.repo.FetchGroupByID(ctx, *groupID)
}
