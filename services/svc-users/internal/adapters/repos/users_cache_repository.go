package repos

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/architeacher/users/pkg/logger"
	"github.com/architeacher/users/services/svc-users/internal/domain/model"
	"github.com/architeacher/users/services/svc-users/internal/infrastructure"
	"github.com/cespare/xxhash/v2"
)

const (
	usersCacheVersion = "v1"
	usersFindPrefix   = "users:find:" + usersCacheVersion + ":"

	purgeBatchSize = 100
)

type (
	cachedGroup struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}

	cachedUser struct {
		ID        string       `json:"id"`
		Email     string       `json:"email"`
		Group     *cachedGroup `json:"group,omitempty"`
		CreatedAt time.Time    `json:"created_at"`
		UpdatedAt time.Time    `json:"updated_at"`
	}

	// UsersCacheRepository caches find results in KeyDB/Redis.
	UsersCacheRepository struct {
		client *infrastructure.KeydbClient
		logger logger.Logger
	}
)

func NewUsersCacheRepository(client *infrastructure.KeydbClient, log logger.Logger) *UsersCacheRepository {
	return &UsersCacheRepository{
		client: client,
		logger: log,
	}
}

func (r *UsersCacheRepository) GetUsers(ctx context.Context, criteria model.QueryCriteria) ([]*model.User, bool, error) {
	key, err := criteriaKey(criteria)
	if err != nil {
		return nil, false, err
	}

	data, err := r.client.Get(ctx, key)
	if err != nil {
		if errors.Is(err, infrastructure.ErrCacheMiss) {
			return nil, false, nil
		}

		return nil, false, fmt.Errorf("getting cached users: %w", err)
	}

	var cached []cachedUser
	if err := json.Unmarshal(data, &cached); err != nil {
		return nil, false, fmt.Errorf("unmarshalling cached users: %w", err)
	}

	users := make([]*model.User, 0, len(cached))
	for index := range cached {
		user, err := toDomainUser(cached[index])
		if err != nil {
			return nil, false, fmt.Errorf("converting cached user at index %d: %w", index, err)
		}

		users = append(users, user)
	}

	return users, true, nil
}

func (r *UsersCacheRepository) SetUsers(ctx context.Context, criteria model.QueryCriteria, users []*model.User, ttl time.Duration) error {
	cached := make([]cachedUser, len(users))
	for index, user := range users {
		cached[index] = toCachedUser(user)
	}

	key, err := criteriaKey(criteria)
	if err != nil {
		return err
	}

	data, err := json.Marshal(cached)
	if err != nil {
		return fmt.Errorf("marshalling users: %w", err)
	}

	if err := r.client.Set(ctx, key, data, ttl); err != nil {
		return fmt.Errorf("setting cached users: %w", err)
	}

	return nil
}

// InvalidateAll removes every cached find result.
func (r *UsersCacheRepository) InvalidateAll(ctx context.Context) error {
	var (
		cursor       uint64
		totalDeleted int64
	)

	for {
		keys, nextCursor, err := r.client.Scan(ctx, cursor, usersFindPrefix+"*", purgeBatchSize)
		if err != nil {
			return fmt.Errorf("invalidating cached users: %w", err)
		}

		deleted, err := r.client.Delete(ctx, keys...)
		if err != nil {
			return fmt.Errorf("invalidating cached users: %w", err)
		}

		totalDeleted += deleted

		cursor = nextCursor
		if cursor == 0 {
			break
		}
	}

	r.logger.Debug().Int64("deleted", totalDeleted).Msg("invalidated cached find results")

	return nil
}

func (r *UsersCacheRepository) Ping(ctx context.Context) error {
	return r.client.Ping(ctx)
}

type (
	keyOperand struct {
		Type   string        `json:"t"`
		Value  string        `json:"v,omitempty"`
		Fields []keyNestedOp `json:"f,omitempty"`
	}

	keyNestedOp struct {
		Name    string     `json:"n"`
		Operand keyOperand `json:"o"`
	}

	keyPredicate struct {
		Field    string       `json:"field"`
		Operator string       `json:"op"`
		Operands []keyOperand `json:"operands"`
	}
)

// criteriaKey hashes a JSON encoding of the criteria with fields sorted by
// name. Operands are JSON strings, so distinct criteria never share a key.
func criteriaKey(criteria model.QueryCriteria) (string, error) {
	predicates := make([]keyPredicate, 0, criteria.Len())
	for _, field := range criteria.Fields() {
		predicate, _ := criteria.Get(field)

		operands := make([]keyOperand, 0, 2)
		if low, high, ok := predicate.Bounds(); ok {
			operands = append(operands, toKeyOperand(low), toKeyOperand(high))
		} else {
			operands = append(operands, toKeyOperand(predicate.Value()))
		}

		predicates = append(predicates, keyPredicate{
			Field:    field,
			Operator: string(predicate.Operator()),
			Operands: operands,
		})
	}

	encoded, err := json.Marshal(predicates)
	if err != nil {
		return "", fmt.Errorf("encoding cache key: %w", err)
	}

	return usersFindPrefix + strconv.FormatUint(xxhash.Sum64(encoded), 16), nil
}

func toKeyOperand(value any) keyOperand {
	switch v := value.(type) {
	case model.Fields:
		nested := make([]keyNestedOp, 0, len(v))
		for _, name := range v.Keys() {
			nested = append(nested, keyNestedOp{Name: name, Operand: toKeyOperand(v[name])})
		}

		return keyOperand{Type: "fields", Fields: nested}
	case time.Time:
		return keyOperand{Type: "time", Value: v.UTC().Format(time.RFC3339Nano)}
	case fmt.Stringer:
		return keyOperand{Type: fmt.Sprintf("%T", v), Value: v.String()}
	default:
		return keyOperand{Type: fmt.Sprintf("%T", v), Value: fmt.Sprintf("%v", v)}
	}
}

func toCachedUser(user *model.User) cachedUser {
	cached := cachedUser{
		ID:        user.ID.String(),
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}

	if user.Group != nil {
		cached.Group = &cachedGroup{ID: user.Group.ID.String(), Name: user.Group.Name}
	}

	return cached
}

func toDomainUser(cached cachedUser) (*model.User, error) {
	id, err := model.ParseUserID(cached.ID)
	if err != nil {
		return nil, fmt.Errorf("parsing user ID: %w", err)
	}

	user := &model.User{
		ID:        id,
		Email:     cached.Email,
		CreatedAt: cached.CreatedAt,
		UpdatedAt: cached.UpdatedAt,
	}

	if cached.Group != nil {
		groupID, err := model.ParseGroupID(cached.Group.ID)
		if err != nil {
			return nil, fmt.Errorf("parsing group ID: %w", err)
		}

		user.Group = &model.Group{ID: groupID, Name: cached.Group.Name}
	}

	return user, nil
}
