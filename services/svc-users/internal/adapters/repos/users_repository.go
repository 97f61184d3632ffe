package repos

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/architeacher/users/pkg/logger"
	"github.com/architeacher/users/services/svc-users/internal/domain/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	usersTable  = "users"
	groupsTable = "user_groups"

	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

type (
	// PoolOps defines the database operations the repository depends on.
	PoolOps interface {
		QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
		Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
		Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
		Ping(ctx context.Context) error
	}

	// UsersRepository handles user and group persistence.
	UsersRepository struct {
		pool       PoolOps
		scanner    Scanner
		logger     logger.Logger
		translator *CriteriaTranslator
	}

	userRow struct {
		ID        string    `db:"id"`
		Email     string    `db:"email"`
		GroupID   *string   `db:"group_id"`
		GroupName *string   `db:"group_name"`
		CreatedAt time.Time `db:"created_at"`
		UpdatedAt time.Time `db:"updated_at"`
	}

	groupRow struct {
		ID   string `db:"id"`
		Name string `db:"name"`
	}
)

func NewUsersRepository(
	pool PoolOps,
	scanner Scanner,
	translator *CriteriaTranslator,
	log logger.Logger,
) *UsersRepository {
	return &UsersRepository{
		pool:       pool,
		scanner:    scanner,
		translator: translator,
		logger:     log,
	}
}

func (r *UsersRepository) Find(ctx context.Context, criteria model.QueryCriteria, relations ...model.Relation) ([]*model.User, error) {
	loadGroup := slices.Contains(relations, model.RelationGroup)
	joinGroup := loadGroup || r.translator.RequiresRelation(criteria, model.RelationGroup)

	builder, err := r.translator.ApplyConditionsOnly(r.selectUsers(joinGroup, loadGroup), criteria)
	if err != nil {
		return nil, err
	}

	return r.queryUsers(ctx, builder.OrderBy("u.created_at DESC", "u.id"), loadGroup)
}

func (r *UsersRepository) FetchByID(ctx context.Context, id model.UserID) (*model.User, error) {
	query, args, err := r.selectUsers(true, true).
		Where(sq.Eq{"u.id": id.String()}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select query: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrDatabaseQuery, err)
	}
	defer rows.Close()

	var row userRow
	if err := r.scanner.ScanOne(&row, rows); err != nil {
		if r.scanner.IsNotFound(err) {
			return nil, model.ErrUserNotFound
		}

		return nil, fmt.Errorf("user with ID %s: %w", id.String(), err)
	}

	return r.convertRowToUser(row, true)
}

func (r *UsersRepository) Create(ctx context.Context, user *model.User) error {
	query, args, err := psql.Insert(usersTable).
		Columns("id", "email", "group_id", "created_at", "updated_at").
		Values(
			user.ID.String(),
			user.Email,
			groupIDValue(user),
			user.CreatedAt,
			user.UpdatedAt,
		).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build insert query: %w", err)
	}

	if _, err := r.pool.Exec(ctx, query, args...); err != nil {
		return mapWriteError(err, model.ErrDuplicateUser)
	}

	return nil
}

func (r *UsersRepository) Update(ctx context.Context, user *model.User) error {
	query, args, err := psql.Update(usersTable).
		Set("email", user.Email).
		Set("group_id", groupIDValue(user)).
		Set("updated_at", user.UpdatedAt).
		Where(sq.Eq{"id": user.ID.String()}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update query: %w", err)
	}

	result, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return mapWriteError(err, model.ErrDuplicateUser)
	}

	if result.RowsAffected() == 0 {
		return model.ErrUserNotFound
	}

	return nil
}

func (r *UsersRepository) Delete(ctx context.Context, id model.UserID) error {
	query, args, err := psql.Delete(usersTable).
		Where(sq.Eq{"id": id.String()}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete query: %w", err)
	}

	result, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %v", model.ErrDatabaseQuery, err)
	}

	if result.RowsAffected() == 0 {
		return model.ErrUserNotFound
	}

	return nil
}

func (r *UsersRepository) CreateGroup(ctx context.Context, group *model.Group) error {
	query, args, err := psql.Insert(groupsTable).
		Columns("id", "name").
		Values(group.ID.String(), group.Name).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build insert query: %w", err)
	}

	if _, err := r.pool.Exec(ctx, query, args...); err != nil {
		return mapWriteError(err, model.ErrDuplicateGroup)
	}

	return nil
}

func (r *UsersRepository) FetchGroupByID(ctx context.Context, id model.GroupID) (*model.Group, error) {
	query, args, err := psql.Select("id", "name").
		From(groupsTable).
		Where(sq.Eq{"id": id.String()}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select query: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrDatabaseQuery, err)
	}
	defer rows.Close()

	var row groupRow
	if err := r.scanner.ScanOne(&row, rows); err != nil {
		if r.scanner.IsNotFound(err) {
			return nil, model.ErrGroupNotFound
		}

		return nil, fmt.Errorf("group with ID %s: %w", id.String(), err)
	}

	groupID, err := model.ParseGroupID(row.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to parse group ID: %w", err)
	}

	return &model.Group{ID: groupID, Name: row.Name}, nil
}

func (r *UsersRepository) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}

func (r *UsersRepository) selectUsers(joinGroup, loadGroup bool) sq.SelectBuilder {
	columns := []string{"u.id", "u.email", "u.group_id", "u.created_at", "u.updated_at"}
	if loadGroup {
		columns = append(columns, "g.name AS group_name")
	}

	builder := psql.Select(columns...).From(usersTable + " u")
	if joinGroup {
		builder = builder.LeftJoin(groupsTable + " g ON g.id = u.group_id")
	}

	return builder
}

func (r *UsersRepository) queryUsers(ctx context.Context, builder sq.SelectBuilder, loadGroup bool) ([]*model.User, error) {
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select query: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrDatabaseQuery, err)
	}
	defer rows.Close()

	var userRows []userRow
	if err := r.scanner.ScanAll(&userRows, rows); err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrDatabaseQuery, err)
	}

	users := make([]*model.User, 0, len(userRows))
	for index := range userRows {
		user, err := r.convertRowToUser(userRows[index], loadGroup)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", model.ErrDatabaseQuery, err)
		}
		users = append(users, user)
	}

	return users, nil
}

func (r *UsersRepository) convertRowToUser(row userRow, loadGroup bool) (*model.User, error) {
	id, err := model.ParseUserID(row.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to parse user ID: %w", err)
	}

	user := &model.User{
		ID:        id,
		Email:     row.Email,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}

	if loadGroup && row.GroupID != nil {
		groupID, err := model.ParseGroupID(*row.GroupID)
		if err != nil {
			return nil, fmt.Errorf("failed to parse group ID: %w", err)
		}

		user.Group = &model.Group{ID: groupID}
		if row.GroupName != nil {
			user.Group.Name = *row.GroupName
		}
	}

	return user, nil
}

func groupIDValue(user *model.User) any {
	if id, ok := user.GroupID(); ok {
		return id.String()
	}

	return nil
}

func mapWriteError(err error, duplicate error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return duplicate
		case pgForeignKeyViolation:
			return model.ErrGroupNotFound
		}
	}

	return fmt.Errorf("%w: %v", model.ErrDatabaseQuery, err)
}
