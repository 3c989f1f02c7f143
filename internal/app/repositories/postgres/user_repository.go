package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/yigit/lecturehub/internal/app/models"
	"github.com/yigit/lecturehub/internal/app/repositories"
	"github.com/yigit/lecturehub/internal/db"
	"github.com/yigit/lecturehub/internal/pkg/dberrors"
	"github.com/yigit/lecturehub/internal/pkg/logger"
)

var userColumns = []string{"id", "name", "email", "password", "role", "created_at"}

// UserRepository handles user database operations
type UserRepository struct {
	db *db.PostgresDB
	sb squirrel.StatementBuilderType
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(database *db.PostgresDB) *UserRepository {
	return &UserRepository{
		db: database,
		sb: statementBuilder,
	}
}

func scanUser(row pgx.Row) (*models.User, error) {
	user := &models.User{}
	var role string
	if err := row.Scan(&user.ID, &user.Name, &user.Email, &user.Password, &role, &user.CreatedAt); err != nil {
		return nil, err
	}
	parsed, err := models.ParseRole(role)
	if err != nil {
		return nil, err
	}
	user.Role = parsed
	return user, nil
}

// Create inserts a user and fills its id and creation time
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	sql, args, err := r.sb.Insert("users").
		Columns("name", "email", "password", "role").
		Values(user.Name, user.Email, user.Password, string(user.Role)).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create user query: %w", err)
	}

	err = r.db.Querier(ctx).QueryRow(ctx, sql, args...).Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, constraintUserEmail) {
			return repositories.ErrEmailTaken
		}
		logger.Error().Err(err).Str("email", user.Email).Msg("Error executing create user query")
		return fmt.Errorf("error creating user: %w", err)
	}
	return nil
}

// selectOneUser builds a single-row user lookup; suffix carries row locking clauses
func (r *UserRepository) selectOneUser(where squirrel.Sqlizer, suffix string) (string, []interface{}, error) {
	query := r.sb.Select(userColumns...).From("users").Where(where).Limit(1)
	if suffix != "" {
		query = query.Suffix(suffix)
	}
	return query.ToSql()
}

func (r *UserRepository) getOne(ctx context.Context, where squirrel.Sqlizer, suffix string) (*models.User, error) {
	sql, args, err := r.selectOneUser(where, suffix)
	if err != nil {
		return nil, fmt.Errorf("failed to build get user query: %w", err)
	}

	user, err := scanUser(r.db.Querier(ctx).QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repositories.ErrNotFound
		}
		return nil, fmt.Errorf("error getting user: %w", err)
	}
	return user, nil
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	return r.getOne(ctx, squirrel.Eq{"id": id}, "")
}

// GetByIDForUpdate retrieves a user by ID and row-locks it for the surrounding transaction
func (r *UserRepository) GetByIDForUpdate(ctx context.Context, id int64) (*models.User, error) {
	return r.getOne(ctx, squirrel.Eq{"id": id}, "FOR UPDATE")
}

// GetByEmail retrieves a user by email
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.getOne(ctx, squirrel.Eq{"email": email}, "")
}

// GetByIDs retrieves the users with the given ids, keyed by id
func (r *UserRepository) GetByIDs(ctx context.Context, ids []int64) (map[int64]*models.User, error) {
	result := make(map[int64]*models.User, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	sql, args, err := r.sb.Select(userColumns...).From("users").Where(squirrel.Eq{"id": ids}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get users query: %w", err)
	}

	users, err := r.queryUsers(ctx, sql, args)
	if err != nil {
		return nil, err
	}
	for _, user := range users {
		result[user.ID] = user
	}
	return result, nil
}

// ListByRole lists users holding a role, ordered by name
func (r *UserRepository) ListByRole(ctx context.Context, role models.Role) ([]*models.User, error) {
	sql, args, err := r.sb.Select(userColumns...).
		From("users").
		Where(squirrel.Eq{"role": string(role)}).
		OrderBy("name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list users query: %w", err)
	}
	return r.queryUsers(ctx, sql, args)
}

// EmailExists checks if an email already exists
func (r *UserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	sql, args, err := r.sb.Select("1").
		From("users").
		Where(squirrel.Eq{"email": email}).
		Prefix("SELECT EXISTS (").Suffix(")").
		ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build email exists query: %w", err)
	}

	var exists bool
	if err := r.db.Querier(ctx).QueryRow(ctx, sql, args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("error checking email: %w", err)
	}
	return exists, nil
}

func (r *UserRepository) queryUsers(ctx context.Context, sql string, args []interface{}) ([]*models.User, error) {
	rows, err := r.db.Querier(ctx).Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing users query")
		return nil, fmt.Errorf("error querying users: %w", err)
	}
	defer rows.Close()

	users := []*models.User{}
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning user row: %w", err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating user rows: %w", err)
	}
	return users, nil
}
