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
	"github.com/yigit/lecturehub/internal/pkg/logger"
)

var courseColumns = []string{"id", "name", "level", "description", "image", "created_by", "created_at", "updated_at"}

// CourseRepository handles course database operations
type CourseRepository struct {
	db *db.PostgresDB
	sb squirrel.StatementBuilderType
}

// NewCourseRepository creates a new CourseRepository
func NewCourseRepository(database *db.PostgresDB) *CourseRepository {
	return &CourseRepository{
		db: database,
		sb: statementBuilder,
	}
}

func scanCourse(row pgx.Row) (*models.Course, error) {
	course := &models.Course{}
	err := row.Scan(&course.ID, &course.Name, &course.Level, &course.Description, &course.Image,
		&course.CreatedByID, &course.CreatedAt, &course.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return course, nil
}

// Create inserts a course
func (r *CourseRepository) Create(ctx context.Context, course *models.Course) error {
	sql, args, err := r.sb.Insert("courses").
		Columns("name", "level", "description", "image", "created_by").
		Values(course.Name, course.Level, course.Description, course.Image, course.CreatedByID).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create course query: %w", err)
	}

	err = r.db.Querier(ctx).QueryRow(ctx, sql, args...).Scan(&course.ID, &course.CreatedAt, &course.UpdatedAt)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing create course query")
		return fmt.Errorf("error creating course: %w", err)
	}
	return nil
}

// GetByID retrieves a course by ID
func (r *CourseRepository) GetByID(ctx context.Context, id int64) (*models.Course, error) {
	sql, args, err := r.sb.Select(courseColumns...).
		From("courses").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get course query: %w", err)
	}

	course, err := scanCourse(r.db.Querier(ctx).QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repositories.ErrNotFound
		}
		logger.Error().Err(err).Int64("courseID", id).Msg("Error scanning course row")
		return nil, fmt.Errorf("error getting course by ID: %w", err)
	}
	return course, nil
}

// GetByIDs retrieves the courses with the given ids, keyed by id
func (r *CourseRepository) GetByIDs(ctx context.Context, ids []int64) (map[int64]*models.Course, error) {
	result := make(map[int64]*models.Course, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	sql, args, err := r.sb.Select(courseColumns...).From("courses").Where(squirrel.Eq{"id": ids}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get courses query: %w", err)
	}

	courses, err := r.queryCourses(ctx, sql, args)
	if err != nil {
		return nil, err
	}
	for _, course := range courses {
		result[course.ID] = course
	}
	return result, nil
}

// List retrieves all courses, newest first
func (r *CourseRepository) List(ctx context.Context) ([]*models.Course, error) {
	sql, args, err := r.sb.Select(courseColumns...).
		From("courses").
		OrderBy("created_at DESC", "id DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list courses query: %w", err)
	}
	return r.queryCourses(ctx, sql, args)
}

// Update writes all mutable course fields
func (r *CourseRepository) Update(ctx context.Context, course *models.Course) error {
	sql, args, err := r.sb.Update("courses").
		SetMap(map[string]interface{}{
			"name":        course.Name,
			"level":       course.Level,
			"description": course.Description,
			"image":       course.Image,
			"updated_at":  squirrel.Expr("NOW()"),
		}).
		Where(squirrel.Eq{"id": course.ID}).
		Suffix("RETURNING updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update course query: %w", err)
	}

	err = r.db.Querier(ctx).QueryRow(ctx, sql, args...).Scan(&course.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return repositories.ErrNotFound
		}
		logger.Error().Err(err).Int64("courseID", course.ID).Msg("Error executing update course query")
		return fmt.Errorf("error updating course: %w", err)
	}
	return nil
}

// Delete deletes a course by ID. Lectures still referencing it go with it through
// the foreign key's ON DELETE CASCADE.
func (r *CourseRepository) Delete(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("courses").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete course query: %w", err)
	}

	cmdTag, err := r.db.Querier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("courseID", id).Msg("Error executing delete course query")
		return fmt.Errorf("error deleting course: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return repositories.ErrNotFound
	}
	return nil
}

func (r *CourseRepository) queryCourses(ctx context.Context, sql string, args []interface{}) ([]*models.Course, error) {
	rows, err := r.db.Querier(ctx).Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing courses query")
		return nil, fmt.Errorf("error querying courses: %w", err)
	}
	defer rows.Close()

	courses := []*models.Course{}
	for rows.Next() {
		course, err := scanCourse(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning course row: %w", err)
		}
		courses = append(courses, course)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating course rows: %w", err)
	}
	return courses, nil
}
