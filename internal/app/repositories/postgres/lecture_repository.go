package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/yigit/lecturehub/internal/app/models"
	"github.com/yigit/lecturehub/internal/app/repositories"
	"github.com/yigit/lecturehub/internal/db"
	"github.com/yigit/lecturehub/internal/pkg/dberrors"
	"github.com/yigit/lecturehub/internal/pkg/helpers"
	"github.com/yigit/lecturehub/internal/pkg/logger"
)

var lectureColumns = []string{
	"id", "title", "batch_number", "course_id", "instructor_id",
	"lecture_date", "start_time", "end_time", "created_at",
}

// LectureRepository handles lecture database operations
type LectureRepository struct {
	db *db.PostgresDB
	sb squirrel.StatementBuilderType
}

// NewLectureRepository creates a new LectureRepository
func NewLectureRepository(database *db.PostgresDB) *LectureRepository {
	return &LectureRepository{
		db: database,
		sb: statementBuilder,
	}
}

func scanLecture(row pgx.Row) (*models.Lecture, error) {
	lecture := &models.Lecture{}
	var date time.Time
	err := row.Scan(&lecture.ID, &lecture.Title, &lecture.BatchNumber, &lecture.CourseID,
		&lecture.InstructorID, &date, &lecture.StartTime, &lecture.EndTime, &lecture.CreatedAt)
	if err != nil {
		return nil, err
	}
	lecture.Date = models.NewCalendarDate(date)
	return lecture, nil
}

// mapWriteError translates constraint violations into store errors
func mapWriteError(err error) error {
	switch {
	case dberrors.IsDuplicateConstraintError(err, constraintInstructorDay):
		return repositories.ErrInstructorDayTaken
	case dberrors.IsForeignKeyError(err, constraintLectureCourse),
		dberrors.IsForeignKeyError(err, constraintLectureInstructor):
		return repositories.ErrDanglingReference
	default:
		return nil
	}
}

// Create inserts a lecture
func (r *LectureRepository) Create(ctx context.Context, lecture *models.Lecture) error {
	sql, args, err := r.sb.Insert("lectures").
		Columns("title", "batch_number", "course_id", "instructor_id", "lecture_date", "start_time", "end_time").
		Values(lecture.Title, lecture.BatchNumber, lecture.CourseID, lecture.InstructorID,
			lecture.Date.String(), lecture.StartTime, lecture.EndTime).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create lecture query: %w", err)
	}

	err = r.db.Querier(ctx).QueryRow(ctx, sql, args...).Scan(&lecture.ID, &lecture.CreatedAt)
	if err != nil {
		if mapped := mapWriteError(err); mapped != nil {
			return mapped
		}
		logger.Error().Err(err).Msg("Error executing create lecture query")
		return fmt.Errorf("error creating lecture: %w", err)
	}
	return nil
}

// GetByID retrieves a lecture by ID
func (r *LectureRepository) GetByID(ctx context.Context, id int64) (*models.Lecture, error) {
	sql, args, err := r.sb.Select(lectureColumns...).
		From("lectures").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get lecture query: %w", err)
	}

	lecture, err := scanLecture(r.db.Querier(ctx).QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repositories.ErrNotFound
		}
		logger.Error().Err(err).Int64("lectureID", id).Msg("Error scanning lecture row")
		return nil, fmt.Errorf("error getting lecture by ID: %w", err)
	}
	return lecture, nil
}

// List retrieves lectures matching the filter ordered by date and start time
func (r *LectureRepository) List(ctx context.Context, filter repositories.LectureFilter) ([]*models.Lecture, error) {
	query := r.sb.Select(lectureColumns...).From("lectures")

	if filter.CourseID != 0 {
		query = query.Where(squirrel.Eq{"course_id": filter.CourseID})
	}
	if filter.InstructorID != 0 {
		query = query.Where(squirrel.Eq{"instructor_id": filter.InstructorID})
	}
	if !filter.From.IsZero() {
		query = query.Where("lecture_date >= ?::date", helpers.CalendarDay(filter.From).Format(helpers.DateLayout))
	}
	if !filter.To.IsZero() {
		query = query.Where("lecture_date <= ?::date", helpers.CalendarDay(filter.To).Format(helpers.DateLayout))
	}
	if filter.ExcludeID != 0 {
		query = query.Where(squirrel.NotEq{"id": filter.ExcludeID})
	}

	sql, args, err := query.OrderBy("lecture_date ASC", "start_time ASC", "id ASC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list lectures query: %w", err)
	}

	rows, err := r.db.Querier(ctx).Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list lectures query")
		return nil, fmt.Errorf("error querying lectures: %w", err)
	}
	defer rows.Close()

	lectures := []*models.Lecture{}
	for rows.Next() {
		lecture, err := scanLecture(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning lecture row: %w", err)
		}
		lectures = append(lectures, lecture)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating lecture rows: %w", err)
	}
	return lectures, nil
}

// Update writes all mutable lecture fields
func (r *LectureRepository) Update(ctx context.Context, lecture *models.Lecture) error {
	sql, args, err := r.sb.Update("lectures").
		SetMap(map[string]interface{}{
			"title":         lecture.Title,
			"batch_number":  lecture.BatchNumber,
			"course_id":     lecture.CourseID,
			"instructor_id": lecture.InstructorID,
			"lecture_date":  lecture.Date.String(),
			"start_time":    lecture.StartTime,
			"end_time":      lecture.EndTime,
		}).
		Where(squirrel.Eq{"id": lecture.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update lecture query: %w", err)
	}

	cmdTag, err := r.db.Querier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		if mapped := mapWriteError(err); mapped != nil {
			return mapped
		}
		logger.Error().Err(err).Int64("lectureID", lecture.ID).Msg("Error executing update lecture query")
		return fmt.Errorf("error updating lecture: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return repositories.ErrNotFound
	}
	return nil
}

// Delete deletes a lecture by ID
func (r *LectureRepository) Delete(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("lectures").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete lecture query: %w", err)
	}

	cmdTag, err := r.db.Querier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("lectureID", id).Msg("Error executing delete lecture query")
		return fmt.Errorf("error deleting lecture: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return repositories.ErrNotFound
	}
	return nil
}

// DeleteByCourse deletes every lecture of a course and returns how many were removed
func (r *LectureRepository) DeleteByCourse(ctx context.Context, courseID int64) (int64, error) {
	sql, args, err := r.sb.Delete("lectures").Where(squirrel.Eq{"course_id": courseID}).ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build delete course lectures query: %w", err)
	}

	cmdTag, err := r.db.Querier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("courseID", courseID).Msg("Error deleting course lectures")
		return 0, fmt.Errorf("error deleting course lectures: %w", err)
	}
	return cmdTag.RowsAffected(), nil
}
