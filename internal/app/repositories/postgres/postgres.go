// Package postgres implements the entity store on PostgreSQL with pgx and squirrel.
package postgres

import (
	"github.com/Masterminds/squirrel"
	"github.com/yigit/lecturehub/internal/app/repositories"
	"github.com/yigit/lecturehub/internal/db"
)

// Constraint names created by migrations/001_init.sql
const (
	constraintUserEmail         = "users_email_key"
	constraintInstructorDay     = "lectures_instructor_day_key"
	constraintLectureCourse     = "lectures_course_id_fkey"
	constraintLectureInstructor = "lectures_instructor_id_fkey"
)

// statementBuilder uses Postgres-style placeholders
var statementBuilder = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// NewRepositories initializes all PostgreSQL repositories
func NewRepositories(database *db.PostgresDB) *repositories.Repositories {
	return &repositories.Repositories{
		Users:    NewUserRepository(database),
		Courses:  NewCourseRepository(database),
		Lectures: NewLectureRepository(database),
		Tx:       database,
	}
}
