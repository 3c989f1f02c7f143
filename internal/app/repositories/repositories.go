package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/yigit/lecturehub/internal/app/models"
)

// Store-level errors shared by every entity store implementation
var (
	// ErrNotFound is returned when a record does not exist
	ErrNotFound = errors.New("record not found")
	// ErrEmailTaken is returned when a user with the same email exists
	ErrEmailTaken = errors.New("email already in use")
	// ErrInstructorDayTaken is returned when the instructor already has a lecture on that date
	ErrInstructorDayTaken = errors.New("instructor already has a lecture on this date")
	// ErrDanglingReference is returned when a lecture references a missing course or user
	ErrDanglingReference = errors.New("referenced record does not exist")
)

// UserRepository defines user persistence
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id int64) (*models.User, error)
	// GetByIDForUpdate loads the user and, inside a transaction, locks it until commit.
	GetByIDForUpdate(ctx context.Context, id int64) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByIDs(ctx context.Context, ids []int64) (map[int64]*models.User, error)
	ListByRole(ctx context.Context, role models.Role) ([]*models.User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
}

// CourseRepository defines course persistence
type CourseRepository interface {
	Create(ctx context.Context, course *models.Course) error
	GetByID(ctx context.Context, id int64) (*models.Course, error)
	GetByIDs(ctx context.Context, ids []int64) (map[int64]*models.Course, error)
	List(ctx context.Context) ([]*models.Course, error)
	Update(ctx context.Context, course *models.Course) error
	Delete(ctx context.Context, id int64) error
}

// LectureFilter narrows lecture listings; zero fields do not filter
type LectureFilter struct {
	CourseID     int64
	InstructorID int64
	// From and To bound the lecture date inclusively when non-zero
	From time.Time
	To   time.Time
	// ExcludeID drops one lecture from the result
	ExcludeID int64
}

// LectureRepository defines lecture persistence. Listings are ordered by date then start time.
type LectureRepository interface {
	Create(ctx context.Context, lecture *models.Lecture) error
	GetByID(ctx context.Context, id int64) (*models.Lecture, error)
	List(ctx context.Context, filter LectureFilter) ([]*models.Lecture, error)
	Update(ctx context.Context, lecture *models.Lecture) error
	Delete(ctx context.Context, id int64) error
	DeleteByCourse(ctx context.Context, courseID int64) (int64, error)
}

// Transactor runs a unit of work atomically
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// Repositories holds all the repository instances
type Repositories struct {
	Users    UserRepository
	Courses  CourseRepository
	Lectures LectureRepository
	Tx       Transactor
}
