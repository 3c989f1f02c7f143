package services

import (
	"context"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"github.com/yigit/lecturehub/internal/app/models"
	"github.com/yigit/lecturehub/internal/app/models/dto"
	"github.com/yigit/lecturehub/internal/app/repositories"
	"github.com/yigit/lecturehub/internal/app/repositories/memory"
)

type testEnv struct {
	repos        *repositories.Repositories
	availability *AvailabilityService
	lectures     *LectureService
	courses      *CourseService
	admin        *models.User
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	repos := memory.NewRepositories()
	lgr := zerolog.Nop()

	admin := &models.User{Name: "Admin", Email: "admin@example.com", Role: models.RoleAdmin}
	require.NoError(t, repos.Users.Create(context.Background(), admin))

	availability := NewAvailabilityService(repos.Lectures, lgr)
	return &testEnv{
		repos:        repos,
		availability: availability,
		lectures:     NewLectureService(repos, availability, lgr),
		courses:      NewCourseService(repos, lgr),
		admin:        admin,
	}
}

func (e *testEnv) instructor(t *testing.T, name string) *models.User {
	t.Helper()
	u := &models.User{Name: name, Email: name + "@example.com", Role: models.RoleInstructor}
	require.NoError(t, e.repos.Users.Create(context.Background(), u))
	return u
}

func (e *testEnv) course(t *testing.T, name string) *models.Course {
	t.Helper()
	c, err := e.courses.Create(context.Background(), e.admin.ID, dto.CreateCourseRequest{
		Name:        name,
		Level:       "Beginner",
		Description: name + " basics",
	})
	require.NoError(t, err)
	return c
}

func lectureReq(courseID, instructorID int64, date, start, end string) dto.CreateLectureRequest {
	return dto.CreateLectureRequest{
		Title:        "Batch",
		BatchNumber:  1,
		CourseID:     courseID,
		InstructorID: instructorID,
		Date:         date,
		StartTime:    start,
		EndTime:      end,
	}
}

func (e *testEnv) schedule(t *testing.T, courseID, instructorID int64, date, start, end string) *models.Lecture {
	t.Helper()
	l, err := e.lectures.Create(context.Background(), lectureReq(courseID, instructorID, date, start, end))
	require.NoError(t, err)
	return l
}

func ptr[T any](v T) *T { return &v }

// countingLectures records how many list lookups go through the wrapped repository
type countingLectures struct {
	repositories.LectureRepository
	mu    sync.Mutex
	lists int
}

func (c *countingLectures) List(ctx context.Context, filter repositories.LectureFilter) ([]*models.Lecture, error) {
	c.mu.Lock()
	c.lists++
	c.mu.Unlock()
	return c.LectureRepository.List(ctx, filter)
}

func (c *countingLectures) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lists
}

func (c *countingLectures) reset() {
	c.mu.Lock()
	c.lists = 0
	c.mu.Unlock()
}
