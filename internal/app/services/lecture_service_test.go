package services

import (
	"context"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/lecturehub/internal/app/models/dto"
	"github.com/yigit/lecturehub/internal/pkg/apperrors"
)

func TestLectureCreate_OneLecturePerInstructorPerDay(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	inst := env.instructor(t, "priya")
	course := env.course(t, "Go")

	first := env.schedule(t, course.ID, inst.ID, "2024-03-15", "10:00", "11:00")
	assert.NotZero(t, first.ID)
	assert.Equal(t, "2024-03-15", first.Date.String())
	require.NotNil(t, first.Course)
	assert.Equal(t, "Go", first.Course.Name)
	require.NotNil(t, first.Instructor)
	assert.Equal(t, inst.Email, first.Instructor.Email)

	// Non-overlapping hours on the same day are still refused
	_, err := env.lectures.Create(ctx, lectureReq(course.ID, inst.ID, "2024-03-15", "15:00", "16:00"))
	assert.ErrorIs(t, err, apperrors.ErrConflict)
	assert.Equal(t, MsgInstructorDayTaken, apperrors.Message(err, ""))

	second := env.schedule(t, course.ID, inst.ID, "2024-03-16", "10:00", "11:00")
	assert.NotEqual(t, first.ID, second.ID)

	other := env.instructor(t, "amit")
	env.schedule(t, course.ID, other.ID, "2024-03-15", "10:00", "11:00")
}

func TestLectureCreate_Validation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	inst := env.instructor(t, "priya")
	course := env.course(t, "Go")

	tests := []struct {
		name string
		req  dto.CreateLectureRequest
		msg  string
	}{
		{"missing title", func() dto.CreateLectureRequest {
			r := lectureReq(course.ID, inst.ID, "2024-03-15", "10:00", "11:00")
			r.Title = "  "
			return r
		}(), "All fields are required"},
		{"bad date", lectureReq(course.ID, inst.ID, "15/03/2024", "10:00", "11:00"), "date must be a valid date (YYYY-MM-DD)"},
		{"bad start", lectureReq(course.ID, inst.ID, "2024-03-15", "10am", "11:00"), "startTime must be in HH:MM format"},
		{"reversed", lectureReq(course.ID, inst.ID, "2024-03-15", "11:00", "10:00"), "startTime must be before endTime"},
		{"empty range", lectureReq(course.ID, inst.ID, "2024-03-15", "10:00", "10:00"), "startTime must be before endTime"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.lectures.Create(ctx, tt.req)
			assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
			assert.Equal(t, tt.msg, apperrors.Message(err, ""))
		})
	}
}

func TestLectureCreate_Normalizes(t *testing.T) {
	env := newTestEnv(t)
	inst := env.instructor(t, "priya")
	course := env.course(t, "Go")

	l := env.schedule(t, course.ID, inst.ID, "2024-03-15T18:30:00Z", "9:00", "9:45")
	assert.Equal(t, "2024-03-15", l.Date.String())
	assert.Equal(t, "09:00", l.StartTime)
	assert.Equal(t, "09:45", l.EndTime)
}

func TestLectureCreate_MissingReferences(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	inst := env.instructor(t, "priya")
	course := env.course(t, "Go")

	_, err := env.lectures.Create(ctx, lectureReq(999, inst.ID, "2024-03-15", "10:00", "11:00"))
	assert.ErrorIs(t, err, apperrors.ErrCourseNotFound)

	_, err = env.lectures.Create(ctx, lectureReq(course.ID, 999, "2024-03-15", "10:00", "11:00"))
	assert.ErrorIs(t, err, apperrors.ErrInstructorNotFound)

	_, err = env.lectures.Create(ctx, lectureReq(course.ID, env.admin.ID, "2024-03-15", "10:00", "11:00"))
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	assert.Equal(t, "Lectures can only be assigned to instructors", apperrors.Message(err, ""))
}

func TestLectureCreate_ConcurrentSameSlot(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	inst := env.instructor(t, "priya")
	course := env.course(t, "Go")

	const workers = 10
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := env.lectures.Create(ctx, lectureReq(course.ID, inst.ID, "2024-03-15", "10:00", "11:00"))
			if err == nil {
				mu.Lock()
				succeeded++
				mu.Unlock()
				return
			}
			assert.ErrorIs(t, err, apperrors.ErrConflict)
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, succeeded)
	lectures, err := env.lectures.ListByInstructor(ctx, inst.ID)
	require.NoError(t, err)
	assert.Len(t, lectures, 1)
}

func TestLectureUpdate(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	inst := env.instructor(t, "priya")
	other := env.instructor(t, "amit")
	course := env.course(t, "Go")

	l1 := env.schedule(t, course.ID, inst.ID, "2024-03-15", "10:00", "11:00")
	l2 := env.schedule(t, course.ID, inst.ID, "2024-03-16", "10:00", "11:00")

	t.Run("fields outside the slot skip the check", func(t *testing.T) {
		updated, err := env.lectures.Update(ctx, l1.ID, dto.UpdateLectureRequest{
			Title:     ptr("Advanced batch"),
			StartTime: ptr("13:00"),
			EndTime:   ptr("14:00"),
		})
		require.NoError(t, err)
		assert.Equal(t, "Advanced batch", updated.Title)
		assert.Equal(t, "13:00", updated.StartTime)
		assert.Equal(t, "2024-03-15", updated.Date.String())
		require.NotNil(t, updated.Instructor)
	})

	t.Run("re-sending its own date succeeds", func(t *testing.T) {
		_, err := env.lectures.Update(ctx, l1.ID, dto.UpdateLectureRequest{Date: ptr("2024-03-15"), InstructorID: ptr(inst.ID)})
		require.NoError(t, err)
	})

	t.Run("moving onto a taken day conflicts", func(t *testing.T) {
		_, err := env.lectures.Update(ctx, l1.ID, dto.UpdateLectureRequest{Date: ptr("2024-03-16")})
		assert.ErrorIs(t, err, apperrors.ErrConflict)

		unchanged, err := env.lectures.GetByID(ctx, l1.ID)
		require.NoError(t, err)
		assert.Equal(t, "2024-03-15", unchanged.Date.String())
	})

	t.Run("moving to a free instructor succeeds", func(t *testing.T) {
		updated, err := env.lectures.Update(ctx, l2.ID, dto.UpdateLectureRequest{InstructorID: ptr(other.ID)})
		require.NoError(t, err)
		assert.Equal(t, other.ID, updated.InstructorID)
		assert.Equal(t, "amit@example.com", updated.Instructor.Email)
	})

	t.Run("day freed by the move can be taken", func(t *testing.T) {
		_, err := env.lectures.Update(ctx, l1.ID, dto.UpdateLectureRequest{Date: ptr("2024-03-16")})
		require.NoError(t, err)
	})

	t.Run("time range is checked against merged fields", func(t *testing.T) {
		_, err := env.lectures.Update(ctx, l1.ID, dto.UpdateLectureRequest{EndTime: ptr("12:00")})
		assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
		assert.Equal(t, "startTime must be before endTime", apperrors.Message(err, ""))
	})

	t.Run("unknown references", func(t *testing.T) {
		_, err := env.lectures.Update(ctx, l1.ID, dto.UpdateLectureRequest{CourseID: ptr(int64(999))})
		assert.ErrorIs(t, err, apperrors.ErrCourseNotFound)

		_, err = env.lectures.Update(ctx, 999, dto.UpdateLectureRequest{Title: ptr("x")})
		assert.ErrorIs(t, err, apperrors.ErrLectureNotFound)
	})
}

func TestLectureDelete(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	inst := env.instructor(t, "priya")
	course := env.course(t, "Go")
	l := env.schedule(t, course.ID, inst.ID, "2024-03-15", "10:00", "11:00")

	require.NoError(t, env.lectures.Delete(ctx, l.ID))
	assert.ErrorIs(t, env.lectures.Delete(ctx, l.ID), apperrors.ErrLectureNotFound)

	// The day is free again
	env.schedule(t, course.ID, inst.ID, "2024-03-15", "12:00", "13:00")
}

// Two courses, three lectures over two instructors; deleting the first course
// leaves only the second course's lecture and frees the day it held.
func TestCourseDeleteScenario(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	priya := env.instructor(t, "priya")
	amit := env.instructor(t, "amit")
	c1 := env.course(t, "Go")
	c2 := env.course(t, "Rust")

	env.schedule(t, c1.ID, priya.ID, "2024-03-15", "10:00", "11:00")
	env.schedule(t, c1.ID, amit.ID, "2024-03-15", "10:00", "11:00")
	l3 := env.schedule(t, c2.ID, priya.ID, "2024-03-16", "10:00", "11:00")

	removed, err := env.courses.Delete(ctx, c1.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), removed)

	left, err := env.lectures.List(ctx)
	require.NoError(t, err)
	require.Len(t, left, 1)
	assert.Equal(t, l3.ID, left[0].ID)

	byCourse, err := env.lectures.ListByCourse(ctx, c1.ID)
	require.NoError(t, err)
	assert.Empty(t, byCourse)

	available, err := env.availability.IsInstructorAvailable(ctx, priya.ID, date("2024-03-15"), 0)
	require.NoError(t, err)
	assert.True(t, available)
}

func TestListings(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	priya := env.instructor(t, "priya")
	amit := env.instructor(t, "amit")
	c1 := env.course(t, "Go")
	c2 := env.course(t, "Rust")

	late := env.schedule(t, c1.ID, priya.ID, "2024-03-20", "10:00", "11:00")
	early := env.schedule(t, c2.ID, priya.ID, "2024-03-10", "10:00", "11:00")
	env.schedule(t, c1.ID, amit.ID, "2024-03-12", "10:00", "11:00")

	mine, err := env.lectures.ListByInstructor(ctx, priya.ID)
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Equal(t, early.ID, mine[0].ID)
	assert.Equal(t, late.ID, mine[1].ID)
	assert.Equal(t, "Rust", mine[0].Course.Name)

	byCourse, err := env.lectures.ListByCourse(ctx, c1.ID)
	require.NoError(t, err)
	assert.Len(t, byCourse, 2)

	_, err = env.lectures.GetByID(ctx, 999)
	assert.ErrorIs(t, err, apperrors.ErrLectureNotFound)
}

func TestLectureUpdate_AvailabilityCheckOnlyOnSlotChange(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	inst := env.instructor(t, "priya")
	other := env.instructor(t, "amit")
	course := env.course(t, "Go")
	l := env.schedule(t, course.ID, inst.ID, "2024-03-15", "10:00", "11:00")

	lookups := &countingLectures{LectureRepository: env.repos.Lectures}
	env.lectures.availability = NewAvailabilityService(lookups, zerolog.Nop())

	unchangedSlot := []struct {
		name string
		req  dto.UpdateLectureRequest
	}{
		{"title only", dto.UpdateLectureRequest{Title: ptr("Renamed")}},
		{"time range only", dto.UpdateLectureRequest{StartTime: ptr("13:00"), EndTime: ptr("14:30")}},
		{"same date re-sent", dto.UpdateLectureRequest{Date: ptr("2024-03-15")}},
		{"same instructor and date re-sent", dto.UpdateLectureRequest{Date: ptr("2024-03-15"), InstructorID: ptr(inst.ID)}},
	}
	for _, tc := range unchangedSlot {
		t.Run(tc.name, func(t *testing.T) {
			lookups.reset()
			_, err := env.lectures.Update(ctx, l.ID, tc.req)
			require.NoError(t, err)
			assert.Zero(t, lookups.count())
		})
	}

	t.Run("date change checks the new day", func(t *testing.T) {
		lookups.reset()
		updated, err := env.lectures.Update(ctx, l.ID, dto.UpdateLectureRequest{Date: ptr("2024-03-18")})
		require.NoError(t, err)
		assert.Equal(t, "2024-03-18", updated.Date.String())
		assert.Positive(t, lookups.count())
	})

	t.Run("instructor change checks the new instructor", func(t *testing.T) {
		lookups.reset()
		updated, err := env.lectures.Update(ctx, l.ID, dto.UpdateLectureRequest{InstructorID: ptr(other.ID)})
		require.NoError(t, err)
		assert.Equal(t, other.ID, updated.InstructorID)
		assert.Positive(t, lookups.count())
	})
}

func TestCheckAvailability(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	inst := env.instructor(t, "priya")
	course := env.course(t, "Go")
	l := env.schedule(t, course.ID, inst.ID, "2024-03-15", "10:00", "11:00")

	resp, err := env.lectures.CheckAvailability(ctx, dto.AvailabilityQuery{InstructorID: inst.ID, Date: "2024-03-15"})
	require.NoError(t, err)
	assert.False(t, resp.Available)
	assert.Equal(t, "Instructor already has a lecture on this date", resp.Message)
	assert.Nil(t, resp.TimeConflict)

	resp, err = env.lectures.CheckAvailability(ctx, dto.AvailabilityQuery{
		InstructorID: inst.ID, Date: "2024-03-15", StartTime: "14:00", EndTime: "15:00",
	})
	require.NoError(t, err)
	assert.False(t, resp.Available)
	require.NotNil(t, resp.TimeConflict)
	assert.False(t, *resp.TimeConflict)

	resp, err = env.lectures.CheckAvailability(ctx, dto.AvailabilityQuery{
		InstructorID: inst.ID, Date: "2024-03-15", StartTime: "10:30", EndTime: "11:30",
	})
	require.NoError(t, err)
	require.NotNil(t, resp.TimeConflict)
	assert.True(t, *resp.TimeConflict)

	resp, err = env.lectures.CheckAvailability(ctx, dto.AvailabilityQuery{InstructorID: inst.ID, Date: "2024-03-15", ExcludeLectureID: l.ID})
	require.NoError(t, err)
	assert.True(t, resp.Available)
	assert.Equal(t, "Instructor is available", resp.Message)

	_, err = env.lectures.CheckAvailability(ctx, dto.AvailabilityQuery{InstructorID: inst.ID})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	for _, q := range []dto.AvailabilityQuery{
		{InstructorID: inst.ID, Date: "2024-03-15", StartTime: "10:00"},
		{InstructorID: inst.ID, Date: "2024-03-15", EndTime: "11:00"},
	} {
		_, err = env.lectures.CheckAvailability(ctx, q)
		assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	}
}
