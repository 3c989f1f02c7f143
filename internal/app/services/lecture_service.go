package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/yigit/lecturehub/internal/app/models"
	"github.com/yigit/lecturehub/internal/app/models/dto"
	"github.com/yigit/lecturehub/internal/app/repositories"
	"github.com/yigit/lecturehub/internal/pkg/apperrors"
	"github.com/yigit/lecturehub/internal/pkg/helpers"
	"github.com/yigit/lecturehub/internal/pkg/metrics"
)

// MsgInstructorDayTaken is the conflict message for a second lecture on an instructor's day
const MsgInstructorDayTaken = "Instructor already has a lecture scheduled on this date. Cannot assign another lecture."

const (
	opCreate = "create"
	opUpdate = "update"
	opDelete = "delete"
)

// LectureService schedules lectures. Every write that touches an instructor's day runs
// the availability check and the write in one transaction.
type LectureService struct {
	repos        *repositories.Repositories
	availability *AvailabilityService
	logger       zerolog.Logger
}

// NewLectureService creates a new lecture service
func NewLectureService(repos *repositories.Repositories, availability *AvailabilityService, logger zerolog.Logger) *LectureService {
	return &LectureService{
		repos:        repos,
		availability: availability,
		logger:       logger,
	}
}

func parseLectureDate(s string) (time.Time, error) {
	date, err := helpers.ParseCalendarDate(s)
	if err != nil {
		return time.Time{}, apperrors.NewValidationError("date must be a valid date (YYYY-MM-DD)")
	}
	return date, nil
}

func normalizeClockField(field, value string) (string, error) {
	normalized, err := helpers.NormalizeClock(value)
	if err != nil {
		return "", apperrors.NewValidationError(field + " must be in HH:MM format")
	}
	return normalized, nil
}

func validateTimeRange(startTime, endTime string) error {
	start, err := helpers.ParseClock(startTime)
	if err != nil {
		return apperrors.NewValidationError("startTime must be in HH:MM format")
	}
	end, err := helpers.ParseClock(endTime)
	if err != nil {
		return apperrors.NewValidationError("endTime must be in HH:MM format")
	}
	if start >= end {
		return apperrors.NewValidationError("startTime must be before endTime")
	}
	return nil
}

// lectureFromRequest validates a create request and builds the lecture it describes
func lectureFromRequest(req dto.CreateLectureRequest) (*models.Lecture, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" || req.BatchNumber == 0 || req.CourseID == 0 || req.InstructorID == 0 ||
		strings.TrimSpace(req.Date) == "" || req.StartTime == "" || req.EndTime == "" {
		return nil, apperrors.NewValidationError("All fields are required")
	}
	if req.BatchNumber < 0 {
		return nil, apperrors.NewValidationError("batchNumber must be a positive integer")
	}
	if req.CourseID < 0 || req.InstructorID < 0 {
		return nil, apperrors.NewValidationError("courseId and instructorId must be positive")
	}

	date, err := parseLectureDate(req.Date)
	if err != nil {
		return nil, err
	}
	startTime, err := normalizeClockField("startTime", req.StartTime)
	if err != nil {
		return nil, err
	}
	endTime, err := normalizeClockField("endTime", req.EndTime)
	if err != nil {
		return nil, err
	}
	if err := validateTimeRange(startTime, endTime); err != nil {
		return nil, err
	}

	return &models.Lecture{
		Title:        title,
		BatchNumber:  req.BatchNumber,
		CourseID:     req.CourseID,
		InstructorID: req.InstructorID,
		Date:         models.NewCalendarDate(date),
		StartTime:    startTime,
		EndTime:      endTime,
	}, nil
}

// ensureCourse checks that the course exists
func (s *LectureService) ensureCourse(ctx context.Context, courseID int64) error {
	if _, err := s.repos.Courses.GetByID(ctx, courseID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return apperrors.ErrCourseNotFound
		}
		return fmt.Errorf("error loading course: %w", err)
	}
	return nil
}

// lockInstructor loads the instructor and holds its row until the transaction ends,
// serializing concurrent scheduling for the same instructor.
func (s *LectureService) lockInstructor(ctx context.Context, instructorID int64) error {
	user, err := s.repos.Users.GetByIDForUpdate(ctx, instructorID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return apperrors.ErrInstructorNotFound
		}
		return fmt.Errorf("error loading instructor: %w", err)
	}
	if !user.Role.HasOwnSchedule() {
		return apperrors.NewValidationError("Lectures can only be assigned to instructors")
	}
	return nil
}

// mapLectureWriteError turns store errors from a lecture write into application errors
func mapLectureWriteError(err error) error {
	switch {
	case errors.Is(err, repositories.ErrInstructorDayTaken):
		return apperrors.NewConflictError(MsgInstructorDayTaken)
	case errors.Is(err, repositories.ErrDanglingReference):
		return apperrors.NewResourceNotFoundError("Course or instructor not found")
	case errors.Is(err, repositories.ErrNotFound):
		return apperrors.ErrLectureNotFound
	default:
		return err
	}
}

func observe(operation string, err error, success string) {
	switch {
	case err == nil:
		metrics.ObserveLectureOperation(operation, success)
	case errors.Is(err, apperrors.ErrConflict):
		metrics.ObserveLectureOperation(operation, metrics.ResultConflict)
	default:
		metrics.ObserveLectureOperation(operation, metrics.ResultFailed)
	}
}

// Create schedules a new lecture after checking that the instructor is free that day
func (s *LectureService) Create(ctx context.Context, req dto.CreateLectureRequest) (lecture *models.Lecture, err error) {
	defer func() { observe(opCreate, err, metrics.ResultCreated) }()

	lecture, err = lectureFromRequest(req)
	if err != nil {
		return nil, err
	}

	err = s.repos.Tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.ensureCourse(ctx, lecture.CourseID); err != nil {
			return err
		}
		if err := s.lockInstructor(ctx, lecture.InstructorID); err != nil {
			return err
		}

		available, err := s.availability.IsInstructorAvailable(ctx, lecture.InstructorID, lecture.Date.Time, 0)
		if err != nil {
			return err
		}
		if !available {
			return apperrors.NewConflictError(MsgInstructorDayTaken)
		}

		if err := s.repos.Lectures.Create(ctx, lecture); err != nil {
			return mapLectureWriteError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Int64("lectureID", lecture.ID).
		Int64("instructorID", lecture.InstructorID).
		Str("date", lecture.Date.String()).
		Msg("Lecture scheduled")

	if err := enrichLectures(ctx, s.repos, lecture); err != nil {
		return nil, err
	}
	return lecture, nil
}

// Update applies the supplied fields. The availability check runs only when the
// instructor or the calendar day changes, and ignores the lecture itself.
func (s *LectureService) Update(ctx context.Context, id int64, req dto.UpdateLectureRequest) (updated *models.Lecture, err error) {
	defer func() { observe(opUpdate, err, metrics.ResultUpdated) }()

	err = s.repos.Tx.WithinTransaction(ctx, func(ctx context.Context) error {
		existing, err := s.repos.Lectures.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return apperrors.ErrLectureNotFound
			}
			return fmt.Errorf("error loading lecture: %w", err)
		}

		next := *existing
		if err := applyLectureUpdate(&next, req); err != nil {
			return err
		}
		if err := validateTimeRange(next.StartTime, next.EndTime); err != nil {
			return err
		}

		if next.CourseID != existing.CourseID {
			if err := s.ensureCourse(ctx, next.CourseID); err != nil {
				return err
			}
		}

		instructorChanged := next.InstructorID != existing.InstructorID
		dayChanged := !helpers.SameCalendarDay(next.Date.Time, existing.Date.Time)
		if instructorChanged || dayChanged {
			if err := s.lockInstructor(ctx, next.InstructorID); err != nil {
				return err
			}
			available, err := s.availability.IsInstructorAvailable(ctx, next.InstructorID, next.Date.Time, id)
			if err != nil {
				return err
			}
			if !available {
				return apperrors.NewConflictError(MsgInstructorDayTaken)
			}
		}

		if err := s.repos.Lectures.Update(ctx, &next); err != nil {
			return mapLectureWriteError(err)
		}
		updated = &next
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("lectureID", id).Msg("Lecture updated")

	if err := enrichLectures(ctx, s.repos, updated); err != nil {
		return nil, err
	}
	return updated, nil
}

// applyLectureUpdate copies the present fields of req onto l
func applyLectureUpdate(l *models.Lecture, req dto.UpdateLectureRequest) error {
	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return apperrors.NewValidationError("title cannot be empty")
		}
		l.Title = title
	}
	if req.BatchNumber != nil {
		if *req.BatchNumber <= 0 {
			return apperrors.NewValidationError("batchNumber must be a positive integer")
		}
		l.BatchNumber = *req.BatchNumber
	}
	if req.CourseID != nil {
		if *req.CourseID <= 0 {
			return apperrors.NewValidationError("courseId must be positive")
		}
		l.CourseID = *req.CourseID
	}
	if req.InstructorID != nil {
		if *req.InstructorID <= 0 {
			return apperrors.NewValidationError("instructorId must be positive")
		}
		l.InstructorID = *req.InstructorID
	}
	if req.Date != nil {
		date, err := parseLectureDate(*req.Date)
		if err != nil {
			return err
		}
		l.Date = models.NewCalendarDate(date)
	}
	if req.StartTime != nil {
		startTime, err := normalizeClockField("startTime", *req.StartTime)
		if err != nil {
			return err
		}
		l.StartTime = startTime
	}
	if req.EndTime != nil {
		endTime, err := normalizeClockField("endTime", *req.EndTime)
		if err != nil {
			return err
		}
		l.EndTime = endTime
	}
	return nil
}

// Delete removes a lecture
func (s *LectureService) Delete(ctx context.Context, id int64) (err error) {
	defer func() { observe(opDelete, err, metrics.ResultDeleted) }()

	if err = s.repos.Lectures.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return apperrors.ErrLectureNotFound
		}
		return fmt.Errorf("error deleting lecture: %w", err)
	}

	s.logger.Info().Int64("lectureID", id).Msg("Lecture deleted")
	return nil
}

// GetByID returns one enriched lecture
func (s *LectureService) GetByID(ctx context.Context, id int64) (*models.Lecture, error) {
	lecture, err := s.repos.Lectures.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.ErrLectureNotFound
		}
		return nil, fmt.Errorf("error loading lecture: %w", err)
	}
	if err := enrichLectures(ctx, s.repos, lecture); err != nil {
		return nil, err
	}
	return lecture, nil
}

func (s *LectureService) list(ctx context.Context, filter repositories.LectureFilter) ([]*models.Lecture, error) {
	lectures, err := s.repos.Lectures.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("error listing lectures: %w", err)
	}
	if err := enrichLectures(ctx, s.repos, lectures...); err != nil {
		return nil, err
	}
	return lectures, nil
}

// List returns every lecture ordered by date
func (s *LectureService) List(ctx context.Context) ([]*models.Lecture, error) {
	return s.list(ctx, repositories.LectureFilter{})
}

// ListByCourse returns the lectures of a course ordered by date and start time
func (s *LectureService) ListByCourse(ctx context.Context, courseID int64) ([]*models.Lecture, error) {
	return s.list(ctx, repositories.LectureFilter{CourseID: courseID})
}

// ListByInstructor returns an instructor's schedule ordered by date and start time
func (s *LectureService) ListByInstructor(ctx context.Context, instructorID int64) ([]*models.Lecture, error) {
	return s.list(ctx, repositories.LectureFilter{InstructorID: instructorID})
}

// CheckAvailability answers the availability endpoint. The time overlap is only
// reported when both times are given.
func (s *LectureService) CheckAvailability(ctx context.Context, q dto.AvailabilityQuery) (*dto.AvailabilityResponse, error) {
	if q.InstructorID <= 0 || strings.TrimSpace(q.Date) == "" {
		return nil, apperrors.NewValidationError("Instructor ID and date are required")
	}
	if (q.StartTime == "") != (q.EndTime == "") {
		return nil, apperrors.NewValidationError("startTime and endTime must be given together")
	}
	date, err := parseLectureDate(q.Date)
	if err != nil {
		return nil, err
	}

	available, err := s.availability.IsInstructorAvailable(ctx, q.InstructorID, date, q.ExcludeLectureID)
	if err != nil {
		return nil, err
	}

	resp := &dto.AvailabilityResponse{Available: available, Message: "Instructor is available"}
	if !available {
		resp.Message = "Instructor already has a lecture on this date"
	}

	if q.StartTime != "" && q.EndTime != "" {
		conflict, err := s.availability.HasTimeConflict(ctx, q.InstructorID, date, q.StartTime, q.EndTime, q.ExcludeLectureID)
		if err != nil {
			return nil, err
		}
		resp.TimeConflict = &conflict
	}
	return resp, nil
}
