package services

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/yigit/lecturehub/internal/app/models"
	"github.com/yigit/lecturehub/internal/app/repositories"
	"github.com/yigit/lecturehub/internal/pkg/apperrors"
	"github.com/yigit/lecturehub/internal/pkg/helpers"
	"github.com/yigit/lecturehub/internal/pkg/metrics"
)

// AvailabilityService answers whether an instructor can take another lecture
type AvailabilityService struct {
	lectureRepo repositories.LectureRepository
	logger      zerolog.Logger
}

// NewAvailabilityService creates a new availability service
func NewAvailabilityService(lectureRepo repositories.LectureRepository, logger zerolog.Logger) *AvailabilityService {
	return &AvailabilityService{
		lectureRepo: lectureRepo,
		logger:      logger,
	}
}

// sameDayLectures lists the instructor's lectures inside the calendar day of date
func (s *AvailabilityService) sameDayLectures(ctx context.Context, instructorID int64, date time.Time, excludeLectureID int64) ([]*models.Lecture, error) {
	start, end := helpers.DayWindow(date)
	lectures, err := s.lectureRepo.List(ctx, repositories.LectureFilter{
		InstructorID: instructorID,
		From:         start,
		To:           end,
		ExcludeID:    excludeLectureID,
	})
	if err != nil {
		return nil, fmt.Errorf("error listing instructor lectures: %w", err)
	}
	return lectures, nil
}

// IsInstructorAvailable reports whether the instructor has no lecture on the calendar
// day of date. A non-zero excludeLectureID ignores that lecture, so a lecture never
// blocks itself.
func (s *AvailabilityService) IsInstructorAvailable(ctx context.Context, instructorID int64, date time.Time, excludeLectureID int64) (bool, error) {
	lectures, err := s.sameDayLectures(ctx, instructorID, date, excludeLectureID)
	if err != nil {
		return false, err
	}

	available := len(lectures) == 0
	metrics.ObserveAvailabilityCheck(available)
	s.logger.Debug().
		Int64("instructorID", instructorID).
		Str("date", helpers.CalendarDay(date).Format(helpers.DateLayout)).
		Bool("available", available).
		Msg("Instructor availability checked")
	return available, nil
}

// HasTimeConflict reports whether [startTime, endTime) overlaps any lecture of the
// instructor on the same day. Times are "HH:MM" and compared as minutes.
func (s *AvailabilityService) HasTimeConflict(ctx context.Context, instructorID int64, date time.Time, startTime, endTime string, excludeLectureID int64) (bool, error) {
	newStart, err := helpers.ParseClock(startTime)
	if err != nil {
		return false, apperrors.NewValidationError("startTime must be in HH:MM format")
	}
	newEnd, err := helpers.ParseClock(endTime)
	if err != nil {
		return false, apperrors.NewValidationError("endTime must be in HH:MM format")
	}
	if newStart >= newEnd {
		return false, apperrors.NewValidationError("startTime must be before endTime")
	}

	lectures, err := s.sameDayLectures(ctx, instructorID, date, excludeLectureID)
	if err != nil {
		return false, err
	}

	for _, l := range lectures {
		existingStart, errStart := helpers.ParseClock(l.StartTime)
		existingEnd, errEnd := helpers.ParseClock(l.EndTime)
		if errStart != nil || errEnd != nil {
			s.logger.Warn().Int64("lectureID", l.ID).Msg("Stored lecture has unparsable times, skipping in overlap check")
			continue
		}
		if helpers.ClockRangesOverlap(newStart, newEnd, existingStart, existingEnd) {
			return true, nil
		}
	}
	return false, nil
}
