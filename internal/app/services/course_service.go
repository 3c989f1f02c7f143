package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/yigit/lecturehub/internal/app/models"
	"github.com/yigit/lecturehub/internal/app/models/dto"
	"github.com/yigit/lecturehub/internal/app/repositories"
	"github.com/yigit/lecturehub/internal/pkg/apperrors"
	"github.com/yigit/lecturehub/internal/pkg/metrics"
)

// CourseService handles course-related operations
type CourseService struct {
	repos  *repositories.Repositories
	logger zerolog.Logger
}

// NewCourseService creates a new course service instance
func NewCourseService(repos *repositories.Repositories, logger zerolog.Logger) *CourseService {
	return &CourseService{
		repos:  repos,
		logger: logger,
	}
}

// Create creates a course owned by the acting admin
func (s *CourseService) Create(ctx context.Context, actorID int64, req dto.CreateCourseRequest) (*models.Course, error) {
	course := &models.Course{
		Name:        strings.TrimSpace(req.Name),
		Level:       strings.TrimSpace(req.Level),
		Description: strings.TrimSpace(req.Description),
		Image:       strings.TrimSpace(req.Image),
		CreatedByID: actorID,
	}
	if course.Name == "" || course.Level == "" || course.Description == "" {
		return nil, apperrors.NewValidationError("Name, level and description are required")
	}
	if course.Image == "" {
		course.Image = models.DefaultCourseImage
	}

	if err := s.repos.Courses.Create(ctx, course); err != nil {
		if errors.Is(err, repositories.ErrDanglingReference) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("error creating course: %w", err)
	}

	s.logger.Info().Int64("courseID", course.ID).Str("name", course.Name).Msg("Course created")

	if err := enrichCourses(ctx, s.repos, course); err != nil {
		return nil, err
	}
	return course, nil
}

// List returns every course, newest first
func (s *CourseService) List(ctx context.Context) ([]*models.Course, error) {
	courses, err := s.repos.Courses.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing courses: %w", err)
	}
	if err := enrichCourses(ctx, s.repos, courses...); err != nil {
		return nil, err
	}
	return courses, nil
}

// Get returns one course
func (s *CourseService) Get(ctx context.Context, id int64) (*models.Course, error) {
	course, err := s.repos.Courses.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.ErrCourseNotFound
		}
		return nil, fmt.Errorf("error loading course: %w", err)
	}
	if err := enrichCourses(ctx, s.repos, course); err != nil {
		return nil, err
	}
	return course, nil
}

// Update replaces the non-empty fields of a course
func (s *CourseService) Update(ctx context.Context, id int64, req dto.UpdateCourseRequest) (*models.Course, error) {
	course, err := s.repos.Courses.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.ErrCourseNotFound
		}
		return nil, fmt.Errorf("error loading course: %w", err)
	}

	if v := strings.TrimSpace(req.Name); v != "" {
		course.Name = v
	}
	if v := strings.TrimSpace(req.Level); v != "" {
		course.Level = v
	}
	if v := strings.TrimSpace(req.Description); v != "" {
		course.Description = v
	}
	if v := strings.TrimSpace(req.Image); v != "" {
		course.Image = v
	}

	if err := s.repos.Courses.Update(ctx, course); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.ErrCourseNotFound
		}
		return nil, fmt.Errorf("error updating course: %w", err)
	}

	s.logger.Info().Int64("courseID", id).Msg("Course updated")

	if err := enrichCourses(ctx, s.repos, course); err != nil {
		return nil, err
	}
	return course, nil
}

// Delete removes a course together with all of its lectures and returns how many
// lectures went with it. Both deletions commit or neither does.
func (s *CourseService) Delete(ctx context.Context, id int64) (int64, error) {
	var removed int64
	err := s.repos.Tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if _, err := s.repos.Courses.GetByID(ctx, id); err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return apperrors.ErrCourseNotFound
			}
			return fmt.Errorf("error loading course: %w", err)
		}

		n, err := s.repos.Lectures.DeleteByCourse(ctx, id)
		if err != nil {
			return fmt.Errorf("error deleting course lectures: %w", err)
		}
		removed = n

		if err := s.repos.Courses.Delete(ctx, id); err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return apperrors.ErrCourseNotFound
			}
			return fmt.Errorf("error deleting course: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	metrics.AddCascadedLectures(removed)
	s.logger.Info().Int64("courseID", id).Int64("lecturesDeleted", removed).Msg("Course deleted")
	return removed, nil
}
