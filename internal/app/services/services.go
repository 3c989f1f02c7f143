// Package services holds the scheduling business logic.
//
// Services defined in this package:
// - AuthService: registration, login and instructor lookup
// - AvailabilityService: per-day instructor availability and time overlap
// - CourseService: course lifecycle, including the lecture cascade on delete
// - LectureService: lecture lifecycle guarded by the availability check
package services

import (
	"context"
	"fmt"

	"github.com/yigit/lecturehub/internal/app/models"
	"github.com/yigit/lecturehub/internal/app/repositories"
)

// enrichLectures attaches course and instructor summaries to lectures in place.
// Stored lectures only carry ids; the join happens here with one batched lookup per table.
func enrichLectures(ctx context.Context, repos *repositories.Repositories, lectures ...*models.Lecture) error {
	if len(lectures) == 0 {
		return nil
	}

	courseIDs := make([]int64, 0, len(lectures))
	userIDs := make([]int64, 0, len(lectures))
	seenCourse := make(map[int64]bool)
	seenUser := make(map[int64]bool)
	for _, l := range lectures {
		if !seenCourse[l.CourseID] {
			seenCourse[l.CourseID] = true
			courseIDs = append(courseIDs, l.CourseID)
		}
		if !seenUser[l.InstructorID] {
			seenUser[l.InstructorID] = true
			userIDs = append(userIDs, l.InstructorID)
		}
	}

	courses, err := repos.Courses.GetByIDs(ctx, courseIDs)
	if err != nil {
		return fmt.Errorf("error loading lecture courses: %w", err)
	}
	users, err := repos.Users.GetByIDs(ctx, userIDs)
	if err != nil {
		return fmt.Errorf("error loading lecture instructors: %w", err)
	}

	for _, l := range lectures {
		l.Course = courses[l.CourseID].Summary()
		l.Instructor = users[l.InstructorID].Summary()
	}
	return nil
}

// enrichCourses attaches creator summaries to courses in place
func enrichCourses(ctx context.Context, repos *repositories.Repositories, courses ...*models.Course) error {
	if len(courses) == 0 {
		return nil
	}

	ids := make([]int64, 0, len(courses))
	for _, c := range courses {
		ids = append(ids, c.CreatedByID)
	}
	users, err := repos.Users.GetByIDs(ctx, ids)
	if err != nil {
		return fmt.Errorf("error loading course creators: %w", err)
	}
	for _, c := range courses {
		c.CreatedBy = users[c.CreatedByID].Summary()
	}
	return nil
}
