package memory

import (
	"context"
	"sort"
	"time"

	"github.com/yigit/lecturehub/internal/app/models"
	"github.com/yigit/lecturehub/internal/app/repositories"
)

// CourseRepository is the in-memory courses table
type CourseRepository struct {
	store *Store
}

func (r *CourseRepository) Create(ctx context.Context, course *models.Course) error {
	return r.store.write(ctx, func() error {
		if _, ok := r.store.users[course.CreatedByID]; !ok {
			return repositories.ErrDanglingReference
		}
		r.store.nextCourseID++
		now := time.Now().UTC()
		course.ID = r.store.nextCourseID
		course.CreatedAt = now
		course.UpdatedAt = now
		stored := *course
		stored.CreatedBy = nil
		r.store.courses[course.ID] = stored
		return nil
	})
}

func (r *CourseRepository) GetByID(_ context.Context, id int64) (*models.Course, error) {
	var (
		course models.Course
		ok     bool
	)
	r.store.read(func() { course, ok = r.store.courses[id] })
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &course, nil
}

func (r *CourseRepository) GetByIDs(_ context.Context, ids []int64) (map[int64]*models.Course, error) {
	result := make(map[int64]*models.Course, len(ids))
	r.store.read(func() {
		for _, id := range ids {
			if c, ok := r.store.courses[id]; ok {
				result[id] = &c
			}
		}
	})
	return result, nil
}

func (r *CourseRepository) List(_ context.Context) ([]*models.Course, error) {
	courses := []*models.Course{}
	r.store.read(func() {
		for _, c := range r.store.courses {
			c := c
			courses = append(courses, &c)
		}
	})
	sort.Slice(courses, func(i, j int) bool {
		if !courses[i].CreatedAt.Equal(courses[j].CreatedAt) {
			return courses[i].CreatedAt.After(courses[j].CreatedAt)
		}
		return courses[i].ID > courses[j].ID
	})
	return courses, nil
}

func (r *CourseRepository) Update(ctx context.Context, course *models.Course) error {
	return r.store.write(ctx, func() error {
		existing, ok := r.store.courses[course.ID]
		if !ok {
			return repositories.ErrNotFound
		}
		existing.Name = course.Name
		existing.Level = course.Level
		existing.Description = course.Description
		existing.Image = course.Image
		existing.UpdatedAt = time.Now().UTC()
		r.store.courses[course.ID] = existing
		course.UpdatedAt = existing.UpdatedAt
		return nil
	})
}

// Delete removes the course and, like the foreign key in the SQL schema, its lectures.
func (r *CourseRepository) Delete(ctx context.Context, id int64) error {
	return r.store.write(ctx, func() error {
		if _, ok := r.store.courses[id]; !ok {
			return repositories.ErrNotFound
		}
		delete(r.store.courses, id)
		for lectureID, l := range r.store.lectures {
			if l.CourseID == id {
				delete(r.store.lectures, lectureID)
			}
		}
		return nil
	})
}
