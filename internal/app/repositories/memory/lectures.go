package memory

import (
	"context"
	"sort"
	"time"

	"github.com/yigit/lecturehub/internal/app/models"
	"github.com/yigit/lecturehub/internal/app/repositories"
	"github.com/yigit/lecturehub/internal/pkg/helpers"
)

// LectureRepository is the in-memory lectures table
type LectureRepository struct {
	store *Store
}

// checkLecture applies the reference and instructor-day rules. dataMu must be held.
func (s *Store) checkLecture(l *models.Lecture) error {
	if _, ok := s.courses[l.CourseID]; !ok {
		return repositories.ErrDanglingReference
	}
	if _, ok := s.users[l.InstructorID]; !ok {
		return repositories.ErrDanglingReference
	}
	for id, other := range s.lectures {
		if id == l.ID {
			continue
		}
		if other.InstructorID == l.InstructorID && helpers.SameCalendarDay(other.Date.Time, l.Date.Time) {
			return repositories.ErrInstructorDayTaken
		}
	}
	return nil
}

func stripRelations(l models.Lecture) models.Lecture {
	l.Course = nil
	l.Instructor = nil
	return l
}

func (r *LectureRepository) Create(ctx context.Context, lecture *models.Lecture) error {
	return r.store.write(ctx, func() error {
		lecture.ID = 0
		if err := r.store.checkLecture(lecture); err != nil {
			return err
		}
		r.store.nextLectureID++
		lecture.ID = r.store.nextLectureID
		lecture.CreatedAt = time.Now().UTC()
		r.store.lectures[lecture.ID] = stripRelations(*lecture)
		return nil
	})
}

func (r *LectureRepository) GetByID(_ context.Context, id int64) (*models.Lecture, error) {
	var (
		lecture models.Lecture
		ok      bool
	)
	r.store.read(func() { lecture, ok = r.store.lectures[id] })
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &lecture, nil
}

func matches(l models.Lecture, f repositories.LectureFilter) bool {
	switch {
	case f.CourseID != 0 && l.CourseID != f.CourseID:
		return false
	case f.InstructorID != 0 && l.InstructorID != f.InstructorID:
		return false
	case !f.From.IsZero() && l.Date.Before(f.From):
		return false
	case !f.To.IsZero() && l.Date.After(f.To):
		return false
	case f.ExcludeID != 0 && l.ID == f.ExcludeID:
		return false
	}
	return true
}

func (r *LectureRepository) List(_ context.Context, filter repositories.LectureFilter) ([]*models.Lecture, error) {
	lectures := []*models.Lecture{}
	r.store.read(func() {
		for _, l := range r.store.lectures {
			if matches(l, filter) {
				l := l
				lectures = append(lectures, &l)
			}
		}
	})
	sort.Slice(lectures, func(i, j int) bool {
		a, b := lectures[i], lectures[j]
		if !a.Date.Equal(b.Date.Time) {
			return a.Date.Before(b.Date.Time)
		}
		if a.StartTime != b.StartTime {
			return a.StartTime < b.StartTime
		}
		return a.ID < b.ID
	})
	return lectures, nil
}

func (r *LectureRepository) Update(ctx context.Context, lecture *models.Lecture) error {
	return r.store.write(ctx, func() error {
		existing, ok := r.store.lectures[lecture.ID]
		if !ok {
			return repositories.ErrNotFound
		}
		if err := r.store.checkLecture(lecture); err != nil {
			return err
		}
		updated := stripRelations(*lecture)
		updated.CreatedAt = existing.CreatedAt
		r.store.lectures[lecture.ID] = updated
		return nil
	})
}

func (r *LectureRepository) Delete(ctx context.Context, id int64) error {
	return r.store.write(ctx, func() error {
		if _, ok := r.store.lectures[id]; !ok {
			return repositories.ErrNotFound
		}
		delete(r.store.lectures, id)
		return nil
	})
}

func (r *LectureRepository) DeleteByCourse(ctx context.Context, courseID int64) (int64, error) {
	var removed int64
	err := r.store.write(ctx, func() error {
		for id, l := range r.store.lectures {
			if l.CourseID == courseID {
				delete(r.store.lectures, id)
				removed++
			}
		}
		return nil
	})
	return removed, err
}
