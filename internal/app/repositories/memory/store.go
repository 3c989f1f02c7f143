// Package memory implements the entity store in process memory. It enforces the
// same uniqueness and reference rules as the PostgreSQL schema so services behave
// identically on both.
package memory

import (
	"context"
	"maps"
	"sync"

	"github.com/yigit/lecturehub/internal/app/models"
	"github.com/yigit/lecturehub/internal/app/repositories"
	"github.com/yigit/lecturehub/internal/pkg/logger"
)

type txKey struct{}

// Store holds every table. txMu serializes writers (and whole transactions);
// dataMu guards the maps themselves.
type Store struct {
	txMu   sync.Mutex
	dataMu sync.RWMutex

	users    map[int64]models.User
	courses  map[int64]models.Course
	lectures map[int64]models.Lecture

	nextUserID    int64
	nextCourseID  int64
	nextLectureID int64
}

type snapshot struct {
	users    map[int64]models.User
	courses  map[int64]models.Course
	lectures map[int64]models.Lecture

	nextUserID    int64
	nextCourseID  int64
	nextLectureID int64
}

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{
		users:    make(map[int64]models.User),
		courses:  make(map[int64]models.Course),
		lectures: make(map[int64]models.Lecture),
	}
}

// NewRepositories creates an empty store and the repositories backed by it
func NewRepositories() *repositories.Repositories {
	return NewStore().Repositories()
}

// Repositories returns the repositories backed by s
func (s *Store) Repositories() *repositories.Repositories {
	return &repositories.Repositories{
		Users:    &UserRepository{store: s},
		Courses:  &CourseRepository{store: s},
		Lectures: &LectureRepository{store: s},
		Tx:       s,
	}
}

func inTransaction(ctx context.Context) bool {
	_, ok := ctx.Value(txKey{}).(bool)
	return ok
}

// WithinTransaction runs fn with exclusive write access. Any error returned by fn
// restores the tables to their state before the call. Nested calls join the outer one.
func (s *Store) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	if inTransaction(ctx) {
		return fn(ctx)
	}

	s.txMu.Lock()
	defer s.txMu.Unlock()

	snap := s.snapshot()
	defer func() {
		if r := recover(); r != nil {
			s.restore(snap)
			panic(r)
		}
	}()

	if err = fn(context.WithValue(ctx, txKey{}, true)); err != nil {
		s.restore(snap)
		logger.Debug().Err(err).Msg("In-memory transaction rolled back")
		return err
	}
	return nil
}

func (s *Store) snapshot() snapshot {
	s.dataMu.RLock()
	defer s.dataMu.RUnlock()
	return snapshot{
		users:         maps.Clone(s.users),
		courses:       maps.Clone(s.courses),
		lectures:      maps.Clone(s.lectures),
		nextUserID:    s.nextUserID,
		nextCourseID:  s.nextCourseID,
		nextLectureID: s.nextLectureID,
	}
}

func (s *Store) restore(snap snapshot) {
	s.dataMu.Lock()
	defer s.dataMu.Unlock()
	s.users = snap.users
	s.courses = snap.courses
	s.lectures = snap.lectures
	s.nextUserID = snap.nextUserID
	s.nextCourseID = snap.nextCourseID
	s.nextLectureID = snap.nextLectureID
}

// write runs fn under the data lock. Outside a transaction it also takes the
// writer lock so it cannot interleave with a transaction that may roll back.
func (s *Store) write(ctx context.Context, fn func() error) error {
	if !inTransaction(ctx) {
		s.txMu.Lock()
		defer s.txMu.Unlock()
	}
	s.dataMu.Lock()
	defer s.dataMu.Unlock()
	return fn()
}

func (s *Store) read(fn func()) {
	s.dataMu.RLock()
	defer s.dataMu.RUnlock()
	fn()
}
