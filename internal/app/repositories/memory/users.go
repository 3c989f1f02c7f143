package memory

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/yigit/lecturehub/internal/app/models"
	"github.com/yigit/lecturehub/internal/app/repositories"
)

// UserRepository is the in-memory users table
type UserRepository struct {
	store *Store
}

// emailTaken must be called with dataMu held
func (s *Store) emailTaken(email string) bool {
	for _, u := range s.users {
		if strings.EqualFold(u.Email, email) {
			return true
		}
	}
	return false
}

func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	return r.store.write(ctx, func() error {
		if r.store.emailTaken(user.Email) {
			return repositories.ErrEmailTaken
		}
		r.store.nextUserID++
		user.ID = r.store.nextUserID
		user.CreatedAt = time.Now().UTC()
		r.store.users[user.ID] = *user
		return nil
	})
}

func (r *UserRepository) GetByID(_ context.Context, id int64) (*models.User, error) {
	var (
		user models.User
		ok   bool
	)
	r.store.read(func() { user, ok = r.store.users[id] })
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &user, nil
}

// GetByIDForUpdate needs no extra locking: transactions already hold the writer lock.
func (r *UserRepository) GetByIDForUpdate(ctx context.Context, id int64) (*models.User, error) {
	return r.GetByID(ctx, id)
}

func (r *UserRepository) GetByEmail(_ context.Context, email string) (*models.User, error) {
	var found *models.User
	r.store.read(func() {
		for _, u := range r.store.users {
			if strings.EqualFold(u.Email, email) {
				u := u
				found = &u
				return
			}
		}
	})
	if found == nil {
		return nil, repositories.ErrNotFound
	}
	return found, nil
}

func (r *UserRepository) GetByIDs(_ context.Context, ids []int64) (map[int64]*models.User, error) {
	result := make(map[int64]*models.User, len(ids))
	r.store.read(func() {
		for _, id := range ids {
			if u, ok := r.store.users[id]; ok {
				result[id] = &u
			}
		}
	})
	return result, nil
}

func (r *UserRepository) ListByRole(_ context.Context, role models.Role) ([]*models.User, error) {
	users := []*models.User{}
	r.store.read(func() {
		for _, u := range r.store.users {
			if u.Role == role {
				u := u
				users = append(users, &u)
			}
		}
	})
	sort.Slice(users, func(i, j int) bool {
		if users[i].Name != users[j].Name {
			return users[i].Name < users[j].Name
		}
		return users[i].ID < users[j].ID
	})
	return users, nil
}

func (r *UserRepository) EmailExists(_ context.Context, email string) (bool, error) {
	var exists bool
	r.store.read(func() { exists = r.store.emailTaken(email) })
	return exists, nil
}
