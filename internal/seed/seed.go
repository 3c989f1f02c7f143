package seed

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/yigit/lecturehub/internal/app/models"
	"github.com/yigit/lecturehub/internal/app/repositories"
	"github.com/yigit/lecturehub/internal/pkg/auth"
)

// Options controls which default accounts are created
type Options struct {
	AdminEmail         string
	AdminPassword      string
	InstructorPassword string
	// HashCost is the bcrypt cost; zero means auth.BcryptCost
	HashCost int
}

// DefaultInstructors are the demo instructor accounts
var DefaultInstructors = []struct {
	Name  string
	Email string
}{
	{"Rahul Kumar", "rahul@example.com"},
	{"Priya Singh", "priya@example.com"},
	{"Amit Patel", "amit@example.com"},
	{"Neha Sharma", "neha@example.com"},
	{"Vikram Das", "vikram@example.com"},
}

// CreateDefaultData creates the admin and demo instructors when they don't exist.
// Existing accounts are left untouched so it is safe to run on every start.
func CreateDefaultData(ctx context.Context, users repositories.UserRepository, opts Options, lgr zerolog.Logger) error {
	cost := opts.HashCost
	if cost == 0 {
		cost = auth.BcryptCost
	}

	lgr.Info().Msg("Checking/Creating default accounts...")
	var finalErr error

	created, err := ensureUser(ctx, users, "Admin", opts.AdminEmail, opts.AdminPassword, models.RoleAdmin, cost)
	if err != nil {
		lgr.Error().Err(err).Str("email", opts.AdminEmail).Msg("Error creating admin account")
		finalErr = errors.Join(finalErr, err)
	} else if created {
		lgr.Info().Str("email", opts.AdminEmail).Msg("Admin account created")
	}

	for _, instructor := range DefaultInstructors {
		created, err := ensureUser(ctx, users, instructor.Name, instructor.Email, opts.InstructorPassword, models.RoleInstructor, cost)
		if err != nil {
			lgr.Error().Err(err).Str("email", instructor.Email).Msg("Error creating instructor account")
			finalErr = errors.Join(finalErr, err)
			continue
		}
		if created {
			lgr.Debug().Str("email", instructor.Email).Msg("Instructor account created")
		}
	}

	return finalErr
}

func ensureUser(ctx context.Context, users repositories.UserRepository, name, email, password string, role models.Role, cost int) (bool, error) {
	exists, err := users.EmailExists(ctx, email)
	if err != nil {
		return false, fmt.Errorf("error checking %s: %w", email, err)
	}
	if exists {
		return false, nil
	}

	hashed, err := auth.HashPasswordWithCost(password, cost)
	if err != nil {
		return false, fmt.Errorf("error hashing password for %s: %w", email, err)
	}

	err = users.Create(ctx, &models.User{Name: name, Email: email, Password: hashed, Role: role})
	if errors.Is(err, repositories.ErrEmailTaken) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("error creating %s: %w", email, err)
	}
	return true, nil
}
