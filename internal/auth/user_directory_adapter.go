package auth

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// UserDirectoryAdapter exposes user contact details through the auth
// repository. The notifications producer consumes it to enrich ticket
// events without importing the auth service directly.
type UserDirectoryAdapter struct {
	repo Repository
}

// NewUserDirectoryAdapter creates a new user directory adapter
func NewUserDirectoryAdapter(repo Repository) *UserDirectoryAdapter {
	return &UserDirectoryAdapter{
		repo: repo,
	}
}

// GetUserByID fetches user details by ID and returns email and display name
func (uda *UserDirectoryAdapter) GetUserByID(ctx context.Context, userID uuid.UUID) (email, name string, err error) {
	user, err := uda.repo.GetUserByID(ctx, userID.String())
	if err != nil {
		return "", "", fmt.Errorf("failed to fetch user %s: %w", userID, err)
	}

	return user.Email, user.FullName(), nil
}
