// Package users declares the account repository and its PostgreSQL
// implementation.
package users

import (
	"context"

	"github.com/dmitrijs2005/promptbook/internal/server/models"
)

// Repository stores accounts.
type Repository interface {
	// Create inserts user and fills in its ID and CreatedAt. An email that is
	// already taken yields common.ErrorAlreadyExists.
	Create(ctx context.Context, user *models.User) (*models.User, error)
	// GetUserByEmail returns common.ErrorNotFound when no account matches.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	// GetUserByID returns common.ErrorNotFound when no account matches.
	GetUserByID(ctx context.Context, id string) (*models.User, error)
}
