package repository

import (
	"context"

	"github.com/tutorpocket/backend/internal/models"
)

type CreateTutorParams struct {
	Name         string
	Email        string
	PasswordHash string
}

// Tutor repository interface
type TutorRepo interface {
	// Create tutor
	// If tutor with email exists already has to return error apperrors.ErrTutorAlreadyExists
	CreateTutor(ctx context.Context, arg CreateTutorParams) (models.Tutor, error)

	// Get tutor by it's id or email
	// If tutor not found must return apperrors.ErrTutorNotFound
	GetTutorByID(ctx context.Context, id int64) (models.Tutor, error)
	GetTutorByEmail(ctx context.Context, email string) (models.Tutor, error)

	// List all tutors ordered by id
	ListTutors(ctx context.Context) ([]models.Tutor, error)

	// Replace password hash
	// If tutor not found must return apperrors.ErrTutorNotFound
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
}
