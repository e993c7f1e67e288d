package auth

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/tutorpocket/backend/internal/apperrors"
	"github.com/tutorpocket/backend/internal/models"
	"github.com/tutorpocket/backend/internal/repository"
	"github.com/tutorpocket/backend/internal/service/password"
)

// Interface to create or compare tutor password hashes
type PasswordManager interface {
	// Generate salted hash from password
	Hash(plaintext string) (string, error)

	// Compare user provided password and known hash
	// Must return false on any failure
	Compare(plaintext string, hash string) bool

	// Check password against the policy
	Validate(password string) password.Validation
}

type TokenManager interface {
	Issue(payload models.TokenPayload) (models.IssuedToken, error)
	Verify(token string) (models.TokenPayload, error)
}

// Auth service
type AuthService struct {
	// Manager to issue and verify access tokens
	tokenManager TokenManager

	// Manager to hash, compare or validate passwords
	passwords PasswordManager

	// Repository to access tutors
	tutorRepo repository.TutorRepo

	// Hash compared when tutor email is unknown, so both failures take the same time
	dummyOnce sync.Once
	dummyHash string
}

func NewService(tokenManager TokenManager, passwords PasswordManager, tutorRepo repository.TutorRepo) (*AuthService, error) {
	if tokenManager == nil || passwords == nil || tutorRepo == nil {
		return nil, errors.New("token manager, password manager and tutor repo must not be nil")
	}

	return &AuthService{
		tokenManager: tokenManager,
		passwords:    passwords,
		tutorRepo:    tutorRepo,
	}, nil
}

// Register new tutor
// Returns *apperrors.ValidationError if password does not satisfy the policy
func (s *AuthService) Register(ctx context.Context, name string, email string, plaintext string) (models.Tutor, error) {
	if v := s.passwords.Validate(plaintext); !v.IsValid {
		return models.Tutor{}, &apperrors.ValidationError{Message: v.Message}
	}

	hash, err := s.passwords.Hash(plaintext)
	if err != nil {
		return models.Tutor{}, fmt.Errorf("can't use this as password. Err: %w", err)
	}

	tutor, err := s.tutorRepo.CreateTutor(ctx, repository.CreateTutorParams{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
	})
	if err != nil {
		return models.Tutor{}, fmt.Errorf("can't create tutor. Err: %w", err)
	}

	return tutor, nil
}

// Login tutor with email and password and issue access token
// Unknown email and wrong password both return apperrors.ErrInvalidCredentials
func (s *AuthService) Login(ctx context.Context, email string, plaintext string) (models.Tutor, models.IssuedToken, error) {
	tutor, err := s.tutorRepo.GetTutorByEmail(ctx, email)

	switch {
	case errors.Is(err, apperrors.ErrTutorNotFound):
		s.passwords.Compare(plaintext, s.unknownTutorHash())
		return models.Tutor{}, models.IssuedToken{}, apperrors.ErrInvalidCredentials
	case err != nil:
		return models.Tutor{}, models.IssuedToken{}, fmt.Errorf("can't get tutor. Err: %w", err)
	}

	if !s.passwords.Compare(plaintext, tutor.PasswordHash) {
		return models.Tutor{}, models.IssuedToken{}, apperrors.ErrInvalidCredentials
	}

	token, err := s.tokenManager.Issue(models.TokenPayload{TutorID: tutor.ID, Email: tutor.Email})
	if err != nil {
		return models.Tutor{}, models.IssuedToken{}, fmt.Errorf("token could not be issued. Err: %w", err)
	}

	return tutor, token, nil
}

// Replace tutor password if current one matches
func (s *AuthService) ChangePassword(ctx context.Context, tutorID int64, current string, next string) error {
	tutor, err := s.tutorRepo.GetTutorByID(ctx, tutorID)
	if err != nil {
		return fmt.Errorf("can't get tutor. Err: %w", err)
	}

	if !s.passwords.Compare(current, tutor.PasswordHash) {
		return apperrors.ErrWrongPassword
	}

	if v := s.passwords.Validate(next); !v.IsValid {
		return &apperrors.ValidationError{Message: v.Message}
	}

	hash, err := s.passwords.Hash(next)
	if err != nil {
		return fmt.Errorf("can't use this as password. Err: %w", err)
	}

	err = s.tutorRepo.UpdatePassword(ctx, tutorID, hash)
	if err != nil {
		return fmt.Errorf("can't update password. Err: %w", err)
	}

	return nil
}

func (s *AuthService) Profile(ctx context.Context, tutorID int64) (models.Tutor, error) {
	tutor, err := s.tutorRepo.GetTutorByID(ctx, tutorID)
	if err != nil {
		return models.Tutor{}, fmt.Errorf("can't get tutor. Err: %w", err)
	}

	return tutor, nil
}

func (s *AuthService) ListTutors(ctx context.Context) ([]models.Tutor, error) {
	tutors, err := s.tutorRepo.ListTutors(ctx)
	if err != nil {
		return nil, fmt.Errorf("can't list tutors. Err: %w", err)
	}

	return tutors, nil
}

// Verify access token
// Has to return apperrors.ErrInvalidToken if token is not valid
func (s *AuthService) Verify(token string) (models.TokenPayload, error) {
	return s.tokenManager.Verify(token)
}

func (s *AuthService) unknownTutorHash() string {
	s.dummyOnce.Do(func() {
		// Error is ignored: empty hash never matches anyway
		s.dummyHash, _ = s.passwords.Hash("unknown tutor placeholder password")
	})

	return s.dummyHash
}
