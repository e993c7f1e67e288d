package handlers

import (
	"context"
	"net/http"

	"github.com/tutorpocket/backend/internal/handlers/middleware"
	"github.com/tutorpocket/backend/internal/logger"
	"github.com/tutorpocket/backend/internal/models"
)

// chain applies middlewares in the given order: m1(m2(...(h)))
func chain(h http.Handler, mds ...func(next http.Handler) http.Handler) http.Handler {
	for i := len(mds) - 1; i >= 0; i-- {
		h = mds[i](h)
	}
	return h
}

func NewRouter(
	authService authService,
	logger logger.Logger,
) http.Handler {
	withAuth := middleware.AuthMiddleware(authService)

	apitutors := http.NewServeMux()

	apitutors.Handle("POST /register", handleRegister(authService, logger))
	apitutors.Handle("POST /login", handleLogin(authService, logger))

	apitutors.Handle("GET /profile", withAuth(handleProfile(authService, logger)))
	apitutors.Handle("GET /{$}", withAuth(handleListTutors(authService, logger)))
	apitutors.Handle("PATCH /{id}/change-password", withAuth(handleChangePassword(authService, logger)))

	root := http.NewServeMux()
	root.Handle("/api/tutors/", http.StripPrefix("/api/tutors", apitutors))

	handler := chain(root,
		middleware.LoggerMiddleware(logger),
	)

	return handler
}

type authService interface {
	// Register tutor with name, email and password
	// Has to return *apperrors.ValidationError if password is too weak
	// Has to return apperrors.ErrTutorAlreadyExists if email is taken
	Register(ctx context.Context, name string, email string, password string) (models.Tutor, error)

	// Login tutor with email and password
	// Has to return apperrors.ErrInvalidCredentials if email unknown or password wrong
	Login(ctx context.Context, email string, password string) (models.Tutor, models.IssuedToken, error)

	// Has to return apperrors.ErrTutorNotFound if tutor not found
	Profile(ctx context.Context, tutorID int64) (models.Tutor, error)

	ListTutors(ctx context.Context) ([]models.Tutor, error)

	// Has to return apperrors.ErrWrongPassword if current password does not match
	// Has to return *apperrors.ValidationError if next password is too weak
	ChangePassword(ctx context.Context, tutorID int64, current string, next string) error

	// Verify access token and return its payload
	Verify(token string) (models.TokenPayload, error)
}
