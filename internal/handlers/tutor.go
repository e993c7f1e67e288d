package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/tutorpocket/backend/internal/apperrors"
	"github.com/tutorpocket/backend/internal/handlers/authctx"
	"github.com/tutorpocket/backend/internal/handlers/render"
	"github.com/tutorpocket/backend/internal/logger"
	"github.com/tutorpocket/backend/internal/models"
)

// Tutor as returned to clients, never contains password hash
type tutorResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

func newTutorResponse(t models.Tutor) tutorResponse {
	return tutorResponse{ID: t.ID, Name: t.Name, Email: t.Email, CreatedAt: t.CreatedAt}
}

func handleRegister(s authService, l logger.Logger) http.Handler {
	type request struct {
		Name     string `json:"name" validate:"required,notblank,max=100"`
		Email    string `json:"email" validate:"required,email,max=254"`
		Password string `json:"password" validate:"required"`
	}
	type response struct {
		Tutor   tutorResponse `json:"tutor"`
		Message string        `json:"message"`
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, err := render.BindAndValidate[request](w, r)
		if err != nil {
			return
		}

		tutor, err := s.Register(r.Context(), data.Name, data.Email, data.Password)
		if err != nil {
			var verr *apperrors.ValidationError
			switch {
			case errors.As(err, &verr):
				render.ServiceError(w, verr.Message, http.StatusBadRequest)
			case errors.Is(err, apperrors.ErrTutorAlreadyExists):
				render.ServiceError(w, "Tutor with this email already exists", http.StatusConflict)
			default:
				l.Error("tutor registration failed", "error", err.Error())
				render.ServiceError(w, "Internal server error", http.StatusInternalServerError)
			}
			return
		}

		render.JSONWithStatus(w, response{
			Tutor:   newTutorResponse(tutor),
			Message: "Tutor registered successfully",
		}, http.StatusCreated)
	})
}

func handleLogin(s authService, l logger.Logger) http.Handler {
	type request struct {
		Email    string `json:"email" validate:"required"`
		Password string `json:"password" validate:"required"`
	}
	type response struct {
		Tutor     tutorResponse `json:"tutor"`
		Token     string        `json:"token"`
		ExpiresAt time.Time     `json:"expiresAt"`
		Message   string        `json:"message"`
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, err := render.BindAndValidate[request](w, r)
		if err != nil {
			return
		}

		tutor, token, err := s.Login(r.Context(), data.Email, data.Password)
		if err != nil {
			switch {
			case errors.Is(err, apperrors.ErrInvalidCredentials):
				render.ServiceError(w, "Invalid email or password", http.StatusUnauthorized)
			default:
				l.Error("tutor login failed", "error", err.Error())
				render.ServiceError(w, "Internal server error", http.StatusInternalServerError)
			}
			return
		}

		render.JSON(w, response{
			Tutor:     newTutorResponse(tutor),
			Token:     token.Value,
			ExpiresAt: token.ExpiresAt,
			Message:   "Tutor logged in successfully",
		})
	})
}

func handleProfile(s authService, l logger.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		payload, _ := authctx.FromContext(r.Context())

		tutor, err := s.Profile(r.Context(), payload.TutorID)
		if err != nil {
			switch {
			case errors.Is(err, apperrors.ErrTutorNotFound):
				render.ServiceError(w, "Tutor not found", http.StatusNotFound)
			default:
				l.Error("tutor profile failed", "error", err.Error(), "tutor_id", payload.TutorID)
				render.ServiceError(w, "Internal server error", http.StatusInternalServerError)
			}
			return
		}

		render.JSON(w, newTutorResponse(tutor))
	})
}

func handleListTutors(s authService, l logger.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tutors, err := s.ListTutors(r.Context())
		if err != nil {
			l.Error("tutors listing failed", "error", err.Error())
			render.ServiceError(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		response := make([]tutorResponse, 0, len(tutors))
		for _, t := range tutors {
			response = append(response, newTutorResponse(t))
		}

		render.JSON(w, response)
	})
}

func handleChangePassword(s authService, l logger.Logger) http.Handler {
	type request struct {
		CurrentPassword string `json:"currentPassword" validate:"required"`
		NewPassword     string `json:"newPassword" validate:"required"`
	}
	type response struct {
		Message string `json:"message"`
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tutorID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
		if err != nil {
			render.ServiceError(w, "Tutor id must be a number", http.StatusBadRequest)
			return
		}

		// Tutors may change only their own password
		payload, _ := authctx.FromContext(r.Context())
		if payload.TutorID != tutorID {
			render.ServiceError(w, "Not allowed to change password of another tutor", http.StatusForbidden)
			return
		}

		data, err := render.BindAndValidate[request](w, r)
		if err != nil {
			return
		}

		err = s.ChangePassword(r.Context(), tutorID, data.CurrentPassword, data.NewPassword)
		if err != nil {
			var verr *apperrors.ValidationError
			switch {
			case errors.As(err, &verr):
				render.ServiceError(w, verr.Message, http.StatusBadRequest)
			case errors.Is(err, apperrors.ErrWrongPassword):
				render.ServiceError(w, "Current password is wrong", http.StatusBadRequest)
			case errors.Is(err, apperrors.ErrTutorNotFound):
				render.ServiceError(w, "Tutor not found", http.StatusNotFound)
			default:
				l.Error("password change failed", "error", err.Error(), "tutor_id", tutorID)
				render.ServiceError(w, "Internal server error", http.StatusInternalServerError)
			}
			return
		}

		render.JSON(w, response{Message: "Password changed successfully"})
	})
}
