package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/tutorpocket/backend/internal/apperrors"
	"github.com/tutorpocket/backend/internal/models"
	"github.com/tutorpocket/backend/internal/repository"
)

type TutorRepo struct {
	DB DBTX
}

const createTutor = `-- name: CreateTutor
INSERT INTO tutors (name, email, password_hash)
VALUES ($1, $2, $3)
RETURNING id, created_at, name, email, password_hash
`

func (r *TutorRepo) CreateTutor(ctx context.Context, arg repository.CreateTutorParams) (models.Tutor, error) {
	rows, _ := r.DB.Query(ctx, createTutor, arg.Name, arg.Email, arg.PasswordHash)
	tutor, err := pgx.CollectOneRow(rows, rowToTutor)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return tutor, apperrors.ErrTutorAlreadyExists
		}

		return tutor, fmt.Errorf("db error: %w", err)
	}

	return tutor, nil
}

const getTutorByID = `-- name: GetTutorByID
SELECT id, created_at, name, email, password_hash FROM tutors
WHERE id = $1
`

func (r *TutorRepo) GetTutorByID(ctx context.Context, id int64) (models.Tutor, error) {
	rows, _ := r.DB.Query(ctx, getTutorByID, id)
	return collectTutor(rows)
}

const getTutorByEmail = `-- name: GetTutorByEmail
SELECT id, created_at, name, email, password_hash FROM tutors
WHERE email = $1
`

func (r *TutorRepo) GetTutorByEmail(ctx context.Context, email string) (models.Tutor, error) {
	rows, _ := r.DB.Query(ctx, getTutorByEmail, email)
	return collectTutor(rows)
}

const listTutors = `-- name: ListTutors
SELECT id, created_at, name, email, password_hash FROM tutors
ORDER BY id
`

func (r *TutorRepo) ListTutors(ctx context.Context) ([]models.Tutor, error) {
	rows, _ := r.DB.Query(ctx, listTutors)
	tutors, err := pgx.CollectRows(rows, rowToTutor)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return tutors, nil
}

const updatePassword = `-- name: UpdatePassword
UPDATE tutors
SET password_hash = $2
WHERE id = $1
`

func (r *TutorRepo) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	tag, err := r.DB.Exec(ctx, updatePassword, id, passwordHash)

	switch {
	case err != nil:
		return fmt.Errorf("db error: %w", err)
	case tag.RowsAffected() == 0:
		return apperrors.ErrTutorNotFound
	default:
		return nil
	}
}

func collectTutor(rows pgx.Rows) (models.Tutor, error) {
	tutor, err := pgx.CollectOneRow(rows, rowToTutor)

	switch {
	case err == nil:
		return tutor, nil
	case errors.Is(err, pgx.ErrNoRows):
		return tutor, apperrors.ErrTutorNotFound
	default:
		return tutor, fmt.Errorf("db error: %w", err)
	}
}

func rowToTutor(row pgx.CollectableRow) (models.Tutor, error) {
	var t models.Tutor
	err := row.Scan(&t.ID, &t.CreatedAt, &t.Name, &t.Email, &t.PasswordHash)
	return t, err
}
