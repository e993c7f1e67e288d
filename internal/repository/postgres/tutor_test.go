package postgres

import (
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tutorpocket/backend/internal/apperrors"
	"github.com/tutorpocket/backend/internal/repository"
	"github.com/tutorpocket/backend/internal/testutil"
)

func Test_TutorRepo(t *testing.T) {
	t.Parallel() // It's ok to run in parallel with other tests, but not with subtests

	pg := testutil.StartPostgresContainer(t)
	t.Cleanup(pg.Terminate)

	params := repository.CreateTutorParams{
		Name:         "Kim Tutor",
		Email:        "kim@example.com",
		PasswordHash: "hashedpassword123",
	}

	t.Run("create tutor ok", func(t *testing.T) {
		testutil.WithTx(pg.Pool, t, func(tx pgx.Tx) {
			r := TutorRepo{DB: tx}

			tutor, err := r.CreateTutor(t.Context(), params)

			require.NoError(t, err)
			assert.Greater(t, tutor.ID, int64(0), "ID should be generated")
			assert.Equal(t, "Kim Tutor", tutor.Name)
			assert.Equal(t, "kim@example.com", tutor.Email)
			assert.Equal(t, "hashedpassword123", tutor.PasswordHash)
			assert.WithinDuration(t, time.Now(), tutor.CreatedAt, time.Second, "CreatedAt should be recent")
		})
	})

	t.Run("create tutor duplicate email fails", func(t *testing.T) {
		testutil.WithTx(pg.Pool, t, func(tx pgx.Tx) {
			r := TutorRepo{DB: tx}
			_, err := r.CreateTutor(t.Context(), params)
			require.NoError(t, err)

			_, err = r.CreateTutor(t.Context(), repository.CreateTutorParams{
				Name:         "Another Name",
				Email:        params.Email,
				PasswordHash: "otherhash",
			})

			assert.ErrorIs(t, err, apperrors.ErrTutorAlreadyExists, "should return well known error")
		})
	})

	t.Run("get tutor by id ok", func(t *testing.T) {
		testutil.WithTx(pg.Pool, t, func(tx pgx.Tx) {
			r := TutorRepo{DB: tx}
			created, err := r.CreateTutor(t.Context(), params)
			require.NoError(t, err)

			got, err := r.GetTutorByID(t.Context(), created.ID)

			require.NoError(t, err)
			assert.Equal(t, created, got)
		})
	})

	t.Run("get tutor by id not found", func(t *testing.T) {
		testutil.WithTx(pg.Pool, t, func(tx pgx.Tx) {
			r := TutorRepo{DB: tx}

			_, err := r.GetTutorByID(t.Context(), 99999)

			assert.ErrorIs(t, err, apperrors.ErrTutorNotFound, "should return well known error")
		})
	})

	t.Run("get tutor by email ok", func(t *testing.T) {
		testutil.WithTx(pg.Pool, t, func(tx pgx.Tx) {
			r := TutorRepo{DB: tx}
			created, err := r.CreateTutor(t.Context(), params)
			require.NoError(t, err)

			got, err := r.GetTutorByEmail(t.Context(), "kim@example.com")

			require.NoError(t, err)
			assert.Equal(t, created, got)
		})
	})

	t.Run("get tutor by email not found", func(t *testing.T) {
		testutil.WithTx(pg.Pool, t, func(tx pgx.Tx) {
			r := TutorRepo{DB: tx}

			_, err := r.GetTutorByEmail(t.Context(), "nobody@example.com")

			assert.ErrorIs(t, err, apperrors.ErrTutorNotFound)
		})
	})

	t.Run("list tutors", func(t *testing.T) {
		testutil.WithTx(pg.Pool, t, func(tx pgx.Tx) {
			r := TutorRepo{DB: tx}

			empty, err := r.ListTutors(t.Context())
			require.NoError(t, err)
			require.Empty(t, empty)

			first, err := r.CreateTutor(t.Context(), params)
			require.NoError(t, err)
			second, err := r.CreateTutor(t.Context(), repository.CreateTutorParams{
				Name:         "Lee Tutor",
				Email:        "lee@example.com",
				PasswordHash: "hash",
			})
			require.NoError(t, err)

			got, err := r.ListTutors(t.Context())

			require.NoError(t, err)
			require.Len(t, got, 2)
			assert.Equal(t, first.ID, got[0].ID, "tutors ordered by id")
			assert.Equal(t, second.ID, got[1].ID, "tutors ordered by id")
		})
	})

	t.Run("update password ok", func(t *testing.T) {
		testutil.WithTx(pg.Pool, t, func(tx pgx.Tx) {
			r := TutorRepo{DB: tx}
			created, err := r.CreateTutor(t.Context(), params)
			require.NoError(t, err)

			err = r.UpdatePassword(t.Context(), created.ID, "new-hash")
			require.NoError(t, err)

			got, err := r.GetTutorByID(t.Context(), created.ID)
			require.NoError(t, err)
			assert.Equal(t, "new-hash", got.PasswordHash)
		})
	})

	t.Run("update password not found", func(t *testing.T) {
		testutil.WithTx(pg.Pool, t, func(tx pgx.Tx) {
			r := TutorRepo{DB: tx}

			err := r.UpdatePassword(t.Context(), 99999, "new-hash")

			assert.ErrorIs(t, err, apperrors.ErrTutorNotFound)
		})
	})
}
