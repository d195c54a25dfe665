package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"adminpanel/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUserRepoMock(t *testing.T) (UserRepository, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewUserRepository(sqlx.NewDb(db, "postgres")), mock
}

func TestUserRepository_ListUsers(t *testing.T) {
	repo, mock := newUserRepoMock(t)
	now := time.Now()

	t.Run("returns users in query order", func(t *testing.T) {
		mock.ExpectQuery(`SELECT id, username, email, created_at FROM users ORDER BY created_at DESC`).
			WillReturnRows(sqlmock.NewRows([]string{"id", "username", "email", "created_at"}).
				AddRow(2, "b", "b@x.com", now).
				AddRow(1, "a", "a@x.com", now.Add(-time.Hour)))

		users, err := repo.ListUsers(context.Background())

		require.NoError(t, err)
		require.Len(t, users, 2)
		assert.Equal(t, int64(2), users[0].ID)
		assert.Equal(t, "a@x.com", users[1].Email)
	})

	t.Run("empty table gives empty slice", func(t *testing.T) {
		mock.ExpectQuery(`SELECT id, username, email, created_at FROM users ORDER BY created_at DESC`).
			WillReturnRows(sqlmock.NewRows([]string{"id", "username", "email", "created_at"}))

		users, err := repo.ListUsers(context.Background())

		require.NoError(t, err)
		assert.NotNil(t, users)
		assert.Empty(t, users)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_CreateUser(t *testing.T) {
	query := `INSERT INTO users (username, email) VALUES ($1, $2) RETURNING id, username, email, created_at`
	now := time.Now()

	tests := []struct {
		name      string
		setupMock func(mock sqlmock.Sqlmock)
		wantErr   error
		wantID    int64
	}{
		{
			name: "created",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(query).
					WithArgs("alice", "alice@x.com").
					WillReturnRows(sqlmock.NewRows([]string{"id", "username", "email", "created_at"}).
						AddRow(7, "alice", "alice@x.com", now))
			},
			wantID: 7,
		},
		{
			name: "duplicate email",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(query).
					WithArgs("alice", "alice@x.com").
					WillReturnError(&pq.Error{Code: "23505", Message: "duplicate key value violates unique constraint"})
			},
			wantErr: ErrEmailExists,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newUserRepoMock(t)
			tt.setupMock(mock)

			user := &models.User{Username: "alice", Email: "alice@x.com"}
			err := repo.CreateUser(context.Background(), user)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.wantID, user.ID)
				assert.False(t, user.CreatedAt.IsZero())
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestUserRepository_GetUserByID(t *testing.T) {
	query := `SELECT id, username, email, created_at FROM users WHERE id = $1`

	t.Run("found", func(t *testing.T) {
		repo, mock := newUserRepoMock(t)
		mock.ExpectQuery(query).WithArgs(int64(3)).
			WillReturnRows(sqlmock.NewRows([]string{"id", "username", "email", "created_at"}).
				AddRow(3, "c", "c@x.com", time.Now()))

		user, err := repo.GetUserByID(context.Background(), 3)

		require.NoError(t, err)
		assert.Equal(t, "c", user.Username)
	})

	t.Run("not found", func(t *testing.T) {
		repo, mock := newUserRepoMock(t)
		mock.ExpectQuery(query).WithArgs(int64(4)).
			WillReturnRows(sqlmock.NewRows([]string{"id", "username", "email", "created_at"}))

		_, err := repo.GetUserByID(context.Background(), 4)

		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}

func TestUserRepository_DeleteUser(t *testing.T) {
	query := `DELETE FROM users WHERE id = $1`

	tests := []struct {
		name      string
		setupMock func(mock sqlmock.Sqlmock)
		wantErr   error
	}{
		{
			name: "deleted",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(query).WithArgs(int64(1)).WillReturnResult(sqlmock.NewResult(0, 1))
			},
		},
		{
			name: "missing",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(query).WithArgs(int64(1)).WillReturnResult(sqlmock.NewResult(0, 0))
			},
			wantErr: ErrUserNotFound,
		},
		{
			name: "driver failure",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(query).WithArgs(int64(1)).WillReturnError(errors.New("connection reset"))
			},
			wantErr: errors.New("connection reset"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newUserRepoMock(t)
			tt.setupMock(mock)

			err := repo.DeleteUser(context.Background(), 1)

			switch {
			case tt.wantErr == nil:
				assert.NoError(t, err)
			case errors.Is(tt.wantErr, ErrUserNotFound):
				assert.ErrorIs(t, err, ErrUserNotFound)
			default:
				assert.ErrorContains(t, err, tt.wantErr.Error())
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
