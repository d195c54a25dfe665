package repository

import (
	"context"
	"fmt"

	"adminpanel/internal/models"

	"github.com/jmoiron/sqlx"
)

const postColumns = `id, user_id, title, content, image_key, image_mime, image_size, created_at`

type PostRepositoryImpl struct {
	DB *sqlx.DB
}

func NewPostRepository(db *sqlx.DB) *PostRepositoryImpl {
	return &PostRepositoryImpl{DB: db}
}

func (r *PostRepositoryImpl) GetAll(ctx context.Context) ([]models.Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts ORDER BY id DESC`

	posts := []models.Post{}
	if err := r.DB.SelectContext(ctx, &posts, query); err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}

	return posts, nil
}

func (r *PostRepositoryImpl) GetByUserID(ctx context.Context, userID int64) ([]models.Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts WHERE user_id = $1 ORDER BY id DESC`

	posts := []models.Post{}
	if err := r.DB.SelectContext(ctx, &posts, query, userID); err != nil {
		return nil, fmt.Errorf("list posts of user %d: %w", userID, err)
	}

	return posts, nil
}

// Create inserts the post and fills ID and CreatedAt. A user_id that does not
// reference an existing user yields ErrUserNotFound.
func (r *PostRepositoryImpl) Create(ctx context.Context, post *models.Post) error {
	query := `
		INSERT INTO posts (user_id, title, content, image_key, image_mime, image_size)
		VALUES (:user_id, :title, :content, :image_key, :image_mime, :image_size)
		RETURNING ` + postColumns

	rows, err := r.DB.NamedQueryContext(ctx, query, post)
	if err != nil {
		if pgCode(err) == foreignKeyViolation {
			return ErrUserNotFound
		}
		return fmt.Errorf("create post: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			if pgCode(err) == foreignKeyViolation {
				return ErrUserNotFound
			}
			return fmt.Errorf("create post: %w", err)
		}
		return fmt.Errorf("create post: no row returned")
	}

	if err := rows.StructScan(post); err != nil {
		return fmt.Errorf("create post: scan: %w", err)
	}

	return nil
}

func (r *PostRepositoryImpl) Delete(ctx context.Context, postID int64) error {
	query := `DELETE FROM posts WHERE id = $1`

	result, err := r.DB.ExecContext(ctx, query, postID)
	if err != nil {
		return fmt.Errorf("delete post %d: %w", postID, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete post %d: rows affected: %w", postID, err)
	}

	if rowsAffected == 0 {
		return ErrPostNotFound
	}

	return nil
}

func (r *PostRepositoryImpl) CountByUser(ctx context.Context) ([]models.PostCount, error) {
	query := `SELECT user_id, COUNT(*)::int AS count FROM posts GROUP BY user_id`

	counts := []models.PostCount{}
	if err := r.DB.SelectContext(ctx, &counts, query); err != nil {
		return nil, fmt.Errorf("count posts per user: %w", err)
	}

	return counts, nil
}
