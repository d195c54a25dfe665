package models

import (
	"time"
)

type User struct {
	ID        int64     `json:"id" db:"id"`
	Username  string    `json:"username" db:"username"`
	Email     string    `json:"email" db:"email"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// CreateUserRequest is checked and trimmed by the user service.
type CreateUserRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

// Post image fields are either all set or all nil.
type Post struct {
	ID        int64     `json:"id" db:"id"`
	UserID    int64     `json:"user_id" db:"user_id"`
	Title     string    `json:"title" db:"title"`
	Content   string    `json:"content" db:"content"`
	ImageKey  *string   `json:"image_key,omitempty" db:"image_key"`
	ImageMime *string   `json:"image_mime,omitempty" db:"image_mime"`
	ImageSize *int64    `json:"image_size,omitempty" db:"image_size"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

func (p *Post) HasImage() bool {
	return p.ImageKey != nil && p.ImageMime != nil && p.ImageSize != nil
}

type CreatePostRequest struct {
	Title     string  `json:"title" validate:"required"`
	Content   string  `json:"content"`
	ImageKey  *string `json:"imageKey" validate:"omitempty,startswith=posts/"`
	ImageMime *string `json:"imageMime" validate:"omitempty,oneof=image/jpeg image/png image/webp"`
	ImageSize *int64  `json:"imageSize" validate:"omitempty,gt=0"`
}

// PostCount is one row of the per-user post count aggregate.
type PostCount struct {
	UserID int64 `json:"user_id" db:"user_id"`
	Count  int64 `json:"count" db:"count"`
}

type UserWithCount struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	PostCount int64  `json:"postCount"`
}

type UserSummary struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// EnrichedPost carries its author inline; User is nil (null in JSON) when the
// post's user_id matched nobody in the fetched user list.
type EnrichedPost struct {
	ID      int64        `json:"id"`
	Title   string       `json:"title"`
	Content string       `json:"content"`
	User    *UserSummary `json:"user"`
}

type UploadedImage struct {
	Key string `json:"key"`
}

type SignedURL struct {
	URL       string `json:"url"`
	ExpiresIn int64  `json:"expiresIn"`
}
