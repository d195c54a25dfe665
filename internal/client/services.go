package client

import (
	"context"
	"net/http"

	"adminpanel/internal/models"
)

type UsersClient struct {
	*Client
}

func NewUsersClient(baseURL string, httpClient *http.Client) *UsersClient {
	return &UsersClient{Client: New(baseURL, httpClient)}
}

// ListUsers calls GET /users on the users service.
func (c *UsersClient) ListUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := c.GetJSON(ctx, "/users", &users); err != nil {
		return nil, err
	}
	if users == nil {
		users = []models.User{}
	}
	return users, nil
}

type PostsClient struct {
	*Client
}

func NewPostsClient(baseURL string, httpClient *http.Client) *PostsClient {
	return &PostsClient{Client: New(baseURL, httpClient)}
}

func (c *PostsClient) ListPosts(ctx context.Context) ([]models.Post, error) {
	var posts []models.Post
	if err := c.GetJSON(ctx, "/posts", &posts); err != nil {
		return nil, err
	}
	if posts == nil {
		posts = []models.Post{}
	}
	return posts, nil
}

func (c *PostsClient) CountPostsPerUser(ctx context.Context) ([]models.PostCount, error) {
	var counts []models.PostCount
	if err := c.GetJSON(ctx, "/posts/counts", &counts); err != nil {
		return nil, err
	}
	if counts == nil {
		counts = []models.PostCount{}
	}
	return counts, nil
}
