package service

import (
	"context"
	"strings"

	"adminpanel/internal/models"
	"adminpanel/internal/repository"
)

type PostService interface {
	ListPosts(ctx context.Context) ([]models.Post, error)
	ListPostsByUser(ctx context.Context, userID int64) ([]models.Post, error)
	CreatePost(ctx context.Context, userID int64, req models.CreatePostRequest) (*models.Post, error)
	DeletePost(ctx context.Context, postID int64) error
	CountPostsPerUser(ctx context.Context) ([]models.PostCount, error)
}

type postService struct {
	postRepo repository.PostRepository
}

func NewPostService(postRepo repository.PostRepository) PostService {
	return &postService{postRepo: postRepo}
}

func (p *postService) ListPosts(ctx context.Context) ([]models.Post, error) {
	return p.postRepo.GetAll(ctx)
}

func (p *postService) ListPostsByUser(ctx context.Context, userID int64) ([]models.Post, error) {
	return p.postRepo.GetByUserID(ctx, userID)
}

// CreatePost stores a post for userID. The user is not looked up first; the
// foreign key rejects unknown ids.
func (p *postService) CreatePost(ctx context.Context, userID int64, req models.CreatePostRequest) (*models.Post, error) {
	post := &models.Post{
		UserID:    userID,
		Title:     strings.TrimSpace(req.Title),
		Content:   req.Content,
		ImageKey:  req.ImageKey,
		ImageMime: req.ImageMime,
		ImageSize: req.ImageSize,
	}

	if post.Title == "" {
		return nil, ErrTitleRequired
	}

	anyImage := post.ImageKey != nil || post.ImageMime != nil || post.ImageSize != nil
	if anyImage && !post.HasImage() {
		return nil, ErrIncompleteImage
	}

	if err := p.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}

	return post, nil
}

func (p *postService) DeletePost(ctx context.Context, postID int64) error {
	return p.postRepo.Delete(ctx, postID)
}

func (p *postService) CountPostsPerUser(ctx context.Context) ([]models.PostCount, error) {
	return p.postRepo.CountByUser(ctx)
}
