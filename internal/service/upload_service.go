package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"adminpanel/internal/models"
	"adminpanel/internal/storage"
)

var (
	ErrInvalidFileType = errors.New("Invalid file type")
	ErrBadKey          = errors.New("Bad key")
)

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
}

func AllowedImageType(contentType string) bool {
	return allowedImageTypes[contentType]
}

type UploadService interface {
	UploadImage(ctx context.Context, contentType string, file io.Reader, size int64) (*models.UploadedImage, error)
	SignedURL(ctx context.Context, key string) (*models.SignedURL, error)
}

type uploadService struct {
	storage storage.Storage
}

func NewUploadService(storage storage.Storage) UploadService {
	return &uploadService{storage: storage}
}

func (u *uploadService) UploadImage(ctx context.Context, contentType string, file io.Reader, size int64) (*models.UploadedImage, error) {
	if !AllowedImageType(contentType) {
		return nil, ErrInvalidFileType
	}

	key, err := u.storage.UploadImage(ctx, contentType, file, size)
	if err != nil {
		return nil, fmt.Errorf("upload image: %w", err)
	}

	return &models.UploadedImage{Key: key}, nil
}

func (u *uploadService) SignedURL(ctx context.Context, key string) (*models.SignedURL, error) {
	if key == "" || !strings.HasPrefix(key, storage.KeyPrefix) {
		return nil, ErrBadKey
	}

	url, err := u.storage.GetImageURL(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("sign image url: %w", err)
	}

	return &models.SignedURL{
		URL:       url,
		ExpiresIn: int64(u.storage.URLExpiry().Seconds()),
	}, nil
}
