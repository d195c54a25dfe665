package service

import (
	"errors"

	"adminpanel/internal/repository"
)

// Validation failures the handlers report as 400.
var (
	ErrUserFieldsRequired = errors.New("username and email are required")
	ErrInvalidEmail       = errors.New("invalid email")
	ErrTitleRequired      = errors.New("title is required")
	ErrIncompleteImage    = errors.New("image metadata must be complete")
)

// Service groups what a store-owning service process (users or posts) needs.
type Service struct {
	User   UserService
	Post   PostService
	Tables TablesService
}

func NewService(rep *repository.Repository) *Service {
	return &Service{
		User:   NewUserService(rep.User),
		Post:   NewPostService(rep.Post),
		Tables: NewTablesService(rep.Tables),
	}
}
