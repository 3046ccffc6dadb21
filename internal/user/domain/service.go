package domain

import (
	"context"
	"errors"
)

var (
	ErrInvalidID      = errors.New("invalid_user_id")
	ErrInvalidEmail   = errors.New("invalid_user_email")
	ErrInvalidName    = errors.New("invalid_user_name")
	ErrInvalidRole    = errors.New("invalid_user_role")
	ErrDuplicateEmail = errors.New("duplicate_user_email")
	ErrNotFound       = errors.New("user_not_found")
)

type CreateRequest struct {
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
	Role        Role   `json:"role"`
}

type UpdateRequest struct {
	ID string `json:"-"`

	DisplayName *string `json:"display_name"`
	Role        *Role   `json:"role"`
	Active      *bool   `json:"active"`
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*User, error)
	Update(ctx context.Context, req UpdateRequest) (*User, error)
	Get(ctx context.Context, id string) (*User, error)
	List(ctx context.Context) ([]*User, error)
	Deactivate(ctx context.Context, id string) (*User, error)
	Delete(ctx context.Context, id string) error
}
