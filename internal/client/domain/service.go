package domain

import (
	"context"
	"errors"
)

type CreateRequest struct {
	Company  string
	Contact  *string
	Email    *string
	Phone    *string
	Address  *string
	Currency string
	Notes    *string
	Metadata map[string]any
}

type UpdateRequest struct {
	ID       string
	Company  *string
	Contact  *string
	Email    *string
	Phone    *string
	Address  *string
	Currency *string
	Notes    *string
	Metadata map[string]any
}

type ListRequest struct {
	Search   string
	Currency string
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Client, error)
	Update(ctx context.Context, req UpdateRequest) (*Client, error)
	Get(ctx context.Context, id string) (*Client, error)
	List(ctx context.Context, req ListRequest) ([]Client, error)
	Delete(ctx context.Context, id string) error
}

var (
	ErrInvalidCompany = errors.New("invalid_company")
	ErrInvalidID      = errors.New("invalid_id")
	ErrNotFound       = errors.New("not_found")
	ErrClientInUse    = errors.New("client_in_use")
)
