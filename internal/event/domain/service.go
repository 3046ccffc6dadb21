package domain

import (
	"context"
	"errors"
	"time"
)

var (
	ErrInvalidID     = errors.New("invalid_event_id")
	ErrInvalidTitle  = errors.New("invalid_event_title")
	ErrInvalidWindow = errors.New("invalid_event_window")
	ErrInvalidStatus = errors.New("invalid_event_status")
	ErrNotFound      = errors.New("event_not_found")
)

type CreateRequest struct {
	Title    string     `json:"title"`
	Venue    *string    `json:"venue"`
	StartsAt time.Time  `json:"starts_at"`
	EndsAt   *time.Time `json:"ends_at"`
	Notes    *string    `json:"notes"`
}

type UpdateRequest struct {
	ID string `json:"-"`

	Title    *string      `json:"title"`
	Venue    *string      `json:"venue"`
	StartsAt *time.Time   `json:"starts_at"`
	EndsAt   *time.Time   `json:"ends_at"`
	Status   *EventStatus `json:"status"`
	Notes    *string      `json:"notes"`
}

type ListRequest struct {
	Status *EventStatus `form:"status"`
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Event, error)
	Update(ctx context.Context, req UpdateRequest) (*Event, error)
	Get(ctx context.Context, id string) (*Event, error)
	List(ctx context.Context, req ListRequest) ([]*Event, error)
	Delete(ctx context.Context, id string) error
}
