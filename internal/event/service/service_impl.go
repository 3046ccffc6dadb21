package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/sipworks/brewadmin/internal/event/domain"
	"github.com/sipworks/brewadmin/pkg/repository"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Params struct {
	fx.In

	Log   *zap.Logger
	GenID *snowflake.Node
	Store repository.Repository[domain.Event]
}

type service struct {
	log   *zap.Logger
	genID *snowflake.Node
	store repository.Repository[domain.Event]
}

func New(p Params) domain.Service {
	return &service{
		log:   p.Log.Named("event.service"),
		genID: p.GenID,
		store: p.Store,
	}
}

func (s *service) Create(ctx context.Context, req domain.CreateRequest) (*domain.Event, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, domain.ErrInvalidTitle
	}
	if req.StartsAt.IsZero() {
		return nil, domain.ErrInvalidWindow
	}
	if req.EndsAt != nil && req.EndsAt.Before(req.StartsAt) {
		return nil, domain.ErrInvalidWindow
	}

	now := time.Now().UTC()
	event := &domain.Event{
		ID:        s.genID.Generate(),
		Title:     title,
		Venue:     req.Venue,
		StartsAt:  req.StartsAt,
		EndsAt:    req.EndsAt,
		Status:    domain.EventStatusPlanned,
		Notes:     req.Notes,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.store.Create(ctx, event); err != nil {
		return nil, err
	}
	return event, nil
}

func (s *service) Update(ctx context.Context, req domain.UpdateRequest) (*domain.Event, error) {
	event, err := s.find(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return nil, domain.ErrInvalidTitle
		}
		event.Title = title
	}
	if req.Venue != nil {
		event.Venue = req.Venue
	}
	if req.StartsAt != nil {
		event.StartsAt = *req.StartsAt
	}
	if req.EndsAt != nil {
		event.EndsAt = req.EndsAt
	}
	if req.Status != nil {
		switch *req.Status {
		case domain.EventStatusPlanned, domain.EventStatusDone, domain.EventStatusCancelled:
			event.Status = *req.Status
		default:
			return nil, domain.ErrInvalidStatus
		}
	}
	if req.Notes != nil {
		event.Notes = req.Notes
	}
	if event.EndsAt != nil && event.EndsAt.Before(event.StartsAt) {
		return nil, domain.ErrInvalidWindow
	}

	event.UpdatedAt = time.Now().UTC()
	if err := s.store.Save(ctx, event); err != nil {
		return nil, err
	}
	return event, nil
}

func (s *service) Get(ctx context.Context, id string) (*domain.Event, error) {
	return s.find(ctx, id)
}

func (s *service) List(ctx context.Context, req domain.ListRequest) ([]*domain.Event, error) {
	query := &domain.Event{}
	if req.Status != nil {
		query.Status = *req.Status
	}
	return s.store.Find(ctx, query, "starts_at DESC")
}

func (s *service) Delete(ctx context.Context, id string) error {
	event, err := s.find(ctx, id)
	if err != nil {
		return err
	}
	return s.store.Delete(ctx, event.ID.String())
}

func (s *service) find(ctx context.Context, id string) (*domain.Event, error) {
	eventID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return nil, domain.ErrInvalidID
	}
	event, err := s.store.FindOne(ctx, &domain.Event{ID: eventID})
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, domain.ErrNotFound
	}
	return event, nil
}
