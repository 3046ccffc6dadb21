package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/sipworks/brewadmin/internal/user/domain"
	"github.com/sipworks/brewadmin/pkg/db"
	"github.com/sipworks/brewadmin/pkg/repository"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Params struct {
	fx.In

	Log   *zap.Logger
	GenID *snowflake.Node
	Store repository.Repository[domain.User]
}

type service struct {
	log   *zap.Logger
	genID *snowflake.Node
	store repository.Repository[domain.User]
}

func New(p Params) domain.Service {
	return &service{
		log:   p.Log.Named("user.service"),
		genID: p.GenID,
		store: p.Store,
	}
}

func (s *service) Create(ctx context.Context, req domain.CreateRequest) (*domain.User, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, domain.ErrInvalidEmail
	}
	name := strings.TrimSpace(req.DisplayName)
	if name == "" {
		return nil, domain.ErrInvalidName
	}
	role := req.Role
	if role == "" {
		role = domain.RoleStaff
	}
	if role != domain.RoleAdmin && role != domain.RoleStaff {
		return nil, domain.ErrInvalidRole
	}

	now := time.Now().UTC()
	user := &domain.User{
		ID:          s.genID.Generate(),
		Email:       email,
		DisplayName: name,
		Role:        role,
		Active:      true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.store.Create(ctx, user); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return nil, domain.ErrDuplicateEmail
		}
		return nil, err
	}
	return user, nil
}

func (s *service) Update(ctx context.Context, req domain.UpdateRequest) (*domain.User, error) {
	user, err := s.find(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	if req.DisplayName != nil {
		name := strings.TrimSpace(*req.DisplayName)
		if name == "" {
			return nil, domain.ErrInvalidName
		}
		user.DisplayName = name
	}
	if req.Role != nil {
		if *req.Role != domain.RoleAdmin && *req.Role != domain.RoleStaff {
			return nil, domain.ErrInvalidRole
		}
		user.Role = *req.Role
	}
	if req.Active != nil {
		user.Active = *req.Active
	}

	user.UpdatedAt = time.Now().UTC()
	if err := s.store.Save(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *service) Get(ctx context.Context, id string) (*domain.User, error) {
	return s.find(ctx, id)
}

func (s *service) List(ctx context.Context) ([]*domain.User, error) {
	return s.store.Find(ctx, &domain.User{}, "created_at ASC")
}

func (s *service) Deactivate(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if !user.Active {
		return user, nil
	}

	user.Active = false
	user.UpdatedAt = time.Now().UTC()
	if err := s.store.Save(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	user, err := s.find(ctx, id)
	if err != nil {
		return err
	}
	return s.store.Delete(ctx, user.ID.String())
}

func (s *service) find(ctx context.Context, id string) (*domain.User, error) {
	userID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return nil, domain.ErrInvalidID
	}
	user, err := s.store.FindOne(ctx, &domain.User{ID: userID})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrNotFound
	}
	return user, nil
}
