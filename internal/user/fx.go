package user

import (
	"github.com/sipworks/brewadmin/internal/user/domain"
	"github.com/sipworks/brewadmin/internal/user/service"
	"github.com/sipworks/brewadmin/pkg/repository"
	"go.uber.org/fx"
)

var Module = fx.Module("user.service",
	fx.Provide(repository.ProvideStore[domain.User]),
	fx.Provide(service.New),
)
