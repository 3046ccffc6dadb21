package client

import (
	"github.com/sipworks/brewadmin/internal/client/repository"
	"github.com/sipworks/brewadmin/internal/client/service"
	"go.uber.org/fx"
)

var Module = fx.Module("client.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
