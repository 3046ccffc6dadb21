package event

import (
	"github.com/sipworks/brewadmin/internal/event/domain"
	"github.com/sipworks/brewadmin/internal/event/service"
	"github.com/sipworks/brewadmin/pkg/repository"
	"go.uber.org/fx"
)

var Module = fx.Module("event.service",
	fx.Provide(repository.ProvideStore[domain.Event]),
	fx.Provide(service.New),
)
