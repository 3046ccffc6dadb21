package invoice

import (
	"github.com/sipworks/brewadmin/internal/invoice/render"
	"github.com/sipworks/brewadmin/internal/invoice/repository"
	"github.com/sipworks/brewadmin/internal/invoice/service"
	"go.uber.org/fx"
)

var Module = fx.Module("invoice.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.NewService),
	fx.Provide(render.NewRenderer),
)
