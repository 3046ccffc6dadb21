package product

import (
	"github.com/sipworks/brewadmin/internal/product/repository"
	"github.com/sipworks/brewadmin/internal/product/service"
	"go.uber.org/fx"
)

var Module = fx.Module("product.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
