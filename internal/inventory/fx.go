package inventory

import (
	"github.com/sipworks/brewadmin/internal/inventory/service"
	"go.uber.org/fx"
)

var Module = fx.Module("inventory.service",
	fx.Provide(service.New),
)
