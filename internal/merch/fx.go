package merch

import (
	"github.com/sipworks/brewadmin/internal/merch/domain"
	"github.com/sipworks/brewadmin/internal/merch/service"
	"github.com/sipworks/brewadmin/pkg/repository"
	"go.uber.org/fx"
)

var Module = fx.Module("merch.service",
	fx.Provide(repository.ProvideStore[domain.MerchItem]),
	fx.Provide(service.New),
)
