package migration

import (
	clientdomain "github.com/sipworks/brewadmin/internal/client/domain"
	"github.com/sipworks/brewadmin/internal/config"
	eventdomain "github.com/sipworks/brewadmin/internal/event/domain"
	inventorydomain "github.com/sipworks/brewadmin/internal/inventory/domain"
	invoicedomain "github.com/sipworks/brewadmin/internal/invoice/domain"
	merchdomain "github.com/sipworks/brewadmin/internal/merch/domain"
	productdomain "github.com/sipworks/brewadmin/internal/product/domain"
	userdomain "github.com/sipworks/brewadmin/internal/user/domain"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Module("migrations",
	fx.Invoke(func(conn *gorm.DB, cfg config.Config) error {
		if cfg.DBType == "postgres" {
			sqlDB, err := conn.DB()
			if err != nil {
				return err
			}
			return RunMigrations(sqlDB)
		}

		// mysql and sqlite deployments get the gorm-derived schema instead
		// of versioned SQL.
		return conn.AutoMigrate(
			&productdomain.Product{},
			&inventorydomain.StockLevel{},
			&inventorydomain.StockMovement{},
			&clientdomain.Client{},
			&invoicedomain.Invoice{},
			&invoicedomain.InvoiceItem{},
			&eventdomain.Event{},
			&merchdomain.MerchItem{},
			&userdomain.User{},
		)
	}),
)
