package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/sipworks/brewadmin/internal/analytics"
	"github.com/sipworks/brewadmin/internal/client"
	"github.com/sipworks/brewadmin/internal/config"
	"github.com/sipworks/brewadmin/internal/event"
	"github.com/sipworks/brewadmin/internal/inventory"
	"github.com/sipworks/brewadmin/internal/invoice"
	"github.com/sipworks/brewadmin/internal/merch"
	"github.com/sipworks/brewadmin/internal/migration"
	"github.com/sipworks/brewadmin/internal/observability"
	"github.com/sipworks/brewadmin/internal/product"
	"github.com/sipworks/brewadmin/internal/server"
	"github.com/sipworks/brewadmin/internal/user"
	"github.com/sipworks/brewadmin/pkg/db"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		config.Module,
		observability.Module,
		fx.Provide(registerSnowflake),
		db.Module,
		migration.Module,

		product.Module,
		inventory.Module,
		client.Module,
		invoice.Module,
		event.Module,
		merch.Module,
		user.Module,
		analytics.Module,

		server.Module,
	)
	app.Run()
}

func registerSnowflake() *snowflake.Node {
	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
	return node
}
