package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/sunugrid/voltara/internal/clock"
	"github.com/sunugrid/voltara/internal/config"
	"github.com/sunugrid/voltara/internal/migration"
	"github.com/sunugrid/voltara/internal/observability"
	"github.com/sunugrid/voltara/internal/server"
	"github.com/sunugrid/voltara/pkg/db"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		// Core infrastructure
		config.Module,
		observability.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		clock.Module,

		// Schema and seed data before the server accepts traffic
		migration.Module,

		// Vending domains and HTTP surface
		server.Module,
	)
	app.Run()
}

func RegisterSnowflake() *snowflake.Node {
	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
	return node
}
