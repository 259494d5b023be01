package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/founderspc/somanager/internal/clock"
	"github.com/founderspc/somanager/internal/config"
	"github.com/founderspc/somanager/internal/logger"
	"github.com/founderspc/somanager/internal/migration"
	"github.com/founderspc/somanager/internal/server"
	"github.com/founderspc/somanager/pkg/db"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		config.Module,
		logger.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		clock.Module,
		migration.Module,
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
