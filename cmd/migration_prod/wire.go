//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"
	"github.com/pdcgo/shared/configs"
	"github.com/pdcgo/treasury_service"
)

func InitializeMigration() (*Migration, error) {
	wire.Build(
		configs.NewProductionConfig,
		NewDatabase,
		treasury_service.NewMigrationHandler,
		treasury_service.NewSeedHandler,
		NewMigration,
	)

	return &Migration{}, nil
}
