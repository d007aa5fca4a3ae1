package main

import (
	"github.com/pdcgo/shared/configs"
	"github.com/pdcgo/shared/db_connect"
	"github.com/pdcgo/treasury_service"
	"gorm.io/gorm"
)

func NewDatabase(cfg *configs.AppConfig) (*gorm.DB, error) {
	return db_connect.NewProductionDatabase("treasury_migration", &cfg.Database)
}

type Migration struct {
	Run func() error
}

func NewMigration(
	migrate treasury_service.MigrationHandler,
	seed treasury_service.SeedHandler,
) *Migration {
	return &Migration{
		Run: func() error {
			err := migrate()
			if err != nil {
				return err
			}

			return seed()
		},
	}
}

func main() {
	mig, err := InitializeMigration()
	if err != nil {
		panic(err)
	}

	err = mig.Run()
	if err != nil {
		panic(err)
	}
}
