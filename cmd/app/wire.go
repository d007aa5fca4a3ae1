//go:build wireinject
// +build wireinject

package main

import (
	"net/http"

	"github.com/google/wire"
	"github.com/pdcgo/shared/configs"
	"github.com/pdcgo/treasury_service"
	"github.com/pdcgo/treasury_service/settlement"
)

func InitializeApp() (*App, error) {
	wire.Build(
		configs.NewProductionConfig,
		http.NewServeMux,
		NewCache,
		NewDatabase,
		NewAuthorization,
		NewSweepDispatcher,
		NewSweepHost,
		settlement.NewSweepScheduler,
		treasury_service.NewRegister,
		NewApp,
	)

	return &App{}, nil
}
