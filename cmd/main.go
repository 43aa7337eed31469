// Package main is the entry point for the parcel service.
//
// @title           Parcel Service API
// @version         1.0.0
// @description     Estimates the smallest rectangular parcel a set of items packs into.
//
// @contact.name   API Support
// @contact.url    https://github.com/guttosm/parcel-service
//
// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT
//
// @host      localhost:8080
// @BasePath  /
//
// @securityDefinitions.apikey  ApiKeyAuth
// @in                          header
// @name                        X-API-Key
//
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
// @description                 "Bearer " followed by an HS256 token.
//
// @tag.name        Packing
// @tag.description Parcel size estimation
//
// @tag.name        Catalog
// @tag.description Products and container hypotheses
//
// @tag.name        Health
// @tag.description Health check endpoints
package main

import (
	"context"
	"time"

	_ "github.com/guttosm/parcel-service/docs" // swagger docs

	"github.com/guttosm/parcel-service/config"
	"github.com/guttosm/parcel-service/internal/app"
	"github.com/rs/zerolog/log"
)

func main() {
	cfg := config.Load()

	a := app.InitializeApp(cfg)
	server := app.NewServer(a.Router, cfg.Server)

	err := server.Run()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	a.Close(ctx)
	cancel()

	if err != nil {
		log.Fatal().Err(err).Msg("server error")
	}
}
