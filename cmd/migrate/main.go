// Command migrate aplica las migraciones embebidas con goose.
//
//	go run ./cmd/migrate -cmd up
//	go run ./cmd/migrate -cmd down-to -version 1
package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/masonbass/retail-api/internal/infrastructure/postgres"
	"github.com/masonbass/retail-api/pkg/config"
	"github.com/masonbass/retail-api/pkg/logger"
)

func main() {
	command := flag.String("cmd", "up", "comando goose: up, up-to, down, down-to, status, version, reset")
	version := flag.String("version", "", "versión destino para up-to / down-to")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	var args []string
	if *version != "" {
		args = append(args, *version)
	}
	if err := postgres.Migrate(ctx, pool, *command, args...); err != nil {
		log.Error().Err(err).Str("cmd", *command).Msg("migración fallida")
		pool.Close()
		os.Exit(1)
	}
	log.Info().Str("cmd", *command).Msg("migración completada")
}
