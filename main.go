package main

import (
	"fmt"

	"github.com/JRBelisario/livro-caixa-mei/internal/config"
	"github.com/JRBelisario/livro-caixa-mei/internal/database"
	"github.com/JRBelisario/livro-caixa-mei/internal/logger"
	"github.com/JRBelisario/livro-caixa-mei/internal/router"

	"github.com/joho/godotenv"
)

func main() {
	// optional .env for local overrides, read by viper's AutomaticEnv
	_ = godotenv.Load()

	cfg, err := config.Load("config.yaml")
	if err != nil {
		panic(fmt.Sprintf("load config: %v", err))
	}

	log := logger.New(cfg.Log.Level)

	db, err := database.Init(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("init database")
	}

	if err := database.AutoMigrate(db); err != nil {
		log.Fatal().Err(err).Msg("migrate database")
	}

	seeded, err := database.SeedConfiguracoes(db)
	if err != nil {
		log.Fatal().Err(err).Msg("seed configuracoes")
	}
	if seeded > 0 {
		log.Info().Int("count", seeded).Msg("configurações padrão inseridas")
	}

	r := router.Setup(cfg, db, log)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Address, cfg.Server.Port)
	log.Info().Str("addr", addr).Msg("servidor iniciado")
	if err := r.Run(addr); err != nil {
		log.Fatal().Err(err).Msg("run server")
	}
}
