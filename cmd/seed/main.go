package main

import (
	"context"
	"os"

	"shop-service/config"
	"shop-service/internal/database"
	"shop-service/internal/logger"
	"shop-service/internal/repository"
	"shop-service/internal/seed"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()
	isDev := os.Getenv("ENV") == "development"
	if err := logger.Init(isDev); err != nil {
		panic(err)
	}

	defer logger.Sync()

	log := logger.L()

	dbCfg := config.LoadDB(log)

	db := database.ConnectDB(&dbCfg, log)
	defer database.CloseDB(db, log)

	if _, err := seed.Run(context.Background(), repository.New(db), log); err != nil {
		log.Fatal("Ошибка при заполнении демо-данными", zap.Error(err))
	}
}
