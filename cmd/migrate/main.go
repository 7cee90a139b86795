package main

import (
	"context"
	"os"

	"shop-service/config"
	"shop-service/internal/database"
	"shop-service/internal/logger"
	"shop-service/internal/migrate"

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

	db := database.ConnectDBForMigration(&dbCfg, log)
	defer database.CloseDB(db, log)

	ctx := context.Background()
	opts := migrate.DefaultMigrateOptions()

	if err := migrate.MigrateShopDB(ctx, db, log, opts); err != nil {
		log.Fatal("Ошибка при выполнении миграции", zap.Error(err))
	}

	log.Info("Миграция успешно завершена")
}
