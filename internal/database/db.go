package database

import (
	"kikiks-backend/internal/config"
	"kikiks-backend/internal/models"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Init(cfg *config.Config) {
	var err error

	DB, err = gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{})
	if err != nil {
		logrus.Fatalf("could not connect to database: %v", err)
	}

	err = DB.AutoMigrate(
		&models.Branch{},
		&models.User{},
		&models.Product{},
		&models.StockLevel{},
		&models.StockHistory{},
		&models.ImportLog{},
		&models.StockTransfer{},
		&models.StockTransferItem{},
		&models.ResellerOrder{},
		&models.ResellerOrderItem{},
		&models.SeasonalOrder{},
		&models.SeasonalOrderItem{},
		&models.AuditLog{},
	)
	if err != nil {
		logrus.Fatalf("AutoMigrate failed: %v", err)
	}

	logrus.Info("database connected, migrations complete")
}
