package config

import (
	"fmt"

	"github.com/Govind-619/BillSphere/models"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// OpenDatabase opens a gorm connection for the given driver
func OpenDatabase(driver, dsn string) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch driver {
	case "postgres", "":
		dialector = postgres.Open(dsn)
	case "sqlite":
		dialector = sqlite.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

// Migrate auto-migrates every model
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.Tenant{},
		&models.User{},
		&models.Admin{},
		&models.BlacklistedToken{},
		&models.Category{},
		&models.Product{},
		&models.ProductPrice{},
		&models.Subscription{},
		&models.Offer{},
		&models.Wallet{},
		&models.UserWallet{},
		&models.Transaction{},
		&models.WalletTopupOrder{},
		&models.SplitBill{},
		&models.SplitBillItem{},
		&models.SplitBillParticipant{},
	)
	if err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}

// InitDB initializes the database connection from cfg and migrates the schema
func InitDB(cfg *Config) error {
	db, err := OpenDatabase(cfg.DBDriver, cfg.DSN())
	if err != nil {
		return err
	}
	if err := Migrate(db); err != nil {
		return err
	}
	DB = db
	return nil
}
