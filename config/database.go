package config

import (
	"os"
	"time"

	"venuepos-backend/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func ConnectDB() {
	dsn := os.Getenv("DB_URL")

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		panic("Failed to connect database")
	}

	sqlDB, err := db.DB()
	if err != nil {
		panic("Failed to access database pool")
	}
	sqlDB.SetMaxIdleConns(25)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)
	sqlDB.SetConnMaxIdleTime(time.Minute)

	DB = db
}

// Migrate creates the schema plus the constraints AutoMigrate cannot
// express. The partial unique index is what rejects the loser when two
// check-ins race for the same empty seating area.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.Staff{},
		&models.Client{},
		&models.SeatingArea{},
		&models.Visit{},
		&models.Product{},
		&models.InventoryItem{},
		&models.Sale{},
		&models.StockLedger{},
		&models.StaffCommission{},
	); err != nil {
		return err
	}

	// At most one open visit per seating area.
	return db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS idx_visits_one_open_per_area
		ON visits (seating_area_id)
		WHERE status = 'open' AND deleted_at IS NULL
	`).Error
}
