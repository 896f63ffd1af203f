package database

import (
	"fmt"
	"log"

	"hiringkit-app/config"
	"hiringkit-app/internal/domain/kits"
	"hiringkit-app/internal/domain/orders"
	"hiringkit-app/internal/domain/orgs"
	"hiringkit-app/internal/domain/users"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func InitDB() {
	dsn := config.DB_URL
	if dsn == "" {
		log.Fatal("❌ DB_URL not set")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("❌ Failed to connect to database:", err)
	}

	DB = db

	if err := DB.AutoMigrate(
		&users.User{},
		&orgs.Organization{},
		&kits.Kit{},
		&orders.Order{},
	); err != nil {
		log.Fatal("❌ AutoMigrate error:", err)
	}

	fmt.Println("✅ Connected and migrated successfully")
}
