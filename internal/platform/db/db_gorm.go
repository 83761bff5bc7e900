// Package db opens the shared GORM connection.
package db

import (
	"fmt"
	"log"
	"time"

	gmysql "gorm.io/driver/mysql"
	"gorm.io/gorm"

	activityadapters "vitality_backend/internal/feature/activity/adapters"
	authadapters "vitality_backend/internal/feature/auth/adapters"
	"vitality_backend/internal/feature/auth/domain/entity"
	"vitality_backend/internal/platform/config"
)

// Open connects to MySQL with a retry deadline and optionally runs migrations.
// Startup without a database is not meaningful, so failures are fatal.
func Open(cfg config.Database) *gorm.DB {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=true&loc=Local",
		cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.Name)

	var (
		db  *gorm.DB
		err error
	)

	deadline := time.Now().Add(60 * time.Second)
	for {
		db, err = gorm.Open(gmysql.Open(dsn), &gorm.Config{})
		if err == nil {
			break
		}
		if time.Now().After(deadline) {
			log.Fatalf("DB connect failed after 60s: %v", err)
		}
		log.Printf("DB connect failed, retrying...: %v", err)
		time.Sleep(3 * time.Second)
	}

	if cfg.RunMigrations {
		if err := db.AutoMigrate(
			&entity.User{},
			&authadapters.OTPModel{},
			&authadapters.RefreshTokenModel{},
			&activityadapters.ActivityModel{},
		); err != nil {
			log.Fatalf("failed to migrate: %v", err)
		}
	}

	return db
}
