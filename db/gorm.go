package db

import (
	"fmt"
	"time"

	"OpenMusic/config"
	applogger "OpenMusic/logger"
	"OpenMusic/model"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// GormDB is the GORM connection. It coexists with DB (*sql.DB): GORM
// owns schema management, the repositories issue raw SQL over DB.
var GormDB *gorm.DB

// ConnectGormDB establishes the GORM database connection.
func ConnectGormDB(cfg *config.Config) error {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		cfg.DBUser, cfg.DBPassword, cfg.DBHost, cfg.DBPort, cfg.DBName)

	var err error
	GormDB, err = gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
		// Cascades are done explicitly in transactions, not by the schema.
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		return fmt.Errorf("failed to connect database with GORM: %w", err)
	}

	sqlDB, err := GormDB.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetConnMaxLifetime(time.Hour)

	applogger.Info("Successfully connected to the database with GORM")
	return nil
}

// AutoMigrate creates or updates the schema for all models, including
// the unique indexes that back the duplicate-membership, duplicate-like
// and duplicate-collaboration conflicts.
func AutoMigrate() error {
	if GormDB == nil {
		return fmt.Errorf("GORM connection not initialized")
	}

	return GormDB.AutoMigrate(
		&model.User{},
		&model.Album{},
		&model.Song{},
		&model.Playlist{},
		&model.Collaboration{},
		&model.PlaylistSong{},
		&model.PlaylistActivity{},
		&model.AlbumLike{},
	)
}

// CloseGormDB closes the GORM database connection.
func CloseGormDB() error {
	if GormDB == nil {
		return nil
	}

	sqlDB, err := GormDB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
