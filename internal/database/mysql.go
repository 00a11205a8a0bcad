package database

import (
	"fmt"
	"log"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// gormConfig must keep TranslateError on: the repositories branch on
// gorm.ErrDuplicatedKey when a unique index fires under a race, and
// without translation the raw MySQL 1062 error slips past that check.
func gormConfig() *gorm.Config {
	return &gorm.Config{TranslateError: true}
}

// NewMySQLDB creates a new MySQL database connection
func NewMySQLDB(user, password, host, port, dbName string) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local&allowNativePasswords=true&multiStatements=true",
		user, password, host, port, dbName)

	// Retry logic for initial connection
	var db *gorm.DB
	var err error
	maxRetries := 5
	retryDelay := time.Second * 5

	for i := 0; i < maxRetries; i++ {
		db, err = gorm.Open(mysql.Open(dsn), gormConfig())
		if err == nil {
			break
		}
		log.Printf("Failed to connect to database (attempt %d/%d): %v", i+1, maxRetries, err)
		time.Sleep(retryDelay)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to connect to database after %d attempts: %w", maxRetries, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	log.Printf("Successfully connected to MySQL at %s:%s/%s", host, port, dbName)
	return db, nil
}
