package config

import (
	"fmt"
	"log"
	"strings"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DB is nil when no database is configured.
var DB *gorm.DB

// InitDB connects to MySQL when a host is configured. Without one the
// dashboard runs without export history.
func InitDB(s DatabaseSettings) error {
	if !s.Configured() {
		log.Println("Database not configured (DB_HOST empty), export history disabled")
		return nil
	}

	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		s.User,
		s.Password,
		s.Host,
		s.Port,
		s.Name,
	)

	// In production, suppress SQL logs unless explicitly re-enabled via DEBUG_SQL=true.
	logLevel := logger.Info
	if strings.ToLower(s.Environment) == "production" && !s.DebugSQL {
		logLevel = logger.Warn
	}

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.New(
			log.New(LogWriter, "\r\n", log.LstdFlags),
			logger.Config{LogLevel: logLevel},
		),
	})
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}

	DB = db
	log.Println("Database connected successfully")
	return nil
}
