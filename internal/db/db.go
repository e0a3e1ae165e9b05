package db

import (
	"fmt"
	"os"
	"path/filepath"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"bmitrack/internal/models"
)

const (
	DriverSQLite = "sqlite"
	DriverMySQL  = "mysql"
)

type Config struct {
	Driver   string
	Path     string // sqlite file
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
}

// Open connects to the configured record store. The gorm logger is silenced
// because its default writes to stdout, which the terminal UI owns.
func Open(cfg Config) (*gorm.DB, error) {
	gcfg := &gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Silent)}
	switch cfg.Driver {
	case "", DriverSQLite:
		if dir := filepath.Dir(cfg.Path); dir != "." && dir != "" {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("create db directory: %w", err)
			}
		}
		return gorm.Open(sqlite.Open(cfg.Path), gcfg)
	case DriverMySQL:
		dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local", cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.DBName)
		return gorm.Open(mysql.Open(dsn), gcfg)
	default:
		return nil, fmt.Errorf("unknown db driver %q", cfg.Driver)
	}
}

// Migrate creates or updates the record table.
func Migrate(gdb *gorm.DB) error {
	return gdb.AutoMigrate(&models.BMIRecord{})
}
