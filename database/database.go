package database

import (
	"fmt"
	"log"
	"net"
	"os"
	"strconv"
	"time"

	"Repokit/internal/config"
	"Repokit/internal/models"
	"Repokit/internal/services"

	gomysql "github.com/go-sql-driver/mysql"
	"github.com/pkg/errors"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func SetupDatabase(cfg *config.Configuration, logService services.LogService) (*gorm.DB, error) {
	dialector, err := openDialector(cfg.Database)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.New(logService.Log, logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  gormLogLevel(cfg.Server.LogConfig.Level),
			IgnoreRecordNotFoundError: true,
		}),
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open %s database", cfg.Database.Driver)
	}

	if cfg.Database.AutoMigrate {
		err = db.AutoMigrate(&models.Box{}, &models.Item{}, &models.Label{})
		if err != nil {
			return nil, errors.Wrap(err, "auto migration failed")
		}
	}
	return db, nil
}

func openDialector(cfg config.DatabaseConfig) (gorm.Dialector, error) {
	switch cfg.Driver {
	case "postgres", "postgresql":
		dsn, err := postgresDSN(cfg)
		if err != nil {
			return nil, err
		}
		return postgres.Open(dsn), nil
	case "mysql":
		return mysql.Open(mysqlDSN(cfg)), nil
	case "sqlite", "sqlite3":
		path := cfg.Path
		if path == "" {
			path = "repokit.db"
		}
		return sqlite.Open(path), nil
	default:
		return nil, errors.Errorf("unsupported database driver: %s", cfg.Driver)
	}
}

// postgresDSN prefers the configuration file and falls back to the DB_* environment variables.
func postgresDSN(cfg config.DatabaseConfig) (string, error) {
	if cfg.Host != "" {
		sslMode := cfg.SSLMode
		if sslMode == "" {
			sslMode = "disable"
		}
		timeZone := cfg.TimeZone
		if timeZone == "" {
			timeZone = "UTC"
		}
		return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d sslmode=%s TimeZone=%s",
			cfg.Host, cfg.User, cfg.Password, cfg.Name, cfg.Port, sslMode, timeZone), nil
	}

	var envVariables = [...]string{"DB_HOST", "DB_PORT", "DB_USER", "DB_PASSWORD", "DB_NAME", "DB_TZ"}
	for _, envVariable := range envVariables {
		if os.Getenv(envVariable) == "" {
			return "", errors.Errorf("%s environment variable not set", envVariable)
		}
	}
	if os.Getenv("DB_SSLMODE") == "" {
		if err := os.Setenv("DB_SSLMODE", "disable"); err != nil {
			return "", err
		}
	}
	return os.ExpandEnv("host=${DB_HOST} user=${DB_USER} password=${DB_PASSWORD} dbname=${DB_NAME} port=${DB_PORT} sslmode=${DB_SSLMODE} TimeZone=${DB_TZ}"), nil
}

func mysqlDSN(cfg config.DatabaseConfig) string {
	dsn := gomysql.NewConfig()
	dsn.User = cfg.User
	dsn.Passwd = cfg.Password
	dsn.Net = "tcp"
	dsn.Addr = net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port))
	dsn.DBName = cfg.Name
	dsn.ParseTime = true
	dsn.Loc = time.UTC
	dsn.Params = map[string]string{"charset": "utf8mb4"}
	return dsn.FormatDSN()
}

func gormLogLevel(level string) logger.LogLevel {
	switch level {
	case "debug":
		return logger.Info
	case "info", "warn":
		return logger.Warn
	default:
		return logger.Error
	}
}

func CloseDatabase(db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		log.Printf("Could not get DB instance: %v", err)
		return
	}
	if err := sqlDB.Close(); err != nil {
		log.Printf("Error closing database: %v", err)
	}
}
