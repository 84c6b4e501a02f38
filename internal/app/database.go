package app

import (
	"fmt"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/schema"

	"github.com/Mustagiz/Aleen/config"
)

func getDatabase(cfg config.DBConfig, workdir string) *gorm.DB {
	loglevel := logger.Error
	if cfg.Debug {
		loglevel = logger.Info
	}
	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(loglevel),
		NamingStrategy: schema.NamingStrategy{
			SingularTable: true,
		},
	}

	var dialector gorm.Dialector
	switch cfg.Type {
	case "sqlite":
		dbfile := filepath.Join(workdir, "data", cfg.Name+".db")
		dialector = sqlite.Open(dbfile + "?cache=shared&_journal_mode=WAL")
	default:
		dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable TimeZone=%s",
			cfg.Host, cfg.Port, cfg.User, cfg.Passwd, cfg.Name, time.Local.String())
		dialector = postgres.Open(dsn)
	}

	db, err := gorm.Open(dialector, gormConfig)
	if err != nil {
		zap.S().Panicf("open database error: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		zap.S().Panicf("get sql.DB error: %v", err)
	}
	if cfg.MaxConn > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxConn)
	}
	if cfg.IdleConn > 0 {
		sqlDB.SetMaxIdleConns(cfg.IdleConn)
	}
	sqlDB.SetConnMaxLifetime(time.Hour)

	return db
}
