package database

import (
	"fmt"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/labstack/gommon/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"secretaria/cmd/internal/config"
	"secretaria/cmd/internal/domain/entity"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Models lists every table managed by AutoMigrate.
var Models = []any{
	&entity.Unidade{},
	&entity.Professor{},
	&entity.Turma{},
	&entity.Aluno{},
	&entity.Presenca{},
	&entity.Reposicao{},
	&entity.ApostilaRecolhida{},
	&entity.KanbanCard{},
	&entity.Client{},
	&entity.AlertaFalta{},
	&entity.Configuracao{},
	&entity.User{},
	&entity.Connection{},
}

// Init opens the database selected by cfg.Driver and migrates the schema.
func Init(cfg *config.DBConfig) (*gorm.DB, error) {
	var (
		db  *gorm.DB
		err error
	)

	switch cfg.Driver {
	case DriverSQLite, "":
		db, err = openSQLite(cfg.Path)
	case DriverPostgres:
		db, err = openPostgres(cfg)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
	if err != nil {
		return nil, err
	}

	if err = db.AutoMigrate(Models...); err != nil {
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}

	log.Infof("database ready (driver: %s)", cfg.Driver)
	return db, nil
}

func openSQLite(path string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Error),
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetConnMaxLifetime(time.Hour)

	return db, nil
}

func openPostgres(cfg *config.DBConfig) (*gorm.DB, error) {
	username, password, err := retrieveCredentials(cfg)
	if err != nil {
		return nil, err
	}

	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d sslmode=%s",
		cfg.Host, username, password, cfg.Name, cfg.Port, cfg.SSLMode)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Error),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}
	return db, nil
}

// OpenInMemory returns a migrated, private SQLite database. Used by tests.
func OpenInMemory() (*gorm.DB, error) {
	db, err := openSQLite("file::memory:")
	if err != nil {
		return nil, err
	}

	if err = db.AutoMigrate(Models...); err != nil {
		return nil, err
	}
	return db, nil
}
