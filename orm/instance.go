package orm

import (
	"database/sql"
	"log/slog"

	sloggorm "github.com/orandin/slog-gorm"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"

	"github.com/beeport/incentiviz/orm/config"
	"github.com/beeport/incentiviz/types"
)

type Database struct {
	*gorm.DB
	config *config.Config
}

func OpenDB(config *config.Config, logger *slog.Logger) (*Database, error) {
	gormcfg := &gorm.Config{
		NamingStrategy: schema.NamingStrategy{SingularTable: true},
		PrepareStmt:    true,
		Logger:         sloggorm.New(sloggorm.WithHandler(logger.Handler())),
	}

	instance, err := gorm.Open(postgres.Open(config.DSN()), gormcfg)
	if err != nil {
		return nil, types.NewConnectionError(config.Host, err)
	}

	sqlDB, err := instance.DB()
	if err != nil {
		return nil, types.NewConnectionError(config.Host, err)
	}
	sqlDB.SetMaxOpenConns(config.MaxConns)
	sqlDB.SetMaxIdleConns(config.IdleConns)

	return &Database{DB: instance, config: config}, nil
}

func (d Database) Migrate() error {
	if d.config == nil || !d.config.AutoMigrate {
		return nil
	}
	if err := d.DB.AutoMigrate(&types.CollectedEvent{}); err != nil {
		return types.NewDatabaseError("migrate", err)
	}
	return nil
}

func (d Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// GetDBStats returns database connection pool statistics
func (d Database) GetDBStats() (*sql.DBStats, error) {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return nil, err
	}

	stats := sqlDB.Stats()
	return &stats, nil
}
