package config

import (
	"errors"
	"fmt"
)

type Config struct {
	Host        string
	Port        int
	Database    string
	User        string
	Password    string
	SSLMode     string
	AutoMigrate bool
	MaxConns    int
	IdleConns   int
}

// DSN renders the keyword/value connection string consumed by the postgres
// driver. The password is omitted when empty so local trust auth works.
func (c Config) DSN() string {
	dsn := fmt.Sprintf("host=%s port=%d dbname=%s user=%s sslmode=%s",
		c.Host, c.Port, c.Database, c.User, c.SSLMode)
	if c.Password != "" {
		dsn += fmt.Sprintf(" password=%s", c.Password)
	}
	return dsn
}

func (c Config) Validate() error {
	if c.Host == "" {
		return errors.New("DB_HOST is required")
	}
	if c.Port < 1 || c.Port > 65535 {
		return errors.New("DB_PORT is invalid")
	}
	if c.Database == "" {
		return errors.New("DB_NAME is required")
	}
	if c.User == "" {
		return errors.New("DB_USER is required")
	}
	if c.MaxConns < 1 {
		return errors.New("DB_MAX_CONNS is invalid")
	}
	if c.IdleConns < 1 {
		return errors.New("DB_IDLE_CONNS is invalid")
	}
	// no check AutoMigrate
	return nil
}
