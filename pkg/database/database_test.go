package database

import (
	"testing"

	"eduboost_backend/internal/config"

	"github.com/stretchr/testify/assert"
)

func TestDSN(t *testing.T) {
	dsn := DSN(&config.DatabaseConfig{
		Host:      "db",
		Port:      3306,
		User:      "edu",
		Password:  "pw",
		DBName:    "eduboost",
		Charset:   "utf8mb4",
		ParseTime: true,
	})
	assert.Equal(t, "edu:pw@tcp(db:3306)/eduboost?charset=utf8mb4&parseTime=true&loc=Local", dsn)
}

func TestModulesCoverProgressTables(t *testing.T) {
	assert.Len(t, Models(), 11)
}
