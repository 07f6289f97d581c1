package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConnect(t *testing.T) {
	t.Run("SQLite In-Memory", func(t *testing.T) {
		db, err := Connect(Config{Driver: "sqlite", Path: ":memory:"})
		assert.NoError(t, err)
		assert.NotNil(t, db)
	})

	t.Run("Empty Driver Defaults To SQLite", func(t *testing.T) {
		db, err := Connect(Config{Path: ":memory:"})
		assert.NoError(t, err)
		assert.NotNil(t, db)
	})

	t.Run("Invalid MySQL Connection", func(t *testing.T) {
		cfg := Config{
			Driver:         "mysql",
			Host:           "localhost",
			Port:           9999, // Unused port
			User:           "root",
			Password:       "wrongpassword",
			Name:           "mailarchive",
			TimeoutSeconds: 1,
		}

		// Connect should fail (timeout or refused)
		db, err := Connect(cfg)
		assert.Error(t, err)
		assert.Nil(t, db)
	})

	t.Run("Unsupported Driver", func(t *testing.T) {
		db, err := Connect(Config{Driver: "oracle"})
		assert.Error(t, err)
		assert.Nil(t, db)
		assert.Contains(t, err.Error(), "unsupported archive driver")
	})
}

func TestLocation(t *testing.T) {
	assert.Equal(t, "archive.db", Config{Driver: "sqlite", Path: "archive.db"}.Location())
	assert.Equal(t, "db.example.com/mailarchive", Config{Driver: "mysql", Host: "db.example.com", Name: "mailarchive"}.Location())
}
