package services

import (
	"context"
	"testing"

	"technotes-api/internal/adapters/persistence/models"
	"technotes-api/internal/adapters/persistence/repositories"
	"technotes-api/internal/config"
	"technotes-api/internal/pkg/password"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB opens an isolated in-memory database with the full schema
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// a second pooled connection would see its own empty :memory: database
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, models.AutoMigrate(db))
	return db
}

// testConfig returns a config suitable for token issuing in tests
func testConfig() *config.Config {
	return &config.Config{
		AppMode: "dev",
		JWT: config.JWTConfig{
			Secret:           "test_secret",
			RefreshSecret:    "test_refresh_secret",
			AccessTokenMins:  15,
			RefreshTokenDays: 7,
		},
	}
}

// seedUser inserts a user directly through the repository
func seedUser(t *testing.T, repo repositories.UserRepository, username, plain string, roles models.Roles, active bool) *models.User {
	t.Helper()

	hash, err := password.Hash(plain)
	require.NoError(t, err)

	user := &models.User{
		Username: username,
		Password: hash,
		Roles:    roles,
		Active:   active,
	}
	require.NoError(t, repo.Create(context.Background(), user))
	return user
}
