package adapters

import (
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/stretchr/testify/require"

	"vitality_backend/internal/feature/auth/domain/entity"
)

// newTestDB opens an isolated in-memory SQLite database with the auth schema.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err, "failed to open in-memory database")

	err = db.AutoMigrate(&entity.User{}, &OTPModel{}, &RefreshTokenModel{})
	require.NoError(t, err, "failed to migrate schema")

	return db
}
