package repositories

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"tabemap/internal/models/db_models"
)

// newTestDB opens an in-memory database with the same gorm configuration the
// production pool uses (TranslateError included, so unique violations surface
// as gorm.ErrDuplicatedKey here too).
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		TranslateError:                           true,
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// a single connection keeps every session on the same in-memory database
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.SetupJoinTable(&db_models.Shop{}, "Tags", &db_models.ShopTag{}))
	require.NoError(t, db.AutoMigrate(
		&db_models.Account{},
		&db_models.Shop{},
		&db_models.UserShop{},
		&db_models.Tag{},
		&db_models.ShopTag{},
		&db_models.ShopPhoto{},
	))
	return db
}

func countRows(t *testing.T, db *gorm.DB, model interface{}) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(model).Count(&n).Error)
	return n
}
