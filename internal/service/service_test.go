// internal/service/service_test.go
package service

import (
	"fmt"
	"testing"
	"time"

	"turbo-admin/internal/media"
	"turbo-admin/internal/settings"
	"turbo-admin/pkg/models"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newServiceDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", t.Name(), time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.StripeConfiguration{},
		&models.ResendConfiguration{},
		&models.EditorConfiguration{},
		&models.CloudinaryConfiguration{},
		&models.User{},
		&models.Category{},
		&models.Tag{},
		&models.Post{},
		&models.NewsletterSubscriber{},
		&models.Newsletter{},
	))
	return db
}

func newTestGateway(t *testing.T, db *gorm.DB) *settings.Gateway {
	t.Helper()
	return settings.NewGateway(db, settings.NewTTLCache())
}

// passthroughSyncer builds a Syncer whose media host is never configured, so
// Sync leaves states untouched. Enough for tests that exercise persistence
// rules rather than the upload itself.
func passthroughSyncer(t *testing.T, db *gorm.DB) *media.Syncer {
	t.Helper()
	staging, err := media.NewStaging(t.TempDir())
	require.NoError(t, err)
	return media.NewSyncer(newTestGateway(t, db), media.NewClient(), staging)
}
