package services

import (
	"fmt"
	"strings"
	"testing"

	"career-quest-system/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// openTestDB opens an isolated in-memory database per test. A single
// connection keeps sqlite transactions serialized, and TranslateError is
// on so unique-key conflicts surface as gorm.ErrDuplicatedKey exactly like
// the production postgres setup.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.CareerUser{},
		&models.UserProgress{},
		&models.Quest{},
		&models.QuestCompletion{},
		&models.CareerPath{},
		&models.Roadmap{},
		&models.RoadmapStep{},
		&models.Resource{},
		&models.BadgeType{},
		&models.UserBadge{},
		&models.AdvisorMessage{},
	))
	return db
}
