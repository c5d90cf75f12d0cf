package progress

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"lms/models"
	progressModels "lms/models/progress"
	trainingModels "lms/models/training"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.UserTraining{},
		&trainingModels.Training{},
		&trainingModels.Module{},
		&trainingModels.Video{},
		&progressModels.TrainingProgress{},
		&progressModels.ModuleProgress{},
		&progressModels.VideoProgress{},
	)
	require.NoError(t, err)

	return db
}

func createUser(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()
	user := &models.User{
		Name:        "Test User",
		Email:       email,
		EmpID:       "EMP-1",
		Designation: "Teller",
		Branch:      "BLR",
		Password:    "x",
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

// createTraining seeds a training whose modules each hold videosPerModule
// videos, in catalog order.
func createTraining(t *testing.T, db *gorm.DB, name string, trainingType string, videosPerModule ...int) *trainingModels.Training {
	t.Helper()
	tr := &trainingModels.Training{
		Name: name,
		Type: trainingType,
	}
	require.NoError(t, db.Create(tr).Error)

	for mi, count := range videosPerModule {
		mod := &trainingModels.Module{
			TrainingID: tr.ID,
			Title:      fmt.Sprintf("Module %d", mi+1),
			OrderIndex: mi,
		}
		require.NoError(t, db.Create(mod).Error)

		for vi := 0; vi < count; vi++ {
			video := &trainingModels.Video{
				ModuleID:   mod.ID,
				Title:      fmt.Sprintf("Video %d.%d", mi+1, vi+1),
				OrderIndex: vi,
			}
			require.NoError(t, db.Create(video).Error)
		}
	}
	return tr
}

func moduleIDs(t *testing.T, db *gorm.DB, trainingID uint) []uint {
	t.Helper()
	var ids []uint
	require.NoError(t, db.Model(&trainingModels.Module{}).
		Where("training_id = ?", trainingID).Order("order_index asc").
		Pluck("id", &ids).Error)
	return ids
}

func videoIDs(t *testing.T, db *gorm.DB, moduleID uint) []uint {
	t.Helper()
	var ids []uint
	require.NoError(t, db.Model(&trainingModels.Video{}).
		Where("module_id = ?", moduleID).Order("order_index asc").
		Pluck("id", &ids).Error)
	return ids
}
