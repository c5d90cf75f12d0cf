package progress

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	progressModels "lms/models/progress"
	trainingModels "lms/models/training"
)

// completeAll marks every video of the user's record passed via the engine
func completeAll(t *testing.T, db *gorm.DB, userID, trainingID uint) {
	t.Helper()
	for _, moduleID := range moduleIDs(t, db, trainingID) {
		for _, videoID := range videoIDs(t, db, moduleID) {
			_, err := MarkVideoComplete(db, userID, trainingID, moduleID, videoID)
			require.NoError(t, err)
		}
	}
}

func TestMergeDuplicateProgress_Merged(t *testing.T) {
	db := setupTestDB(t)
	user := createUser(t, db, "merge@test.local")

	assignedTr := createTraining(t, db, "Foundation of Service", trainingModels.TypeAssigned, 2)
	mandatoryTr := createTraining(t, db, "Foundation Of Service", trainingModels.TypeMandatory, 2)

	_, err := AssignTraining(db, user.ID, assignedTr.ID, nil)
	require.NoError(t, err)
	_, err = AssignTraining(db, user.ID, mandatoryTr.ID, nil)
	require.NoError(t, err)

	completeAll(t, db, user.ID, assignedTr.ID)

	result, err := MergeDuplicateProgress(db, "")
	require.NoError(t, err)
	assert.Equal(t, 0, result.Moved)
	assert.Equal(t, 1, result.Merged)

	// Assigned record is gone, mandatory carries the completed state and tree
	_, err = LoadProgress(db, user.ID, assignedTr.ID)
	assert.ErrorIs(t, err, ErrProgressNotFound)

	record, err := LoadProgress(db, user.ID, mandatoryTr.ID)
	require.NoError(t, err)
	assert.Equal(t, progressModels.StatusCompleted, record.Status)
	assert.True(t, record.Pass)
	require.Len(t, record.Modules, 1)
	for _, v := range record.Modules[0].Videos {
		assert.True(t, v.Pass)
	}

	// No orphaned module rows from the replaced tree
	var moduleCount int64
	db.Model(&progressModels.ModuleProgress{}).Count(&moduleCount)
	assert.EqualValues(t, 1, moduleCount)
}

func TestMergeDuplicateProgress_Moved(t *testing.T) {
	db := setupTestDB(t)
	user := createUser(t, db, "move@test.local")

	assignedTr := createTraining(t, db, "foundation of service refresher", trainingModels.TypeAssigned, 1)
	_, err := AssignTraining(db, user.ID, assignedTr.ID, nil)
	require.NoError(t, err)
	completeAll(t, db, user.ID, assignedTr.ID)

	result, err := MergeDuplicateProgress(db, "")
	require.NoError(t, err)
	assert.Equal(t, 1, result.Moved)
	assert.Equal(t, 0, result.Merged)

	record, err := LoadProgress(db, user.ID, assignedTr.ID)
	require.NoError(t, err)
	assert.Equal(t, progressModels.SectionMandatory, record.Section)
	assert.Equal(t, progressModels.StatusCompleted, record.Status)
}

func TestMergeDuplicateProgress_IgnoresNonMatching(t *testing.T) {
	db := setupTestDB(t)
	user := createUser(t, db, "ignore@test.local")

	// Wrong name: untouched even though completed
	otherTr := createTraining(t, db, "Fire Safety", trainingModels.TypeAssigned, 1)
	_, err := AssignTraining(db, user.ID, otherTr.ID, nil)
	require.NoError(t, err)
	completeAll(t, db, user.ID, otherTr.ID)

	// Right name but not completed: untouched
	pendingTr := createTraining(t, db, "Foundation of Service", trainingModels.TypeAssigned, 1)
	_, err = AssignTraining(db, user.ID, pendingTr.ID, nil)
	require.NoError(t, err)

	result, err := MergeDuplicateProgress(db, "")
	require.NoError(t, err)
	assert.Zero(t, result.Moved)
	assert.Zero(t, result.Merged)

	record, err := LoadProgress(db, user.ID, otherTr.ID)
	require.NoError(t, err)
	assert.Equal(t, progressModels.SectionAssigned, record.Section)

	record, err = LoadProgress(db, user.ID, pendingTr.ID)
	require.NoError(t, err)
	assert.Equal(t, progressModels.SectionAssigned, record.Section)
	assert.Equal(t, progressModels.StatusPending, record.Status)
}

func TestMergeDuplicateProgress_RollsBackOnFailure(t *testing.T) {
	db := setupTestDB(t)
	user := createUser(t, db, "rollback@test.local")

	assignedTr := createTraining(t, db, "Foundation of Service", trainingModels.TypeAssigned, 1)
	mandatoryTr := createTraining(t, db, "Foundation of Service", trainingModels.TypeMandatory, 1)

	_, err := AssignTraining(db, user.ID, assignedTr.ID, nil)
	require.NoError(t, err)
	_, err = AssignTraining(db, user.ID, mandatoryTr.ID, nil)
	require.NoError(t, err)
	completeAll(t, db, user.ID, assignedTr.ID)

	// Make the tree swap fail partway through the merge; the transaction
	// must leave both records exactly as they were
	require.NoError(t, db.Migrator().DropTable(&progressModels.VideoProgress{}))

	_, err = MergeDuplicateProgress(db, "")
	require.Error(t, err)

	var assigned progressModels.TrainingProgress
	require.NoError(t, db.Where("user_id = ? AND training_id = ?", user.ID, assignedTr.ID).First(&assigned).Error)
	assert.Equal(t, progressModels.SectionAssigned, assigned.Section)
	assert.Equal(t, progressModels.StatusCompleted, assigned.Status)

	var mandatory progressModels.TrainingProgress
	require.NoError(t, db.Where("user_id = ? AND training_id = ?", user.ID, mandatoryTr.ID).First(&mandatory).Error)
	assert.Equal(t, progressModels.StatusPending, mandatory.Status)
	assert.False(t, mandatory.Pass)
}

func TestMergeDuplicateProgress_Idempotent(t *testing.T) {
	db := setupTestDB(t)
	user := createUser(t, db, "rerun@test.local")

	assignedTr := createTraining(t, db, "Foundation of Service", trainingModels.TypeAssigned, 1)
	_, err := AssignTraining(db, user.ID, assignedTr.ID, nil)
	require.NoError(t, err)
	completeAll(t, db, user.ID, assignedTr.ID)

	first, err := MergeDuplicateProgress(db, "")
	require.NoError(t, err)
	assert.Equal(t, 1, first.Moved)

	// The retagged record is now Mandatory; a rerun has nothing to do
	second, err := MergeDuplicateProgress(db, "")
	require.NoError(t, err)
	assert.Zero(t, second.Moved)
	assert.Zero(t, second.Merged)
}
