package progress

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lms/models"
	progressModels "lms/models/progress"
	trainingModels "lms/models/training"
)

func TestAssignTraining_SnapshotsShape(t *testing.T) {
	db := setupTestDB(t)
	user := createUser(t, db, "assign@test.local")
	tr := createTraining(t, db, "Onboarding", trainingModels.TypeAssigned, 2, 3)

	record, err := AssignTraining(db, user.ID, tr.ID, nil)
	require.NoError(t, err)

	require.Len(t, record.Modules, 2)
	assert.Len(t, record.Modules[0].Videos, 2)
	assert.Len(t, record.Modules[1].Videos, 3)
	assert.Equal(t, progressModels.StatusPending, record.Status)
	assert.False(t, record.Pass)
	for _, m := range record.Modules {
		assert.False(t, m.Pass)
		for _, v := range m.Videos {
			assert.False(t, v.Pass)
		}
	}

	var entry models.UserTraining
	require.NoError(t, db.Where("user_id = ? AND training_id = ?", user.ID, tr.ID).First(&entry).Error)
	assert.Equal(t, progressModels.StatusPending, entry.Status)
}

func TestAssignTraining_SkipIfExists(t *testing.T) {
	db := setupTestDB(t)
	user := createUser(t, db, "skip@test.local")
	tr := createTraining(t, db, "Onboarding", trainingModels.TypeAssigned, 1)

	first, err := AssignTraining(db, user.ID, tr.ID, nil)
	require.NoError(t, err)

	mods := moduleIDs(t, db, tr.ID)
	vids := videoIDs(t, db, mods[0])
	_, err = MarkVideoComplete(db, user.ID, tr.ID, mods[0], vids[0])
	require.NoError(t, err)

	// Second assignment must not reset existing progress
	second, err := AssignTraining(db, user.ID, tr.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, progressModels.StatusCompleted, second.Status)

	var count int64
	db.Model(&progressModels.TrainingProgress{}).
		Where("user_id = ? AND training_id = ?", user.ID, tr.ID).Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestAssignTraining_MissingTraining(t *testing.T) {
	db := setupTestDB(t)
	user := createUser(t, db, "missing@test.local")

	_, err := AssignTraining(db, user.ID, 9999, nil)
	assert.ErrorIs(t, err, ErrTrainingNotFound)
}

func TestAssignMandatoryTrainings(t *testing.T) {
	db := setupTestDB(t)
	user := createUser(t, db, "mandatory@test.local") // Designation Teller, Branch BLR

	matching := createTraining(t, db, "Code of Conduct", trainingModels.TypeMandatory, 1)
	require.NoError(t, db.Model(matching).Update("designations", "Teller, Manager").Error)

	other := createTraining(t, db, "Branch Ops", trainingModels.TypeMandatory, 1)
	require.NoError(t, db.Model(other).Update("designations", "Manager").Error)

	untargeted := createTraining(t, db, "Everyone", trainingModels.TypeMandatory, 1)
	adhoc := createTraining(t, db, "Ad Hoc", trainingModels.TypeAssigned, 1)

	require.NoError(t, AssignMandatoryTrainings(db, user))

	var ids []uint
	require.NoError(t, db.Model(&progressModels.TrainingProgress{}).
		Where("user_id = ?", user.ID).Pluck("training_id", &ids).Error)
	assert.ElementsMatch(t, []uint{matching.ID, untargeted.ID}, ids)
	assert.NotContains(t, ids, other.ID)
	assert.NotContains(t, ids, adhoc.ID)
}

func TestReassignTraining_Resets(t *testing.T) {
	db := setupTestDB(t)
	user := createUser(t, db, "reassign@test.local")
	bystander := createUser(t, db, "bystander@test.local")
	tr := createTraining(t, db, "Refresh Me", trainingModels.TypeAssigned, 1)
	otherTr := createTraining(t, db, "Leave Me", trainingModels.TypeAssigned, 1)

	for _, u := range []*models.User{user, bystander} {
		_, err := AssignTraining(db, u.ID, tr.ID, nil)
		require.NoError(t, err)
	}
	_, err := AssignTraining(db, user.ID, otherTr.ID, nil)
	require.NoError(t, err)

	mods := moduleIDs(t, db, tr.ID)
	vids := videoIDs(t, db, mods[0])
	for _, u := range []*models.User{user, bystander} {
		_, err := MarkVideoComplete(db, u.ID, tr.ID, mods[0], vids[0])
		require.NoError(t, err)
	}

	require.NoError(t, ReassignTraining(db, []uint{user.ID}, tr.ID))

	// Reassigned user is back to an all-false Pending tree
	record, err := LoadProgress(db, user.ID, tr.ID)
	require.NoError(t, err)
	assert.Equal(t, progressModels.StatusPending, record.Status)
	assert.False(t, record.Pass)
	for _, m := range record.Modules {
		assert.False(t, m.Pass)
		for _, v := range m.Videos {
			assert.False(t, v.Pass)
		}
	}

	var entry models.UserTraining
	require.NoError(t, db.Where("user_id = ? AND training_id = ?", user.ID, tr.ID).First(&entry).Error)
	assert.Equal(t, progressModels.StatusPending, entry.Status)
	assert.False(t, entry.Pass)

	// Other users and other trainings untouched
	other, err := LoadProgress(db, bystander.ID, tr.ID)
	require.NoError(t, err)
	assert.Equal(t, progressModels.StatusCompleted, other.Status)

	_, err = LoadProgress(db, user.ID, otherTr.ID)
	require.NoError(t, err)
}

func TestReassignTraining_NoPriorProgress(t *testing.T) {
	db := setupTestDB(t)
	user := createUser(t, db, "fresh@test.local")
	tr := createTraining(t, db, "New Hire", trainingModels.TypeAssigned, 1)

	require.NoError(t, ReassignTraining(db, []uint{user.ID}, tr.ID))

	record, err := LoadProgress(db, user.ID, tr.ID)
	require.NoError(t, err)
	assert.Equal(t, progressModels.StatusPending, record.Status)
}

func TestDeleteTrainingCascade(t *testing.T) {
	db := setupTestDB(t)
	u1 := createUser(t, db, "cascade1@test.local")
	u2 := createUser(t, db, "cascade2@test.local")
	tr := createTraining(t, db, "Doomed", trainingModels.TypeAssigned, 2)
	keep := createTraining(t, db, "Keeper", trainingModels.TypeAssigned, 1)

	for _, u := range []*models.User{u1, u2} {
		_, err := AssignTraining(db, u.ID, tr.ID, nil)
		require.NoError(t, err)
	}
	_, err := AssignTraining(db, u1.ID, keep.ID, nil)
	require.NoError(t, err)

	require.NoError(t, DeleteTrainingCascade(db, tr.ID))

	var progressCount, entryCount, moduleCount, videoCount int64
	db.Model(&progressModels.TrainingProgress{}).Where("training_id = ?", tr.ID).Count(&progressCount)
	db.Model(&models.UserTraining{}).Where("training_id = ?", tr.ID).Count(&entryCount)
	db.Model(&progressModels.ModuleProgress{}).Count(&moduleCount)
	db.Model(&progressModels.VideoProgress{}).Count(&videoCount)
	assert.Zero(t, progressCount)
	assert.Zero(t, entryCount)
	assert.EqualValues(t, 1, moduleCount) // keeper's tree survives
	assert.EqualValues(t, 1, videoCount)

	var doomed trainingModels.Training
	require.NoError(t, db.First(&doomed, tr.ID).Error)
	assert.True(t, doomed.IsDeleted)

	// Already-deleted pieces are not an error
	require.NoError(t, DeleteTrainingCascade(db, tr.ID))
}

func TestBackfillMissingProgress_SkipsDeletedTraining(t *testing.T) {
	db := setupTestDB(t)
	user := createUser(t, db, "dangling@test.local")
	live := createTraining(t, db, "Still Here", trainingModels.TypeAssigned, 1)
	dead := createTraining(t, db, "Long Gone", trainingModels.TypeAssigned, 1)

	for _, tr := range []*trainingModels.Training{live, dead} {
		_, err := AssignTraining(db, user.ID, tr.ID, nil)
		require.NoError(t, err)
	}

	// Soft-delete one training and drop both progress records, leaving two
	// mirror entries behind, one of them dangling
	require.NoError(t, db.Model(&trainingModels.Training{}).
		Where("id = ?", dead.ID).Update("is_deleted", true).Error)
	require.NoError(t, deleteProgressTree(db, user.ID, live.ID))
	require.NoError(t, deleteProgressTree(db, user.ID, dead.ID))

	created, err := BackfillMissingProgress(db)
	require.NoError(t, err)
	assert.Equal(t, 1, created)

	_, err = LoadProgress(db, user.ID, live.ID)
	require.NoError(t, err)
	_, err = LoadProgress(db, user.ID, dead.ID)
	assert.ErrorIs(t, err, ErrProgressNotFound)

	// The dangling entry itself is left alone
	var entryCount int64
	db.Model(&models.UserTraining{}).
		Where("user_id = ? AND training_id = ?", user.ID, dead.ID).Count(&entryCount)
	assert.EqualValues(t, 1, entryCount)
}

func TestBackfillMissingProgress(t *testing.T) {
	db := setupTestDB(t)
	user := createUser(t, db, "backfill@test.local")
	tr := createTraining(t, db, "Lost Record", trainingModels.TypeAssigned, 2)

	_, err := AssignTraining(db, user.ID, tr.ID, nil)
	require.NoError(t, err)

	// Drop the progress record but leave the user's training entry behind
	require.NoError(t, deleteProgressTree(db, user.ID, tr.ID))
	_, err = LoadProgress(db, user.ID, tr.ID)
	require.ErrorIs(t, err, ErrProgressNotFound)

	created, err := BackfillMissingProgress(db)
	require.NoError(t, err)
	assert.Equal(t, 1, created)

	record, err := LoadProgress(db, user.ID, tr.ID)
	require.NoError(t, err)
	require.Len(t, record.Modules, 1)
	assert.Len(t, record.Modules[0].Videos, 2)
	assert.Equal(t, progressModels.StatusPending, record.Status)

	// Second run finds nothing missing
	created, err = BackfillMissingProgress(db)
	require.NoError(t, err)
	assert.Zero(t, created)
}
