package progress

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lms/models"
	progressModels "lms/models/progress"
	trainingModels "lms/models/training"
)

func TestMarkVideoComplete_Cascade(t *testing.T) {
	db := setupTestDB(t)
	user := createUser(t, db, "cascade@test.local")
	tr := createTraining(t, db, "Safety Basics", trainingModels.TypeAssigned, 2)

	_, err := AssignTraining(db, user.ID, tr.ID, nil)
	require.NoError(t, err)

	mods := moduleIDs(t, db, tr.ID)
	vids := videoIDs(t, db, mods[0])

	// First video: module still open, training in progress, 25.00
	res, err := MarkVideoComplete(db, user.ID, tr.ID, mods[0], vids[0])
	require.NoError(t, err)
	assert.False(t, res.Progress.Modules[0].Pass)
	assert.Equal(t, progressModels.StatusInProgress, res.Progress.Status)
	assert.False(t, res.Progress.Pass)
	assert.False(t, res.JustCompleted)
	assert.Equal(t, "25.00", ComputeTrainingPercentage(res.Progress))

	// Second video: module and training complete, 100.00
	res, err = MarkVideoComplete(db, user.ID, tr.ID, mods[0], vids[1])
	require.NoError(t, err)
	assert.True(t, res.Progress.Modules[0].Pass)
	assert.Equal(t, progressModels.StatusCompleted, res.Progress.Status)
	assert.True(t, res.Progress.Pass)
	assert.True(t, res.JustCompleted)
	assert.Equal(t, "100.00", ComputeTrainingPercentage(res.Progress))
}

func TestMarkVideoComplete_Idempotent(t *testing.T) {
	db := setupTestDB(t)
	user := createUser(t, db, "idem@test.local")
	tr := createTraining(t, db, "Compliance", trainingModels.TypeAssigned, 1, 1)

	_, err := AssignTraining(db, user.ID, tr.ID, nil)
	require.NoError(t, err)

	mods := moduleIDs(t, db, tr.ID)
	vids := videoIDs(t, db, mods[0])

	first, err := MarkVideoComplete(db, user.ID, tr.ID, mods[0], vids[0])
	require.NoError(t, err)

	// Repeating the same call is a success and changes nothing
	second, err := MarkVideoComplete(db, user.ID, tr.ID, mods[0], vids[0])
	require.NoError(t, err)
	assert.Equal(t, first.Progress.Status, second.Progress.Status)
	assert.Equal(t, first.Progress.Pass, second.Progress.Pass)
	assert.True(t, second.Progress.Modules[0].Videos[0].Pass)
	assert.False(t, second.JustCompleted)

	// Pass never resets once granted
	var vp progressModels.VideoProgress
	require.NoError(t, db.Where("video_id = ?", vids[0]).First(&vp).Error)
	assert.True(t, vp.Pass)
}

func TestMarkVideoComplete_JustCompletedFiresOnce(t *testing.T) {
	db := setupTestDB(t)
	user := createUser(t, db, "once@test.local")
	tr := createTraining(t, db, "AML", trainingModels.TypeAssigned, 1)

	_, err := AssignTraining(db, user.ID, tr.ID, nil)
	require.NoError(t, err)

	mods := moduleIDs(t, db, tr.ID)
	vids := videoIDs(t, db, mods[0])

	res, err := MarkVideoComplete(db, user.ID, tr.ID, mods[0], vids[0])
	require.NoError(t, err)
	assert.True(t, res.JustCompleted)

	res, err = MarkVideoComplete(db, user.ID, tr.ID, mods[0], vids[0])
	require.NoError(t, err)
	assert.False(t, res.JustCompleted)
}

func TestMarkVideoComplete_NotFound(t *testing.T) {
	db := setupTestDB(t)
	user := createUser(t, db, "notfound@test.local")
	tr := createTraining(t, db, "KYC", trainingModels.TypeAssigned, 1)

	_, err := AssignTraining(db, user.ID, tr.ID, nil)
	require.NoError(t, err)

	mods := moduleIDs(t, db, tr.ID)
	vids := videoIDs(t, db, mods[0])

	_, err = MarkVideoComplete(db, 9999, tr.ID, mods[0], vids[0])
	assert.ErrorIs(t, err, ErrUserNotFound)

	_, err = MarkVideoComplete(db, user.ID, 9999, mods[0], vids[0])
	assert.ErrorIs(t, err, ErrProgressNotFound)

	_, err = MarkVideoComplete(db, user.ID, tr.ID, 9999, vids[0])
	assert.ErrorIs(t, err, ErrModuleNotFound)

	_, err = MarkVideoComplete(db, user.ID, tr.ID, mods[0], 9999)
	assert.ErrorIs(t, err, ErrVideoNotFound)

	// A failed call must not mutate the record
	record, err := LoadProgress(db, user.ID, tr.ID)
	require.NoError(t, err)
	assert.Equal(t, progressModels.StatusPending, record.Status)
	assert.False(t, record.Modules[0].Videos[0].Pass)
}

func TestMarkVideoComplete_MirrorConsistency(t *testing.T) {
	db := setupTestDB(t)
	user := createUser(t, db, "mirror@test.local")
	tr := createTraining(t, db, "Fire Drill", trainingModels.TypeAssigned, 2)

	_, err := AssignTraining(db, user.ID, tr.ID, nil)
	require.NoError(t, err)

	mods := moduleIDs(t, db, tr.ID)
	vids := videoIDs(t, db, mods[0])

	for _, videoID := range vids {
		res, err := MarkVideoComplete(db, user.ID, tr.ID, mods[0], videoID)
		require.NoError(t, err)

		var entry models.UserTraining
		require.NoError(t, db.Where("user_id = ? AND training_id = ?", user.ID, tr.ID).First(&entry).Error)
		assert.Equal(t, res.Progress.Status, entry.Status)
		assert.Equal(t, res.Progress.Pass, entry.Pass)
	}
}

func TestMarkVideoComplete_RecreatesMissingMirror(t *testing.T) {
	db := setupTestDB(t)
	user := createUser(t, db, "stale@test.local")
	tr := createTraining(t, db, "Induction", trainingModels.TypeAssigned, 1)

	_, err := AssignTraining(db, user.ID, tr.ID, nil)
	require.NoError(t, err)

	// Simulate a lost mirror row
	require.NoError(t, db.Unscoped().
		Where("user_id = ? AND training_id = ?", user.ID, tr.ID).
		Delete(&models.UserTraining{}).Error)

	mods := moduleIDs(t, db, tr.ID)
	vids := videoIDs(t, db, mods[0])

	res, err := MarkVideoComplete(db, user.ID, tr.ID, mods[0], vids[0])
	require.NoError(t, err)
	require.NotNil(t, res.Entry)
	assert.Equal(t, progressModels.StatusCompleted, res.Entry.Status)

	var count int64
	db.Model(&models.UserTraining{}).Where("user_id = ? AND training_id = ?", user.ID, tr.ID).Count(&count)
	assert.EqualValues(t, 1, count)
}
