package progress

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"lms/models"
	progressModels "lms/models/progress"
	trainingModels "lms/models/training"
)

// AssignTraining creates a zero-progress record for (user, training) by
// snapshotting the training's current module/video shape, plus the user's
// denormalized training entry. Skip-if-exists: assigning an already-assigned
// training returns the existing record untouched.
func AssignTraining(db *gorm.DB, userID, trainingID uint, deadline *time.Time) (*progressModels.TrainingProgress, error) {
	var existing progressModels.TrainingProgress
	err := db.Where("user_id = ? AND training_id = ?", userID, trainingID).First(&existing).Error
	if err == nil {
		return LoadProgress(db, userID, trainingID)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	var training trainingModels.Training
	if err := db.Where("id = ? AND is_deleted = ?", trainingID, false).First(&training).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTrainingNotFound
		}
		return nil, err
	}

	if deadline == nil {
		deadline = training.ResolveDeadline(time.Now())
	}

	var modules []trainingModels.Module
	if err := db.Where("training_id = ? AND is_deleted = ?", trainingID, false).
		Order("order_index asc").Find(&modules).Error; err != nil {
		return nil, err
	}

	record := progressModels.TrainingProgress{
		UserID:       userID,
		TrainingID:   trainingID,
		TrainingName: training.Name,
		Section:      training.Type,
		Deadline:     deadline,
		Status:       progressModels.StatusPending,
	}

	for _, mod := range modules {
		var videos []trainingModels.Video
		if err := db.Where("module_id = ? AND is_deleted = ?", mod.ID, false).
			Order("order_index asc").Find(&videos).Error; err != nil {
			return nil, err
		}

		mp := progressModels.ModuleProgress{
			ModuleID:   mod.ID,
			OrderIndex: mod.OrderIndex,
		}
		for _, v := range videos {
			mp.Videos = append(mp.Videos, progressModels.VideoProgress{
				VideoID:    v.ID,
				OrderIndex: v.OrderIndex,
			})
		}
		record.Modules = append(record.Modules, mp)
	}

	if err := db.Create(&record).Error; err != nil {
		return nil, err
	}

	// Mirror entry; restore it if a stale one survived an earlier cleanup
	var entry models.UserTraining
	err = db.Where("user_id = ? AND training_id = ?", userID, trainingID).First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		entry = models.UserTraining{
			UserID:     userID,
			TrainingID: trainingID,
			Deadline:   deadline,
			Status:     progressModels.StatusPending,
		}
		if err := db.Create(&entry).Error; err != nil {
			return nil, err
		}
	} else if err != nil {
		return nil, err
	} else {
		if err := db.Model(&models.UserTraining{}).Where("id = ?", entry.ID).
			Updates(map[string]interface{}{"status": progressModels.StatusPending, "pass": false, "deadline": deadline}).Error; err != nil {
			return nil, err
		}
	}

	return &record, nil
}

// AssignMandatoryTrainings assigns every mandatory training targeting the
// user's designation or branch. Called at onboarding; skip-if-exists per
// training, so re-running for an existing user is harmless.
func AssignMandatoryTrainings(db *gorm.DB, user *models.User) error {
	var trainings []trainingModels.Training
	if err := db.Where("type = ? AND is_deleted = ?", trainingModels.TypeMandatory, false).
		Find(&trainings).Error; err != nil {
		return err
	}

	for _, t := range trainings {
		if !targetsUser(&t, user) {
			continue
		}
		if _, err := AssignTraining(db, user.ID, t.ID, nil); err != nil {
			return err
		}
	}
	return nil
}

func targetsUser(t *trainingModels.Training, user *models.User) bool {
	if t.Designations == "" && t.Branches == "" {
		return true
	}
	return csvContains(t.Designations, user.Designation) || csvContains(t.Branches, user.Branch)
}

func csvContains(csv, value string) bool {
	if csv == "" || value == "" {
		return false
	}
	for _, part := range strings.Split(csv, ",") {
		if strings.TrimSpace(part) == value {
			return true
		}
	}
	return false
}

// ReassignTraining wipes and recreates progress for each user: any existing
// record and mirror entry are removed, then a fresh all-false tree is built
// from the current catalog. Safe on users with no prior progress, idempotent
// per user, and never touches other users or other trainings.
func ReassignTraining(db *gorm.DB, userIDs []uint, trainingID uint) error {
	for _, userID := range userIDs {
		if err := deleteProgressTree(db, userID, trainingID); err != nil {
			return err
		}
		if err := db.Unscoped().
			Where("user_id = ? AND training_id = ?", userID, trainingID).
			Delete(&models.UserTraining{}).Error; err != nil {
			return err
		}
		if _, err := AssignTraining(db, userID, trainingID, nil); err != nil {
			return err
		}
	}
	return nil
}

// DeleteTrainingCascade soft-deletes the training and removes every progress
// record and user training entry referencing it. Pieces already gone are
// treated as already-deleted, never an error.
func DeleteTrainingCascade(db *gorm.DB, trainingID uint) error {
	if err := db.Model(&trainingModels.Training{}).
		Where("id = ?", trainingID).
		Update("is_deleted", true).Error; err != nil {
		return err
	}

	if err := deleteProgressTree(db, 0, trainingID); err != nil {
		return err
	}

	return db.Unscoped().
		Where("training_id = ?", trainingID).
		Delete(&models.UserTraining{}).Error
}

// deleteProgressTree hard-deletes progress records (with their module/video
// rows) for a training; userID 0 means all users.
func deleteProgressTree(db *gorm.DB, userID, trainingID uint) error {
	q := db.Model(&progressModels.TrainingProgress{}).Where("training_id = ?", trainingID)
	if userID != 0 {
		q = q.Where("user_id = ?", userID)
	}

	var recordIDs []uint
	if err := q.Pluck("id", &recordIDs).Error; err != nil {
		return err
	}
	if len(recordIDs) == 0 {
		return nil
	}

	var moduleIDs []uint
	if err := db.Model(&progressModels.ModuleProgress{}).
		Where("progress_id IN ?", recordIDs).
		Pluck("id", &moduleIDs).Error; err != nil {
		return err
	}

	if len(moduleIDs) > 0 {
		if err := db.Unscoped().Where("module_progress_id IN ?", moduleIDs).
			Delete(&progressModels.VideoProgress{}).Error; err != nil {
			return err
		}
		if err := db.Unscoped().Where("id IN ?", moduleIDs).
			Delete(&progressModels.ModuleProgress{}).Error; err != nil {
			return err
		}
	}

	return db.Unscoped().Where("id IN ?", recordIDs).
		Delete(&progressModels.TrainingProgress{}).Error
}

// BackfillMissingProgress synthesizes a fresh all-false progress record for
// every user training entry with no matching record. Skip-if-exists. Entries
// whose training has since been deleted are left alone. Returns the number of
// records created.
func BackfillMissingProgress(db *gorm.DB) (int, error) {
	var entries []models.UserTraining
	if err := db.Find(&entries).Error; err != nil {
		return 0, err
	}

	created := 0
	for _, entry := range entries {
		var count int64
		if err := db.Model(&progressModels.TrainingProgress{}).
			Where("user_id = ? AND training_id = ?", entry.UserID, entry.TrainingID).
			Count(&count).Error; err != nil {
			return created, err
		}
		if count > 0 {
			continue
		}
		if _, err := AssignTraining(db, entry.UserID, entry.TrainingID, entry.Deadline); err != nil {
			if errors.Is(err, ErrTrainingNotFound) {
				continue // dangling reference, tolerated
			}
			return created, err
		}
		created++
	}
	return created, nil
}
