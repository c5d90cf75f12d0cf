package progress

import (
	"errors"

	"gorm.io/gorm"

	"lms/models"
	progressModels "lms/models/progress"
)

// CompletionResult is returned by MarkVideoComplete
type CompletionResult struct {
	Progress *progressModels.TrainingProgress `json:"progress"`
	Entry    *models.UserTraining             `json:"user_training"`
	// JustCompleted is true only on the call that transitioned the training
	// to Completed, so notifications fire exactly once.
	JustCompleted bool `json:"just_completed"`
}

// MarkVideoComplete is the single state transition on a progress record: flip
// one video's pass flag and cascade the rollup (video -> module -> training),
// then synchronize the user's denormalized training entry.
//
// The video flip is a single-row update, so two concurrent completions of
// different videos in the same training cannot clobber each other. Repeat
// calls with the same ids are an idempotent no-op, not an error. The progress
// record is saved before the user mirror; a crash between the two leaves the
// mirror stale but the source of truth correct.
func MarkVideoComplete(db *gorm.DB, userID, trainingID, moduleID, videoID uint) (*CompletionResult, error) {
	var user models.User
	if err := db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	var record progressModels.TrainingProgress
	err := db.Preload("Modules", func(db *gorm.DB) *gorm.DB { return db.Order("order_index asc") }).
		Preload("Modules.Videos", func(db *gorm.DB) *gorm.DB { return db.Order("order_index asc") }).
		Where("user_id = ? AND training_id = ?", userID, trainingID).
		First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProgressNotFound
		}
		return nil, err
	}

	var module *progressModels.ModuleProgress
	for i := range record.Modules {
		if record.Modules[i].ModuleID == moduleID {
			module = &record.Modules[i]
			break
		}
	}
	if module == nil {
		return nil, ErrModuleNotFound
	}

	var video *progressModels.VideoProgress
	for i := range module.Videos {
		if module.Videos[i].VideoID == videoID {
			video = &module.Videos[i]
			break
		}
	}
	if video == nil {
		return nil, ErrVideoNotFound
	}

	if !video.Pass {
		if err := db.Model(&progressModels.VideoProgress{}).
			Where("id = ?", video.ID).
			Update("pass", true).Error; err != nil {
			return nil, err
		}
		video.Pass = true
	}

	// Module passes when no video in it remains unpassed. Recounted from rows
	// rather than the loaded tree so a concurrent completion is not lost.
	var unpassedVideos int64
	if err := db.Model(&progressModels.VideoProgress{}).
		Where("module_progress_id = ? AND pass = ?", module.ID, false).
		Count(&unpassedVideos).Error; err != nil {
		return nil, err
	}
	modulePass := unpassedVideos == 0
	if modulePass != module.Pass {
		if err := db.Model(&progressModels.ModuleProgress{}).
			Where("id = ?", module.ID).
			Update("pass", modulePass).Error; err != nil {
			return nil, err
		}
		module.Pass = modulePass
	}

	var unpassedModules int64
	if err := db.Model(&progressModels.ModuleProgress{}).
		Where("progress_id = ? AND pass = ?", record.ID, false).
		Count(&unpassedModules).Error; err != nil {
		return nil, err
	}

	status := progressModels.StatusInProgress
	pass := false
	if unpassedModules == 0 {
		status = progressModels.StatusCompleted
		pass = true
	}

	wasCompleted := record.Status == progressModels.StatusCompleted
	if record.Status != status || record.Pass != pass {
		if err := db.Model(&progressModels.TrainingProgress{}).
			Where("id = ?", record.ID).
			Updates(map[string]interface{}{"status": status, "pass": pass}).Error; err != nil {
			return nil, err
		}
		record.Status = status
		record.Pass = pass
	}

	entry, err := syncUserTraining(db, userID, trainingID, &record)
	if err != nil {
		return nil, err
	}

	return &CompletionResult{
		Progress:      &record,
		Entry:         entry,
		JustCompleted: pass && !wasCompleted,
	}, nil
}

// syncUserTraining overwrites the user's denormalized training entry with the
// just-saved progress state. A missing entry is recreated rather than treated
// as an error.
func syncUserTraining(db *gorm.DB, userID, trainingID uint, record *progressModels.TrainingProgress) (*models.UserTraining, error) {
	var entry models.UserTraining
	err := db.Where("user_id = ? AND training_id = ?", userID, trainingID).First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		entry = models.UserTraining{
			UserID:     userID,
			TrainingID: trainingID,
			Deadline:   record.Deadline,
			Pass:       record.Pass,
			Status:     record.Status,
		}
		if err := db.Create(&entry).Error; err != nil {
			return nil, err
		}
		return &entry, nil
	}
	if err != nil {
		return nil, err
	}

	if entry.Status != record.Status || entry.Pass != record.Pass {
		if err := db.Model(&models.UserTraining{}).
			Where("id = ?", entry.ID).
			Updates(map[string]interface{}{"status": record.Status, "pass": record.Pass}).Error; err != nil {
			return nil, err
		}
		entry.Status = record.Status
		entry.Pass = record.Pass
	}
	return &entry, nil
}

// LoadProgress fetches a progress record with its full module/video tree
func LoadProgress(db *gorm.DB, userID, trainingID uint) (*progressModels.TrainingProgress, error) {
	var record progressModels.TrainingProgress
	err := db.Preload("Modules", func(db *gorm.DB) *gorm.DB { return db.Order("order_index asc") }).
		Preload("Modules.Videos", func(db *gorm.DB) *gorm.DB { return db.Order("order_index asc") }).
		Where("user_id = ? AND training_id = ?", userID, trainingID).
		First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProgressNotFound
		}
		return nil, err
	}
	return &record, nil
}
