package progress

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	progressModels "lms/models/progress"
)

// DefaultMigrationPattern matches the training whose duplicate Assigned/
// Mandatory records this migration was written to clean up. The free-text
// match is a compatibility shim for data predating the section tag.
const DefaultMigrationPattern = "foundation of service"

// MigrationResult counts what MergeDuplicateProgress did
type MigrationResult struct {
	Moved  int `json:"moved"`
	Merged int `json:"merged"`
}

// MergeDuplicateProgress folds completed Assigned-section records into their
// Mandatory-section siblings. For each completed Assigned record whose
// training name matches the pattern (case-insensitive):
//   - sibling Mandatory record exists: overwrite its status/pass/score/
//     deadline and module tree from the assigned record, delete the assigned
//     record ("merged");
//   - no sibling: retag the assigned record's section to Mandatory ("moved").
//
// The whole scan runs in one transaction; a crash mid-run leaves either the
// pre- or post-migration state, never a partial merge.
func MergeDuplicateProgress(db *gorm.DB, pattern string) (MigrationResult, error) {
	if pattern == "" {
		pattern = DefaultMigrationPattern
	}
	needle := "%" + strings.ToLower(pattern) + "%"

	var result MigrationResult
	err := db.Transaction(func(tx *gorm.DB) error {
		var assigned []progressModels.TrainingProgress
		if err := tx.Where("section = ? AND status = ? AND LOWER(training_name) LIKE ?",
			progressModels.SectionAssigned, progressModels.StatusCompleted, needle).
			Find(&assigned).Error; err != nil {
			return err
		}

		for i := range assigned {
			rec := &assigned[i]

			var mandatory progressModels.TrainingProgress
			err := tx.Where("user_id = ? AND section = ? AND LOWER(training_name) = ?",
				rec.UserID, progressModels.SectionMandatory, strings.ToLower(rec.TrainingName)).
				First(&mandatory).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				if err := tx.Model(&progressModels.TrainingProgress{}).
					Where("id = ?", rec.ID).
					Update("section", progressModels.SectionMandatory).Error; err != nil {
					return err
				}
				result.Moved++
				continue
			}
			if err != nil {
				return err
			}

			if err := mergeInto(tx, rec, &mandatory); err != nil {
				return err
			}
			result.Merged++
		}
		return nil
	})
	if err != nil {
		return MigrationResult{}, err
	}
	return result, nil
}

// mergeInto overwrites the mandatory record's state and module tree with the
// assigned record's, then deletes the assigned record.
func mergeInto(tx *gorm.DB, assigned, mandatory *progressModels.TrainingProgress) error {
	if err := tx.Model(&progressModels.TrainingProgress{}).
		Where("id = ?", mandatory.ID).
		Updates(map[string]interface{}{
			"status":   assigned.Status,
			"pass":     assigned.Pass,
			"score":    assigned.Score,
			"deadline": assigned.Deadline,
		}).Error; err != nil {
		return err
	}

	// Drop the mandatory record's old tree, then re-home the assigned one
	var oldModuleIDs []uint
	if err := tx.Model(&progressModels.ModuleProgress{}).
		Where("progress_id = ?", mandatory.ID).
		Pluck("id", &oldModuleIDs).Error; err != nil {
		return err
	}
	if len(oldModuleIDs) > 0 {
		if err := tx.Unscoped().Where("module_progress_id IN ?", oldModuleIDs).
			Delete(&progressModels.VideoProgress{}).Error; err != nil {
			return err
		}
		if err := tx.Unscoped().Where("id IN ?", oldModuleIDs).
			Delete(&progressModels.ModuleProgress{}).Error; err != nil {
			return err
		}
	}

	if err := tx.Model(&progressModels.ModuleProgress{}).
		Where("progress_id = ?", assigned.ID).
		Update("progress_id", mandatory.ID).Error; err != nil {
		return err
	}

	return tx.Unscoped().Delete(&progressModels.TrainingProgress{}, assigned.ID).Error
}
