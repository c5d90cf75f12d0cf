package progress

import (
	"gorm.io/gorm"

	progressModels "lms/models/progress"
)

// OverallCompletion returns the user's mean completion percentage across all
// assigned trainings, formatted to two decimals.
func OverallCompletion(db *gorm.DB, userID uint) (string, error) {
	var records []progressModels.TrainingProgress
	err := db.Preload("Modules").Preload("Modules.Videos").
		Where("user_id = ?", userID).
		Find(&records).Error
	if err != nil {
		return "", err
	}

	percentages := make([]float64, len(records))
	for i := range records {
		percentages[i] = TrainingPercentValue(&records[i])
	}
	return ComputeUserOverallPercentage(percentages), nil
}
