package utils

import (
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"lms/config"
	"lms/database"
	"lms/models"
	progressModels "lms/models/progress"
	trainingModels "lms/models/training"
)

// InitializeReminderScheduler sets up the daily training deadline sweep
func InitializeReminderScheduler() {
	log.Println("[REMINDER-SCHEDULER] Initializing reminder scheduler...")

	c := cron.New()

	// Run daily at 9 AM to remind users with approaching deadlines
	c.AddFunc("0 9 * * *", func() {
		log.Println("[REMINDER-SCHEDULER] Running daily deadline check...")
		ProcessDeadlineReminders()
	})

	c.Start()
	log.Println("[REMINDER-SCHEDULER] Reminder scheduler started - runs daily at 9 AM")
}

// ProcessDeadlineReminders emails users whose unfinished trainings are due
// within the configured reminder window
func ProcessDeadlineReminders() {
	db := database.Database.Db
	now := time.Now()
	windowEnd := now.AddDate(0, 0, config.AppConfig.ReminderDays)

	var entries []models.UserTraining
	if err := db.
		Where("status != ? AND deadline IS NOT NULL", progressModels.StatusCompleted).
		Where("deadline BETWEEN ? AND ?", now, windowEnd).
		Find(&entries).Error; err != nil {
		log.Printf("[REMINDER-SCHEDULER] Error fetching due trainings: %v", err)
		return
	}

	log.Printf("[REMINDER-SCHEDULER] Found %d trainings due soon", len(entries))

	for _, entry := range entries {
		var user models.User
		if err := db.Where("id = ? AND is_deleted = ?", entry.UserID, false).First(&user).Error; err != nil {
			log.Printf("[REMINDER-SCHEDULER] Error fetching user %d: %v", entry.UserID, err)
			continue
		}

		var training trainingModels.Training
		if err := db.Where("id = ?", entry.TrainingID).First(&training).Error; err != nil {
			log.Printf("[REMINDER-SCHEDULER] Error fetching training %d: %v", entry.TrainingID, err)
			continue
		}

		if err := SendDeadlineReminderEmail(user.Email, user.Name, training.Name, *entry.Deadline); err == nil {
			log.Printf("[REMINDER-SCHEDULER] Sent deadline reminder for training %d to %s", training.ID, user.Email)
		}

		if user.Mobile != "" {
			msg := fmt.Sprintf("Reminder: your training \"%s\" is due on %s. Please complete it on the training portal.",
				training.Name, entry.Deadline.Format("02 Jan 2006"))
			SendWhatsappMessage(user.Mobile, msg)
		}
	}
}
