package utils

import (
	"lms/database"
	"lms/models"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// logScheduler logs scheduler events with timestamp
func logScheduler(message string) {
	log.Printf("[OTP-SCHEDULER %s] %s", time.Now().Format(time.RFC3339), message)
}

// purgeStaleOTPs soft-deletes one-time codes that expired more than a day
// ago or were already consumed. Recently expired codes are kept so a "code
// expired" response stays distinguishable from "invalid code".
func purgeStaleOTPs() {
	db := database.Database.Db
	cutoff := time.Now().Add(-24 * time.Hour)

	res := db.Model(&models.OTP{}).
		Where("is_deleted = ? AND (is_used = ? OR expires_at < ?)", false, true, cutoff).
		Update("is_deleted", true)
	if res.Error != nil {
		logScheduler("Error purging stale OTPs: " + res.Error.Error())
		return
	}

	if res.RowsAffected > 0 {
		logScheduler("Purged stale OTP records")
	}
}

// StartOTPCleanupJob schedules the nightly OTP purge
func StartOTPCleanupJob() {
	c := cron.New()

	// Every day at 03:00
	if _, err := c.AddFunc("0 3 * * *", purgeStaleOTPs); err != nil {
		logScheduler("Failed to schedule OTP cleanup: " + err.Error())
		return
	}

	c.Start()
	logScheduler("OTP cleanup job scheduled")
}
