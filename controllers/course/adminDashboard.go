package controllers

import (
	"time"

	"lms/database"
	"lms/middleware"
	"lms/models"
	courseModels "lms/models/course"

	"github.com/gofiber/fiber/v2"
	"github.com/jinzhu/now"
)

// AdminDashboard returns platform-wide counters for the admin panel
func AdminDashboard(c *fiber.Ctx) error {
	db := database.Database.Db

	var totalUsers, totalCourses, publishedCourses int64
	var totalEnrollments, completedEnrollments, certificatesIssued int64

	db.Model(&models.User{}).Where("is_deleted = ?", false).Count(&totalUsers)
	db.Model(&courseModels.Course{}).Where("is_deleted = ?", false).Count(&totalCourses)
	db.Model(&courseModels.Course{}).Where("is_published = ? AND is_deleted = ?", true, false).Count(&publishedCourses)
	db.Model(&courseModels.Enrollment{}).Where("is_deleted = ?", false).Count(&totalEnrollments)
	db.Model(&courseModels.Enrollment{}).Where("is_completed = ? AND is_deleted = ?", true, false).Count(&completedEnrollments)
	db.Model(&courseModels.Enrollment{}).Where("certificate_issued = ? AND is_deleted = ?", true, false).Count(&certificatesIssued)

	var enrollmentsToday, enrollmentsThisWeek int64
	startOfDay := now.BeginningOfDay()
	startOfWeek := now.BeginningOfWeek()

	db.Model(&courseModels.Enrollment{}).Where("enrollment_date >= ? AND is_deleted = ?", startOfDay, false).Count(&enrollmentsToday)
	db.Model(&courseModels.Enrollment{}).Where("enrollment_date >= ? AND is_deleted = ?", startOfWeek, false).Count(&enrollmentsThisWeek)

	var attemptsThisWeek int64
	var passedThisWeek int64
	db.Model(&courseModels.AssessmentAttempt{}).Where("submitted_at >= ? AND is_deleted = ?", startOfWeek, false).Count(&attemptsThisWeek)
	db.Model(&courseModels.AssessmentAttempt{}).Where("submitted_at >= ? AND passed = ? AND is_deleted = ?", startOfWeek, true, false).Count(&passedThisWeek)

	response := fiber.Map{
		"totalUsers":           totalUsers,
		"totalCourses":         totalCourses,
		"publishedCourses":     publishedCourses,
		"totalEnrollments":     totalEnrollments,
		"completedEnrollments": completedEnrollments,
		"certificatesIssued":   certificatesIssued,
		"enrollmentsToday":     enrollmentsToday,
		"enrollmentsThisWeek":  enrollmentsThisWeek,
		"assessmentsThisWeek":  attemptsThisWeek,
		"assessmentsPassed":    passedThisWeek,
		"generatedAt":          time.Now(),
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Dashboard fetched successfully!", response)
}
