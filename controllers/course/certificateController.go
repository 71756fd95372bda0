package controllers

import (
	"log"

	"lms/database"
	"lms/middleware"
	"lms/models"
	courseModels "lms/models/course"
	"lms/utils"

	"github.com/gofiber/fiber/v2"
)

// issueCertificate stamps the certificate fields on a freshly completed
// enrollment and notifies the learner. The caller has already persisted the
// completion itself; the certificate is a follow-up write so a mail or
// generation failure never rolls back course completion.
func issueCertificate(enrollment *courseModels.Enrollment, user models.User) {
	if enrollment.CertificateIssued {
		return
	}

	enrollment.CertificateIssued = true
	enrollment.CertificateNumber = utils.GenerateCertificateNumber(enrollment.CourseID)

	res := database.Database.Db.Model(&courseModels.Enrollment{}).
		Where("id = ? AND certificate_issued = ?", enrollment.ID, false).
		Updates(map[string]interface{}{
			"certificate_issued": true,
			"certificate_number": enrollment.CertificateNumber,
		})
	if res.Error != nil {
		log.Printf("Error issuing certificate for enrollment %d: %v", enrollment.ID, res.Error)
		return
	}
	if res.RowsAffected == 0 {
		// Another writer issued it first
		return
	}

	var course courseModels.Course
	if err := database.Database.Db.Where("id = ?", enrollment.CourseID).First(&course).Error; err != nil {
		return
	}

	go func(email, name, title, number string) {
		if err := utils.SendCertificateEmail(email, name, title, number); err != nil {
			log.Printf("Error sending certificate email: %v", err)
		}
	}(user.Email, user.Name, course.Title, enrollment.CertificateNumber)
}

// GetUserCertificates lists the user's earned certificates
func GetUserCertificates(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	var enrollments []courseModels.Enrollment
	if err := database.Database.Db.Where("user_id = ? AND certificate_issued = ? AND is_deleted = ?", userID, true, false).
		Order("completed_at desc").Find(&enrollments).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch certificates!", nil)
	}

	type CertificateView struct {
		CourseID          uint        `json:"course_id"`
		CourseTitle       string      `json:"course_title"`
		CertificateNumber string      `json:"certificate_number"`
		CompletedAt       interface{} `json:"completed_at"`
	}

	certificates := make([]CertificateView, len(enrollments))
	for i, e := range enrollments {
		certificates[i] = CertificateView{
			CourseID:          e.CourseID,
			CertificateNumber: e.CertificateNumber,
			CompletedAt:       e.CompletedAt,
		}
		var course courseModels.Course
		if err := database.Database.Db.Where("id = ?", e.CourseID).First(&course).Error; err == nil {
			certificates[i].CourseTitle = course.Title
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Certificates fetched successfully!", fiber.Map{
		"certificates": certificates,
	})
}
