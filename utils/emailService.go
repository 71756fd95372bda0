package utils

import (
	"fmt"
	"lms/config"
	"log"
	"net/smtp"
	"strings"
)

// SendEmail sends an HTML email through the configured SMTP account
func SendEmail(to []string, subject string, htmlBody string) error {
	smtpHost := "smtp.gmail.com"
	smtpPort := "587"

	from := config.AppConfig.EmailSender
	password := config.AppConfig.Password

	msg := "MIME-version: 1.0;\nContent-Type: text/html; charset=\"UTF-8\";\n"
	msg += fmt.Sprintf("From: LearnSphere <%s>\r\n", from)
	msg += fmt.Sprintf("To: %s\r\n", strings.Join(to, ","))
	msg += fmt.Sprintf("Subject: %s\r\n\r\n", subject)
	msg += htmlBody

	auth := smtp.PlainAuth("", from, password, smtpHost)

	err := smtp.SendMail(smtpHost+":"+smtpPort, auth, from, to, []byte(msg))
	if err != nil {
		log.Printf("Error sending email to %v: %v", to, err)
		return err
	}
	return nil
}

// getEmailTemplate wraps body content in the shared HTML layout
func getEmailTemplate(title string, bodyContent string) string {
	return fmt.Sprintf(`
	<!DOCTYPE html>
	<html>
	<head>
		<style>
			body { font-family: 'Helvetica Neue', Helvetica, Arial, sans-serif; background-color: #F6F6F6; margin: 0; padding: 0; }
			.container { max-width: 600px; margin: 40px auto; background: #FFFFFF; border-radius: 8px; overflow: hidden; box-shadow: 0 4px 15px rgba(0,0,0,0.05); }
			.header { background-color: #1A237E; padding: 30px; text-align: center; }
			.header h1 { color: #FFFFFF; margin: 0; font-size: 24px; letter-spacing: 1px; }
			.content { padding: 40px 30px; color: #1A237E; line-height: 1.6; }
			.content h2 { color: #1A237E; margin-top: 0; }
			.footer { background-color: #F6F6F6; padding: 20px; text-align: center; font-size: 12px; color: #666666; border-top: 1px solid #E0E0E0; }
			.code { text-align: center; color: #4CAF50; font-size: 40px; letter-spacing: 8px; margin: 20px 0; }
			.info-box { background: #E8F0FE; padding: 15px; border-radius: 4px; border-left: 4px solid #4CAF50; margin: 20px 0; }
		</style>
	</head>
	<body>
		<div class="container">
			<div class="header">
				<h1>LEARNSPHERE</h1>
			</div>
			<div class="content">
				<h2>%s</h2>
				%s
			</div>
			<div class="footer">
				&copy; 2026 LearnSphere. All rights reserved.
			</div>
		</div>
	</body>
	</html>
	`, title, bodyContent)
}

// SendVerificationEmail mails the email-verification OTP after signup
func SendVerificationEmail(email, name, otp string) error {
	body := fmt.Sprintf(`
		<p>Hi %s,</p>
		<p>Welcome to LearnSphere! Use the code below to verify your email address:</p>
		<h1 class="code">%s</h1>
		<p>The code expires in 5 minutes. Do not share it with anyone.</p>
	`, name, otp)

	return SendEmail([]string{email}, "Verify your email - LearnSphere", getEmailTemplate("Verify your email", body))
}

// SendTwoFactorEmail mails the login verification code
func SendTwoFactorEmail(email, name, code string) error {
	body := fmt.Sprintf(`
		<p>Hi %s,</p>
		<p>Your login verification code is:</p>
		<h1 class="code">%s</h1>
		<p>The code expires in 10 minutes. If you did not try to log in, you can safely ignore this email.</p>
	`, name, code)

	return SendEmail([]string{email}, "Your login code - LearnSphere", getEmailTemplate("Two-factor verification", body))
}

// SendEnrollmentEmail confirms a new course enrollment
func SendEnrollmentEmail(email, userName, courseName string) error {
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>You have successfully enrolled in:</p>
		<div class="info-box"><strong>%s</strong></div>
		<p>You can now access the course content. Complete every module and its assessment to earn your certificate.</p>
		<p>Happy learning!</p>
	`, userName, courseName)

	return SendEmail([]string{email}, "Course Enrollment Confirmation - LearnSphere", getEmailTemplate("Enrollment Successful", body))
}

// SendCertificateEmail notifies the learner that their certificate is ready
func SendCertificateEmail(email, userName, courseName, certificateNumber string) error {
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Congratulations on completing:</p>
		<div class="info-box"><strong>%s</strong></div>
		<p>Your certificate number:</p>
		<h1 class="code" style="letter-spacing: 2px;">%s</h1>
		<p>You can use this number for verification purposes.</p>
	`, userName, courseName, certificateNumber)

	return SendEmail([]string{email}, "Course Completion Certificate - LearnSphere", getEmailTemplate("Certificate of Completion", body))
}
