package models

import (
	"time"

	"gorm.io/gorm"
)

// OTP stores one-time codes for email verification and two-factor login.
// Codes are persisted with an explicit expiry so they survive restarts and
// work across multiple instances.
type OTP struct {
	gorm.Model
	UserID      uint      `gorm:"not null" json:"user_id"`
	Email       string    `gorm:"size:100;index" json:"email,omitempty"`
	Code        string    `gorm:"size:6;not null" json:"code"`
	ExpiresAt   time.Time `gorm:"not null" json:"expires_at"`
	IsUsed      bool      `gorm:"default:false" json:"is_used"`
	Description string    `gorm:"size:255" json:"description,omitempty"`
	IsDeleted   bool      `gorm:"default:false"`
}

// OTP descriptions, also used by the cleanup job
const (
	OTPEmailVerification = "Email Verification OTP"
	OTPTwoFactorLogin    = "Two-Factor Login Code"
)
