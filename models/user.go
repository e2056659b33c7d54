package models

import (
	"time"
)

const (
	RoleDoctor     = "doctor"
	RoleAdmin      = "admin"
	RolePharmacist = "pharmacist"
)

type User struct {
	ID            uint           `json:"id" gorm:"primaryKey"`
	Name          string         `json:"name"`
	Email         string         `json:"email" gorm:"unique"`
	Password      string         `json:"-"`
	Mobile        string         `json:"mobile"`
	Role          string         `json:"role" gorm:"default:doctor"`
	EmailVerified bool           `json:"email_verified"`
	OTP           string         `json:"-"`
	OTPExpiresAt  time.Time      `json:"-"`
	DoctorProfile *DoctorProfile `json:"doctor_profile,omitempty" gorm:"foreignKey:UserID"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}
