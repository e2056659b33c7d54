package models

import (
	"time"
)

type VerificationStatus string

const (
	StatusPending       VerificationStatus = "PENDING"
	StatusEmailVerified VerificationStatus = "EMAIL_VERIFIED"
	StatusVerified      VerificationStatus = "VERIFIED"
	StatusRejected      VerificationStatus = "REJECTED"
)

// IsModerationStatus reports whether s is one of the statuses an admin
// may set directly. EMAIL_VERIFIED is reached only through OTP verification.
func IsModerationStatus(s VerificationStatus) bool {
	switch s {
	case StatusPending, StatusVerified, StatusRejected:
		return true
	}
	return false
}

type DoctorProfile struct {
	ID                 uint               `json:"id" gorm:"primaryKey"`
	UserID             uint               `json:"user_id" gorm:"uniqueIndex"`
	Category           string             `json:"doctor_category"`
	Speciality         string             `json:"speciality"`
	VisitingHours      string             `json:"visiting_hours"`
	MedicalRegNo       string             `json:"medical_reg_no" gorm:"unique"`
	MedicalCouncil     string             `json:"medical_council"`
	ClinicName         string             `json:"clinic_name"`
	City               string             `json:"city"`
	State              string             `json:"state"`
	LicenseURL         string             `json:"license_url"`
	GovtIDURL          string             `json:"govt_id_url"`
	Degrees            string             `json:"degrees"`
	ExperienceYears    string             `json:"experience_years"`
	Bio                string             `json:"bio"`
	Languages          []string           `json:"languages" gorm:"serializer:json"`
	ProfileImage       string             `json:"profile_image"`
	VerificationStatus VerificationStatus `json:"verification_status" gorm:"default:PENDING"`
	CreatedAt          time.Time          `json:"created_at"`
	UpdatedAt          time.Time          `json:"updated_at"`
}
