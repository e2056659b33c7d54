package models

import (
	"gorm.io/gorm"
)

type Consultation struct {
	gorm.Model
	SessionID    string `json:"session_id" gorm:"index"`
	DoctorID     uint   `json:"doctor_id"`
	Doctor       User   `json:"doctor,omitempty" gorm:"foreignKey:DoctorID"`
	Record       string `json:"record" gorm:"type:jsonb"`
	Prescription string `json:"prescription" gorm:"type:jsonb"`
	Summary      string `json:"summary"`
	PDFURL       string `json:"pdf_url"`
}
