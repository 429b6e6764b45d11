package model

import (
	"time"

	"github.com/google/uuid"
)

// DoctorManager links a doctor to a supervising manager.
type DoctorManager struct {
	DoctorID  uuid.UUID `json:"doctor_id" db:"doctor_id"`
	ManagerID uuid.UUID `json:"manager_id" db:"manager_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// DoctorPatient links a doctor to a patient under their care.
type DoctorPatient struct {
	DoctorID  uuid.UUID `json:"doctor_id" db:"doctor_id"`
	PatientID uuid.UUID `json:"patient_id" db:"patient_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// AssistantManager links an assistant to a supervising manager.
type AssistantManager struct {
	AssistantID uuid.UUID `json:"assistant_id" db:"assistant_id"`
	ManagerID   uuid.UUID `json:"manager_id" db:"manager_id"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}
