package model

import (
	"time"

	"github.com/google/uuid"
)

// Voice represents a recording a doctor uploaded for one of their patients.
// NoteCreated flips to true exactly once, when a note is written against it.
type Voice struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Path         string    `json:"path" db:"path"`
	DoctorID     uuid.UUID `json:"doctor_id" db:"doctor_id"`
	PatientID    uuid.UUID `json:"patient_id" db:"patient_id"`
	Title        *string   `json:"title" db:"title"`
	Remarque     *string   `json:"remarque" db:"remarque"`
	DateCreation time.Time `json:"date_creation" db:"date_creation"`
	NoteCreated  bool      `json:"note_created" db:"note_created"`
}

// CreateVoiceRequest carries the multipart form fields of a voice upload.
type CreateVoiceRequest struct {
	DoctorID  string  `form:"doctor_id" binding:"required,uuid"`
	PatientID string  `form:"patient_id" binding:"required,uuid"`
	Title     *string `form:"title"`
	Remarque  *string `form:"remarque"`
}

// VoiceFilter narrows voice listings. NoteCreated is tri-state: nil means
// no filtering on the flag.
type VoiceFilter struct {
	NoteCreated *bool
	DoctorID    *uuid.UUID
}
