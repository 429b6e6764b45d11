package model

import (
	"time"

	"github.com/google/uuid"
)

// Note represents the clinical transcription an assistant wrote for a voice.
// Validated tracks a manager's sign-off; any edit by a non-manager clears it.
type Note struct {
	ID               uuid.UUID  `json:"id" db:"id"`
	VoiceID          uuid.UUID  `json:"voice_id" db:"voice_id"`
	AssistantID      uuid.UUID  `json:"assistant_id" db:"assistant_id"`
	ModifierID       *uuid.UUID `json:"modifier_id" db:"modifier_id"`
	Content          string     `json:"content" db:"content"`
	Validated        bool       `json:"validated" db:"validated"`
	DateCreation     time.Time  `json:"date_creation" db:"date_creation"`
	DateModification *time.Time `json:"date_modification" db:"date_modification"`
}

// CreateNoteRequest represents note creation parameters
type CreateNoteRequest struct {
	VoiceID string `json:"voice_id" binding:"required,uuid"`
	Content string `json:"content" binding:"required"`
}

// UpdateNoteRequest represents note update parameters. Validated is only
// honoured for manager edits; other editors always invalidate.
type UpdateNoteRequest struct {
	Content   *string `json:"content"`
	Validated *bool   `json:"validated"`
}

// NoteFilter narrows note listings. Validated is tri-state: nil means no
// filtering on the flag.
type NoteFilter struct {
	Validated *bool
}
