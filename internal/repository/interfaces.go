package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/medvoice/medvoice-api/internal/access"
	"github.com/medvoice/medvoice-api/internal/model"
)

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	Get(ctx context.Context, id uuid.UUID) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	Update(ctx context.Context, user *model.User) error
	List(ctx context.Context) ([]*model.User, error)
}

type VoiceRepository interface {
	Create(ctx context.Context, voice *model.Voice) error
	Get(ctx context.Context, id uuid.UUID) (*model.Voice, error)
	List(ctx context.Context) ([]*model.Voice, error)
	ListByDoctor(ctx context.Context, doctorID uuid.UUID, noteCreated *bool) ([]*model.Voice, error)
	ListByManager(ctx context.Context, managerID uuid.UUID, noteCreated *bool) ([]*model.Voice, error)
	ListByPatient(ctx context.Context, patientID uuid.UUID, filter *model.VoiceFilter) ([]*model.Voice, error)
}

type NoteRepository interface {
	// CreateForVoice inserts the note and flips the voice's note_created
	// flag in one transaction; a voice that already has a note yields a
	// conflict and no insert.
	CreateForVoice(ctx context.Context, note *model.Note) error
	Get(ctx context.Context, id uuid.UUID) (*model.Note, error)
	Update(ctx context.Context, note *model.Note) error
	List(ctx context.Context) ([]*model.Note, error)
	ListByDoctor(ctx context.Context, doctorID uuid.UUID, validated *bool) ([]*model.Note, error)
	ListByManager(ctx context.Context, managerID uuid.UUID, validated *bool) ([]*model.Note, error)
	ListByPatient(ctx context.Context, patientID uuid.UUID, validated *bool) ([]*model.Note, error)
}

// RelationRepository persists the relationship edges and answers the
// adjacency queries behind access.Graph.
type RelationRepository interface {
	access.Graph

	CreateDoctorManager(ctx context.Context, doctorID, managerID uuid.UUID) (*model.DoctorManager, error)
	CreateDoctorPatient(ctx context.Context, doctorID, patientID uuid.UUID) (*model.DoctorPatient, error)
	CreateAssistantManager(ctx context.Context, assistantID, managerID uuid.UUID) (*model.AssistantManager, error)

	// Removal is internal-only; no endpoint exposes it.
	RemoveDoctorManager(ctx context.Context, doctorID, managerID uuid.UUID) error
	RemoveDoctorPatient(ctx context.Context, doctorID, patientID uuid.UUID) error
	RemoveAssistantManager(ctx context.Context, assistantID, managerID uuid.UUID) error
}

// TokenRepository tracks revoked access tokens until they expire.
type TokenRepository interface {
	Revoke(ctx context.Context, token string, ttl time.Duration) error
	IsRevoked(ctx context.Context, token string) (bool, error)
}
