package note

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/medvoice/medvoice-api/internal/access"
	"github.com/medvoice/medvoice-api/internal/model"
	"github.com/medvoice/medvoice-api/internal/repository"
	apperrors "github.com/medvoice/medvoice-api/pkg/errors"
)

type Service struct {
	repo      repository.NoteRepository
	voiceRepo repository.VoiceRepository
	resolver  *access.Resolver
}

func NewService(repo repository.NoteRepository, voiceRepo repository.VoiceRepository,
	resolver *access.Resolver) *Service {
	return &Service{
		repo:      repo,
		voiceRepo: voiceRepo,
		resolver:  resolver,
	}
}

// CreateNote writes a note against a voice. Only assistants and superusers
// may create notes, the voice must exist and must not carry one yet; the
// insert and the note_created flip commit together.
func (s *Service) CreateNote(ctx context.Context, actor *model.User, req *model.CreateNoteRequest) (*model.Note, error) {
	if err := s.resolver.CanCreateNote(actor); err != nil {
		return nil, err
	}

	voiceID, err := uuid.Parse(req.VoiceID)
	if err != nil {
		return nil, apperrors.InvalidInput("invalid voice id", err)
	}

	voice, err := s.voiceRepo.Get(ctx, voiceID)
	if err != nil {
		return nil, err
	}
	if voice.NoteCreated {
		return nil, apperrors.Conflict("a note already exists for this voice", nil)
	}

	note := &model.Note{
		VoiceID:     voice.ID,
		AssistantID: actor.ID,
		Content:     req.Content,
	}
	if err := s.repo.CreateForVoice(ctx, note); err != nil {
		return nil, err
	}
	return note, nil
}

// GetNote returns a single note after an access check resolved through the
// underlying voice.
func (s *Service) GetNote(ctx context.Context, actor *model.User, id uuid.UUID) (*model.Note, error) {
	note, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	voice, err := s.voiceRepo.Get(ctx, note.VoiceID)
	if err != nil {
		return nil, err
	}
	if err := s.resolver.CanReadNote(ctx, actor, note, voice); err != nil {
		return nil, err
	}
	return note, nil
}

// UpdateNote edits a note. Managers of the creating assistant and
// superusers may set any field including validated; the assistant, the last
// modifier and the voice's doctor may edit but the note always comes out
// invalidated. Both branches stamp the modifier and modification time.
func (s *Service) UpdateNote(ctx context.Context, actor *model.User, id uuid.UUID, req *model.UpdateNoteRequest) (*model.Note, error) {
	note, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	voice, err := s.voiceRepo.Get(ctx, note.VoiceID)
	if err != nil {
		return nil, err
	}

	branch, err := s.resolver.NoteUpdateBranch(ctx, actor, note, voice)
	if err != nil {
		return nil, err
	}

	if req.Content != nil {
		note.Content = *req.Content
	}
	switch branch {
	case access.BranchManager:
		if req.Validated != nil {
			note.Validated = *req.Validated
		}
	case access.BranchEditor:
		note.Validated = false
	}

	modifierID := actor.ID
	now := time.Now()
	note.ModifierID = &modifierID
	note.DateModification = &now

	if err := s.repo.Update(ctx, note); err != nil {
		return nil, err
	}
	return note, nil
}

// ListNotes returns every note; superuser only.
func (s *Service) ListNotes(ctx context.Context, actor *model.User) ([]*model.Note, error) {
	if err := s.resolver.CanListAllNotes(actor); err != nil {
		return nil, err
	}
	return s.repo.List(ctx)
}

func (s *Service) ListNotesByDoctor(ctx context.Context, actor *model.User, doctorID uuid.UUID, validated *bool) ([]*model.Note, error) {
	if err := s.resolver.CanListNotesByDoctor(actor, doctorID); err != nil {
		return nil, err
	}
	return s.repo.ListByDoctor(ctx, doctorID, validated)
}

func (s *Service) ListNotesByManager(ctx context.Context, actor *model.User, managerID uuid.UUID, validated *bool) ([]*model.Note, error) {
	if err := s.resolver.CanListNotesByManager(actor, managerID); err != nil {
		return nil, err
	}
	return s.repo.ListByManager(ctx, managerID, validated)
}

func (s *Service) ListNotesByPatient(ctx context.Context, actor *model.User, patientID uuid.UUID, validated *bool) ([]*model.Note, error) {
	if err := s.resolver.CanListNotesByPatient(ctx, actor, patientID); err != nil {
		return nil, err
	}
	return s.repo.ListByPatient(ctx, patientID, validated)
}
