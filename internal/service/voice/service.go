package voice

import (
	"context"
	"io"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/medvoice/medvoice-api/internal/access"
	"github.com/medvoice/medvoice-api/internal/model"
	"github.com/medvoice/medvoice-api/internal/repository"
	"github.com/medvoice/medvoice-api/internal/storage"
	apperrors "github.com/medvoice/medvoice-api/pkg/errors"
)

type Service struct {
	repo     repository.VoiceRepository
	userRepo repository.UserRepository
	resolver *access.Resolver
	store    storage.Store
}

func NewService(repo repository.VoiceRepository, userRepo repository.UserRepository,
	resolver *access.Resolver, store storage.Store) *Service {
	return &Service{
		repo:     repo,
		userRepo: userRepo,
		resolver: resolver,
		store:    store,
	}
}

// CreateVoice uploads a recording for a patient. The caller must be the
// uploading doctor (or a superuser), the patient must exist with the
// patient role, and a DoctorPatient edge must already link the two. The
// destination path is generated and set on the record before the payload is
// streamed to disk.
func (s *Service) CreateVoice(ctx context.Context, actor *model.User, doctorID, patientID uuid.UUID,
	title, remarque *string, filename string, payload io.Reader) (*model.Voice, error) {

	if err := s.resolver.CanCreateVoice(actor, doctorID); err != nil {
		return nil, err
	}

	patient, err := s.userRepo.Get(ctx, patientID)
	if err != nil {
		if apperrors.IsCode(err, apperrors.ErrNotFound) {
			return nil, apperrors.NotFound("patient", nil)
		}
		return nil, err
	}
	if patient.Role != model.RolePatient {
		return nil, apperrors.InvalidRelationship("the given id does not belong to a patient")
	}

	linked, err := s.resolver.DoctorTreatsPatient(ctx, doctorID, patientID)
	if err != nil {
		return nil, err
	}
	if !linked {
		return nil, apperrors.InvalidRelationship("this patient is not related to the doctor")
	}

	voice := &model.Voice{
		DoctorID:  doctorID,
		PatientID: patientID,
		Title:     title,
		Remarque:  remarque,
	}
	voice.Path = s.store.PathFor(filename)

	if err := s.store.Save(voice.Path, payload); err != nil {
		return nil, apperrors.Internal(err)
	}
	if err := s.repo.Create(ctx, voice); err != nil {
		if rmErr := s.store.Remove(voice.Path); rmErr != nil {
			log.Warn().Err(rmErr).Str("path", voice.Path).Msg("failed to clean up orphaned voice file")
		}
		return nil, err
	}
	return voice, nil
}

// GetVoice returns a single voice after an access check.
func (s *Service) GetVoice(ctx context.Context, actor *model.User, id uuid.UUID) (*model.Voice, error) {
	voice, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.resolver.CanReadVoice(ctx, actor, voice); err != nil {
		return nil, err
	}
	return voice, nil
}

// ListVoices returns every voice; superuser only.
func (s *Service) ListVoices(ctx context.Context, actor *model.User) ([]*model.Voice, error) {
	if err := s.resolver.CanListAllVoices(actor); err != nil {
		return nil, err
	}
	return s.repo.List(ctx)
}

func (s *Service) ListVoicesByDoctor(ctx context.Context, actor *model.User, doctorID uuid.UUID, noteCreated *bool) ([]*model.Voice, error) {
	if err := s.resolver.CanListVoicesByDoctor(actor, doctorID); err != nil {
		return nil, err
	}
	return s.repo.ListByDoctor(ctx, doctorID, noteCreated)
}

func (s *Service) ListVoicesByManager(ctx context.Context, actor *model.User, managerID uuid.UUID, noteCreated *bool) ([]*model.Voice, error) {
	if err := s.resolver.CanListVoicesByManager(actor, managerID); err != nil {
		return nil, err
	}
	return s.repo.ListByManager(ctx, managerID, noteCreated)
}

// ListVoicesByPatient returns a patient's voices. The patient (or a
// superuser) sees all of them; a linked doctor sees only their own.
func (s *Service) ListVoicesByPatient(ctx context.Context, actor *model.User, patientID uuid.UUID, noteCreated *bool) ([]*model.Voice, error) {
	doctorScope, err := s.resolver.VoicesByPatientScope(ctx, actor, patientID)
	if err != nil {
		return nil, err
	}
	return s.repo.ListByPatient(ctx, patientID, &model.VoiceFilter{
		NoteCreated: noteCreated,
		DoctorID:    doctorScope,
	})
}
