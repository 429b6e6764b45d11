package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/medvoice/medvoice-api/internal/model"
	"github.com/medvoice/medvoice-api/internal/repository"
	apperrors "github.com/medvoice/medvoice-api/pkg/errors"
)

type voiceRepository struct {
	BaseRepository
}

func NewVoiceRepository(base BaseRepository) repository.VoiceRepository {
	return &voiceRepository{base}
}

func (r *voiceRepository) Create(ctx context.Context, voice *model.Voice) error {
	query := `
		INSERT INTO voices (
			id, path, doctor_id, patient_id, title, remarque,
			date_creation, note_created
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	voice.ID = uuid.New()
	voice.DateCreation = time.Now()
	voice.NoteCreated = false

	_, err := r.db.ExecContext(ctx, query,
		voice.ID,
		voice.Path,
		voice.DoctorID,
		voice.PatientID,
		voice.Title,
		voice.Remarque,
		voice.DateCreation,
		voice.NoteCreated,
	)
	if err != nil {
		return fmt.Errorf("failed to create voice: %w", err)
	}
	return nil
}

func (r *voiceRepository) Get(ctx context.Context, id uuid.UUID) (*model.Voice, error) {
	query := `SELECT * FROM voices WHERE id = $1`

	var voice model.Voice
	if err := r.db.GetContext(ctx, &voice, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("voice", err)
		}
		return nil, fmt.Errorf("failed to get voice: %w", err)
	}

	return &voice, nil
}

func (r *voiceRepository) List(ctx context.Context) ([]*model.Voice, error) {
	query := `SELECT * FROM voices ORDER BY date_creation DESC`

	var voices []*model.Voice
	if err := r.db.SelectContext(ctx, &voices, query); err != nil {
		return nil, fmt.Errorf("failed to list voices: %w", err)
	}
	return voices, nil
}

func (r *voiceRepository) ListByDoctor(ctx context.Context, doctorID uuid.UUID, noteCreated *bool) ([]*model.Voice, error) {
	query := `SELECT * FROM voices WHERE doctor_id = $1`
	args := []interface{}{doctorID}

	if noteCreated != nil {
		query += fmt.Sprintf(" AND note_created = $%d", len(args)+1)
		args = append(args, *noteCreated)
	}
	query += " ORDER BY date_creation DESC"

	var voices []*model.Voice
	if err := r.db.SelectContext(ctx, &voices, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list voices by doctor: %w", err)
	}
	return voices, nil
}

func (r *voiceRepository) ListByManager(ctx context.Context, managerID uuid.UUID, noteCreated *bool) ([]*model.Voice, error) {
	query := `
		SELECT v.* FROM voices v
		JOIN doctor_manager dm ON dm.doctor_id = v.doctor_id
		WHERE dm.manager_id = $1
	`
	args := []interface{}{managerID}

	if noteCreated != nil {
		query += fmt.Sprintf(" AND v.note_created = $%d", len(args)+1)
		args = append(args, *noteCreated)
	}
	query += " ORDER BY v.date_creation DESC"

	var voices []*model.Voice
	if err := r.db.SelectContext(ctx, &voices, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list voices by manager: %w", err)
	}
	return voices, nil
}

func (r *voiceRepository) ListByPatient(ctx context.Context, patientID uuid.UUID, filter *model.VoiceFilter) ([]*model.Voice, error) {
	query := `SELECT * FROM voices WHERE patient_id = $1`
	args := []interface{}{patientID}

	if filter != nil {
		if filter.DoctorID != nil {
			query += fmt.Sprintf(" AND doctor_id = $%d", len(args)+1)
			args = append(args, *filter.DoctorID)
		}
		if filter.NoteCreated != nil {
			query += fmt.Sprintf(" AND note_created = $%d", len(args)+1)
			args = append(args, *filter.NoteCreated)
		}
	}
	query += " ORDER BY date_creation DESC"

	var voices []*model.Voice
	if err := r.db.SelectContext(ctx, &voices, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list voices by patient: %w", err)
	}
	return voices, nil
}
