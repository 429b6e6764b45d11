package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/medvoice/medvoice-api/internal/model"
	"github.com/medvoice/medvoice-api/internal/repository"
	apperrors "github.com/medvoice/medvoice-api/pkg/errors"
)

type noteRepository struct {
	BaseRepository
}

func NewNoteRepository(base BaseRepository) repository.NoteRepository {
	return &noteRepository{base}
}

// CreateForVoice inserts the note and marks the voice in a single
// transaction. The voice update is a compare-and-swap on note_created, so
// two concurrent creations against the same voice resolve to one success
// and one conflict; the unique index on notes.voice_id backs this up.
func (r *noteRepository) CreateForVoice(ctx context.Context, note *model.Note) error {
	insertNote := `
		INSERT INTO notes (
			id, voice_id, assistant_id, modifier_id, content,
			validated, date_creation, date_modification
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	markVoice := `
		UPDATE voices SET note_created = TRUE
		WHERE id = $1 AND note_created = FALSE
	`

	note.ID = uuid.New()
	note.DateCreation = time.Now()

	err := r.WithTx(ctx, func(tx *sqlx.Tx) error {
		result, err := tx.ExecContext(ctx, markVoice, note.VoiceID)
		if err != nil {
			return fmt.Errorf("failed to mark voice: %w", err)
		}
		rows, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to get rows affected: %w", err)
		}
		if rows == 0 {
			return apperrors.Conflict("a note already exists for this voice", nil)
		}

		_, err = tx.ExecContext(ctx, insertNote,
			note.ID,
			note.VoiceID,
			note.AssistantID,
			note.ModifierID,
			note.Content,
			note.Validated,
			note.DateCreation,
			note.DateModification,
		)
		if err != nil {
			if isUniqueViolation(err) {
				return apperrors.Conflict("a note already exists for this voice", err)
			}
			return fmt.Errorf("failed to create note: %w", err)
		}
		return nil
	})
	return err
}

func (r *noteRepository) Get(ctx context.Context, id uuid.UUID) (*model.Note, error) {
	query := `SELECT * FROM notes WHERE id = $1`

	var note model.Note
	if err := r.db.GetContext(ctx, &note, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("note", err)
		}
		return nil, fmt.Errorf("failed to get note: %w", err)
	}

	return &note, nil
}

func (r *noteRepository) Update(ctx context.Context, note *model.Note) error {
	query := `
		UPDATE notes SET
			content = $1,
			validated = $2,
			modifier_id = $3,
			date_modification = $4
		WHERE id = $5
	`

	result, err := r.db.ExecContext(ctx, query,
		note.Content,
		note.Validated,
		note.ModifierID,
		note.DateModification,
		note.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update note: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperrors.NotFound("note", nil)
	}

	return nil
}

func (r *noteRepository) List(ctx context.Context) ([]*model.Note, error) {
	query := `SELECT * FROM notes ORDER BY date_creation DESC`

	var notes []*model.Note
	if err := r.db.SelectContext(ctx, &notes, query); err != nil {
		return nil, fmt.Errorf("failed to list notes: %w", err)
	}
	return notes, nil
}

func (r *noteRepository) ListByDoctor(ctx context.Context, doctorID uuid.UUID, validated *bool) ([]*model.Note, error) {
	query := `
		SELECT n.* FROM notes n
		JOIN voices v ON n.voice_id = v.id
		WHERE v.doctor_id = $1
	`
	args := []interface{}{doctorID}

	if validated != nil {
		query += fmt.Sprintf(" AND n.validated = $%d", len(args)+1)
		args = append(args, *validated)
	}
	query += " ORDER BY n.date_creation DESC"

	var notes []*model.Note
	if err := r.db.SelectContext(ctx, &notes, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list notes by doctor: %w", err)
	}
	return notes, nil
}

func (r *noteRepository) ListByManager(ctx context.Context, managerID uuid.UUID, validated *bool) ([]*model.Note, error) {
	query := `
		SELECT n.* FROM notes n
		JOIN assistant_manager am ON am.assistant_id = n.assistant_id
		WHERE am.manager_id = $1
	`
	args := []interface{}{managerID}

	if validated != nil {
		query += fmt.Sprintf(" AND n.validated = $%d", len(args)+1)
		args = append(args, *validated)
	}
	query += " ORDER BY n.date_creation DESC"

	var notes []*model.Note
	if err := r.db.SelectContext(ctx, &notes, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list notes by manager: %w", err)
	}
	return notes, nil
}

func (r *noteRepository) ListByPatient(ctx context.Context, patientID uuid.UUID, validated *bool) ([]*model.Note, error) {
	query := `
		SELECT n.* FROM notes n
		JOIN voices v ON v.id = n.voice_id
		WHERE v.patient_id = $1
	`
	args := []interface{}{patientID}

	if validated != nil {
		query += fmt.Sprintf(" AND n.validated = $%d", len(args)+1)
		args = append(args, *validated)
	}
	query += " ORDER BY n.date_creation DESC"

	var notes []*model.Note
	if err := r.db.SelectContext(ctx, &notes, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list notes by patient: %w", err)
	}
	return notes, nil
}
