package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/medvoice/medvoice-api/internal/access"
	"github.com/medvoice/medvoice-api/internal/model"
	"github.com/medvoice/medvoice-api/internal/repository"
	apperrors "github.com/medvoice/medvoice-api/pkg/errors"
)

type relationRepository struct {
	BaseRepository
}

func NewRelationRepository(base BaseRepository) repository.RelationRepository {
	return &relationRepository{base}
}

func (r *relationRepository) selectIDs(ctx context.Context, query string, arg uuid.UUID) (access.IDSet, error) {
	var ids []uuid.UUID
	if err := r.db.SelectContext(ctx, &ids, query, arg); err != nil {
		return nil, fmt.Errorf("failed to query relationship: %w", err)
	}
	return access.NewIDSet(ids...), nil
}

func (r *relationRepository) ManagersOfDoctor(ctx context.Context, doctorID uuid.UUID) (access.IDSet, error) {
	return r.selectIDs(ctx, `SELECT manager_id FROM doctor_manager WHERE doctor_id = $1`, doctorID)
}

func (r *relationRepository) ManagersOfAssistant(ctx context.Context, assistantID uuid.UUID) (access.IDSet, error) {
	return r.selectIDs(ctx, `SELECT manager_id FROM assistant_manager WHERE assistant_id = $1`, assistantID)
}

func (r *relationRepository) DoctorsOfPatient(ctx context.Context, patientID uuid.UUID) (access.IDSet, error) {
	return r.selectIDs(ctx, `SELECT doctor_id FROM doctor_patient WHERE patient_id = $1`, patientID)
}

func (r *relationRepository) AssistantsOfManager(ctx context.Context, managerID uuid.UUID) (access.IDSet, error) {
	return r.selectIDs(ctx, `SELECT assistant_id FROM assistant_manager WHERE manager_id = $1`, managerID)
}

func (r *relationRepository) createEdge(ctx context.Context, query string, a, b uuid.UUID, createdAt time.Time) error {
	result, err := r.db.ExecContext(ctx, query, a, b, createdAt)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.Conflict("relationship already exists", err)
		}
		return fmt.Errorf("failed to create relationship: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperrors.Conflict("relationship already exists", nil)
	}
	return nil
}

func (r *relationRepository) CreateDoctorManager(ctx context.Context, doctorID, managerID uuid.UUID) (*model.DoctorManager, error) {
	edge := &model.DoctorManager{
		DoctorID:  doctorID,
		ManagerID: managerID,
		CreatedAt: time.Now(),
	}
	query := `
		INSERT INTO doctor_manager (doctor_id, manager_id, created_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (doctor_id, manager_id) DO NOTHING
	`
	if err := r.createEdge(ctx, query, doctorID, managerID, edge.CreatedAt); err != nil {
		return nil, err
	}
	return edge, nil
}

func (r *relationRepository) CreateDoctorPatient(ctx context.Context, doctorID, patientID uuid.UUID) (*model.DoctorPatient, error) {
	edge := &model.DoctorPatient{
		DoctorID:  doctorID,
		PatientID: patientID,
		CreatedAt: time.Now(),
	}
	query := `
		INSERT INTO doctor_patient (doctor_id, patient_id, created_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (doctor_id, patient_id) DO NOTHING
	`
	if err := r.createEdge(ctx, query, doctorID, patientID, edge.CreatedAt); err != nil {
		return nil, err
	}
	return edge, nil
}

func (r *relationRepository) CreateAssistantManager(ctx context.Context, assistantID, managerID uuid.UUID) (*model.AssistantManager, error) {
	edge := &model.AssistantManager{
		AssistantID: assistantID,
		ManagerID:   managerID,
		CreatedAt:   time.Now(),
	}
	query := `
		INSERT INTO assistant_manager (assistant_id, manager_id, created_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (assistant_id, manager_id) DO NOTHING
	`
	if err := r.createEdge(ctx, query, assistantID, managerID, edge.CreatedAt); err != nil {
		return nil, err
	}
	return edge, nil
}

func (r *relationRepository) removeEdge(ctx context.Context, query string, a, b uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, query, a, b)
	if err != nil {
		return fmt.Errorf("failed to remove relationship: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperrors.NotFound("relationship", nil)
	}
	return nil
}

func (r *relationRepository) RemoveDoctorManager(ctx context.Context, doctorID, managerID uuid.UUID) error {
	return r.removeEdge(ctx, `DELETE FROM doctor_manager WHERE doctor_id = $1 AND manager_id = $2`, doctorID, managerID)
}

func (r *relationRepository) RemoveDoctorPatient(ctx context.Context, doctorID, patientID uuid.UUID) error {
	return r.removeEdge(ctx, `DELETE FROM doctor_patient WHERE doctor_id = $1 AND patient_id = $2`, doctorID, patientID)
}

func (r *relationRepository) RemoveAssistantManager(ctx context.Context, assistantID, managerID uuid.UUID) error {
	return r.removeEdge(ctx, `DELETE FROM assistant_manager WHERE assistant_id = $1 AND manager_id = $2`, assistantID, managerID)
}
