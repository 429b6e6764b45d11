package user

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/medvoice/medvoice-api/internal/access"
	"github.com/medvoice/medvoice-api/internal/email"
	"github.com/medvoice/medvoice-api/internal/model"
	"github.com/medvoice/medvoice-api/internal/repository"
	apperrors "github.com/medvoice/medvoice-api/pkg/errors"
	"github.com/medvoice/medvoice-api/pkg/security"
)

// GraphInvalidator drops cached relationship lookups after an edge changes.
type GraphInvalidator interface {
	Invalidate()
}

type Config struct {
	OpenRegistration bool
}

type Service struct {
	repo         repository.UserRepository
	relationRepo repository.RelationRepository
	resolver     *access.Resolver
	hasher       security.PasswordHasher
	emailSvc     email.Service
	invalidator  GraphInvalidator
	cfg          Config
}

func NewService(repo repository.UserRepository, relationRepo repository.RelationRepository,
	resolver *access.Resolver, hasher security.PasswordHasher, emailSvc email.Service,
	invalidator GraphInvalidator, cfg Config) *Service {
	return &Service{
		repo:         repo,
		relationRepo: relationRepo,
		resolver:     resolver,
		hasher:       hasher,
		emailSvc:     emailSvc,
		invalidator:  invalidator,
		cfg:          cfg,
	}
}

// CreateUser creates a user on behalf of the actor. Superusers can create
// anyone; a doctor can create patient accounts.
func (s *Service) CreateUser(ctx context.Context, actor *model.User, req *model.CreateUserRequest) (*model.User, error) {
	role := req.Role
	if role == "" {
		role = model.RoleNone
	}
	if err := s.resolver.CanCreateUser(actor, role); err != nil {
		return nil, err
	}

	if existing, _ := s.repo.GetByEmail(ctx, req.Email); existing != nil {
		return nil, apperrors.Conflict("a user with this email already exists", nil)
	}

	hashed, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, apperrors.InvalidInput("invalid password", err)
	}

	user := &model.User{
		Email:          req.Email,
		HashedPassword: hashed,
		FullName:       req.FullName,
		Role:           role,
		IsSuperuser:    req.IsSuperuser,
		IsActive:       true,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	if err := s.emailSvc.SendNewAccount(ctx, user.Email, user.FullName, req.Password); err != nil {
		log.Warn().Err(err).Str("email", user.Email).Msg("failed to send new account email")
	}

	return user, nil
}

// Register handles open self-registration; the account gets no role.
func (s *Service) Register(ctx context.Context, req *model.RegisterRequest) (*model.User, error) {
	if !s.cfg.OpenRegistration {
		return nil, apperrors.Forbidden("open registration is disabled on this server")
	}

	if existing, _ := s.repo.GetByEmail(ctx, req.Email); existing != nil {
		return nil, apperrors.Conflict("a user with this email already exists", nil)
	}

	hashed, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, apperrors.InvalidInput("invalid password", err)
	}

	user := &model.User{
		Email:          req.Email,
		HashedPassword: hashed,
		FullName:       req.FullName,
		Role:           model.RoleNone,
		IsActive:       true,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// GetUser returns a user record: callers may read themselves, superusers anyone.
func (s *Service) GetUser(ctx context.Context, actor *model.User, id uuid.UUID) (*model.User, error) {
	if err := s.resolver.CanReadUser(actor, id); err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) ListUsers(ctx context.Context, actor *model.User) ([]*model.User, error) {
	if err := s.resolver.CanListUsers(actor); err != nil {
		return nil, err
	}
	return s.repo.List(ctx)
}

// UpdateUser applies a partial update to an arbitrary user; superuser only.
func (s *Service) UpdateUser(ctx context.Context, actor *model.User, id uuid.UUID, req *model.UpdateUserRequest) (*model.User, error) {
	if err := s.resolver.CanUpdateUser(actor); err != nil {
		return nil, err
	}

	user, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.apply(user, req); err != nil {
		return nil, err
	}
	if req.Role != nil {
		user.Role = *req.Role
	}
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}
	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// UpdateSelf lets any authenticated user change their own profile fields.
func (s *Service) UpdateSelf(ctx context.Context, actor *model.User, req *model.UpdateUserRequest) (*model.User, error) {
	user, err := s.repo.Get(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	if err := s.apply(user, req); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *Service) apply(user *model.User, req *model.UpdateUserRequest) error {
	if req.Email != nil {
		user.Email = *req.Email
	}
	if req.FullName != nil {
		user.FullName = *req.FullName
	}
	if req.Password != nil {
		hashed, err := s.hasher.Hash(*req.Password)
		if err != nil {
			return apperrors.InvalidInput("invalid password", err)
		}
		user.HashedPassword = hashed
	}
	return nil
}

// requireRole fetches a user and checks it holds the exact expected role.
// Any failure aborts the edge creation before anything is written.
func (s *Service) requireRole(ctx context.Context, id uuid.UUID, role model.Role) (*model.User, error) {
	user, err := s.repo.Get(ctx, id)
	if err != nil {
		if apperrors.IsCode(err, apperrors.ErrNotFound) {
			return nil, apperrors.NotFound(fmt.Sprintf("no %s with the given id", role), nil)
		}
		return nil, err
	}
	if user.Role != role {
		return nil, apperrors.InvalidRelationship(fmt.Sprintf("user %s does not hold the %s role", id, role))
	}
	return user, nil
}

// CreateDoctorManager links a manager to a doctor; superuser only.
func (s *Service) CreateDoctorManager(ctx context.Context, actor *model.User, doctorID, managerID uuid.UUID) (*model.DoctorManager, error) {
	if err := s.resolver.CanCreateDoctorManager(actor); err != nil {
		return nil, err
	}
	if _, err := s.requireRole(ctx, doctorID, model.RoleDoctor); err != nil {
		return nil, err
	}
	if _, err := s.requireRole(ctx, managerID, model.RoleManager); err != nil {
		return nil, err
	}

	edge, err := s.relationRepo.CreateDoctorManager(ctx, doctorID, managerID)
	if err != nil {
		return nil, err
	}
	s.invalidator.Invalidate()
	return edge, nil
}

// CreateDoctorPatient links a patient to a doctor; the doctor themselves or
// a superuser.
func (s *Service) CreateDoctorPatient(ctx context.Context, actor *model.User, doctorID, patientID uuid.UUID) (*model.DoctorPatient, error) {
	if err := s.resolver.CanCreateDoctorPatient(actor, doctorID); err != nil {
		return nil, err
	}
	if _, err := s.requireRole(ctx, doctorID, model.RoleDoctor); err != nil {
		return nil, err
	}
	if _, err := s.requireRole(ctx, patientID, model.RolePatient); err != nil {
		return nil, err
	}

	edge, err := s.relationRepo.CreateDoctorPatient(ctx, doctorID, patientID)
	if err != nil {
		return nil, err
	}
	s.invalidator.Invalidate()
	return edge, nil
}

// CreateAssistantManager links a manager to an assistant; superuser only.
func (s *Service) CreateAssistantManager(ctx context.Context, actor *model.User, assistantID, managerID uuid.UUID) (*model.AssistantManager, error) {
	if err := s.resolver.CanCreateAssistantManager(actor); err != nil {
		return nil, err
	}
	if _, err := s.requireRole(ctx, assistantID, model.RoleAssistant); err != nil {
		return nil, err
	}
	if _, err := s.requireRole(ctx, managerID, model.RoleManager); err != nil {
		return nil, err
	}

	edge, err := s.relationRepo.CreateAssistantManager(ctx, assistantID, managerID)
	if err != nil {
		return nil, err
	}
	s.invalidator.Invalidate()
	return edge, nil
}
