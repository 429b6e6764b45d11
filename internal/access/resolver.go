package access

import (
	"context"

	"github.com/google/uuid"

	"github.com/medvoice/medvoice-api/internal/model"
	"github.com/medvoice/medvoice-api/pkg/errors"
)

// UpdateBranch tells the caller which side effects a note update carries.
type UpdateBranch int

const (
	// BranchManager edits keep the validated flag untouched.
	BranchManager UpdateBranch = iota
	// BranchEditor edits force validated to false.
	BranchEditor
)

// Resolver computes, for an (actor, action, target) triple, whether the
// actor's role and position in the relationship graph permit the action.
// The superuser capability is checked first and short-circuits everything;
// every method denies by default.
type Resolver struct {
	graph Graph
}

func NewResolver(graph Graph) *Resolver {
	return &Resolver{graph: graph}
}

// --- Voice ---

// CanListAllVoices permits the unscoped voice listing.
func (r *Resolver) CanListAllVoices(actor *model.User) error {
	if actor.IsSuperuser {
		return nil
	}
	return errors.Forbidden("only a superuser can list all voices")
}

// CanReadVoice permits reading a single voice: the voice's doctor or
// patient, any manager supervising the doctor, or any assistant supervised
// by one of those managers. The assistant hop does not require a link to
// this specific doctor, only to the doctor's manager set.
func (r *Resolver) CanReadVoice(ctx context.Context, actor *model.User, voice *model.Voice) error {
	if actor.IsSuperuser {
		return nil
	}
	if actor.ID == voice.DoctorID || actor.ID == voice.PatientID {
		return nil
	}

	managers, err := r.graph.ManagersOfDoctor(ctx, voice.DoctorID)
	if err != nil {
		return err
	}
	if managers.Contains(actor.ID) {
		return nil
	}
	for managerID := range managers {
		assistants, err := r.graph.AssistantsOfManager(ctx, managerID)
		if err != nil {
			return err
		}
		if assistants.Contains(actor.ID) {
			return nil
		}
	}
	return errors.Forbidden("")
}

// CanListVoicesByDoctor permits the doctor-scoped listing. Only the ID is
// matched; the caller's role is not checked.
func (r *Resolver) CanListVoicesByDoctor(actor *model.User, doctorID uuid.UUID) error {
	if actor.IsSuperuser || actor.ID == doctorID {
		return nil
	}
	return errors.Forbidden("")
}

// CanListVoicesByManager permits the manager-scoped listing.
func (r *Resolver) CanListVoicesByManager(actor *model.User, managerID uuid.UUID) error {
	if actor.IsSuperuser || actor.ID == managerID {
		return nil
	}
	return errors.Forbidden("")
}

// VoicesByPatientScope resolves the patient-scoped voice listing. The
// patient themselves (or a superuser) sees every voice; a doctor linked to
// the patient sees only their own voices for that patient, expressed by the
// returned doctor filter.
func (r *Resolver) VoicesByPatientScope(ctx context.Context, actor *model.User, patientID uuid.UUID) (*uuid.UUID, error) {
	if actor.IsSuperuser || actor.ID == patientID {
		return nil, nil
	}
	if actor.Role == model.RoleDoctor {
		doctors, err := r.graph.DoctorsOfPatient(ctx, patientID)
		if err != nil {
			return nil, err
		}
		if doctors.Contains(actor.ID) {
			doctorID := actor.ID
			return &doctorID, nil
		}
	}
	return nil, errors.Forbidden("")
}

// CanCreateVoice permits voice creation: a doctor uploading as themselves,
// or a superuser. Relationship and patient-role preconditions are checked
// separately.
func (r *Resolver) CanCreateVoice(actor *model.User, doctorID uuid.UUID) error {
	if actor.IsSuperuser {
		return nil
	}
	if actor.Role == model.RoleDoctor && actor.ID == doctorID {
		return nil
	}
	return errors.Forbidden("you do not have the right to upload a voice")
}

// DoctorTreatsPatient reports whether a DoctorPatient edge links the two.
func (r *Resolver) DoctorTreatsPatient(ctx context.Context, doctorID, patientID uuid.UUID) (bool, error) {
	doctors, err := r.graph.DoctorsOfPatient(ctx, patientID)
	if err != nil {
		return false, err
	}
	return doctors.Contains(doctorID), nil
}

// --- Note ---

// CanListAllNotes permits the unscoped note listing.
func (r *Resolver) CanListAllNotes(actor *model.User) error {
	if actor.IsSuperuser {
		return nil
	}
	return errors.Forbidden("only a superuser can list all notes")
}

// CanReadNote permits reading a single note: its creating assistant, its
// last modifier, a manager supervising the assistant, or the doctor of the
// underlying voice.
func (r *Resolver) CanReadNote(ctx context.Context, actor *model.User, note *model.Note, voice *model.Voice) error {
	if actor.IsSuperuser {
		return nil
	}
	if actor.ID == note.AssistantID {
		return nil
	}
	if note.ModifierID != nil && actor.ID == *note.ModifierID {
		return nil
	}

	managers, err := r.graph.ManagersOfAssistant(ctx, note.AssistantID)
	if err != nil {
		return err
	}
	if managers.Contains(actor.ID) {
		return nil
	}
	if voice != nil && actor.ID == voice.DoctorID {
		return nil
	}
	return errors.Forbidden("")
}

// CanCreateNote permits note creation: assistants and superusers.
func (r *Resolver) CanCreateNote(actor *model.User) error {
	if actor.IsSuperuser || actor.Role == model.RoleAssistant {
		return nil
	}
	return errors.Forbidden("you do not have the right to create a note")
}

// NoteUpdateBranch resolves which of the two update branches applies:
// managers of the creating assistant (and superusers) edit without touching
// the validated flag; the assistant, the last modifier and the voice's
// doctor edit with forced invalidation. Anyone else is denied.
func (r *Resolver) NoteUpdateBranch(ctx context.Context, actor *model.User, note *model.Note, voice *model.Voice) (UpdateBranch, error) {
	managers, err := r.graph.ManagersOfAssistant(ctx, note.AssistantID)
	if err != nil {
		return 0, err
	}
	if actor.IsSuperuser || managers.Contains(actor.ID) {
		return BranchManager, nil
	}
	if actor.ID == note.AssistantID {
		return BranchEditor, nil
	}
	if note.ModifierID != nil && actor.ID == *note.ModifierID {
		return BranchEditor, nil
	}
	if voice != nil && actor.ID == voice.DoctorID {
		return BranchEditor, nil
	}
	return 0, errors.Forbidden("")
}

// CanListNotesByDoctor mirrors the voice listing rule.
func (r *Resolver) CanListNotesByDoctor(actor *model.User, doctorID uuid.UUID) error {
	if actor.IsSuperuser || actor.ID == doctorID {
		return nil
	}
	return errors.Forbidden("")
}

// CanListNotesByManager mirrors the voice listing rule.
func (r *Resolver) CanListNotesByManager(actor *model.User, managerID uuid.UUID) error {
	if actor.IsSuperuser || actor.ID == managerID {
		return nil
	}
	return errors.Forbidden("")
}

// CanListNotesByPatient permits the patient-scoped note listing: the
// patient, any doctor linked to the patient, or a superuser.
func (r *Resolver) CanListNotesByPatient(ctx context.Context, actor *model.User, patientID uuid.UUID) error {
	if actor.IsSuperuser || actor.ID == patientID {
		return nil
	}
	doctors, err := r.graph.DoctorsOfPatient(ctx, patientID)
	if err != nil {
		return err
	}
	if doctors.Contains(actor.ID) {
		return nil
	}
	return errors.Forbidden("")
}

// --- User & relationship edges ---

// CanListUsers permits the full user listing.
func (r *Resolver) CanListUsers(actor *model.User) error {
	if actor.IsSuperuser {
		return nil
	}
	return errors.Forbidden("only a superuser can list users")
}

// CanCreateUser permits user creation: superusers, or a doctor creating a
// patient account.
func (r *Resolver) CanCreateUser(actor *model.User, newRole model.Role) error {
	if actor.IsSuperuser {
		return nil
	}
	if actor.Role == model.RoleDoctor && newRole == model.RolePatient {
		return nil
	}
	return errors.Forbidden("only superusers can create users, or doctors creating patients")
}

// CanReadUser permits reading a user record: self or superuser.
func (r *Resolver) CanReadUser(actor *model.User, targetID uuid.UUID) error {
	if actor.IsSuperuser || actor.ID == targetID {
		return nil
	}
	return errors.Forbidden("")
}

// CanUpdateUser permits updating an arbitrary user: superuser only.
func (r *Resolver) CanUpdateUser(actor *model.User) error {
	if actor.IsSuperuser {
		return nil
	}
	return errors.Forbidden("only a superuser can update users")
}

// CanCreateDoctorManager permits creating a DoctorManager edge.
func (r *Resolver) CanCreateDoctorManager(actor *model.User) error {
	if actor.IsSuperuser {
		return nil
	}
	return errors.Forbidden("only a superuser can create this relationship")
}

// CanCreateDoctorPatient permits creating a DoctorPatient edge: a doctor
// for themselves, or a superuser.
func (r *Resolver) CanCreateDoctorPatient(actor *model.User, doctorID uuid.UUID) error {
	if actor.IsSuperuser {
		return nil
	}
	if actor.Role != model.RoleDoctor {
		return errors.Forbidden("only doctors and superusers can create this relationship")
	}
	if actor.ID != doctorID {
		return errors.Forbidden("you cannot create relationships for other doctors")
	}
	return nil
}

// CanCreateAssistantManager permits creating an AssistantManager edge.
func (r *Resolver) CanCreateAssistantManager(actor *model.User) error {
	if actor.IsSuperuser {
		return nil
	}
	return errors.Forbidden("only a superuser can create this relationship")
}
