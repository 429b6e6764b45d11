package voice

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medvoice/medvoice-api/internal/access"
	"github.com/medvoice/medvoice-api/internal/model"
	apperrors "github.com/medvoice/medvoice-api/pkg/errors"
)

type fakeUserRepo struct {
	users map[uuid.UUID]*model.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*model.User)}
}

func (r *fakeUserRepo) add(u *model.User) *model.User {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	r.users[u.ID] = u
	return u
}

func (r *fakeUserRepo) Create(_ context.Context, user *model.User) error {
	r.add(user)
	return nil
}

func (r *fakeUserRepo) Get(_ context.Context, id uuid.UUID) (*model.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, apperrors.NotFound("user", nil)
	}
	return user, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, apperrors.NotFound("user", nil)
}

func (r *fakeUserRepo) Update(_ context.Context, user *model.User) error {
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) List(_ context.Context) ([]*model.User, error) { return nil, nil }

type fakeVoiceRepo struct {
	voices     map[uuid.UUID]*model.Voice
	failCreate bool

	lastPatientFilter *model.VoiceFilter
}

func newFakeVoiceRepo() *fakeVoiceRepo {
	return &fakeVoiceRepo{voices: make(map[uuid.UUID]*model.Voice)}
}

func (r *fakeVoiceRepo) Create(_ context.Context, voice *model.Voice) error {
	if r.failCreate {
		return apperrors.Internal(nil)
	}
	voice.ID = uuid.New()
	r.voices[voice.ID] = voice
	return nil
}

func (r *fakeVoiceRepo) Get(_ context.Context, id uuid.UUID) (*model.Voice, error) {
	voice, ok := r.voices[id]
	if !ok {
		return nil, apperrors.NotFound("voice", nil)
	}
	return voice, nil
}

func (r *fakeVoiceRepo) List(_ context.Context) ([]*model.Voice, error) { return nil, nil }

func (r *fakeVoiceRepo) ListByDoctor(_ context.Context, _ uuid.UUID, _ *bool) ([]*model.Voice, error) {
	return nil, nil
}

func (r *fakeVoiceRepo) ListByManager(_ context.Context, _ uuid.UUID, _ *bool) ([]*model.Voice, error) {
	return nil, nil
}

func (r *fakeVoiceRepo) ListByPatient(_ context.Context, _ uuid.UUID, filter *model.VoiceFilter) ([]*model.Voice, error) {
	r.lastPatientFilter = filter
	return nil, nil
}

// memStore keeps saved payloads in a map.
type memStore struct {
	files   map[string][]byte
	removed []string
}

func newMemStore() *memStore {
	return &memStore{files: make(map[string][]byte)}
}

func (s *memStore) PathFor(filename string) string {
	return "mem/" + uuid.New().String() + "_" + filename
}

func (s *memStore) Save(path string, r io.Reader) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	s.files[path] = data
	return nil
}

func (s *memStore) Remove(path string) error {
	delete(s.files, path)
	s.removed = append(s.removed, path)
	return nil
}

type graphMaps struct {
	doctorsOfPatient map[uuid.UUID]access.IDSet
	managersOfDoctor map[uuid.UUID]access.IDSet
}

func (g *graphMaps) ManagersOfDoctor(_ context.Context, id uuid.UUID) (access.IDSet, error) {
	return g.managersOfDoctor[id], nil
}

func (g *graphMaps) ManagersOfAssistant(_ context.Context, _ uuid.UUID) (access.IDSet, error) {
	return nil, nil
}

func (g *graphMaps) DoctorsOfPatient(_ context.Context, id uuid.UUID) (access.IDSet, error) {
	return g.doctorsOfPatient[id], nil
}

func (g *graphMaps) AssistantsOfManager(_ context.Context, _ uuid.UUID) (access.IDSet, error) {
	return nil, nil
}

func testUser(role model.Role) *model.User {
	u := &model.User{Role: role, IsActive: true}
	u.ID = uuid.New()
	return u
}

type voiceFixture struct {
	svc     *Service
	repo    *fakeVoiceRepo
	users   *fakeUserRepo
	store   *memStore
	graph   *graphMaps
	doctor  *model.User
	patient *model.User
}

func newVoiceFixture(t *testing.T) *voiceFixture {
	t.Helper()

	users := newFakeUserRepo()
	doctor := users.add(testUser(model.RoleDoctor))
	patient := users.add(testUser(model.RolePatient))

	graph := &graphMaps{
		doctorsOfPatient: map[uuid.UUID]access.IDSet{
			patient.ID: access.NewIDSet(doctor.ID),
		},
		managersOfDoctor: make(map[uuid.UUID]access.IDSet),
	}

	repo := newFakeVoiceRepo()
	store := newMemStore()
	svc := NewService(repo, users, access.NewResolver(graph), store)

	return &voiceFixture{
		svc:     svc,
		repo:    repo,
		users:   users,
		store:   store,
		graph:   graph,
		doctor:  doctor,
		patient: patient,
	}
}

func TestCreateVoice(t *testing.T) {
	f := newVoiceFixture(t)

	payload := []byte("audio-bytes")
	created, err := f.svc.CreateVoice(context.Background(), f.doctor, f.doctor.ID, f.patient.ID,
		nil, nil, "consult.wav", bytes.NewReader(payload))
	require.NoError(t, err)

	assert.Equal(t, f.doctor.ID, created.DoctorID)
	assert.Equal(t, f.patient.ID, created.PatientID)
	assert.False(t, created.NoteCreated)
	require.NotEmpty(t, created.Path)
	assert.Equal(t, payload, f.store.files[created.Path])
}

func TestCreateVoiceRequiresDoctorPatientLink(t *testing.T) {
	f := newVoiceFixture(t)
	unlinked := f.users.add(testUser(model.RolePatient))

	_, err := f.svc.CreateVoice(context.Background(), f.doctor, f.doctor.ID, unlinked.ID,
		nil, nil, "consult.wav", bytes.NewReader(nil))
	assert.True(t, apperrors.IsCode(err, apperrors.ErrInvalidRelationship))
	assert.Empty(t, f.store.files)
}

func TestCreateVoiceTargetMustBePatient(t *testing.T) {
	f := newVoiceFixture(t)
	assistant := f.users.add(testUser(model.RoleAssistant))
	f.graph.doctorsOfPatient[assistant.ID] = access.NewIDSet(f.doctor.ID)

	_, err := f.svc.CreateVoice(context.Background(), f.doctor, f.doctor.ID, assistant.ID,
		nil, nil, "consult.wav", bytes.NewReader(nil))
	assert.True(t, apperrors.IsCode(err, apperrors.ErrInvalidRelationship))
}

func TestCreateVoiceUnknownPatient(t *testing.T) {
	f := newVoiceFixture(t)

	_, err := f.svc.CreateVoice(context.Background(), f.doctor, f.doctor.ID, uuid.New(),
		nil, nil, "consult.wav", bytes.NewReader(nil))
	assert.True(t, apperrors.IsCode(err, apperrors.ErrNotFound))
}

func TestCreateVoiceOnlyUploadingDoctor(t *testing.T) {
	f := newVoiceFixture(t)
	otherDoctor := f.users.add(testUser(model.RoleDoctor))

	_, err := f.svc.CreateVoice(context.Background(), otherDoctor, f.doctor.ID, f.patient.ID,
		nil, nil, "consult.wav", bytes.NewReader(nil))
	assert.True(t, apperrors.IsCode(err, apperrors.ErrForbidden))
}

func TestCreateVoiceCleansUpFileOnInsertFailure(t *testing.T) {
	f := newVoiceFixture(t)
	f.repo.failCreate = true

	_, err := f.svc.CreateVoice(context.Background(), f.doctor, f.doctor.ID, f.patient.ID,
		nil, nil, "consult.wav", bytes.NewReader([]byte("x")))
	require.Error(t, err)
	assert.Len(t, f.store.removed, 1)
	assert.Empty(t, f.store.files)
}

func TestGetVoiceAccess(t *testing.T) {
	f := newVoiceFixture(t)
	ctx := context.Background()

	created, err := f.svc.CreateVoice(ctx, f.doctor, f.doctor.ID, f.patient.ID,
		nil, nil, "consult.wav", bytes.NewReader([]byte("x")))
	require.NoError(t, err)

	got, err := f.svc.GetVoice(ctx, f.patient, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)

	_, err = f.svc.GetVoice(ctx, testUser(model.RoleDoctor), created.ID)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrForbidden))
}

func TestListVoicesByPatientScoping(t *testing.T) {
	f := newVoiceFixture(t)
	ctx := context.Background()

	// The patient sees everything: no doctor filter.
	_, err := f.svc.ListVoicesByPatient(ctx, f.patient, f.patient.ID, nil)
	require.NoError(t, err)
	require.NotNil(t, f.repo.lastPatientFilter)
	assert.Nil(t, f.repo.lastPatientFilter.DoctorID)

	// A linked doctor only sees their own voices.
	_, err = f.svc.ListVoicesByPatient(ctx, f.doctor, f.patient.ID, nil)
	require.NoError(t, err)
	require.NotNil(t, f.repo.lastPatientFilter.DoctorID)
	assert.Equal(t, f.doctor.ID, *f.repo.lastPatientFilter.DoctorID)

	// An unlinked doctor is denied outright.
	_, err = f.svc.ListVoicesByPatient(ctx, testUser(model.RoleDoctor), f.patient.ID, nil)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrForbidden))
}

func TestListVoicesByDoctorFilterPassthrough(t *testing.T) {
	f := newVoiceFixture(t)

	pending := false
	_, err := f.svc.ListVoicesByDoctor(context.Background(), f.doctor, f.doctor.ID, &pending)
	assert.NoError(t, err)

	_, err = f.svc.ListVoicesByDoctor(context.Background(), testUser(model.RoleDoctor), f.doctor.ID, nil)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrForbidden))
}
