package appointment

import (
	"context"
	"testing"
	"time"

	domain "github.com/davifernandodias/dsin-assessment-tech/internal/domain/appointment"
	"github.com/davifernandodias/dsin-assessment-tech/internal/httperr"
	"github.com/davifernandodias/dsin-assessment-tech/internal/models"
)

// --- MOCKS ---

type mockRepo struct {
	users        map[string]*models.User
	services     map[string]*models.Service
	appointments map[string]*models.Appointment

	conflictCount   int64
	conflictCalled  bool
	conflictClient  string
	conflictService string
	conflictAt      time.Time
	conflictExclude string

	created   *models.Appointment
	createErr error

	updatedID     string
	updatedFields map[string]any

	deletedID string

	listedAll       bool
	listedClient    string
	listAppointment []models.Appointment
}

func newMockRepo() *mockRepo {
	return &mockRepo{
		users:        map[string]*models.User{},
		services:     map[string]*models.Service{},
		appointments: map[string]*models.Appointment{},
	}
}

func (m *mockRepo) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, domain.ErrNotFound
}

func (m *mockRepo) GetServiceByID(ctx context.Context, id string) (*models.Service, error) {
	if s, ok := m.services[id]; ok {
		return s, nil
	}
	return nil, domain.ErrNotFound
}

func (m *mockRepo) GetAppointmentByID(ctx context.Context, id string) (*models.Appointment, error) {
	if ap, ok := m.appointments[id]; ok {
		return ap, nil
	}
	return nil, domain.ErrNotFound
}

func (m *mockRepo) CountBookingConflicts(
	ctx context.Context,
	clientID string,
	serviceID string,
	scheduledAt time.Time,
	excludeID string,
) (int64, error) {
	m.conflictCalled = true
	m.conflictClient = clientID
	m.conflictService = serviceID
	m.conflictAt = scheduledAt
	m.conflictExclude = excludeID
	return m.conflictCount, nil
}

func (m *mockRepo) CreateAppointment(ctx context.Context, ap *models.Appointment) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.created = ap
	return nil
}

func (m *mockRepo) UpdateAppointmentFields(
	ctx context.Context,
	id string,
	fields map[string]any,
) (*models.Appointment, error) {
	m.updatedID = id
	m.updatedFields = fields

	ap := *m.appointments[id]
	if v, ok := fields["scheduled_at"]; ok {
		ap.ScheduledAt = v.(time.Time)
	}
	if v, ok := fields["status"]; ok {
		ap.Status = v.(string)
	}
	if v, ok := fields["client_id"]; ok {
		ap.ClientID = v.(string)
	}
	if v, ok := fields["service_id"]; ok {
		ap.ServiceID = v.(string)
	}
	return &ap, nil
}

func (m *mockRepo) DeleteAppointment(ctx context.Context, id string) error {
	m.deletedID = id
	return nil
}

func (m *mockRepo) ListAppointments(ctx context.Context, offset, limit int) ([]models.Appointment, error) {
	m.listedAll = true
	return m.listAppointment, nil
}

func (m *mockRepo) ListAppointmentsByClient(ctx context.Context, clientID string, offset, limit int) ([]models.Appointment, error) {
	m.listedClient = clientID
	return m.listAppointment, nil
}

var _ domain.Repository = (*mockRepo)(nil)

// --- FIXTURES ---

const (
	adminID   = "8f7a4f70-0001-4b2e-9d8a-000000000001"
	clientID  = "8f7a4f70-0002-4b2e-9d8a-000000000002"
	otherID   = "8f7a4f70-0003-4b2e-9d8a-000000000003"
	stylistID = "8f7a4f70-0004-4b2e-9d8a-000000000004"
	serviceID = "8f7a4f70-0005-4b2e-9d8a-000000000005"
	apptID    = "8f7a4f70-0006-4b2e-9d8a-000000000006"
)

func seededRepo() *mockRepo {
	repo := newMockRepo()
	repo.users[adminID] = &models.User{ID: adminID, Role: "Admin"}
	repo.users[clientID] = &models.User{ID: clientID, Role: "Client"}
	repo.users[otherID] = &models.User{ID: otherID, Role: "Client"}
	repo.users[stylistID] = &models.User{ID: stylistID, Role: "Stylist"}
	repo.services[serviceID] = &models.Service{ID: serviceID}
	return repo
}

func seedAppointment(repo *mockRepo, scheduledAt time.Time) *models.Appointment {
	ap := &models.Appointment{
		ID:          apptID,
		ClientID:    clientID,
		ServiceID:   serviceID,
		ScheduledAt: scheduledAt,
		Status:      "pending",
	}
	repo.appointments[apptID] = ap
	return ap
}

func errCode(t *testing.T, err error, code string) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error %q, got nil", code)
	}
	if !httperr.Is(err, code) {
		t.Fatalf("expected error %q, got %v", code, err)
	}
}

// --- CREATE ---

func TestCreateAppointment_DefaultsToPending(t *testing.T) {
	repo := seededRepo()
	uc := NewCreateAppointment(repo, nil)

	scheduledAt := time.Now().Add(72 * time.Hour)

	ap, err := uc.Execute(context.Background(), clientID, CreateAppointmentInput{
		ClientID:    clientID,
		ServiceID:   serviceID,
		ScheduledAt: scheduledAt,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if ap.Status != "pending" {
		t.Errorf("status = %q, want pending", ap.Status)
	}
	if ap.ID == "" {
		t.Error("expected a generated id")
	}
	if repo.created == nil {
		t.Fatal("appointment was not persisted")
	}
	if !repo.created.ScheduledAt.Equal(scheduledAt) {
		t.Errorf("persisted scheduledAt = %v, want %v", repo.created.ScheduledAt, scheduledAt)
	}
}

func TestCreateAppointment_DuplicateBooking(t *testing.T) {
	repo := seededRepo()
	repo.conflictCount = 1
	uc := NewCreateAppointment(repo, nil)

	_, err := uc.Execute(context.Background(), clientID, CreateAppointmentInput{
		ClientID:    clientID,
		ServiceID:   serviceID,
		ScheduledAt: time.Now().Add(72 * time.Hour),
	})

	errCode(t, err, "duplicate_booking")
	if repo.created != nil {
		t.Error("nothing should be persisted on conflict")
	}
}

func TestCreateAppointment_UnknownServiceNamesService(t *testing.T) {
	repo := seededRepo()
	uc := NewCreateAppointment(repo, nil)

	_, err := uc.Execute(context.Background(), clientID, CreateAppointmentInput{
		ClientID:    clientID,
		ServiceID:   "8f7a4f70-9999-4b2e-9d8a-999999999999",
		ScheduledAt: time.Now().Add(72 * time.Hour),
	})

	errCode(t, err, "invalid_service")
}

func TestCreateAppointment_UnknownClientNamesClient(t *testing.T) {
	repo := seededRepo()
	uc := NewCreateAppointment(repo, nil)

	_, err := uc.Execute(context.Background(), adminID, CreateAppointmentInput{
		ClientID:    "8f7a4f70-9999-4b2e-9d8a-999999999999",
		ServiceID:   serviceID,
		ScheduledAt: time.Now().Add(72 * time.Hour),
	})

	errCode(t, err, "invalid_client")
}

func TestCreateAppointment_UnknownStylistNamesStylist(t *testing.T) {
	repo := seededRepo()
	uc := NewCreateAppointment(repo, nil)

	missing := "8f7a4f70-9999-4b2e-9d8a-999999999999"
	_, err := uc.Execute(context.Background(), clientID, CreateAppointmentInput{
		ClientID:    clientID,
		StylistID:   &missing,
		ServiceID:   serviceID,
		ScheduledAt: time.Now().Add(72 * time.Hour),
	})

	errCode(t, err, "invalid_stylist")
}

func TestCreateAppointment_RejectsPastDate(t *testing.T) {
	repo := seededRepo()
	uc := NewCreateAppointment(repo, nil)

	_, err := uc.Execute(context.Background(), clientID, CreateAppointmentInput{
		ClientID:    clientID,
		ServiceID:   serviceID,
		ScheduledAt: time.Now().Add(-time.Hour),
	})

	errCode(t, err, "scheduled_in_past")
}

func TestCreateAppointment_RejectsUnknownStatus(t *testing.T) {
	repo := seededRepo()
	uc := NewCreateAppointment(repo, nil)

	_, err := uc.Execute(context.Background(), clientID, CreateAppointmentInput{
		ClientID:    clientID,
		ServiceID:   serviceID,
		ScheduledAt: time.Now().Add(72 * time.Hour),
		Status:      "scheduled",
	})

	errCode(t, err, "invalid_status")
}

// --- UPDATE ---

func TestUpdateAppointment_EmptyPatchChangesNothing(t *testing.T) {
	repo := seededRepo()
	seedAppointment(repo, time.Now().Add(72*time.Hour))
	uc := NewUpdateAppointment(repo, nil)

	ap, err := uc.Execute(context.Background(), apptID, clientID, UpdateAppointmentInput{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if repo.updatedFields != nil {
		t.Errorf("no write expected, got fields %v", repo.updatedFields)
	}
	if ap.Status != "pending" || !ap.ScheduledAt.Equal(repo.appointments[apptID].ScheduledAt) {
		t.Error("appointment should be returned unchanged")
	}
}

func TestUpdateAppointment_OwnerTooCloseForbidden(t *testing.T) {
	repo := seededRepo()
	seedAppointment(repo, time.Now().Add(24*time.Hour))
	uc := NewUpdateAppointment(repo, nil)

	status := "canceled"
	_, err := uc.Execute(context.Background(), apptID, clientID, UpdateAppointmentInput{
		Status: &status,
	})

	errCode(t, err, "too_close_to_modify")
}

func TestUpdateAppointment_AdminBypassesThreshold(t *testing.T) {
	repo := seededRepo()
	seedAppointment(repo, time.Now().Add(24*time.Hour))
	uc := NewUpdateAppointment(repo, nil)

	status := "confirmed"
	ap, err := uc.Execute(context.Background(), apptID, adminID, UpdateAppointmentInput{
		Status: &status,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if ap.Status != "confirmed" {
		t.Errorf("status = %q, want confirmed", ap.Status)
	}
	if repo.updatedFields["status"] != "confirmed" {
		t.Errorf("persisted fields = %v", repo.updatedFields)
	}
}

func TestUpdateAppointment_NonOwnerForbidden(t *testing.T) {
	repo := seededRepo()
	seedAppointment(repo, time.Now().Add(72*time.Hour))
	uc := NewUpdateAppointment(repo, nil)

	status := "canceled"
	_, err := uc.Execute(context.Background(), apptID, otherID, UpdateAppointmentInput{
		Status: &status,
	})

	errCode(t, err, "not_appointment_owner")
}

func TestUpdateAppointment_RescheduleConflictExcludesSelf(t *testing.T) {
	repo := seededRepo()
	seedAppointment(repo, time.Now().Add(72*time.Hour))
	repo.conflictCount = 1
	uc := NewUpdateAppointment(repo, nil)

	newTime := time.Now().Add(96 * time.Hour)
	_, err := uc.Execute(context.Background(), apptID, adminID, UpdateAppointmentInput{
		ScheduledAt: &newTime,
	})

	errCode(t, err, "duplicate_booking")

	if repo.conflictExclude != apptID {
		t.Errorf("conflict query must exclude the appointment itself, got %q", repo.conflictExclude)
	}
	if repo.conflictClient != clientID || repo.conflictService != serviceID {
		t.Errorf("conflict query used wrong tuple: %q/%q", repo.conflictClient, repo.conflictService)
	}
}

func TestUpdateAppointment_SameTimeSkipsConflictCheck(t *testing.T) {
	repo := seededRepo()
	scheduledAt := time.Now().Add(72 * time.Hour)
	seedAppointment(repo, scheduledAt)
	repo.conflictCount = 1
	uc := NewUpdateAppointment(repo, nil)

	same := scheduledAt
	_, err := uc.Execute(context.Background(), apptID, adminID, UpdateAppointmentInput{
		ScheduledAt: &same,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if repo.conflictCalled {
		t.Error("conflict query must not run when scheduledAt is unchanged")
	}
}

func TestUpdateAppointment_NotFound(t *testing.T) {
	repo := seededRepo()
	uc := NewUpdateAppointment(repo, nil)

	_, err := uc.Execute(context.Background(), apptID, clientID, UpdateAppointmentInput{})

	errCode(t, err, "appointment_not_found")
}

func TestUpdateAppointment_UnknownActor(t *testing.T) {
	repo := seededRepo()
	seedAppointment(repo, time.Now().Add(72*time.Hour))
	uc := NewUpdateAppointment(repo, nil)

	_, err := uc.Execute(context.Background(), apptID, "8f7a4f70-9999-4b2e-9d8a-999999999999", UpdateAppointmentInput{})

	errCode(t, err, "acting_user_not_found")
}

// --- DELETE ---

func TestDeleteAppointment_NonOwnerForbidden(t *testing.T) {
	repo := seededRepo()
	seedAppointment(repo, time.Now().Add(72*time.Hour))
	uc := NewDeleteAppointment(repo, nil)

	err := uc.Execute(context.Background(), apptID, otherID)

	errCode(t, err, "not_appointment_owner")
	if repo.deletedID != "" {
		t.Error("nothing should be deleted")
	}
}

func TestDeleteAppointment_OwnerOutsideWindow(t *testing.T) {
	repo := seededRepo()
	seedAppointment(repo, time.Now().Add(72*time.Hour))
	uc := NewDeleteAppointment(repo, nil)

	if err := uc.Execute(context.Background(), apptID, clientID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if repo.deletedID != apptID {
		t.Errorf("deleted id = %q, want %q", repo.deletedID, apptID)
	}
}

func TestDeleteAppointment_AdminBypassesThreshold(t *testing.T) {
	repo := seededRepo()
	seedAppointment(repo, time.Now().Add(time.Hour))
	uc := NewDeleteAppointment(repo, nil)

	if err := uc.Execute(context.Background(), apptID, adminID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if repo.deletedID != apptID {
		t.Errorf("deleted id = %q, want %q", repo.deletedID, apptID)
	}
}

// --- LIST ---

func TestListAppointments_AdminSeesAll(t *testing.T) {
	repo := seededRepo()
	uc := NewListAppointments(repo)

	if _, err := uc.Execute(context.Background(), adminID, 0, 10); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !repo.listedAll {
		t.Error("admin listing must not be scoped")
	}
}

func TestListAppointments_ClientScopedToSelf(t *testing.T) {
	repo := seededRepo()
	uc := NewListAppointments(repo)

	if _, err := uc.Execute(context.Background(), clientID, 0, 10); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if repo.listedAll {
		t.Error("client listing must be scoped")
	}
	if repo.listedClient != clientID {
		t.Errorf("scoped to %q, want %q", repo.listedClient, clientID)
	}
}
