package appointment

import (
	"context"
	"errors"
	"time"

	"github.com/davifernandodias/dsin-assessment-tech/internal/models"
)

// ErrNotFound is returned by lookups when the record does not exist.
var ErrNotFound = errors.New("not found")

type Repository interface {
	// -------- References --------
	GetUserByID(
		ctx context.Context,
		id string,
	) (*models.User, error)

	GetServiceByID(
		ctx context.Context,
		id string,
	) (*models.Service, error)

	// -------- Appointment (create / conflict) --------
	GetAppointmentByID(
		ctx context.Context,
		id string,
	) (*models.Appointment, error)

	// CountBookingConflicts counts appointments with the same
	// (client, service, scheduledAt) tuple, excluding excludeID when
	// it is non-empty.
	CountBookingConflicts(
		ctx context.Context,
		clientID string,
		serviceID string,
		scheduledAt time.Time,
		excludeID string,
	) (int64, error)

	CreateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// -------- Appointment (mutation) --------
	UpdateAppointmentFields(
		ctx context.Context,
		id string,
		fields map[string]any,
	) (*models.Appointment, error)

	DeleteAppointment(
		ctx context.Context,
		id string,
	) error

	// -------- Listing --------
	ListAppointments(
		ctx context.Context,
		offset int,
		limit int,
	) ([]models.Appointment, error)

	ListAppointmentsByClient(
		ctx context.Context,
		clientID string,
		offset int,
		limit int,
	) ([]models.Appointment, error)
}
