package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	domain "github.com/davifernandodias/dsin-assessment-tech/internal/domain/appointment"
	"github.com/davifernandodias/dsin-assessment-tech/internal/models"
)

type AppointmentGormRepository struct {
	db *gorm.DB
}

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db}
}

// --------------------------------------------------
// References
// --------------------------------------------------

func (r *AppointmentGormRepository) GetUserByID(
	ctx context.Context,
	id string,
) (*models.User, error) {

	var user models.User
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&user).Error; err != nil {
		return nil, translateNotFound(err)
	}
	return &user, nil
}

func (r *AppointmentGormRepository) GetServiceByID(
	ctx context.Context,
	id string,
) (*models.Service, error) {

	var svc models.Service
	if err := r.db.WithContext(ctx).
		Preload("Type").
		Where("id = ?", id).
		First(&svc).Error; err != nil {
		return nil, translateNotFound(err)
	}
	return &svc, nil
}

// --------------------------------------------------
// Appointment
// --------------------------------------------------

func (r *AppointmentGormRepository) GetAppointmentByID(
	ctx context.Context,
	id string,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&ap).Error; err != nil {
		return nil, translateNotFound(err)
	}
	return &ap, nil
}

func (r *AppointmentGormRepository) CountBookingConflicts(
	ctx context.Context,
	clientID string,
	serviceID string,
	scheduledAt time.Time,
	excludeID string,
) (int64, error) {

	q := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where(
			"client_id = ? AND service_id = ? AND scheduled_at = ?",
			clientID, serviceID, scheduledAt,
		)

	if excludeID != "" {
		q = q.Where("id <> ?", excludeID)
	}

	var count int64
	if err := q.Count(&count).Error; err != nil {
		return 0, err
	}

	return count, nil
}

func (r *AppointmentGormRepository) CreateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Create(ap).Error
}

func (r *AppointmentGormRepository) UpdateAppointmentFields(
	ctx context.Context,
	id string,
	fields map[string]any,
) (*models.Appointment, error) {

	if err := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where("id = ?", id).
		Updates(fields).Error; err != nil {
		return nil, err
	}

	return r.GetAppointmentByID(ctx, id)
}

func (r *AppointmentGormRepository) DeleteAppointment(
	ctx context.Context,
	id string,
) error {
	return r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&models.Appointment{}).Error
}

// --------------------------------------------------
// Listing
// --------------------------------------------------

func (r *AppointmentGormRepository) ListAppointments(
	ctx context.Context,
	offset int,
	limit int,
) ([]models.Appointment, error) {

	var aps []models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Stylist").
		Preload("Service").
		Preload("Service.Type").
		Order("scheduled_at ASC").
		Offset(offset).
		Limit(limit).
		Find(&aps).Error; err != nil {
		return nil, err
	}

	return aps, nil
}

func (r *AppointmentGormRepository) ListAppointmentsByClient(
	ctx context.Context,
	clientID string,
	offset int,
	limit int,
) ([]models.Appointment, error) {

	var aps []models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Stylist").
		Preload("Service").
		Preload("Service.Type").
		Where("client_id = ?", clientID).
		Order("scheduled_at ASC").
		Offset(offset).
		Limit(limit).
		Find(&aps).Error; err != nil {
		return nil, err
	}

	return aps, nil
}

func translateNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ErrNotFound
	}
	return err
}

// Compile-time check
var _ domain.Repository = (*AppointmentGormRepository)(nil)
