package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	domain "github.com/davifernandodias/dsin-assessment-tech/internal/domain/service"
	"github.com/davifernandodias/dsin-assessment-tech/internal/httperr"
	"github.com/davifernandodias/dsin-assessment-tech/internal/models"
)

type ServiceGormRepository struct {
	db *gorm.DB
}

func NewServiceGormRepository(db *gorm.DB) *ServiceGormRepository {
	return &ServiceGormRepository{db: db}
}

func (r *ServiceGormRepository) GetUserByID(
	ctx context.Context,
	id string,
) (*models.User, error) {

	var user models.User
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&user).Error; err != nil {
		return nil, translateSvcNotFound(err)
	}
	return &user, nil
}

func (r *ServiceGormRepository) GetServiceByID(
	ctx context.Context,
	id string,
) (*models.Service, error) {

	var svc models.Service
	if err := r.db.WithContext(ctx).
		Preload("Type").
		Where("id = ?", id).
		First(&svc).Error; err != nil {
		return nil, translateSvcNotFound(err)
	}
	return &svc, nil
}

func (r *ServiceGormRepository) GetOrCreateServiceTypeByName(
	ctx context.Context,
	name string,
) (*models.ServiceType, error) {

	var svcType models.ServiceType
	err := r.db.WithContext(ctx).
		Where("name = ?", name).
		First(&svcType).Error

	if err == nil {
		return &svcType, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	svcType = models.ServiceType{
		ID:   uuid.NewString(),
		Name: name,
	}

	if err := r.db.WithContext(ctx).Create(&svcType).Error; err != nil {
		// Outro request venceu a corrida: recarrega pelo nome.
		if httperr.IsUniqueViolation(err) {
			if err2 := r.db.WithContext(ctx).
				Where("name = ?", name).
				First(&svcType).Error; err2 == nil {
				return &svcType, nil
			}
		}
		return nil, err
	}

	return &svcType, nil
}

func (r *ServiceGormRepository) CreateService(
	ctx context.Context,
	svc *models.Service,
) error {
	return r.db.WithContext(ctx).Create(svc).Error
}

func (r *ServiceGormRepository) UpdateServiceFields(
	ctx context.Context,
	id string,
	fields map[string]any,
) (*models.Service, error) {

	if err := r.db.WithContext(ctx).
		Model(&models.Service{}).
		Where("id = ?", id).
		Updates(fields).Error; err != nil {
		return nil, err
	}

	return r.GetServiceByID(ctx, id)
}

// DeleteServiceWithTypeCleanup removes the service and garbage-collects
// the type when it was the last reference, in a single transaction.
func (r *ServiceGormRepository) DeleteServiceWithTypeCleanup(
	ctx context.Context,
	serviceID string,
	typeID string,
) error {

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		if err := tx.
			Where("id = ?", serviceID).
			Delete(&models.Service{}).Error; err != nil {
			return err
		}

		var remaining int64
		if err := tx.
			Model(&models.Service{}).
			Where("type_id = ?", typeID).
			Count(&remaining).Error; err != nil {
			return err
		}

		if remaining == 0 {
			if err := tx.
				Where("id = ?", typeID).
				Delete(&models.ServiceType{}).Error; err != nil {
				return err
			}
		}

		return nil
	})

	if httperr.IsForeignKeyViolation(err) {
		return domain.ErrServiceInUse
	}

	return err
}

func translateSvcNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ErrNotFound
	}
	return err
}

// Compile-time check
var _ domain.Repository = (*ServiceGormRepository)(nil)
