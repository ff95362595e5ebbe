package service

import (
	"context"
	"errors"

	"github.com/davifernandodias/dsin-assessment-tech/internal/models"
)

var (
	// ErrNotFound is returned by lookups when the record does not exist.
	ErrNotFound = errors.New("not found")

	// ErrServiceInUse is returned when deletion is refused because
	// appointments still reference the service.
	ErrServiceInUse = errors.New("service in use")
)

type Repository interface {
	GetUserByID(
		ctx context.Context,
		id string,
	) (*models.User, error)

	GetServiceByID(
		ctx context.Context,
		id string,
	) (*models.Service, error)

	// GetOrCreateServiceTypeByName auto-vivifies the type on first use.
	GetOrCreateServiceTypeByName(
		ctx context.Context,
		name string,
	) (*models.ServiceType, error)

	CreateService(
		ctx context.Context,
		svc *models.Service,
	) error

	UpdateServiceFields(
		ctx context.Context,
		id string,
		fields map[string]any,
	) (*models.Service, error)

	// DeleteServiceWithTypeCleanup removes the service and, when no
	// other service references its type, the type as well, in one
	// transaction. Returns ErrServiceInUse while appointments still
	// reference the service.
	DeleteServiceWithTypeCleanup(
		ctx context.Context,
		serviceID string,
		typeID string,
	) error
}
