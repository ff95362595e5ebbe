package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/davifernandodias/dsin-assessment-tech/internal/audit"
	"github.com/davifernandodias/dsin-assessment-tech/internal/domain/identity"
	domain "github.com/davifernandodias/dsin-assessment-tech/internal/domain/service"
	"github.com/davifernandodias/dsin-assessment-tech/internal/httperr"
	"github.com/davifernandodias/dsin-assessment-tech/internal/models"
)

// ======================================================
// INPUT
// ======================================================

type CreateServiceInput struct {
	TypeName        string
	Description     string
	Price           float64
	DurationMinutes int
}

// ======================================================
// USE CASE
// ======================================================

type CreateService struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewCreateService(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *CreateService {
	return &CreateService{
		repo:  repo,
		audit: audit,
	}
}

func (uc *CreateService) Execute(
	ctx context.Context,
	actingUserID string,
	in CreateServiceInput,
) (*models.Service, error) {

	actor, err := uc.repo.GetUserByID(ctx, actingUserID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, httperr.ErrNotFound("acting_user_not_found", "Usuário atual não encontrado.")
		}
		return nil, err
	}

	role, err := identity.Parse(actor.Role)
	if err != nil || role != identity.RoleAdmin {
		return nil, httperr.ErrForbidden("admin_only", "Apenas administradores podem criar serviços.")
	}

	typeName := strings.TrimSpace(in.TypeName)
	if typeName == "" {
		return nil, httperr.ErrValidation("invalid_type", "Tipo de serviço é obrigatório.")
	}

	// Auto-vivifica o tipo na primeira utilização.
	svcType, err := uc.repo.GetOrCreateServiceTypeByName(ctx, typeName)
	if err != nil {
		return nil, err
	}

	svc := &models.Service{
		ID:              uuid.NewString(),
		TypeID:          svcType.ID,
		CreatedBy:       actor.ID,
		Description:     in.Description,
		Price:           in.Price,
		DurationMinutes: in.DurationMinutes,
	}

	if err := uc.repo.CreateService(ctx, svc); err != nil {
		return nil, err
	}
	svc.Type = *svcType

	uc.audit.Dispatch(audit.Event{
		ActorID:  &actingUserID,
		Action:   "service_created",
		Entity:   "service",
		EntityID: &svc.ID,
	})

	return svc, nil
}
