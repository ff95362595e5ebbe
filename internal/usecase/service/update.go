package service

import (
	"context"
	"errors"
	"strings"

	"github.com/davifernandodias/dsin-assessment-tech/internal/audit"
	"github.com/davifernandodias/dsin-assessment-tech/internal/domain/identity"
	domain "github.com/davifernandodias/dsin-assessment-tech/internal/domain/service"
	"github.com/davifernandodias/dsin-assessment-tech/internal/httperr"
	"github.com/davifernandodias/dsin-assessment-tech/internal/models"
)

// Nil fields are left untouched.
type UpdateServiceInput struct {
	TypeName        *string
	Description     *string
	Price           *float64
	DurationMinutes *int
}

type UpdateService struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewUpdateService(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *UpdateService {
	return &UpdateService{
		repo:  repo,
		audit: audit,
	}
}

func (uc *UpdateService) Execute(
	ctx context.Context,
	serviceID string,
	actingUserID string,
	in UpdateServiceInput,
) (*models.Service, error) {

	svc, err := uc.repo.GetServiceByID(ctx, serviceID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, httperr.ErrNotFound("service_not_found", "Serviço não encontrado.")
		}
		return nil, err
	}

	actor, err := uc.repo.GetUserByID(ctx, actingUserID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, httperr.ErrNotFound("acting_user_not_found", "Usuário atual não encontrado.")
		}
		return nil, err
	}

	if err := authorizeServiceChange(actor, svc); err != nil {
		return nil, err
	}

	fields := map[string]any{}

	if in.TypeName != nil {
		typeName := strings.TrimSpace(*in.TypeName)
		if typeName == "" {
			return nil, httperr.ErrValidation("invalid_type", "Tipo de serviço é obrigatório.")
		}
		svcType, err := uc.repo.GetOrCreateServiceTypeByName(ctx, typeName)
		if err != nil {
			return nil, err
		}
		fields["type_id"] = svcType.ID
	}
	if in.Description != nil {
		fields["description"] = *in.Description
	}
	if in.Price != nil {
		fields["price"] = *in.Price
	}
	if in.DurationMinutes != nil {
		fields["duration_minutes"] = *in.DurationMinutes
	}

	if len(fields) == 0 {
		return svc, nil
	}

	updated, err := uc.repo.UpdateServiceFields(ctx, svc.ID, fields)
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:  &actingUserID,
		Action:   "service_updated",
		Entity:   "service",
		EntityID: &updated.ID,
	})

	return updated, nil
}

// authorizeServiceChange: admins or the creating user.
func authorizeServiceChange(actor *models.User, svc *models.Service) error {
	role, err := identity.Parse(actor.Role)
	if err != nil {
		return httperr.ErrForbidden("invalid_role", "Papel de usuário desconhecido.")
	}

	switch role {
	case identity.RoleAdmin:
		return nil
	case identity.RoleClient, identity.RoleStylist:
		if svc.CreatedBy != actor.ID {
			return httperr.ErrForbidden(
				"not_service_owner",
				"Você não tem permissão para alterar este serviço.",
			)
		}
		return nil
	}

	return httperr.ErrForbidden("invalid_role", "Papel de usuário desconhecido.")
}
