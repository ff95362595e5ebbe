package service

import (
	"context"
	"errors"

	"github.com/davifernandodias/dsin-assessment-tech/internal/audit"
	domain "github.com/davifernandodias/dsin-assessment-tech/internal/domain/service"
	"github.com/davifernandodias/dsin-assessment-tech/internal/httperr"
)

type DeleteService struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewDeleteService(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *DeleteService {
	return &DeleteService{
		repo:  repo,
		audit: audit,
	}
}

func (uc *DeleteService) Execute(
	ctx context.Context,
	serviceID string,
	actingUserID string,
) error {

	svc, err := uc.repo.GetServiceByID(ctx, serviceID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return httperr.ErrNotFound("service_not_found", "Serviço não encontrado.")
		}
		return err
	}

	actor, err := uc.repo.GetUserByID(ctx, actingUserID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return httperr.ErrNotFound("acting_user_not_found", "Usuário atual não encontrado.")
		}
		return err
	}

	if err := authorizeServiceChange(actor, svc); err != nil {
		return err
	}

	if err := uc.repo.DeleteServiceWithTypeCleanup(ctx, svc.ID, svc.TypeID); err != nil {
		if errors.Is(err, domain.ErrServiceInUse) {
			return httperr.ErrConflict("service_in_use", "Serviço possui agendamentos e não pode ser removido.")
		}
		return err
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:  &actingUserID,
		Action:   "service_deleted",
		Entity:   "service",
		EntityID: &svc.ID,
	})

	return nil
}
