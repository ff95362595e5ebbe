package appointment

import (
	"context"
	"errors"

	"github.com/davifernandodias/dsin-assessment-tech/internal/audit"
	domain "github.com/davifernandodias/dsin-assessment-tech/internal/domain/appointment"
	"github.com/davifernandodias/dsin-assessment-tech/internal/httperr"
	"github.com/davifernandodias/dsin-assessment-tech/internal/timezone"
)

type DeleteAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewDeleteAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *DeleteAppointment {
	return &DeleteAppointment{
		repo:  repo,
		audit: audit,
	}
}

func (uc *DeleteAppointment) Execute(
	ctx context.Context,
	appointmentID string,
	actingUserID string,
) error {

	ap, err := uc.repo.GetAppointmentByID(ctx, appointmentID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return httperr.ErrNotFound("appointment_not_found", "Agendamento não encontrado.")
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

	if err := domain.AuthorizeChange(actor, ap, timezone.Now()); err != nil {
		return err
	}

	if err := uc.repo.DeleteAppointment(ctx, ap.ID); err != nil {
		return err
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:  &actingUserID,
		Action:   "appointment_deleted",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return nil
}
