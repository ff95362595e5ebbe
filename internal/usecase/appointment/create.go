package appointment

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/davifernandodias/dsin-assessment-tech/internal/audit"
	domain "github.com/davifernandodias/dsin-assessment-tech/internal/domain/appointment"
	"github.com/davifernandodias/dsin-assessment-tech/internal/httperr"
	"github.com/davifernandodias/dsin-assessment-tech/internal/models"
	"github.com/davifernandodias/dsin-assessment-tech/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type CreateAppointmentInput struct {
	ClientID    string
	StylistID   *string
	ServiceID   string
	ScheduledAt time.Time
	Status      string
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewCreateAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *CreateAppointment {
	return &CreateAppointment{
		repo:  repo,
		audit: audit,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	actingUserID string,
	in CreateAppointmentInput,
) (*models.Appointment, error) {

	// --------------------------------------------------
	// 1. Status / horário
	// --------------------------------------------------
	status := domain.InitialStatus()
	if in.Status != "" {
		status = domain.Status(in.Status)
		if !status.Valid() {
			return nil, httperr.ErrValidation("invalid_status", "Status inválido.")
		}
	}

	if !in.ScheduledAt.After(timezone.Now()) {
		return nil, httperr.ErrValidation("scheduled_in_past", "Data do agendamento já passou.")
	}

	// --------------------------------------------------
	// 2. Duplicidade (early exit, o índice único é a
	//    garantia definitiva)
	// --------------------------------------------------
	conflicts, err := uc.repo.CountBookingConflicts(
		ctx,
		in.ClientID,
		in.ServiceID,
		in.ScheduledAt,
		"",
	)
	if err != nil {
		return nil, err
	}
	if conflicts > 0 {
		return nil, httperr.ErrConflict("duplicate_booking", "Já existe um agendamento para o mesmo horário.")
	}

	// --------------------------------------------------
	// 3. Referências
	// --------------------------------------------------
	if _, err := uc.repo.GetUserByID(ctx, in.ClientID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, httperr.ErrNotFound("invalid_client", "Cliente inválido.")
		}
		return nil, err
	}

	if in.StylistID != nil {
		if _, err := uc.repo.GetUserByID(ctx, *in.StylistID); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, httperr.ErrNotFound("invalid_stylist", "Estilista inválido.")
			}
			return nil, err
		}
	}

	if _, err := uc.repo.GetServiceByID(ctx, in.ServiceID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, httperr.ErrNotFound("invalid_service", "Serviço inválido.")
		}
		return nil, err
	}

	// --------------------------------------------------
	// 4. Criação
	// --------------------------------------------------
	ap := &models.Appointment{
		ID:          uuid.NewString(),
		ClientID:    in.ClientID,
		StylistID:   in.StylistID,
		ServiceID:   in.ServiceID,
		ScheduledAt: in.ScheduledAt,
		Status:      string(status),
	}

	if err := uc.repo.CreateAppointment(ctx, ap); err != nil {
		if httperr.IsUniqueViolation(err) {
			return nil, httperr.ErrConflict("duplicate_booking", "Já existe um agendamento para o mesmo horário.")
		}
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:  &actingUserID,
		Action:   "appointment_created",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return ap, nil
}
