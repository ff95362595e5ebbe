package appointment

import (
	"context"
	"errors"
	"time"

	"github.com/davifernandodias/dsin-assessment-tech/internal/audit"
	domain "github.com/davifernandodias/dsin-assessment-tech/internal/domain/appointment"
	"github.com/davifernandodias/dsin-assessment-tech/internal/httperr"
	"github.com/davifernandodias/dsin-assessment-tech/internal/models"
	"github.com/davifernandodias/dsin-assessment-tech/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

// Nil fields are left untouched (partial update semantics).
type UpdateAppointmentInput struct {
	ClientID    *string
	StylistID   *string
	ServiceID   *string
	ScheduledAt *time.Time
	Status      *string
}

// ======================================================
// USE CASE
// ======================================================

type UpdateAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewUpdateAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *UpdateAppointment {
	return &UpdateAppointment{
		repo:  repo,
		audit: audit,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *UpdateAppointment) Execute(
	ctx context.Context,
	appointmentID string,
	actingUserID string,
	in UpdateAppointmentInput,
) (*models.Appointment, error) {

	// --------------------------------------------------
	// 1. Agendamento existente
	// --------------------------------------------------
	ap, err := uc.repo.GetAppointmentByID(ctx, appointmentID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, httperr.ErrNotFound("appointment_not_found", "Agendamento não encontrado.")
		}
		return nil, err
	}

	// --------------------------------------------------
	// 2. Usuário atuante
	// --------------------------------------------------
	actor, err := uc.repo.GetUserByID(ctx, actingUserID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, httperr.ErrNotFound("acting_user_not_found", "Usuário atual não encontrado.")
		}
		return nil, err
	}

	// --------------------------------------------------
	// 3. Permissão + antecedência mínima
	// --------------------------------------------------
	if err := domain.AuthorizeChange(actor, ap, timezone.Now()); err != nil {
		return nil, err
	}

	if in.Status != nil && !domain.Status(*in.Status).Valid() {
		return nil, httperr.ErrValidation("invalid_status", "Status inválido.")
	}

	// --------------------------------------------------
	// 4. Duplicidade no reagendamento
	// --------------------------------------------------
	if in.ScheduledAt != nil && !in.ScheduledAt.Equal(ap.ScheduledAt) {
		clientID := ap.ClientID
		if in.ClientID != nil {
			clientID = *in.ClientID
		}
		serviceID := ap.ServiceID
		if in.ServiceID != nil {
			serviceID = *in.ServiceID
		}

		conflicts, err := uc.repo.CountBookingConflicts(
			ctx,
			clientID,
			serviceID,
			*in.ScheduledAt,
			ap.ID,
		)
		if err != nil {
			return nil, err
		}
		if conflicts > 0 {
			return nil, httperr.ErrConflict(
				"duplicate_booking",
				"Já existe um agendamento para o mesmo cliente, serviço e horário.",
			)
		}
	}

	// --------------------------------------------------
	// 5. Referências presentes no payload
	// --------------------------------------------------
	if in.ClientID != nil {
		if _, err := uc.repo.GetUserByID(ctx, *in.ClientID); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, httperr.ErrNotFound("invalid_client", "Cliente inválido.")
			}
			return nil, err
		}
	}
	if in.StylistID != nil {
		if _, err := uc.repo.GetUserByID(ctx, *in.StylistID); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, httperr.ErrNotFound("invalid_stylist", "Estilista inválido.")
			}
			return nil, err
		}
	}
	if in.ServiceID != nil {
		if _, err := uc.repo.GetServiceByID(ctx, *in.ServiceID); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, httperr.ErrNotFound("invalid_service", "Serviço inválido.")
			}
			return nil, err
		}
	}

	// --------------------------------------------------
	// 6. Merge parcial
	// --------------------------------------------------
	fields := map[string]any{}
	if in.ClientID != nil {
		fields["client_id"] = *in.ClientID
	}
	if in.StylistID != nil {
		fields["stylist_id"] = *in.StylistID
	}
	if in.ServiceID != nil {
		fields["service_id"] = *in.ServiceID
	}
	if in.ScheduledAt != nil {
		fields["scheduled_at"] = *in.ScheduledAt
	}
	if in.Status != nil {
		fields["status"] = *in.Status
	}

	if len(fields) == 0 {
		return ap, nil
	}

	updated, err := uc.repo.UpdateAppointmentFields(ctx, ap.ID, fields)
	if err != nil {
		if httperr.IsUniqueViolation(err) {
			return nil, httperr.ErrConflict(
				"duplicate_booking",
				"Já existe um agendamento para o mesmo cliente, serviço e horário.",
			)
		}
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:  &actingUserID,
		Action:   "appointment_updated",
		Entity:   "appointment",
		EntityID: &updated.ID,
	})

	return updated, nil
}
