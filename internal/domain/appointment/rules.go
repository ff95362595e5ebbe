package appointment

import (
	"time"

	"github.com/davifernandodias/dsin-assessment-tech/internal/domain/identity"
	"github.com/davifernandodias/dsin-assessment-tech/internal/httperr"
	"github.com/davifernandodias/dsin-assessment-tech/internal/models"
)

// ModificationWindow: non-admins may only touch an appointment while it
// is still more than 48h away.
const ModificationWindow = 48 * time.Hour

// MoreThanTwoDaysAway is a strict greater-than. An appointment at
// exactly now+48h is already too close.
func MoreThanTwoDaysAway(scheduledAt, now time.Time) bool {
	return scheduledAt.Sub(now) > ModificationWindow
}

// AuthorizeChange decides whether actor may update or delete ap.
// Admins bypass both ownership and the modification window.
func AuthorizeChange(actor *models.User, ap *models.Appointment, now time.Time) error {
	role, err := identity.Parse(actor.Role)
	if err != nil {
		return httperr.ErrForbidden("invalid_role", "Papel de usuário desconhecido.")
	}

	switch role {
	case identity.RoleAdmin:
		return nil

	case identity.RoleClient, identity.RoleStylist:
		if ap.ClientID != actor.ID {
			return httperr.ErrForbidden(
				"not_appointment_owner",
				"Você não tem permissão para alterar este agendamento.",
			)
		}
		if !MoreThanTwoDaysAway(ap.ScheduledAt, now) {
			return httperr.ErrForbidden(
				"too_close_to_modify",
				"Agendamento só pode ser alterado com mais de 2 dias de antecedência.",
			)
		}
		return nil
	}

	return httperr.ErrForbidden("invalid_role", "Papel de usuário desconhecido.")
}
