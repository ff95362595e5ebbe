package appointment

import (
	"context"
	"errors"

	domain "github.com/davifernandodias/dsin-assessment-tech/internal/domain/appointment"
	"github.com/davifernandodias/dsin-assessment-tech/internal/domain/identity"
	"github.com/davifernandodias/dsin-assessment-tech/internal/httperr"
	"github.com/davifernandodias/dsin-assessment-tech/internal/models"
)

type ListAppointments struct {
	repo domain.Repository
}

func NewListAppointments(repo domain.Repository) *ListAppointments {
	return &ListAppointments{repo: repo}
}

// Admins see every appointment; everyone else sees only the
// appointments where they are the client.
func (uc *ListAppointments) Execute(
	ctx context.Context,
	actingUserID string,
	offset int,
	limit int,
) ([]models.Appointment, error) {

	actor, err := uc.repo.GetUserByID(ctx, actingUserID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, httperr.ErrNotFound("acting_user_not_found", "Usuário atual não encontrado.")
		}
		return nil, err
	}

	role, err := identity.Parse(actor.Role)
	if err != nil {
		return nil, httperr.ErrForbidden("invalid_role", "Papel de usuário desconhecido.")
	}

	if role == identity.RoleAdmin {
		return uc.repo.ListAppointments(ctx, offset, limit)
	}

	return uc.repo.ListAppointmentsByClient(ctx, actor.ID, offset, limit)
}
