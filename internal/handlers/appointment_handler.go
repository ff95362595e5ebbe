package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/davifernandodias/dsin-assessment-tech/internal/httperr"
	ucAppointment "github.com/davifernandodias/dsin-assessment-tech/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	createUC *ucAppointment.CreateAppointment
	updateUC *ucAppointment.UpdateAppointment
	deleteUC *ucAppointment.DeleteAppointment
	listUC   *ucAppointment.ListAppointments
}

func NewAppointmentHandler(
	createUC *ucAppointment.CreateAppointment,
	updateUC *ucAppointment.UpdateAppointment,
	deleteUC *ucAppointment.DeleteAppointment,
	listUC *ucAppointment.ListAppointments,
) *AppointmentHandler {
	return &AppointmentHandler{
		createUC: createUC,
		updateUC: updateUC,
		deleteUC: deleteUC,
		listUC:   listUC,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateAppointmentRequest struct {
	ClientID    string    `json:"client_id" binding:"required,uuid"`
	StylistID   *string   `json:"stylist_id" binding:"omitempty,uuid"`
	ServiceID   string    `json:"service_id" binding:"required,uuid"`
	ScheduledAt time.Time `json:"scheduled_at" binding:"required"`
	Status      string    `json:"status" binding:"omitempty,oneof=pending confirmed finished canceled"`
}

type UpdateAppointmentRequest struct {
	ClientID    *string    `json:"client_id" binding:"omitempty,uuid"`
	StylistID   *string    `json:"stylist_id" binding:"omitempty,uuid"`
	ServiceID   *string    `json:"service_id" binding:"omitempty,uuid"`
	ScheduledAt *time.Time `json:"scheduled_at"`
	Status      *string    `json:"status" binding:"omitempty,oneof=pending confirmed finished canceled"`
}

// ======================================================
// CREATE
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	userID, _ := actingIdentity(c)

	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	ap, err := h.createUC.Execute(c.Request.Context(), userID, ucAppointment.CreateAppointmentInput{
		ClientID:    req.ClientID,
		StylistID:   req.StylistID,
		ServiceID:   req.ServiceID,
		ScheduledAt: req.ScheduledAt,
		Status:      req.Status,
	})
	if err != nil {
		httperr.WriteError(c, err)
		return
	}

	c.JSON(201, ap)
}

// ======================================================
// LIST
// ======================================================

func (h *AppointmentHandler) List(c *gin.Context) {
	userID, _ := actingIdentity(c)

	offset, count, ok := parseListRange(c)
	if !ok {
		return
	}

	aps, err := h.listUC.Execute(c.Request.Context(), userID, offset, count)
	if err != nil {
		httperr.WriteError(c, err)
		return
	}

	c.JSON(200, aps)
}

// ======================================================
// UPDATE
// ======================================================

func (h *AppointmentHandler) Update(c *gin.Context) {
	id := c.Param("id")
	userID, _ := actingIdentity(c)

	var req UpdateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	ap, err := h.updateUC.Execute(c.Request.Context(), id, userID, ucAppointment.UpdateAppointmentInput{
		ClientID:    req.ClientID,
		StylistID:   req.StylistID,
		ServiceID:   req.ServiceID,
		ScheduledAt: req.ScheduledAt,
		Status:      req.Status,
	})
	if err != nil {
		httperr.WriteError(c, err)
		return
	}

	c.JSON(200, ap)
}

// ======================================================
// DELETE
// ======================================================

func (h *AppointmentHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	userID, _ := actingIdentity(c)

	if err := h.deleteUC.Execute(c.Request.Context(), id, userID); err != nil {
		httperr.WriteError(c, err)
		return
	}

	c.JSON(200, gin.H{"message": "Agendamento deletado com sucesso"})
}
