package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/davifernandodias/dsin-assessment-tech/internal/domain/identity"
	"github.com/davifernandodias/dsin-assessment-tech/internal/httperr"
	"github.com/davifernandodias/dsin-assessment-tech/internal/httpresp"
	"github.com/davifernandodias/dsin-assessment-tech/internal/models"
)

type AuditLogsHandler struct {
	db *gorm.DB
}

func NewAuditLogsHandler(db *gorm.DB) *AuditLogsHandler {
	return &AuditLogsHandler{db: db}
}

func (h *AuditLogsHandler) List(c *gin.Context) {
	_, role := actingIdentity(c)
	if role != identity.RoleAdmin {
		httperr.Forbidden(c, "admin_only", "Apenas administradores podem ver os logs de auditoria.")
		return
	}

	offset, count, ok := parseListRange(c)
	if !ok {
		return
	}

	var logs []models.AuditLog
	if err := h.db.
		Order("created_at DESC").
		Offset(offset).
		Limit(count).
		Find(&logs).Error; err != nil {
		httperr.Internal(c, "failed_to_list_audit_logs", "Falha ao buscar logs de auditoria.")
		return
	}

	httpresp.List(c, logs)
}
