package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/davifernandodias/dsin-assessment-tech/internal/httperr"
	"github.com/davifernandodias/dsin-assessment-tech/internal/httpresp"
	"github.com/davifernandodias/dsin-assessment-tech/internal/models"
)

type MeHandler struct {
	db *gorm.DB
}

func NewMeHandler(db *gorm.DB) *MeHandler {
	return &MeHandler{db: db}
}

func (h *MeHandler) GetMe(c *gin.Context) {
	userID, _ := actingIdentity(c)

	var user models.User
	if err := h.db.First(&user, "id = ?", userID).Error; err != nil {
		httperr.NotFound(c, "user_not_found", "Usuário não encontrado.")
		return
	}

	httpresp.OK(c, user)
}
