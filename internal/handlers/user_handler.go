package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/davifernandodias/dsin-assessment-tech/internal/domain/identity"
	"github.com/davifernandodias/dsin-assessment-tech/internal/httperr"
	"github.com/davifernandodias/dsin-assessment-tech/internal/middleware"
	"github.com/davifernandodias/dsin-assessment-tech/internal/models"
)

type UserHandler struct {
	db *gorm.DB
}

func NewUserHandler(db *gorm.DB) *UserHandler {
	return &UserHandler{db: db}
}

// --------- Requests ---------

type CreateUserRequest struct {
	ID       string `json:"id" binding:"omitempty,uuid"`
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Phone    string `json:"phone"`
	Role     string `json:"role" binding:"omitempty,oneof=Admin Client Stylist"`
}

type UpdateUserRequest struct {
	Name  *string `json:"name"`
	Email *string `json:"email" binding:"omitempty,email"`
	Phone *string `json:"phone"`
	Role  *string `json:"role" binding:"omitempty,oneof=Admin Client Stylist"`
}

// --------- Helpers ---------

func actingIdentity(c *gin.Context) (string, identity.Role) {
	return c.MustGet(middleware.ContextUserID).(string),
		c.MustGet(middleware.ContextUserRole).(identity.Role)
}

func writeUserUniqueViolation(c *gin.Context, err error) {
	constraint := httperr.UniqueConstraint(err)
	switch {
	case strings.Contains(constraint, "pkey"):
		httperr.Conflict(c, "id_in_use", "ID já está em uso.")
	case strings.Contains(constraint, "email"):
		httperr.Conflict(c, "email_in_use", "Email já está em uso.")
	case strings.Contains(constraint, "phone"):
		httperr.Conflict(c, "phone_in_use", "Número de telefone já está em uso.")
	default:
		httperr.Internal(c, "failed_to_save_user", "Erro ao salvar usuário.")
	}
}

// --------- Handlers ---------

func (h *UserHandler) Create(c *gin.Context) {
	_, role := actingIdentity(c)
	if role != identity.RoleAdmin {
		httperr.Forbidden(c, "admin_only", "Apenas administradores podem criar usuários.")
		return
	}

	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		httperr.Internal(c, "failed_to_hash_password", "Erro ao criar usuário.")
		return
	}

	id := req.ID
	if id == "" {
		id = uuid.NewString()
	}

	newRole := req.Role
	if newRole == "" {
		newRole = string(identity.RoleClient)
	}

	var phone *string
	if req.Phone != "" {
		phone = &req.Phone
	}

	user := models.User{
		ID:           id,
		Name:         req.Name,
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash: string(hashed),
		Phone:        phone,
		Role:         newRole,
	}

	if err := h.db.Create(&user).Error; err != nil {
		writeUserUniqueViolation(c, err)
		return
	}

	c.JSON(201, user)
}

func (h *UserHandler) List(c *gin.Context) {
	userID, _ := actingIdentity(c)

	offset, count, ok := parseListRange(c)
	if !ok {
		return
	}

	// Papel lido do banco, não do token.
	var actor models.User
	if err := h.db.First(&actor, "id = ?", userID).Error; err != nil {
		httperr.NotFound(c, "acting_user_not_found", "Usuário atual não encontrado.")
		return
	}

	if actor.Role != string(identity.RoleAdmin) {
		c.JSON(200, []models.User{actor})
		return
	}

	var users []models.User
	if err := h.db.
		Order("created_at ASC").
		Offset(offset).
		Limit(count).
		Find(&users).Error; err != nil {
		httperr.Internal(c, "failed_to_list_users", "Falha ao buscar usuários.")
		return
	}

	c.JSON(200, users)
}

func (h *UserHandler) Get(c *gin.Context) {
	id := c.Param("id")

	var user models.User
	if err := h.db.First(&user, "id = ?", id).Error; err != nil {
		httperr.NotFound(c, "user_not_found", "Usuário não encontrado.")
		return
	}

	c.JSON(200, user)
}

func (h *UserHandler) Update(c *gin.Context) {
	id := c.Param("id")
	userID, role := actingIdentity(c)

	if role != identity.RoleAdmin && userID != id {
		httperr.Forbidden(c, "forbidden", "Você não tem permissão para atualizar este usuário.")
		return
	}

	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	if req.Role != nil && role != identity.RoleAdmin {
		httperr.Forbidden(c, "admin_only", "Apenas administradores podem alterar papéis.")
		return
	}

	var user models.User
	if err := h.db.First(&user, "id = ?", id).Error; err != nil {
		httperr.NotFound(c, "user_not_found", "Usuário não encontrado.")
		return
	}

	fields := map[string]any{}
	if req.Name != nil {
		fields["name"] = *req.Name
	}
	if req.Email != nil {
		fields["email"] = strings.ToLower(strings.TrimSpace(*req.Email))
	}
	if req.Phone != nil {
		if *req.Phone == "" {
			fields["phone"] = nil
		} else {
			fields["phone"] = *req.Phone
		}
	}
	if req.Role != nil {
		fields["role"] = *req.Role
	}

	if len(fields) > 0 {
		if err := h.db.Model(&user).Updates(fields).Error; err != nil {
			if httperr.IsUniqueViolation(err) {
				writeUserUniqueViolation(c, err)
				return
			}
			httperr.Internal(c, "failed_to_update_user", "Falha ao atualizar usuário.")
			return
		}
	}

	c.JSON(200, user)
}

func (h *UserHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	userID, role := actingIdentity(c)

	if role != identity.RoleAdmin && userID != id {
		httperr.Forbidden(c, "forbidden", "Você não tem permissão para deletar este usuário.")
		return
	}

	var user models.User
	if err := h.db.First(&user, "id = ?", id).Error; err != nil {
		httperr.NotFound(c, "user_not_found", "Usuário não encontrado.")
		return
	}

	// Agendamentos do cliente caem em cascata via FK.
	if err := h.db.Delete(&user).Error; err != nil {
		httperr.Internal(c, "failed_to_delete_user", "Falha ao deletar usuário.")
		return
	}

	c.JSON(200, gin.H{"message": "Usuário deletado com sucesso"})
}
