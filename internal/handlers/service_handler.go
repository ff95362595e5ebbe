package handlers

import (
	"fmt"
	"math"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/davifernandodias/dsin-assessment-tech/internal/cache"
	"github.com/davifernandodias/dsin-assessment-tech/internal/domain/identity"
	"github.com/davifernandodias/dsin-assessment-tech/internal/httperr"
	"github.com/davifernandodias/dsin-assessment-tech/internal/media"
	"github.com/davifernandodias/dsin-assessment-tech/internal/models"
	ucService "github.com/davifernandodias/dsin-assessment-tech/internal/usecase/service"
)

const maxImageUploadBytes = 5 << 20

type ServiceHandler struct {
	db      *gorm.DB
	catalog *cache.Catalog
	store   *media.S3Store

	createUC *ucService.CreateService
	updateUC *ucService.UpdateService
	deleteUC *ucService.DeleteService
}

func NewServiceHandler(
	db *gorm.DB,
	catalog *cache.Catalog,
	store *media.S3Store,
	createUC *ucService.CreateService,
	updateUC *ucService.UpdateService,
	deleteUC *ucService.DeleteService,
) *ServiceHandler {
	return &ServiceHandler{
		db:       db,
		catalog:  catalog,
		store:    store,
		createUC: createUC,
		updateUC: updateUC,
		deleteUC: deleteUC,
	}
}

// --------- Requests ---------

type CreateServiceRequest struct {
	Type            string  `json:"type" binding:"required"`
	Description     string  `json:"description" binding:"max=255"`
	Price           float64 `json:"price" binding:"required,gte=0"`
	DurationMinutes int     `json:"duration_minutes" binding:"required,gt=0"`
}

type UpdateServiceRequest struct {
	Type            *string  `json:"type"`
	Description     *string  `json:"description" binding:"omitempty,max=255"`
	Price           *float64 `json:"price" binding:"omitempty,gte=0"`
	DurationMinutes *int     `json:"duration_minutes" binding:"omitempty,gt=0"`
}

// hasTwoDecimalPlaces rejects prices like 19.999.
func hasTwoDecimalPlaces(price float64) bool {
	return math.Abs(price*100-math.Round(price*100)) < 1e-9
}

// --------- Handlers ---------

func (h *ServiceHandler) Create(c *gin.Context) {
	userID, _ := actingIdentity(c)

	var req CreateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	if !hasTwoDecimalPlaces(req.Price) {
		httperr.BadRequest(c, "invalid_price", "Preço deve ter no máximo duas casas decimais.")
		return
	}

	svc, err := h.createUC.Execute(c.Request.Context(), userID, ucService.CreateServiceInput{
		TypeName:        req.Type,
		Description:     req.Description,
		Price:           req.Price,
		DurationMinutes: req.DurationMinutes,
	})
	if err != nil {
		httperr.WriteError(c, err)
		return
	}

	h.catalog.Invalidate(c.Request.Context())

	c.JSON(201, svc)
}

func (h *ServiceHandler) List(c *gin.Context) {
	offset, count, ok := parseListRange(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	key := fmt.Sprintf("services:%d:%d", offset, count)

	var services []models.Service
	if h.catalog.Get(ctx, key, &services) {
		c.JSON(200, services)
		return
	}

	if err := h.db.WithContext(ctx).
		Preload("Type").
		Order("created_at ASC").
		Offset(offset).
		Limit(count).
		Find(&services).Error; err != nil {
		httperr.Internal(c, "failed_to_list_services", "Falha ao buscar serviços.")
		return
	}

	h.catalog.Set(ctx, key, services)

	c.JSON(200, services)
}

func (h *ServiceHandler) Get(c *gin.Context) {
	id := c.Param("id")

	var svc models.Service
	if err := h.db.Preload("Type").First(&svc, "id = ?", id).Error; err != nil {
		httperr.NotFound(c, "service_not_found", "Serviço não encontrado.")
		return
	}

	c.JSON(200, svc)
}

func (h *ServiceHandler) Update(c *gin.Context) {
	id := c.Param("id")
	userID, _ := actingIdentity(c)

	var req UpdateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	if req.Price != nil && !hasTwoDecimalPlaces(*req.Price) {
		httperr.BadRequest(c, "invalid_price", "Preço deve ter no máximo duas casas decimais.")
		return
	}

	svc, err := h.updateUC.Execute(c.Request.Context(), id, userID, ucService.UpdateServiceInput{
		TypeName:        req.Type,
		Description:     req.Description,
		Price:           req.Price,
		DurationMinutes: req.DurationMinutes,
	})
	if err != nil {
		httperr.WriteError(c, err)
		return
	}

	h.catalog.Invalidate(c.Request.Context())

	c.JSON(200, svc)
}

func (h *ServiceHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	userID, _ := actingIdentity(c)

	if err := h.deleteUC.Execute(c.Request.Context(), id, userID); err != nil {
		httperr.WriteError(c, err)
		return
	}

	h.catalog.Invalidate(c.Request.Context())

	c.JSON(200, gin.H{"message": "Serviço deletado com sucesso"})
}

// --------- Service types ---------

func (h *ServiceHandler) ListTypes(c *gin.Context) {
	offset, count, ok := parseListRange(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	key := fmt.Sprintf("service-types:%d:%d", offset, count)

	var types []models.ServiceType
	if h.catalog.Get(ctx, key, &types) {
		c.JSON(200, types)
		return
	}

	if err := h.db.WithContext(ctx).
		Order("created_at ASC").
		Offset(offset).
		Limit(count).
		Find(&types).Error; err != nil {
		httperr.Internal(c, "failed_to_list_service_types", "Falha ao buscar tipos de serviço.")
		return
	}

	h.catalog.Set(ctx, key, types)

	c.JSON(200, types)
}

func (h *ServiceHandler) GetType(c *gin.Context) {
	id := c.Param("id")

	var svcType models.ServiceType
	if err := h.db.First(&svcType, "id = ?", id).Error; err != nil {
		httperr.NotFound(c, "service_type_not_found", "Tipo de serviço não encontrado.")
		return
	}

	c.JSON(200, svcType)
}

// --------- Photo upload ---------

func (h *ServiceHandler) UploadImage(c *gin.Context) {
	id := c.Param("id")
	userID, role := actingIdentity(c)

	if h.store == nil {
		httperr.Write(c, http.StatusServiceUnavailable, "media_disabled", "Armazenamento de imagens não configurado.")
		return
	}

	var svc models.Service
	if err := h.db.First(&svc, "id = ?", id).Error; err != nil {
		httperr.NotFound(c, "service_not_found", "Serviço não encontrado.")
		return
	}

	if role != identity.RoleAdmin && svc.CreatedBy != userID {
		httperr.Forbidden(c, "not_service_owner", "Você não tem permissão para alterar este serviço.")
		return
	}

	file, _, err := c.Request.FormFile("image")
	if err != nil {
		httperr.BadRequest(c, "missing_image", "Arquivo 'image' é obrigatório.")
		return
	}
	defer file.Close()

	encoded, err := media.EncodeWebP(http.MaxBytesReader(c.Writer, file, maxImageUploadBytes))
	if err != nil {
		httperr.BadRequest(c, "invalid_image", "Imagem inválida (apenas JPEG ou PNG).")
		return
	}

	url, err := h.store.Put(
		c.Request.Context(),
		fmt.Sprintf("services/%s.webp", svc.ID),
		encoded,
		"image/webp",
	)
	if err != nil {
		httperr.Internal(c, "failed_to_upload_image", "Erro ao enviar imagem.")
		return
	}

	if err := h.db.Model(&svc).Update("image_url", url).Error; err != nil {
		httperr.Internal(c, "failed_to_update_service", "Falha ao atualizar serviço.")
		return
	}

	h.catalog.Invalidate(c.Request.Context())

	c.JSON(200, gin.H{"image_url": url})
}
