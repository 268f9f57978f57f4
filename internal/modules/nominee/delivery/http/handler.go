package http

import (
	"net/http"

	"kavling.dev/assetmanager/internal/modules/nominee/dto"
	nomineeService "kavling.dev/assetmanager/internal/modules/nominee/service"
	"kavling.dev/assetmanager/pkg/response"
	pkgValidator "kavling.dev/assetmanager/pkg/validator"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type NomineeHandler struct {
	service nomineeService.NomineeService
}

func NewNomineeHandler(service nomineeService.NomineeService) *NomineeHandler {
	return &NomineeHandler{service: service}
}

func (h *NomineeHandler) CreateNominee(c *gin.Context) {
	var req dto.NomineeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": pkgValidator.FormatValidationError(err)})
		return
	}

	nominee, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": nominee})
}

func (h *NomineeHandler) GetAllNominees(c *gin.Context) {
	nominees, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": nominees})
}

func (h *NomineeHandler) GetNominee(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid nominee id"})
		return
	}

	nominee, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": nominee})
}

func (h *NomineeHandler) UpdateNominee(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid nominee id"})
		return
	}

	var req dto.NomineeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": pkgValidator.FormatValidationError(err)})
		return
	}

	nominee, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": nominee})
}

func (h *NomineeHandler) DeleteNominee(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid nominee id"})
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "nominee deleted successfully"})
}
