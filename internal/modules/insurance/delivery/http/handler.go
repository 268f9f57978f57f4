package http

import (
	"net/http"

	"kavling.dev/assetmanager/internal/modules/insurance/dto"
	insuranceService "kavling.dev/assetmanager/internal/modules/insurance/service"
	"kavling.dev/assetmanager/pkg/response"
	pkgValidator "kavling.dev/assetmanager/pkg/validator"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type InsuranceHandler struct {
	service insuranceService.InsuranceService
}

func NewInsuranceHandler(service insuranceService.InsuranceService) *InsuranceHandler {
	return &InsuranceHandler{service: service}
}

func (h *InsuranceHandler) CreateInsurance(c *gin.Context) {
	var req dto.InsuranceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": pkgValidator.FormatValidationError(err)})
		return
	}

	insurance, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": insurance})
}

func (h *InsuranceHandler) GetAllInsurances(c *gin.Context) {
	insurances, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": insurances})
}

func (h *InsuranceHandler) GetInsurance(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid insurance id"})
		return
	}

	insurance, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": insurance})
}

func (h *InsuranceHandler) UpdateInsurance(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid insurance id"})
		return
	}

	var req dto.InsuranceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": pkgValidator.FormatValidationError(err)})
		return
	}

	insurance, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": insurance})
}

func (h *InsuranceHandler) DeleteInsurance(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid insurance id"})
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "insurance deleted successfully"})
}
