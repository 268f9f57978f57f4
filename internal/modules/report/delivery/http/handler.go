package http

import (
	"net/http"

	"kavling.dev/assetmanager/internal/modules/report/dto"
	reportService "kavling.dev/assetmanager/internal/modules/report/service"
	"kavling.dev/assetmanager/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ReportHandler struct {
	service reportService.ReportService
}

func NewReportHandler(service reportService.ReportService) *ReportHandler {
	return &ReportHandler{service: service}
}

func (h *ReportHandler) GenerateReport(c *gin.Context) {
	docType := dto.DocumentType(c.Query("type"))
	if docType == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "report type is required"})
		return
	}

	var sel reportService.Selection
	var err error
	if sel.PropertyID, err = parseOptionalID(c.Query("property_id")); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid property id"})
		return
	}
	if sel.InsuranceID, err = parseOptionalID(c.Query("insurance_id")); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid insurance id"})
		return
	}
	if sel.NomineeID, err = parseOptionalID(c.Query("nominee_id")); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid nominee id"})
		return
	}

	document, err := h.service.Project(c.Request.Context(), docType, sel)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": document})
}

func parseOptionalID(raw string) (*uuid.UUID, error) {
	if raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, err
	}
	return &id, nil
}
