package response

import (
	"log"
	"net/http"

	"kavling.dev/assetmanager/pkg/apperror"

	"github.com/gin-gonic/gin"
)

// Error writes a standardized error response.
func Error(c *gin.Context, err error) {
	code := apperror.MapErrorToStatus(err)

	// Log internal errors
	if code == http.StatusInternalServerError {
		log.Printf("[Internal Error]: %v", err)
	}

	c.JSON(code, gin.H{"error": err.Error()})
}
