// utils/response.go
package utils

import (
	"github.com/gin-gonic/gin"
)

// All endpoints speak one envelope. Monetary decimals marshal as quoted
// strings (shopspring default), so no per-endpoint number conversion exists.

func RespondWithError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"success": false, "error": message})
}

func RespondWithData(c *gin.Context, status int, data interface{}) {
	c.JSON(status, gin.H{"success": true, "data": data})
}
