package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// ParseUserIDParam extracts the :user_id path parameter. Responds with 400
// and returns "" when the parameter is blank, so callers can bail out early.
func ParseUserIDParam(c *gin.Context) string {
	userID := strings.TrimSpace(c.Param("user_id"))
	if userID == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid user_id",
			Details: "user_id cannot be empty",
		})
		return ""
	}
	return userID
}
