package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/hyb-mobile-app/hyb-api/pkg/response"
)

type healthResponse struct {
	Success   bool      `json:"success"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

func Health(c *gin.Context) {
	c.JSON(http.StatusOK, healthResponse{Success: true, Message: "Server is running", Timestamp: time.Now().UTC()})
}

// NotFound is the fallback for unmatched routes.
func NotFound(c *gin.Context) {
	response.Error(c, http.StatusNotFound, "Route not found", "")
}
