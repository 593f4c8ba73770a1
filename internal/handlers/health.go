package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Catacombb/f9-sub000/internal/models"
)

func HealthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, models.HealthResponse{Status: "ok"})
}
