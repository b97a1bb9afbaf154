package controllers

import (
	"net/http"

	"github.com/akshatsri47/credit-card-approval/utils"
	"github.com/gin-gonic/gin"
)

// AdminController serves the operational endpoints on the admin port
type AdminController struct{}

// NewAdminController creates a new AdminController instance
func NewAdminController() *AdminController {
	return &AdminController{}
}

// Router builds the gin engine with the admin routes
func (c *AdminController) Router() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/health", c.Health)
	router.GET("/metrics", c.Metrics)

	return router
}

// Health reports process liveness
func (c *AdminController) Health(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{
		"status": "ok",
	})
}

// Metrics returns a snapshot of the in-process metrics
func (c *AdminController) Metrics(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, utils.GetMetrics().GetMetricsSnapshot())
}
