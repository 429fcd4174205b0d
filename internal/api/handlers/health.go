package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/orrn/printbridge/internal/core"
)

type HealthHandler struct {
	jobs *core.JobService
}

func NewHealthHandler(jobs *core.JobService) *HealthHandler {
	return &HealthHandler{jobs: jobs}
}

// Health reports liveness. The store count doubles as the reachability
// probe; job contents never affect the result.
func (h *HealthHandler) Health(c *gin.Context) {
	if _, err := h.jobs.CountJobs(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":  "unhealthy",
			"service": "printbridge",
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "printbridge",
	})
}
