package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/orrn/printbridge/internal/core"
	"github.com/orrn/printbridge/internal/db"
)

type CreateJobRequest struct {
	Data []core.LabelItem `json:"data" binding:"required"`
}

type CreateJobResponse struct {
	JobID   string `json:"job_id"`
	ViewURL string `json:"view_url"`
}

type JobResponse struct {
	ID        string           `json:"id"`
	Data      []core.LabelItem `json:"data"`
	CreatedAt time.Time        `json:"created_at"`
	ViewURL   string           `json:"view_url"`
}

type JobHandler struct {
	jobs    *core.JobService
	baseURL string
}

// NewJobHandler builds the handler for the submission API. baseURL may
// be empty, in which case view links are derived from the request host.
func NewJobHandler(jobs *core.JobService, baseURL string) *JobHandler {
	return &JobHandler{
		jobs:    jobs,
		baseURL: baseURL,
	}
}

func (h *JobHandler) CreateJob(c *gin.Context) {
	var req CreateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	job, err := h.jobs.CreateJob(c.Request.Context(), req.Data)
	if err != nil {
		if errors.Is(err, core.ErrNoItems) || errors.Is(err, core.ErrEmptyMarkup) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create print job"})
		return
	}

	c.JSON(http.StatusOK, CreateJobResponse{
		JobID:   job.ID,
		ViewURL: core.ViewURL(h.resolveBase(c), job.ID),
	})
}

func (h *JobHandler) GetJob(c *gin.Context) {
	id := c.Param("id")

	job, err := h.jobs.GetJob(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "print job not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get print job"})
		return
	}

	var submission core.Submission
	json.Unmarshal([]byte(job.DataJSON), &submission)

	c.JSON(http.StatusOK, JobResponse{
		ID:        job.ID,
		Data:      submission.Data,
		CreatedAt: job.CreatedAt,
		ViewURL:   core.ViewURL(h.resolveBase(c), job.ID),
	})
}

// resolveBase prefers the configured external address; view links must
// survive proxies and container port mappings the service cannot see.
func (h *JobHandler) resolveBase(c *gin.Context) string {
	if h.baseURL != "" {
		return h.baseURL
	}
	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	return scheme + "://" + c.Request.Host
}

func (h *JobHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/print-jobs", h.CreateJob)
	r.GET("/print-jobs/:id", h.GetJob)
}
