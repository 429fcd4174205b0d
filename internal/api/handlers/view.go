package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/orrn/printbridge/internal/core"
	"github.com/orrn/printbridge/internal/db"
)

// ViewData feeds the print page template. DataJSON is the stored
// submission envelope passed through verbatim for the page script.
type ViewData struct {
	Error          bool
	ErrorMessage   string
	JobID          string
	Items          []core.LabelItem
	CreatedAt      string
	DataJSON       string
	BridgeURL      string
	BridgeProtocol string
}

type IndexData struct {
	JobCount int64
}

type ViewHandler struct {
	jobs           *core.JobService
	bridgeURL      string
	bridgeProtocol string
}

func NewViewHandler(jobs *core.JobService, bridgeURL, bridgeProtocol string) *ViewHandler {
	return &ViewHandler{
		jobs:           jobs,
		bridgeURL:      bridgeURL,
		bridgeProtocol: bridgeProtocol,
	}
}

// View renders the print page for one job. The page is the delivery
// mechanism: it connects to the local bridge and relays each label in
// payload order.
func (h *ViewHandler) View(c *gin.Context) {
	id := c.Query("id")

	job, err := h.jobs.GetJob(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			c.HTML(http.StatusNotFound, "print", ViewData{
				Error:        true,
				ErrorMessage: fmt.Sprintf("Print job with ID '%s' not found.", id),
			})
			return
		}
		c.HTML(http.StatusInternalServerError, "print", ViewData{
			Error:        true,
			ErrorMessage: "Failed to load the print job.",
		})
		return
	}

	var submission core.Submission
	if err := json.Unmarshal([]byte(job.DataJSON), &submission); err != nil {
		c.HTML(http.StatusInternalServerError, "print", ViewData{
			Error:        true,
			ErrorMessage: "Stored job payload is unreadable.",
		})
		return
	}

	c.HTML(http.StatusOK, "print", ViewData{
		JobID:          job.ID,
		Items:          submission.Data,
		CreatedAt:      job.CreatedAt.Format("Jan 2, 2006 15:04 MST"),
		DataJSON:       job.DataJSON,
		BridgeURL:      h.bridgeURL,
		BridgeProtocol: h.bridgeProtocol,
	})
}

func (h *ViewHandler) Index(c *gin.Context) {
	count, err := h.jobs.CountJobs(c.Request.Context())
	if err != nil {
		count = 0
	}
	c.HTML(http.StatusOK, "index", IndexData{JobCount: count})
}

func (h *ViewHandler) RegisterRoutes(r *gin.Engine) {
	r.GET("/", h.Index)
	r.GET("/view", h.View)
}
