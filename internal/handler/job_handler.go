package handler

import (
	"errors"
	"net/http"
	"strconv"

	"contech_bot/internal/model"
	"contech_bot/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// JobHandler handles job posting administration
type JobHandler struct {
	service service.JobService
	logger  *zap.Logger
}

// NewJobHandler creates a new JobHandler
func NewJobHandler(s service.JobService, logger *zap.Logger) *JobHandler {
	return &JobHandler{service: s, logger: logger}
}

func (h *JobHandler) CreateJob(c *gin.Context) {
	var req model.CreateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	job, err := h.service.CreateJob(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidJob):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrOwnerNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrOwnerNotContractor):
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		default:
			h.logger.Error("error creating job posting", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create job posting"})
		}
		return
	}
	c.JSON(http.StatusCreated, job)
}

func (h *JobHandler) ListJobs(c *gin.Context) {
	jobs, err := h.service.ListJobs(c.Request.Context(), c.Query("status"))
	if err != nil {
		if errors.Is(err, service.ErrInvalidStatus) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status, use OPEN, CLOSED or FILLED"})
			return
		}
		h.logger.Error("error listing job postings", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve job postings"})
		return
	}
	c.JSON(http.StatusOK, jobs)
}

func (h *JobHandler) UpdateJobStatus(c *gin.Context) {
	jobID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid job ID"})
		return
	}

	var req model.UpdateJobStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	job, err := h.service.UpdateJobStatus(c.Request.Context(), jobID, req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidStatus):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status, use OPEN, CLOSED or FILLED"})
		case errors.Is(err, service.ErrJobNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		default:
			h.logger.Error("error updating job posting status", zap.Int64("job_id", jobID), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update job posting"})
		}
		return
	}
	c.JSON(http.StatusOK, job)
}

func (h *JobHandler) RegisterJobRoutes(rg *gin.RouterGroup) {
	jobs := rg.Group("/jobs")
	{
		jobs.POST("", h.CreateJob)
		jobs.GET("", h.ListJobs)
		jobs.PATCH("/:id/status", h.UpdateJobStatus)
	}
}
