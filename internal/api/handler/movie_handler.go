package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"strings"

	"github.com/cuongbtq/movie-maker/internal/api/dto"
	"github.com/cuongbtq/movie-maker/internal/domain"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Generate handles POST /generate
// Stages the uploaded files and composes the narrated movie before responding
func (h *MovieHandler) Generate(c *gin.Context) {
	h.logger.Info("Generate called",
		slog.String("method", c.Request.Method),
		slog.String("path", c.Request.URL.Path),
	)

	form, err := c.MultipartForm()
	if err != nil {
		h.logger.Error("Invalid multipart form", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid multipart form"})
		return
	}

	script := c.PostForm("script")
	if strings.TrimSpace(script) == "" {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "script is required"})
		return
	}

	jobID := uuid.New().String()
	logger := h.logger.With(slog.String("job_id", jobID))

	ctx := c.Request.Context()
	if h.jobTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.jobTimeout)
		defer cancel()
	}

	assets, err := h.stager.Stage(ctx, form.File["files"])
	if err != nil {
		logger.Error("Failed to stage uploads", slog.String("error", err.Error()))
		if errors.Is(err, domain.ErrInvalidFilename) {
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to stage uploads"})
		return
	}

	job := &domain.Job{
		JobID:  jobID,
		Script: script,
		Assets: assets,
	}

	if err := h.composer.Compose(ctx, job, h.layout.VideoPath(jobID)); err != nil {
		logger.Error("Failed to generate movie", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to generate movie"})
		return
	}

	logger.Info("Movie generated", slog.Int("assets", len(assets)))

	c.JSON(http.StatusOK, dto.GenerateResponse{
		JobID:  jobID,
		Status: domain.JobStatusDone,
	})
}

// Preview handles GET /preview/:job_id
// Extracts a still frame from the finished movie and returns it as JPEG
func (h *MovieHandler) Preview(c *gin.Context) {
	jobID, ok := h.jobIDParam(c)
	if !ok {
		return
	}

	path, err := h.previewer.ExtractPreview(c.Request.Context(), jobID)
	if err != nil {
		if errors.Is(err, domain.ErrJobNotFound) {
			c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: dto.MsgPreviewNotAvailable})
			return
		}
		h.logger.Error("Failed to extract preview",
			slog.String("job_id", jobID),
			slog.String("error", err.Error()),
		)
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to extract preview"})
		return
	}

	c.Header("Content-Type", "image/jpeg")
	c.File(path)
}

// Download handles GET /download/:job_id
// Streams the finished movie as an attachment named {job_id}.mp4
func (h *MovieHandler) Download(c *gin.Context) {
	jobID, ok := h.jobIDParam(c)
	if !ok {
		return
	}

	path, err := h.library.Locate(jobID)
	if err != nil {
		if errors.Is(err, domain.ErrJobNotFound) {
			c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: dto.MsgMovieNotFound})
			return
		}
		h.logger.Error("Failed to locate movie",
			slog.String("job_id", jobID),
			slog.String("error", err.Error()),
		)
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to locate movie"})
		return
	}

	c.Header("Content-Type", "video/mp4")
	c.FileAttachment(path, jobID+".mp4")
}

// DeleteJob handles DELETE /jobs/:job_id
// Removes the movie, preview and intermediates of a job
func (h *MovieHandler) DeleteJob(c *gin.Context) {
	jobID, ok := h.jobIDParam(c)
	if !ok {
		return
	}

	if err := h.library.Remove(jobID); err != nil {
		if errors.Is(err, domain.ErrJobNotFound) {
			c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: dto.MsgMovieNotFound})
			return
		}
		h.logger.Error("Failed to delete job",
			slog.String("job_id", jobID),
			slog.String("error", err.Error()),
		)
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to delete job"})
		return
	}

	h.logger.Info("Job deleted", slog.String("job_id", jobID))
	c.Status(http.StatusNoContent)
}

// Root handles GET /
func (h *MovieHandler) Root(c *gin.Context) {
	page, err := os.ReadFile(h.indexPath)
	if err != nil {
		h.logger.Error("Failed to read index page",
			slog.String("path", h.indexPath),
			slog.String("error", err.Error()),
		)
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Index page unavailable"})
		return
	}

	c.Data(http.StatusOK, "text/html; charset=utf-8", page)
}

// jobIDParam returns the canonical form of the job_id path parameter
func (h *MovieHandler) jobIDParam(c *gin.Context) (string, bool) {
	raw := c.Param("job_id")
	id, err := uuid.Parse(raw)
	if err != nil {
		h.logger.Warn("Invalid job_id format",
			slog.String("job_id", raw),
			slog.String("error", err.Error()),
		)
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "job_id must be a valid UUID"})
		return "", false
	}
	return id.String(), true
}
