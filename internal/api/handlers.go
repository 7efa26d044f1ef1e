package api

import (
	"github.com/gofiber/fiber/v2"

	"github.com/adverant/nexus/pdf2md/internal/errors"
	"github.com/adverant/nexus/pdf2md/internal/jobs"
	"github.com/adverant/nexus/pdf2md/internal/metrics"
)

type uploadResponse struct {
	StatusCode int            `json:"status_code"`
	FileID     string         `json:"file_id"`
	Message    string         `json:"message"`
	FileInfo   fileInfoFields `json:"file_info"`
}

type fileInfoFields struct {
	OriginalFilename string `json:"original_filename"`
	FileSize         int64  `json:"file_size"`
	FileType         string `json:"file_type"`
}

func (s *Server) handleUpload(c *fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil || fh == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status_code": fiber.StatusBadRequest,
			"detail":      "no file provided",
		})
	}

	opened, err := fh.Open()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status_code": fiber.StatusInternalServerError,
			"detail":      "failed to read upload",
		})
	}
	defer opened.Close()

	meta, err := s.Store.Save(opened, fh.Filename)
	if err != nil {
		return mapError(c, err)
	}

	return c.JSON(uploadResponse{
		StatusCode: fiber.StatusOK,
		FileID:     meta.FileID,
		Message:    "upload succeeded",
		FileInfo: fileInfoFields{
			OriginalFilename: meta.OriginalFilename,
			FileSize:         meta.FileSize,
			FileType:         meta.FileType,
		},
	})
}

func (s *Server) handleInfo(c *fiber.Ctx) error {
	meta, err := s.Store.Info(c.Params("file_id"))
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(meta)
}

func (s *Server) handleList(c *fiber.Ctx) error {
	files := s.Store.List()
	return c.JSON(fiber.Map{
		"status_code": fiber.StatusOK,
		"total_files": len(files),
		"files":       files,
	})
}

func (s *Server) handleDelete(c *fiber.Ctx) error {
	fileID := c.Params("file_id")
	if err := s.Store.Delete(fileID); err != nil {
		return mapError(c, err)
	}
	return c.JSON(fiber.Map{
		"status_code": fiber.StatusOK,
		"file_id":     fileID,
	})
}

type convertRequest struct {
	FileID string `json:"file_id"`
}

func (s *Server) handleConvert(c *fiber.Ctx) error {
	var req convertRequest
	if err := c.BodyParser(&req); err != nil || req.FileID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status_code": fiber.StatusBadRequest,
			"detail":      "file_id is required",
		})
	}

	jobID, err := s.Manager.Submit(req.FileID)
	if err != nil {
		return mapError(c, err)
	}

	metrics.JobsSubmitted.Inc()

	return c.JSON(fiber.Map{
		"task_id": jobID,
		"message": "conversion started",
		"file_id": req.FileID,
	})
}

type convertResultResponse struct {
	TaskID    string               `json:"task_id"`
	FileID    string               `json:"file_id"`
	Status    jobs.State           `json:"status"`
	Progress  int                  `json:"progress"`
	Result    *convertResultFields `json:"result,omitempty"`
	Error     string               `json:"error,omitempty"`
	StartTime *string              `json:"start_time,omitempty"`
	EndTime   *string              `json:"end_time,omitempty"`
}

type convertResultFields struct {
	FileID          string  `json:"file_id"`
	MarkdownContent string  `json:"markdown_content"`
	OutputPath      string  `json:"output_path"`
	ProcessingTime  float64 `json:"processing_time"`
	PagesProcessed  int     `json:"pages_processed"`
	TablesFound     int     `json:"tables_found"`
}

func (s *Server) handleConvertResult(c *fiber.Ctx) error {
	job, err := s.Manager.Get(c.Params("task_id"))
	if err != nil {
		return mapError(c, err)
	}

	resp := convertResultResponse{
		TaskID:   job.ID,
		FileID:   job.FileID,
		Status:   job.State,
		Progress: job.Progress,
		Error:    job.Error,
	}
	if job.StartedAt != nil {
		t := job.StartedAt.Format(rfc3339Milli)
		resp.StartTime = &t
	}
	if job.FinishedAt != nil {
		t := job.FinishedAt.Format(rfc3339Milli)
		resp.EndTime = &t
	}
	if job.Result != nil {
		resp.Result = &convertResultFields{
			FileID:          job.Result.FileID,
			MarkdownContent: job.Result.Markdown,
			OutputPath:      job.Result.MarkdownPath,
			ProcessingTime:  job.Result.ProcessingSeconds,
			PagesProcessed:  job.Result.PagesProcessed,
			TablesFound:     job.Result.TablesFound,
		}
	}

	return c.JSON(resp)
}

const rfc3339Milli = "2006-01-02T15:04:05.000Z07:00"

// mapError applies the façade's conventional status-code mapping:
// NotFound -> 404, InvalidArgument -> 400, Unauthorized -> 401, else 500.
func mapError(c *fiber.Ctx, err error) error {
	code, ok := errors.Code(err)
	status := fiber.StatusInternalServerError
	if ok {
		switch code {
		case errors.NotFound:
			status = fiber.StatusNotFound
		case errors.InvalidArgument:
			status = fiber.StatusBadRequest
		case errors.Unauthorized:
			status = fiber.StatusUnauthorized
		}
	}
	return c.Status(status).JSON(fiber.Map{
		"status_code": status,
		"detail":      err.Error(),
	})
}
