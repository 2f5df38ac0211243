package handler

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"studyhub/internal/service"
	"studyhub/internal/storage"
)

const (
	uploadNotFound = "upload not found"
	downloadExpiry = 15 * time.Minute
)

// ListUploads lists uploads newest first with limit & offset.
// @Summary List uploads
// @Tags uploads
// @Produce json
// @Param subject query string false "Subject filter" Enums(Math, English, Science, History, Computer)
// @Param grade query string false "Grade filter" Enums(Grade9, Grade10, Grade11, Grade12)
// @Param search query string false "Matches title, description or filename"
// @Param limit query int false "Page size" default(100)
// @Param offset query int false "Rows to skip" default(0)
// @Success 200 {object} service.UploadListResult
// @Failure 400 {object} errorPayload
// @Failure 500 {object} errorPayload
// @Router /uploads [get]
func ListUploads(svc service.UploadService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit, offset, ok, err := pagination(c, 100)
		if !ok {
			return err
		}
		res, err := svc.List(c.UserContext(), service.UploadQuery{
			Subject: c.Query("subject"),
			Grade:   c.Query("grade"),
			Search:  c.Query("search"),
			Limit:   limit,
			Offset:  offset,
		})
		if err != nil {
			return writeServiceError(c, err, uploadNotFound)
		}
		return c.JSON(res)
	}
}

// UploadFile accepts multipart/form-data with the file under field "file".
// @Summary Upload a study file
// @Tags uploads
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "File to upload"
// @Param title formData string false "Title"
// @Param description formData string false "Description"
// @Param subject formData string false "Subject" Enums(Math, English, Science, History, Computer)
// @Param grade formData string false "Grade" Enums(Grade9, Grade10, Grade11, Grade12)
// @Success 201 {object} model.Upload
// @Failure 400 {object} errorPayload
// @Failure 413 {object} errorPayload
// @Failure 500 {object} errorPayload
// @Router /uploads [post]
func UploadFile(svc service.UploadService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		fh, err := c.FormFile("file")
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_REQUIRED", "file is required")
		}

		f, err := fh.Open()
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_OPEN_ERROR", "cannot open uploaded file")
		}
		defer f.Close()

		ct := fh.Header.Get("Content-Type")
		if ct == "" {
			ct = "application/octet-stream"
		}

		meta := service.UploadMeta{
			Title:       c.FormValue("title"),
			Description: c.FormValue("description"),
			Subject:     c.FormValue("subject"),
			Grade:       c.FormValue("grade"),
		}
		up, err := svc.Upload(c.UserContext(), f, fh.Filename, ct, fh.Size, meta)
		if err != nil {
			return writeServiceError(c, err, uploadNotFound)
		}
		return c.Status(fiber.StatusCreated).JSON(up)
	}
}

// @Summary Get an upload
// @Tags uploads
// @Produce json
// @Param id path string true "Upload ID (UUID)"
// @Success 200 {object} model.Upload
// @Failure 400 {object} errorPayload
// @Failure 404 {object} errorPayload
// @Failure 500 {object} errorPayload
// @Router /uploads/{id} [get]
func GetUpload(svc service.UploadService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok, err := uuidParam(c, "id")
		if !ok {
			return err
		}
		up, err := svc.Get(c.UserContext(), id)
		if err != nil {
			return writeServiceError(c, err, uploadNotFound)
		}
		return c.JSON(up)
	}
}

// ProcessUpload runs extraction and returns the updated record. A failed extraction is still a 200.
// @Summary Extract text from an upload
// @Tags uploads
// @Produce json
// @Param id path string true "Upload ID (UUID)"
// @Success 200 {object} model.Upload
// @Failure 400 {object} errorPayload
// @Failure 404 {object} errorPayload
// @Failure 500 {object} errorPayload
// @Router /uploads/{id}/process [post]
func ProcessUpload(svc service.UploadService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok, err := uuidParam(c, "id")
		if !ok {
			return err
		}
		up, err := svc.Process(c.UserContext(), id)
		if err != nil {
			return writeServiceError(c, err, uploadNotFound)
		}
		return c.JSON(up)
	}
}

// @Summary Extracted text of a completed upload
// @Tags uploads
// @Produce json
// @Param id path string true "Upload ID (UUID)"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errorPayload
// @Failure 404 {object} errorPayload
// @Failure 500 {object} errorPayload
// @Router /uploads/{id}/content [get]
func UploadContent(svc service.UploadService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok, err := uuidParam(c, "id")
		if !ok {
			return err
		}
		text, err := svc.Content(c.UserContext(), id)
		if err != nil {
			return writeServiceError(c, err, uploadNotFound)
		}
		return c.JSON(fiber.Map{"id": id, "content": text})
	}
}

// @Summary Delete an upload and its stored bytes
// @Tags uploads
// @Param id path string true "Upload ID (UUID)"
// @Success 204
// @Failure 400 {object} errorPayload
// @Failure 404 {object} errorPayload
// @Failure 500 {object} errorPayload
// @Router /uploads/{id} [delete]
func DeleteUpload(svc service.UploadService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok, err := uuidParam(c, "id")
		if !ok {
			return err
		}
		if err := svc.Delete(c.UserContext(), id); err != nil {
			return writeServiceError(c, err, uploadNotFound)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// @Summary Upload counts by status
// @Tags uploads
// @Produce json
// @Success 200 {object} model.UploadStatistics
// @Failure 500 {object} errorPayload
// @Router /uploads/statistics [get]
func UploadStatistics(svc service.UploadService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		st, err := svc.Statistics(c.UserContext())
		if err != nil {
			return writeServiceError(c, err, uploadNotFound)
		}
		return c.JSON(st)
	}
}

// DownloadUpload redirects to a presigned URL when the backend supports it and streams the bytes otherwise.
// @Summary Download the original file
// @Tags uploads
// @Produce octet-stream
// @Param id path string true "Upload ID (UUID)"
// @Success 200 {file} file
// @Success 307 "Redirect to a presigned URL"
// @Failure 400 {object} errorPayload
// @Failure 404 {object} errorPayload
// @Failure 500 {object} errorPayload
// @Router /uploads/{id}/download [get]
func DownloadUpload(svc service.UploadService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok, err := uuidParam(c, "id")
		if !ok {
			return err
		}

		u, err := svc.DownloadURL(c.UserContext(), id, downloadExpiry)
		if err == nil {
			return c.Redirect(u, fiber.StatusTemporaryRedirect)
		}
		if !errors.Is(err, storage.ErrPresignUnsupported) {
			return writeServiceError(c, err, uploadNotFound)
		}

		rc, up, err := svc.Open(c.UserContext(), id)
		if err != nil {
			return writeServiceError(c, err, uploadNotFound)
		}
		c.Attachment(up.Filename)
		c.Set(fiber.HeaderContentType, up.ContentType)
		// fiber closes rc once the body has been written.
		return c.SendStream(rc, int(up.Size))
	}
}
