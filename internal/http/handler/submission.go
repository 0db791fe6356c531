package handler

import (
	"errors"
	"io"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"submitapi/internal/service"
)

type ingestResponse struct {
	OK bool `json:"ok"`
	*service.IngestResult
}

type deleteResponse struct {
	OK bool `json:"ok"`
	*service.DeleteResult
}

// CreateSubmission handles the batch ingestion endpoint
// (multipart/form-data: parent fields, N files, optional metadata blob).
//
// @Summary Ingest a submission package
// @Accept mpfd
// @Produce json
// @Success 201 {object} ingestResponse
// @Router /submissions [post]
func CreateSubmission(svc service.SubmissionService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		form, err := c.MultipartForm()
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "MULTIPART_REQUIRED", "multipart form is required")
		}
		// Staged multipart copies are request-scoped; release them on
		// every exit path.
		defer form.RemoveAll()

		in := service.IngestInput{
			Kind:                 c.FormValue("type"),
			ContractorName:       c.FormValue("contractorName"),
			ProjectName:          c.FormValue("projectName"),
			Notes:                c.FormValue("notes"),
			CertifierName:        c.FormValue("certifierName"),
			CertifierDesignation: c.FormValue("certifierDesignation"),
			CertifierDate:        c.FormValue("certifierDate"),
			MetadataBlob:         c.FormValue("supporting_files_metadata"),
		}

		for field, headers := range form.File {
			for _, fh := range headers {
				ct := fh.Header.Get("Content-Type")
				if ct == "" {
					ct = "application/octet-stream"
				}
				in.Files = append(in.Files, service.UploadFile{
					FieldName:   field,
					Filename:    fh.Filename,
					Size:        fh.Size,
					ContentType: ct,
					Open: func() (io.ReadCloser, error) {
						return fh.Open()
					},
				})
			}
		}

		res, err := svc.Ingest(c.UserContext(), in)
		if err != nil {
			if errors.Is(err, service.ErrKindRequired) {
				return writeError(c, fiber.StatusBadRequest, "TYPE_REQUIRED", "submission type is required")
			}
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.Status(fiber.StatusCreated).JSON(ingestResponse{OK: true, IngestResult: res})
	}
}

// ListSubmissions handles the paginated listing endpoint.
//
// @Summary List submissions
// @Produce json
// @Param kind query string false "kind substring filter"
// @Param q query string false "contractor/project search"
// @Param page query int false "1-based page"
// @Param pageSize query int false "rows per page"
// @Param withCounts query bool false "annotate attachment counts"
// @Success 200 {object} service.SubmissionListResult
// @Router /submissions [get]
func ListSubmissions(svc service.SubmissionService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		page, err := strconv.Atoi(c.Query("page", "1"))
		if err != nil || page < 1 {
			return writeError(c, fiber.StatusBadRequest, "INVALID_PAGE", "invalid page")
		}
		pageSize, err := strconv.Atoi(c.Query("pageSize", "10"))
		if err != nil || pageSize < 1 {
			return writeError(c, fiber.StatusBadRequest, "INVALID_PAGE_SIZE", "invalid pageSize")
		}

		res, err := svc.List(c.UserContext(), service.ListParams{
			Kind:       c.Query("kind"),
			Search:     c.Query("q"),
			Page:       page,
			PageSize:   pageSize,
			WithCounts: c.QueryBool("withCounts"),
		})
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.JSON(res)
	}
}

// GetSubmission handles detail retrieval with fresh signed URLs.
//
// @Summary Get one submission with attachments
// @Produce json
// @Param id path string true "submission id"
// @Param grouped query bool false "group attachments by category"
// @Success 200 {object} service.SubmissionDetail
// @Router /submissions/{id} [get]
func GetSubmission(svc service.SubmissionService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		detail, err := svc.Detail(c.UserContext(), id, c.QueryBool("grouped"))
		if err != nil {
			if errors.Is(err, service.ErrNotFound) {
				return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "submission not found")
			}
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.JSON(detail)
	}
}

// DeleteSubmission handles deletion from both stores. Storage paths
// that could not be removed are returned so the caller can retry.
//
// @Summary Delete a submission and its attachments
// @Produce json
// @Param id path string true "submission id"
// @Success 200 {object} deleteResponse
// @Router /submissions/{id} [delete]
func DeleteSubmission(svc service.SubmissionService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		res, err := svc.Delete(c.UserContext(), id)
		if err != nil {
			if errors.Is(err, service.ErrNotFound) {
				return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "submission not found")
			}
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.JSON(deleteResponse{OK: true, DeleteResult: res})
	}
}
