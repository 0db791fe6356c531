package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"submitapi/internal/model"
	"submitapi/internal/service"
	serviceMocks "submitapi/internal/service/mocks"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestHealthCheck(t *testing.T) {
	db, dbMock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer db.Close()

	app := fiber.New()
	app.Get("/health", HealthCheck(db))

	t.Run("healthy", func(t *testing.T) {
		dbMock.ExpectPing().WillReturnError(nil)

		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var body map[string]string
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, "healthy", body["status"])
	})

	t.Run("unhealthy", func(t *testing.T) {
		dbMock.ExpectPing().WillReturnError(errors.New("db error"))

		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)

		var body errorPayload
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, "SERVICE_UNAVAILABLE", body.Error.Code)
	})
}

func TestLivenessProbe(t *testing.T) {
	app := fiber.New()
	app.Get("/healthz", LivenessProbe())

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	resp, _ := app.Test(req)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestCreateSubmission(t *testing.T) {
	mockSvc := new(serviceMocks.MockSubmissionService)
	app := fiber.New()
	app.Post("/submissions", CreateSubmission(mockSvc))

	multipartBody := func(t *testing.T) (*bytes.Buffer, string) {
		t.Helper()
		body := new(bytes.Buffer)
		w := multipart.NewWriter(body)
		require.NoError(t, w.WriteField("type", "resumption"))
		require.NoError(t, w.WriteField("contractorName", "ACME Builders"))
		require.NoError(t, w.WriteField("supporting_files_metadata", `[{"type":"A","items":[{"filename":"x.jpg","label":"Site overview"}]}]`))
		fw, err := w.CreateFormFile("required_letter_request", "letter.pdf")
		require.NoError(t, err)
		fw.Write([]byte("letter bytes"))
		fw, err = w.CreateFormFile("supporting_files", "x.jpg")
		require.NoError(t, err)
		fw.Write([]byte("jpeg bytes"))
		require.NoError(t, w.Close())
		return body, w.FormDataContentType()
	}

	t.Run("success", func(t *testing.T) {
		url := "https://signed/letter"
		mockSvc.On("Ingest", mock.Anything, mock.MatchedBy(func(in service.IngestInput) bool {
			return in.Kind == "resumption" &&
				in.ContractorName == "ACME Builders" &&
				in.MetadataBlob != "" &&
				len(in.Files) == 2
		})).Return(&service.IngestResult{
			SubmissionID: "sub-1",
			Files: []model.FileReport{
				{Filename: "letter.pdf", StoragePath: "uploads/sub-1/required/letter.pdf", SignedURL: &url, Category: "required"},
				{Filename: "x.jpg", Category: "A", Error: "store file: bucket unavailable"},
			},
		}, nil).Once()

		body, contentType := multipartBody(t)
		req := httptest.NewRequest(http.MethodPost, "/submissions", body)
		req.Header.Set("Content-Type", contentType)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusCreated, resp.StatusCode)

		var result struct {
			OK           bool               `json:"ok"`
			SubmissionID string             `json:"uploadId"`
			Files        []model.FileReport `json:"files"`
		}
		json.NewDecoder(resp.Body).Decode(&result)
		assert.True(t, result.OK)
		assert.Equal(t, "sub-1", result.SubmissionID)
		require.Len(t, result.Files, 2)
		// Partial failure stays inside the per-file report.
		assert.NotEmpty(t, result.Files[1].Error)
		mockSvc.AssertExpectations(t)
	})

	t.Run("missing multipart body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/submissions", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		var body errorPayload
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, "MULTIPART_REQUIRED", body.Error.Code)
	})

	t.Run("missing type", func(t *testing.T) {
		mockSvc.On("Ingest", mock.Anything, mock.Anything).
			Return(nil, service.ErrKindRequired).Once()

		body := new(bytes.Buffer)
		w := multipart.NewWriter(body)
		fw, _ := w.CreateFormFile("required_letter_request", "letter.pdf")
		fw.Write([]byte("x"))
		w.Close()

		req := httptest.NewRequest(http.MethodPost, "/submissions", body)
		req.Header.Set("Content-Type", w.FormDataContentType())
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		var payload errorPayload
		json.NewDecoder(resp.Body).Decode(&payload)
		assert.Equal(t, "TYPE_REQUIRED", payload.Error.Code)
	})

	t.Run("service error", func(t *testing.T) {
		mockSvc.On("Ingest", mock.Anything, mock.Anything).
			Return(nil, errors.New("create submission: db down")).Once()

		body, contentType := multipartBody(t)
		req := httptest.NewRequest(http.MethodPost, "/submissions", body)
		req.Header.Set("Content-Type", contentType)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})
}

func TestListSubmissions(t *testing.T) {
	mockSvc := new(serviceMocks.MockSubmissionService)
	app := fiber.New()
	app.Get("/submissions", ListSubmissions(mockSvc))

	t.Run("success", func(t *testing.T) {
		expected := &service.SubmissionListResult{
			Items:    []model.Submission{{ID: uuid.New().String(), Kind: "PERT_ORIGINAL"}},
			Total:    1,
			Page:     2,
			PageSize: 10,
		}
		mockSvc.On("List", mock.Anything, service.ListParams{
			Kind: "pert", Search: "acme", Page: 2, PageSize: 10, WithCounts: true,
		}).Return(expected, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/submissions?kind=pert&q=acme&page=2&pageSize=10&withCounts=true", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var result service.SubmissionListResult
		json.NewDecoder(resp.Body).Decode(&result)
		assert.Len(t, result.Items, 1)
		assert.Equal(t, 1, result.Total)
		mockSvc.AssertExpectations(t)
	})

	t.Run("invalid page", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/submissions?page=abc", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		var body errorPayload
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, "INVALID_PAGE", body.Error.Code)
	})

	t.Run("invalid page size", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/submissions?pageSize=0", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		var body errorPayload
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, "INVALID_PAGE_SIZE", body.Error.Code)
	})

	t.Run("service error", func(t *testing.T) {
		mockSvc.On("List", mock.Anything, mock.Anything).
			Return(nil, errors.New("service error")).Once()

		req := httptest.NewRequest(http.MethodGet, "/submissions", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})
}

func TestGetSubmission(t *testing.T) {
	mockSvc := new(serviceMocks.MockSubmissionService)
	app := fiber.New()
	app.Get("/submissions/:id", GetSubmission(mockSvc))

	t.Run("success grouped", func(t *testing.T) {
		id := uuid.New().String()
		url := "https://signed/x.jpg"
		mockSvc.On("Detail", mock.Anything, id, true).Return(&service.SubmissionDetail{
			Submission: model.Submission{ID: id},
			Attachments: []service.AttachmentView{
				{Attachment: model.Attachment{ID: "a1", Category: "A"}, SignedURL: &url},
			},
			Grouped: map[string][]service.AttachmentView{
				"A": {{Attachment: model.Attachment{ID: "a1", Category: "A"}, SignedURL: &url}},
			},
		}, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/submissions/"+id+"?grouped=true", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var detail service.SubmissionDetail
		json.NewDecoder(resp.Body).Decode(&detail)
		assert.Equal(t, id, detail.Submission.ID)
		require.Len(t, detail.Attachments, 1)
		require.NotNil(t, detail.Attachments[0].SignedURL)
		assert.Contains(t, detail.Grouped, "A")
		mockSvc.AssertExpectations(t)
	})

	t.Run("invalid id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/submissions/not-a-uuid", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("not found", func(t *testing.T) {
		id := uuid.New().String()
		mockSvc.On("Detail", mock.Anything, id, false).
			Return(nil, service.ErrNotFound).Once()

		req := httptest.NewRequest(http.MethodGet, "/submissions/"+id, nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})
}

func TestDeleteSubmission(t *testing.T) {
	mockSvc := new(serviceMocks.MockSubmissionService)
	app := fiber.New()
	app.Delete("/submissions/:id", DeleteSubmission(mockSvc))

	t.Run("success with unremoved paths", func(t *testing.T) {
		id := uuid.New().String()
		mockSvc.On("Delete", mock.Anything, id).
			Return(&service.DeleteResult{UnremovedPaths: []string{"uploads/x/A/y.jpg"}}, nil).Once()

		req := httptest.NewRequest(http.MethodDelete, "/submissions/"+id, nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var result struct {
			OK             bool     `json:"ok"`
			UnremovedPaths []string `json:"unremoved_paths"`
		}
		json.NewDecoder(resp.Body).Decode(&result)
		assert.True(t, result.OK)
		assert.Equal(t, []string{"uploads/x/A/y.jpg"}, result.UnremovedPaths)
		mockSvc.AssertExpectations(t)
	})

	t.Run("invalid id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodDelete, "/submissions/123", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("not found", func(t *testing.T) {
		id := uuid.New().String()
		mockSvc.On("Delete", mock.Anything, id).
			Return(nil, service.ErrNotFound).Once()

		req := httptest.NewRequest(http.MethodDelete, "/submissions/"+id, nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})
}
