package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"path"

	"golang.org/x/sync/errgroup"

	"submitapi/internal/config"
	"submitapi/internal/correlate"
	"submitapi/internal/metadata"
	"submitapi/internal/model"
	"submitapi/internal/repository"
	"submitapi/internal/storage"
)

var (
	ErrIDRequired   = errors.New("id is required")
	ErrKindRequired = errors.New("submission kind is required")
	ErrNotFound     = errors.New("submission not found")
)

// UploadFile is one raw file of a batch. Open returns a fresh reader
// over the staged bytes; the HTTP boundary owns the staging lifetime
// and releases it on every exit path.
type UploadFile struct {
	FieldName   string
	Filename    string
	Size        int64
	ContentType string
	Open        func() (io.ReadCloser, error)
}

// IngestInput carries the parent fields, the raw files, and the
// loosely-structured metadata blob of one batch.
type IngestInput struct {
	Kind                 string
	ContractorName       string
	ProjectName          string
	Notes                string
	CertifierName        string
	CertifierDesignation string
	CertifierDate        string
	MetadataBlob         string
	Files                []UploadFile
}

// IngestResult reports the created submission plus one entry per file.
// Per-file failures live inside Files; the batch itself still succeeds.
type IngestResult struct {
	SubmissionID      string             `json:"uploadId"`
	Files             []model.FileReport `json:"files"`
	UnmatchedMetadata []string           `json:"unmatched_metadata,omitempty"`
	MetadataWarning   string             `json:"metadata_warning,omitempty"`
}

// ListParams are the caller-facing listing filters. Page and PageSize
// are 1-based; offset is derived.
type ListParams struct {
	Kind       string
	Search     string
	Page       int
	PageSize   int
	WithCounts bool
}

// SubmissionListResult is the service-level DTO for paginated submissions.
type SubmissionListResult struct {
	Items    []model.Submission `json:"data"`
	Total    int                `json:"total"`
	Page     int                `json:"page"`
	PageSize int                `json:"pageSize"`
}

// AttachmentView is an attachment with a freshly issued download URL.
type AttachmentView struct {
	model.Attachment
	SignedURL *string `json:"signedUrl"`
}

// SubmissionDetail is a submission plus all of its attachments.
// Grouped is filled only when category grouping was requested.
type SubmissionDetail struct {
	Submission  model.Submission            `json:"submission"`
	Attachments []AttachmentView            `json:"files"`
	Grouped     map[string][]AttachmentView `json:"grouped,omitempty"`
}

// DeleteResult lists the storage paths that could not be removed from
// the content store. Callers may retry the deletion; it is idempotent.
type DeleteResult struct {
	UnremovedPaths []string `json:"unremoved_paths,omitempty"`
}

// SubmissionService defines the use cases for handling submission packages.
type SubmissionService interface {
	// Ingest creates the parent record, then stores and records every file
	// independently. A failing file is reported, not fatal; only parent
	// creation aborts the batch.
	Ingest(ctx context.Context, in IngestInput) (*IngestResult, error)

	// List returns a page of submissions plus the total matching count.
	List(ctx context.Context, p ListParams) (*SubmissionListResult, error)

	// Detail returns a submission with its attachments, each carrying a
	// fresh signed URL.
	Detail(ctx context.Context, id string, grouped bool) (*SubmissionDetail, error)

	// Delete removes a submission and its attachments from both stores:
	// content first, then relational.
	Delete(ctx context.Context, id string) (*DeleteResult, error)
}

// submissionService is a concrete implementation of SubmissionService.
type submissionService struct {
	store       storage.Storage
	subs        repository.SubmissionRepository
	atts        repository.AttachmentRepository
	urls        *URLIssuer
	concurrency int
}

// NewSubmissionService constructs a new SubmissionService.
func NewSubmissionService(store storage.Storage, subs repository.SubmissionRepository, atts repository.AttachmentRepository, cfg config.UploadConfig) SubmissionService {
	concurrency := cfg.Concurrency
	if concurrency < 1 {
		concurrency = 1
	}
	return &submissionService{
		store:       store,
		subs:        subs,
		atts:        atts,
		urls:        NewURLIssuer(store, cfg.SignedURLExpiry),
		concurrency: concurrency,
	}
}

// ObjectKey derives the storage path for one attachment. The derivation
// is deterministic: the same submission, category, and filename always
// map to the same path.
func ObjectKey(submissionID, category, filename string) string {
	return fmt.Sprintf("uploads/%s/%s/%s", submissionID, category, path.Base(filename))
}

func (s *submissionService) Ingest(ctx context.Context, in IngestInput) (*IngestResult, error) {
	if in.Kind == "" {
		return nil, ErrKindRequired
	}

	// Parent first. Nothing is written to the content store before the
	// submission row exists.
	sub, err := s.subs.Create(ctx, &model.Submission{
		Kind:                 in.Kind,
		ContractorName:       in.ContractorName,
		ProjectName:          in.ProjectName,
		Notes:                in.Notes,
		CertifierName:        in.CertifierName,
		CertifierDesignation: in.CertifierDesignation,
		CertifierDate:        in.CertifierDate,
	})
	if err != nil {
		return nil, fmt.Errorf("create submission: %w", err)
	}

	doc := metadata.Parse(in.MetadataBlob)
	if doc.Warning != "" {
		logWarn("metadata_parse_failed", map[string]any{"upload_id": sub.ID, "warning": doc.Warning})
	}

	files := make([]correlate.File, len(in.Files))
	for i, f := range in.Files {
		files[i] = correlate.File{FieldName: f.FieldName, Filename: f.Filename}
	}
	corr := correlate.Correlate(files, doc.Lookup(), correlate.SlotsForKind(in.Kind), in.Kind)

	// Files are independent of each other; only parent-before-children
	// and store-write-before-record-write are ordered.
	reports := make([]model.FileReport, len(corr.Matches))
	var g errgroup.Group
	g.SetLimit(s.concurrency)
	for i := range corr.Matches {
		g.Go(func() error {
			reports[i] = s.ingestOne(ctx, sub.ID, in.Files[i], corr.Matches[i])
			return nil
		})
	}
	_ = g.Wait()

	return &IngestResult{
		SubmissionID:      sub.ID,
		Files:             reports,
		UnmatchedMetadata: corr.Unmatched,
		MetadataWarning:   doc.Warning,
	}, nil
}

// ingestOne stores one file and writes its attachment record. Failures
// are recorded on the report and never abort sibling files.
func (s *submissionService) ingestOne(ctx context.Context, submissionID string, f UploadFile, m correlate.Match) model.FileReport {
	rep := model.FileReport{
		Filename:  f.Filename,
		Category:  m.Category,
		Label:     m.Label,
		Station:   m.Station,
		Caption:   m.Caption,
		Latitude:  m.Lat,
		Longitude: m.Lon,
	}

	r, err := f.Open()
	if err != nil {
		rep.Error = fmt.Sprintf("open uploaded file: %v", err)
		return rep
	}
	defer r.Close()

	key := ObjectKey(submissionID, m.Category, f.Filename)
	if _, err := s.store.Put(ctx, key, r, storage.PutObjectOptions{
		Size:        f.Size,
		ContentType: f.ContentType,
		Metadata:    map[string]string{"original-filename": f.Filename},
	}); err != nil {
		rep.Error = fmt.Sprintf("store file: %v", err)
		return rep
	}
	rep.StoragePath = key

	// Degraded, never fatal.
	rep.SignedURL = s.urls.Issue(ctx, key)

	if _, err := s.atts.Create(ctx, &model.Attachment{
		SubmissionID: submissionID,
		Category:     m.Category,
		Title:        m.Title,
		Label:        m.Label,
		Filename:     f.Filename,
		StoragePath:  key,
		Station:      m.Station,
		Caption:      m.Caption,
		Latitude:     m.Lat,
		Longitude:    m.Lon,
	}); err != nil {
		rep.Error = fmt.Sprintf("save attachment record: %v", err)
	}
	return rep
}

// List returns paginated submissions without exposing repository types.
func (s *submissionService) List(ctx context.Context, p ListParams) (*SubmissionListResult, error) {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 {
		p.PageSize = 10
	}

	res, err := s.subs.List(ctx, repository.ListQuery{
		Kind:   p.Kind,
		Search: p.Search,
		Limit:  p.PageSize,
		Offset: (p.Page - 1) * p.PageSize,
	})
	if err != nil {
		return nil, err
	}

	items := res.Items
	if p.WithCounts {
		var g errgroup.Group
		g.SetLimit(s.concurrency)
		for i := range items {
			g.Go(func() error {
				n, err := s.atts.CountBySubmission(ctx, items[i].ID)
				if err != nil {
					return err
				}
				items[i].AttachmentCount = &n
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
	}

	return &SubmissionListResult{Items: items, Total: res.Total, Page: p.Page, PageSize: p.PageSize}, nil
}

// Detail returns a submission with its attachments and fresh URLs.
func (s *submissionService) Detail(ctx context.Context, id string, grouped bool) (*SubmissionDetail, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	sub, err := s.subs.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	atts, err := s.atts.ListBySubmission(ctx, id)
	if err != nil {
		return nil, err
	}

	views := make([]AttachmentView, len(atts))
	for i, a := range atts {
		views[i] = AttachmentView{Attachment: a, SignedURL: s.urls.Issue(ctx, a.StoragePath)}
	}

	detail := &SubmissionDetail{Submission: *sub, Attachments: views}
	if grouped {
		detail.Grouped = make(map[string][]AttachmentView)
		for _, v := range views {
			detail.Grouped[v.Category] = append(detail.Grouped[v.Category], v)
		}
	}
	return detail, nil
}

// Delete removes content objects first, then the relational rows.
// Content removal failures are collected, not fatal; relational
// failures abort with no compensation of already-removed objects.
func (s *submissionService) Delete(ctx context.Context, id string) (*DeleteResult, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	if _, err := s.subs.FindByID(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	atts, err := s.atts.ListBySubmission(ctx, id)
	if err != nil {
		return nil, err
	}

	var unremoved []string
	if len(atts) > 0 {
		paths := make([]string, len(atts))
		for i, a := range atts {
			paths[i] = a.StoragePath
		}
		failed, err := s.store.RemoveMany(ctx, paths)
		if err != nil {
			logWarn("bulk_remove_failed", map[string]any{"upload_id": id, "error": err.Error()})
			failed = paths
		}
		unremoved = failed
	}

	if err := s.atts.DeleteBySubmission(ctx, id); err != nil {
		return nil, fmt.Errorf("delete attachment records: %w", err)
	}
	if err := s.subs.Delete(ctx, id); err != nil {
		return nil, fmt.Errorf("delete submission record: %w", err)
	}
	return &DeleteResult{UnremovedPaths: unremoved}, nil
}
