package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"caseapi/internal/apperr"
	"caseapi/internal/model"
	"caseapi/internal/report"
	"caseapi/internal/repository"
	"caseapi/internal/storage"
)

const (
	createAttempts = 5

	defaultPerPage = 20
	maxPerPage     = 100
)

var errCaseNotFound = apperr.Clone(apperr.ErrNotFound, "Case not found")

// ListCasesRequest filters the case listing. Zero Page and PerPage take defaults.
type ListCasesRequest struct {
	Status  string `json:"status" validate:"omitempty,case_status"`
	Search  string `json:"search" validate:"max=200"`
	Page    int    `json:"page" validate:"gte=0"`
	PerPage int    `json:"per_page" validate:"gte=0"`
}

// CaseListResult is one page of cases.
type CaseListResult struct {
	Cases   []model.Case `json:"cases"`
	Total   int          `json:"total"`
	Page    int          `json:"page"`
	PerPage int          `json:"per_page"`
	Pages   int          `json:"pages"`
}

// CreateCaseRequest is the payload for opening a case.
type CreateCaseRequest struct {
	Title string `json:"title" validate:"max=200"`
	Notes string `json:"notes" validate:"max=5000"`
}

// ChangeStatusRequest is the payload for a status transition.
type ChangeStatusRequest struct {
	Status    string  `json:"status"`
	Notes     string  `json:"notes" validate:"max=5000"`
	ChangedBy *string `json:"changed_by" validate:"omitempty,max=100"`
}

// AttachDocumentRequest carries an uploaded file. DocType defaults to attachment.
type AttachDocumentRequest struct {
	CaseID      int64
	Filename    string
	DocType     string
	Notes       string `json:"notes" validate:"max=5000"`
	ContentType string
	Size        int64
	Content     io.ReadSeeker
}

// FileResult is a generated file ready to be sent to the client.
type FileResult struct {
	Filename    string
	ContentType string
	Data        []byte
}

// CaseService defines the procurement case use cases.
type CaseService interface {
	// List returns a page of cases, newest first.
	List(ctx context.Context, req ListCasesRequest) (*CaseListResult, error)

	// Get returns a case with its documents and status history.
	Get(ctx context.Context, id int64) (*model.CaseDetail, error)

	// Create allocates a case number, creates the case folder and inserts the case
	// together with its initial Draft history row.
	Create(ctx context.Context, req CreateCaseRequest) (*model.Case, error)

	// AttachDocument stores the file and records it against the case.
	AttachDocument(ctx context.Context, req AttachDocumentRequest) (*model.Document, error)

	// ChangeStatus moves the case to a new status.
	ChangeStatus(ctx context.Context, id int64, req ChangeStatusRequest) (*TransitionResult, error)

	// Template renders the procurement request spreadsheet for a case.
	Template(ctx context.Context, id int64) (*FileResult, error)

	// BlankTemplate renders the spreadsheet with placeholder values.
	BlankTemplate(ctx context.Context) (*FileResult, error)

	// Summary renders a PDF overview of a case.
	Summary(ctx context.Context, id int64) (*FileResult, error)

	// Stats counts cases in total and per status.
	Stats(ctx context.Context) (*model.StatusCounts, error)
}

type caseService struct {
	cases     repository.CaseRepository
	docs      repository.DocumentRepository
	history   repository.StatusHistoryRepository
	store     storage.Backend
	allocator *CaseNumberAllocator
	lifecycle *Lifecycle
	validator *validator.Validate
	logger    *zap.Logger
	prefix    string
	now       func() time.Time
}

// NewCaseService constructs a CaseService. prefix is the case-number prefix.
func NewCaseService(
	cases repository.CaseRepository,
	docs repository.DocumentRepository,
	history repository.StatusHistoryRepository,
	store storage.Backend,
	prefix string,
	validate *validator.Validate,
	logger *zap.Logger,
) (CaseService, error) {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	svc := &caseService{
		cases:     cases,
		docs:      docs,
		history:   history,
		store:     store,
		allocator: NewCaseNumberAllocator(cases, prefix),
		lifecycle: NewLifecycle(cases),
		validator: validate,
		logger:    logger,
		prefix:    prefix,
		now:       time.Now,
	}
	if err := RegisterValidations(validate); err != nil {
		return nil, fmt.Errorf("register validations: %w", err)
	}
	return svc, nil
}

// RegisterValidations installs the field naming and custom tags the request types rely on.
func RegisterValidations(v *validator.Validate) error {
	v.RegisterTagNameFunc(jsonFieldName)
	return v.RegisterValidation("case_status", func(fl validator.FieldLevel) bool {
		return model.CaseStatus(fl.Field().String()).Valid()
	})
}

func (s *caseService) List(ctx context.Context, req ListCasesRequest) (*CaseListResult, error) {
	req.Status = strings.TrimSpace(req.Status)
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err)
	}

	page := req.Page
	if page < 1 {
		page = 1
	}
	perPage := req.PerPage
	if perPage <= 0 {
		perPage = defaultPerPage
	}
	if perPage > maxPerPage {
		perPage = maxPerPage
	}

	res, err := s.cases.List(ctx, repository.CaseFilter{
		Status:    model.CaseStatus(req.Status),
		Search:    strings.TrimSpace(req.Search),
		PageQuery: repository.PageQuery{Limit: perPage, Offset: (page - 1) * perPage},
	})
	if err != nil {
		return nil, apperr.Wrap(err, apperr.ErrInternal.Code, apperr.ErrInternal.Status, "failed to list cases")
	}

	return &CaseListResult{
		Cases:   res.Items,
		Total:   res.Total,
		Page:    page,
		PerPage: perPage,
		Pages:   (res.Total + perPage - 1) / perPage,
	}, nil
}

func (s *caseService) Get(ctx context.Context, id int64) (*model.CaseDetail, error) {
	c, err := s.findCase(ctx, id)
	if err != nil {
		return nil, err
	}

	var (
		docs    []model.Document
		history []model.StatusHistory
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		docs, err = s.docs.ListByCase(gctx, id)
		return err
	})
	g.Go(func() error {
		var err error
		history, err = s.history.ListByCase(gctx, id)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, apperr.Wrap(err, apperr.ErrInternal.Code, apperr.ErrInternal.Status, "failed to load case details")
	}

	for i := range docs {
		s.decorate(&docs[i], c.CaseNumber)
	}
	if docs == nil {
		docs = []model.Document{}
	}
	if history == nil {
		history = []model.StatusHistory{}
	}
	return &model.CaseDetail{Case: *c, Documents: docs, StatusHistory: history}, nil
}

func (s *caseService) Create(ctx context.Context, req CreateCaseRequest) (*model.Case, error) {
	req.Title = strings.TrimSpace(req.Title)
	req.Notes = strings.TrimSpace(req.Notes)
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err)
	}

	for attempt := 1; attempt <= createAttempts; attempt++ {
		number, err := s.allocator.Next(ctx)
		if err != nil {
			return nil, apperr.Wrap(err, apperr.ErrInternal.Code, apperr.ErrInternal.Status, "failed to allocate case number")
		}

		folder, err := s.store.CreateCaseFolder(ctx, number)
		if err != nil {
			s.logger.Error("case_folder_failed", zap.String("case_number", number), zap.Error(err))
			return nil, apperr.Wrap(err, apperr.ErrStorage.Code, apperr.ErrStorage.Status, "Failed to create folder")
		}

		now := s.now().UTC()
		created, err := s.cases.Create(ctx, &model.Case{
			CaseNumber:        number,
			Title:             req.Title,
			CurrentStatus:     model.StatusDraft,
			StorageFolderPath: folder,
			CreatedAt:         now,
			UpdatedAt:         now,
			Notes:             req.Notes,
		}, InitialHistory(now))
		if errors.Is(err, repository.ErrDuplicateCaseNumber) {
			s.logger.Warn("case_number_collision", zap.String("case_number", number), zap.Int("attempt", attempt))
			continue
		}
		if err != nil {
			return nil, apperr.Wrap(err, apperr.ErrInternal.Code, apperr.ErrInternal.Status, "failed to create case")
		}

		s.logger.Info("case_created",
			zap.Int64("case_id", created.ID),
			zap.String("case_number", created.CaseNumber),
			zap.Bool("remote_storage", s.store.RemoteEnabled()),
		)
		return created, nil
	}

	return nil, apperr.Wrap(repository.ErrDuplicateCaseNumber, apperr.ErrInternal.Code, apperr.ErrInternal.Status,
		fmt.Sprintf("failed to allocate a unique case number after %d attempts", createAttempts))
}

func (s *caseService) AttachDocument(ctx context.Context, req AttachDocumentRequest) (*model.Document, error) {
	if req.Content == nil {
		return nil, apperr.ErrFileRequired
	}
	if strings.TrimSpace(req.Filename) == "" {
		return nil, apperr.Clone(apperr.ErrFileRequired, "No file selected")
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err)
	}

	docType := model.DocType(strings.TrimSpace(req.DocType))
	if docType == "" {
		docType = model.DocTypeAttachment
	}
	if !docType.Valid() {
		return nil, apperr.ErrInvalidDocType
	}

	c, err := s.findCase(ctx, req.CaseID)
	if err != nil {
		return nil, err
	}

	if docType == model.DocTypeMain {
		exists, err := s.docs.HasMain(ctx, c.ID)
		if err != nil {
			return nil, apperr.Wrap(err, apperr.ErrInternal.Code, apperr.ErrInternal.Status, "failed to check main document")
		}
		if exists {
			return nil, apperr.ErrDuplicateMainDocument
		}
	}

	res, err := s.store.UploadFile(ctx, c.CaseNumber, req.Filename, req.Content, req.Size, req.ContentType)
	if err != nil {
		if errors.Is(err, storage.ErrInvalidFilename) {
			return nil, apperr.Wrap(err, apperr.ErrValidation.Code, apperr.ErrValidation.Status, "Invalid filename")
		}
		s.logger.Error("document_upload_failed", zap.String("case_number", c.CaseNumber), zap.Error(err))
		return nil, apperr.Wrap(err, apperr.ErrStorage.Code, apperr.ErrStorage.Status, "Failed to upload file")
	}

	doc := &model.Document{
		CaseID:           c.ID,
		DocType:          docType,
		Filename:         res.Filename,
		OriginalFilename: req.Filename,
		FileSize:         req.Size,
		MimeType:         req.ContentType,
		UploadedAt:       s.now().UTC(),
		Notes:            strings.TrimSpace(req.Notes),
	}
	path := res.Path
	if res.Remote {
		doc.RemotePath = &path
	} else {
		doc.LocalPath = &path
	}

	stored, err := s.docs.Create(ctx, doc)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicateMainDocument):
			return nil, apperr.ErrDuplicateMainDocument
		case errors.Is(err, sql.ErrNoRows):
			return nil, errCaseNotFound
		}
		return nil, apperr.Wrap(err, apperr.ErrInternal.Code, apperr.ErrInternal.Status, "failed to save document")
	}

	s.decorate(stored, c.CaseNumber)
	s.logger.Info("document_attached",
		zap.Int64("case_id", c.ID),
		zap.Int64("document_id", stored.ID),
		zap.String("doc_type", string(docType)),
		zap.String("storage_backend", stored.StorageBackend),
	)
	return stored, nil
}

func (s *caseService) ChangeStatus(ctx context.Context, id int64, req ChangeStatusRequest) (*TransitionResult, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err)
	}
	res, err := s.lifecycle.Transition(ctx, id, req.Status, req.Notes, req.ChangedBy)
	if err != nil {
		return nil, err
	}
	if res.Changed {
		s.logger.Info("case_status_changed",
			zap.Int64("case_id", id),
			zap.String("old_status", string(res.OldStatus)),
			zap.String("new_status", string(res.NewStatus)),
		)
	}
	return res, nil
}

func (s *caseService) Template(ctx context.Context, id int64) (*FileResult, error) {
	c, err := s.findCase(ctx, id)
	if err != nil {
		return nil, err
	}
	data, err := report.BuildProcurementTemplate(c.CaseNumber, c.Title, s.now())
	if err != nil {
		return nil, apperr.Wrap(err, apperr.ErrInternal.Code, apperr.ErrInternal.Status, "failed to generate template")
	}
	return &FileResult{
		Filename:    c.CaseNumber + "_procurement_request.xlsx",
		ContentType: report.XLSXContentType,
		Data:        data,
	}, nil
}

func (s *caseService) BlankTemplate(_ context.Context) (*FileResult, error) {
	data, err := report.BuildBlankTemplate(s.prefix, s.now())
	if err != nil {
		return nil, apperr.Wrap(err, apperr.ErrInternal.Code, apperr.ErrInternal.Status, "failed to generate template")
	}
	return &FileResult{
		Filename:    "procurement_request_template.xlsx",
		ContentType: report.XLSXContentType,
		Data:        data,
	}, nil
}

func (s *caseService) Summary(ctx context.Context, id int64) (*FileResult, error) {
	detail, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	data, err := report.BuildCaseSummary(detail, s.now())
	if err != nil {
		return nil, apperr.Wrap(err, apperr.ErrInternal.Code, apperr.ErrInternal.Status, "failed to generate summary")
	}
	return &FileResult{
		Filename:    detail.CaseNumber + "_summary.pdf",
		ContentType: report.PDFContentType,
		Data:        data,
	}, nil
}

func (s *caseService) Stats(ctx context.Context) (*model.StatusCounts, error) {
	byStatus, err := s.cases.CountByStatus(ctx)
	if err != nil {
		return nil, apperr.Wrap(err, apperr.ErrInternal.Code, apperr.ErrInternal.Status, "failed to load statistics")
	}
	var counts model.StatusCounts
	for status, n := range byStatus {
		counts.Add(status, n)
	}
	return &counts, nil
}

func (s *caseService) findCase(ctx context.Context, id int64) (*model.Case, error) {
	if id <= 0 {
		return nil, apperr.ErrInvalidID
	}
	c, err := s.cases.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errCaseNotFound
		}
		return nil, apperr.Wrap(err, apperr.ErrInternal.Code, apperr.ErrInternal.Status, "failed to load case")
	}
	return c, nil
}

// decorate fills the response-only fields. The URL follows the backend that
// actually holds the file, so a remote fallback still yields a /storage link.
func (s *caseService) decorate(doc *model.Document, caseNumber string) {
	doc.StorageBackend = doc.Backend()
	if doc.RemotePath != nil {
		doc.URL = s.store.FileURL(caseNumber, doc.Filename)
		return
	}
	doc.URL = storage.LocalURL(caseNumber, doc.Filename)
}
