package handler

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"caseapi/internal/apperr"
	"caseapi/internal/model"
	"caseapi/internal/service"
)

type caseListResponse struct {
	Success bool `json:"success"`
	*service.CaseListResult
}

type caseDetailResponse struct {
	Success bool              `json:"success"`
	Case    *model.CaseDetail `json:"case"`
}

type caseResponse struct {
	Success bool        `json:"success"`
	Case    *model.Case `json:"case,omitempty"`
	Message string      `json:"message"`
}

type statusResponse struct {
	Success   bool        `json:"success"`
	Case      *model.Case `json:"case,omitempty"`
	Message   string      `json:"message"`
	Unchanged bool        `json:"unchanged,omitempty"`
}

type documentResponse struct {
	Success  bool            `json:"success"`
	Document *model.Document `json:"document"`
	Message  string          `json:"message"`
}

type statsResponse struct {
	Success bool                `json:"success"`
	Stats   *model.StatusCounts `json:"stats"`
}

func parseCaseID(c *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperr.Clone(apperr.ErrInvalidID, "Invalid case id")
	}
	return id, nil
}

func queryInt(c *fiber.Ctx, key string) (int, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apperr.Clone(apperr.ErrValidation, fmt.Sprintf("Invalid %s parameter", key))
	}
	return n, nil
}

// ListCases handles GET /api/cases.
//
// @Summary List cases
// @Description Newest first. Optional status filter and case-insensitive search on case number or title.
// @Tags cases
// @Produce json
// @Param status query string false "Filter by status" Enums(Draft, Submitted, Approved, Closed, Rejected)
// @Param search query string false "Search case number or title"
// @Param page query int false "Page number" default(1)
// @Param per_page query int false "Items per page" default(20)
// @Success 200 {object} caseListResponse
// @Failure 400 {object} errorPayload
// @Router /api/cases [get]
func ListCases(svc service.CaseService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		page, err := queryInt(c, "page")
		if err != nil {
			return writeAppError(c, err)
		}
		perPage, err := queryInt(c, "per_page")
		if err != nil {
			return writeAppError(c, err)
		}

		res, err := svc.List(c.UserContext(), service.ListCasesRequest{
			Status:  c.Query("status"),
			Search:  c.Query("search"),
			Page:    page,
			PerPage: perPage,
		})
		if err != nil {
			return writeAppError(c, err)
		}
		return c.JSON(caseListResponse{Success: true, CaseListResult: res})
	}
}

// GetCase handles GET /api/cases/{id}.
//
// @Summary Get a case
// @Description Includes documents in upload order and status history newest first.
// @Tags cases
// @Produce json
// @Param id path int true "Case ID"
// @Success 200 {object} caseDetailResponse
// @Failure 400 {object} errorPayload
// @Failure 404 {object} errorPayload
// @Router /api/cases/{id} [get]
func GetCase(svc service.CaseService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseCaseID(c)
		if err != nil {
			return writeAppError(c, err)
		}
		detail, err := svc.Get(c.UserContext(), id)
		if err != nil {
			return writeAppError(c, err)
		}
		return c.JSON(caseDetailResponse{Success: true, Case: detail})
	}
}

// CreateCase handles POST /api/cases.
//
// @Summary Create a case
// @Description Allocates the next case number and creates its storage folder.
// @Tags cases
// @Accept json
// @Produce json
// @Param body body service.CreateCaseRequest false "Case fields"
// @Success 201 {object} caseResponse
// @Failure 400 {object} errorPayload
// @Failure 500 {object} errorPayload
// @Router /api/cases [post]
func CreateCase(svc service.CaseService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req service.CreateCaseRequest
		if len(c.Body()) > 0 {
			if err := c.BodyParser(&req); err != nil {
				return writeAppError(c, apperr.Wrap(err, apperr.ErrValidation.Code, apperr.ErrValidation.Status, "Invalid request body"))
			}
		}

		created, err := svc.Create(c.UserContext(), req)
		if err != nil {
			return writeAppError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(caseResponse{
			Success: true,
			Case:    created,
			Message: fmt.Sprintf("Case %s created successfully", created.CaseNumber),
		})
	}
}

// UploadDocument handles POST /api/cases/{id}/documents.
//
// @Summary Upload a document
// @Description Stores the file remotely when possible, locally otherwise. At most one main document per case.
// @Tags documents
// @Accept multipart/form-data
// @Produce json
// @Param id path int true "Case ID"
// @Param file formData file true "Document"
// @Param doc_type formData string false "main or attachment" default(attachment)
// @Param notes formData string false "Notes"
// @Success 201 {object} documentResponse
// @Failure 400 {object} errorPayload
// @Failure 404 {object} errorPayload
// @Failure 413 {object} errorPayload
// @Router /api/cases/{id}/documents [post]
func UploadDocument(svc service.CaseService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseCaseID(c)
		if err != nil {
			return writeAppError(c, err)
		}

		fh, err := c.FormFile("file")
		if err != nil {
			return writeAppError(c, apperr.ErrFileRequired)
		}
		if strings.TrimSpace(fh.Filename) == "" {
			return writeAppError(c, apperr.Clone(apperr.ErrFileRequired, "No file selected"))
		}

		f, err := fh.Open()
		if err != nil {
			return writeAppError(c, apperr.Wrap(err, apperr.ErrFileRequired.Code, fiber.StatusBadRequest, "cannot open uploaded file"))
		}
		defer f.Close()

		ct := fh.Header.Get("Content-Type")
		if ct == "" {
			ct = "application/octet-stream"
		}

		doc, err := svc.AttachDocument(c.UserContext(), service.AttachDocumentRequest{
			CaseID:      id,
			Filename:    fh.Filename,
			DocType:     c.FormValue("doc_type"),
			Notes:       c.FormValue("notes"),
			ContentType: ct,
			Size:        fh.Size,
			Content:     f,
		})
		if err != nil {
			return writeAppError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(documentResponse{
			Success:  true,
			Document: doc,
			Message:  "Document uploaded successfully",
		})
	}
}

// UpdateStatus handles PUT /api/cases/{id}/status.
//
// @Summary Change case status
// @Description Records a history row unless the status is unchanged.
// @Tags cases
// @Accept json
// @Produce json
// @Param id path int true "Case ID"
// @Param body body service.ChangeStatusRequest true "New status"
// @Success 200 {object} statusResponse
// @Failure 400 {object} errorPayload
// @Failure 404 {object} errorPayload
// @Router /api/cases/{id}/status [put]
func UpdateStatus(svc service.CaseService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseCaseID(c)
		if err != nil {
			return writeAppError(c, err)
		}

		var req service.ChangeStatusRequest
		if err := c.BodyParser(&req); err != nil {
			return writeAppError(c, apperr.Wrap(err, apperr.ErrValidation.Code, apperr.ErrValidation.Status, "Invalid request body"))
		}

		res, err := svc.ChangeStatus(c.UserContext(), id, req)
		if err != nil {
			return writeAppError(c, err)
		}
		if !res.Changed {
			return c.JSON(statusResponse{Success: true, Message: "Status unchanged", Unchanged: true})
		}
		return c.JSON(statusResponse{
			Success: true,
			Case:    res.Case,
			Message: fmt.Sprintf("Status updated from %s to %s", res.OldStatus, res.NewStatus),
		})
	}
}

// CaseTemplate handles GET /api/cases/{id}/template.
//
// @Summary Download the procurement request spreadsheet
// @Tags reports
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param id path int true "Case ID"
// @Success 200 {file} file
// @Failure 404 {object} errorPayload
// @Router /api/cases/{id}/template [get]
func CaseTemplate(svc service.CaseService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseCaseID(c)
		if err != nil {
			return writeAppError(c, err)
		}
		file, err := svc.Template(c.UserContext(), id)
		if err != nil {
			return writeAppError(c, err)
		}
		return sendFile(c, file)
	}
}

// BlankTemplate handles GET /api/template/blank.
//
// @Summary Download a blank procurement request spreadsheet
// @Tags reports
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success 200 {file} file
// @Router /api/template/blank [get]
func BlankTemplate(svc service.CaseService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		file, err := svc.BlankTemplate(c.UserContext())
		if err != nil {
			return writeAppError(c, err)
		}
		return sendFile(c, file)
	}
}

// CaseSummary handles GET /api/cases/{id}/summary.
//
// @Summary Download a PDF summary of a case
// @Tags reports
// @Produce application/pdf
// @Param id path int true "Case ID"
// @Success 200 {file} file
// @Failure 404 {object} errorPayload
// @Router /api/cases/{id}/summary [get]
func CaseSummary(svc service.CaseService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseCaseID(c)
		if err != nil {
			return writeAppError(c, err)
		}
		file, err := svc.Summary(c.UserContext(), id)
		if err != nil {
			return writeAppError(c, err)
		}
		return sendFile(c, file)
	}
}

// Stats handles GET /api/stats.
//
// @Summary Case counts per status
// @Tags cases
// @Produce json
// @Success 200 {object} statsResponse
// @Router /api/stats [get]
func Stats(svc service.CaseService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		counts, err := svc.Stats(c.UserContext())
		if err != nil {
			return writeAppError(c, err)
		}
		return c.JSON(statsResponse{Success: true, Stats: counts})
	}
}

func sendFile(c *fiber.Ctx, file *service.FileResult) error {
	c.Attachment(file.Filename)
	c.Set(fiber.HeaderContentType, file.ContentType)
	return c.Send(file.Data)
}
