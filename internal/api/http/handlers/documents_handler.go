package handlers

import (
	"io"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/taxease-service/internal/api/dto"
	"github.com/spec-kit/taxease-service/internal/auth"
	"github.com/spec-kit/taxease-service/internal/service"
	apperrors "github.com/spec-kit/taxease-service/pkg/util"
)

// DocumentsHandler exposes document upload and retrieval endpoints.
type DocumentsHandler struct {
	docs *service.DocumentService
}

// NewDocumentsHandler constructs handler.
func NewDocumentsHandler(docService *service.DocumentService) *DocumentsHandler {
	return &DocumentsHandler{docs: docService}
}

// Upload handles POST /api/documents (multipart, field "file").
func (h *DocumentsHandler) Upload(c *fiber.Ctx) error {
	claims, ok := auth.ClaimsFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return apperrors.NewValidationError("no file uploaded", nil)
	}
	if fileHeader.Size > service.MaxDocumentSize {
		return apperrors.NewValidationError("file exceeds 10 MiB limit", nil)
	}

	file, err := fileHeader.Open()
	if err != nil {
		return apperrors.NewInternalError(err)
	}
	defer file.Close()

	body, err := io.ReadAll(io.LimitReader(file, service.MaxDocumentSize+1))
	if err != nil {
		return apperrors.NewInternalError(err)
	}

	var taxProfileID *string
	if v := c.FormValue("tax_profile_id"); v != "" {
		taxProfileID = &v
	}

	doc, err := h.docs.Upload(c.UserContext(), claims.UserID(), service.DocumentUpload{
		TaxProfileID: taxProfileID,
		Type:         c.FormValue("type"),
		OriginalName: fileHeader.Filename,
		ContentType:  fileHeader.Header.Get("Content-Type"),
		Body:         body,
	})
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"msg":      "Document uploaded successfully",
		"document": dto.NewDocumentResponse(doc),
	})
}

// List handles GET /api/documents.
func (h *DocumentsHandler) List(c *fiber.Ctx) error {
	claims, ok := auth.ClaimsFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	docs, err := h.docs.List(c.UserContext(), claims.UserID())
	if err != nil {
		return err
	}

	out := make([]dto.DocumentResponse, 0, len(docs))
	for _, doc := range docs {
		out = append(out, dto.NewDocumentResponse(doc))
	}
	return c.JSON(fiber.Map{"documents": out})
}

// DownloadURL handles GET /api/documents/:id/download-url.
func (h *DocumentsHandler) DownloadURL(c *fiber.Ctx) error {
	claims, ok := auth.ClaimsFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	url, err := h.docs.DownloadURL(c.UserContext(), claims.UserID(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(dto.DownloadURLResponse{URL: url})
}
