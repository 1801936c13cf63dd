package handlers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"crowdfund.backend/internal/domain/entities"
	domainerrors "crowdfund.backend/internal/domain/errors"
	"crowdfund.backend/internal/interfaces/http/response"
	"crowdfund.backend/internal/usecases"
	"crowdfund.backend/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	documentField = "document"
	docTypeField  = "docType"
)

// DocumentService is implemented by usecases.DocumentUsecase.
type DocumentService interface {
	UploadForProject(ctx context.Context, actor *usecases.Actor, projectID uuid.UUID, upload *usecases.DocumentUpload) (*entities.Document, error)
	UploadForUser(ctx context.Context, actor *usecases.Actor, upload *usecases.DocumentUpload) (*entities.Document, error)
	ListForProject(ctx context.Context, actor *usecases.Actor, projectID uuid.UUID) ([]*entities.Document, error)
	ListForUser(ctx context.Context, actor *usecases.Actor) ([]*entities.Document, error)
	Open(ctx context.Context, actor *usecases.Actor, documentID uuid.UUID) (*entities.Document, io.ReadCloser, error)
	Delete(ctx context.Context, actor *usecases.Actor, documentID uuid.UUID) error
	Verify(ctx context.Context, adminID, documentID uuid.UUID, input *entities.VerifyDocumentInput) (*entities.Document, error)
}

type DocumentHandler struct {
	documents DocumentService
}

func NewDocumentHandler(documents DocumentService) *DocumentHandler {
	return &DocumentHandler{documents: documents}
}

// POST /api/projects/:id/documents
func (h *DocumentHandler) UploadForProject(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	projectID, ok := paramID(c, "id", "project")
	if !ok {
		return
	}
	upload, closeFn, err := readUpload(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	defer closeFn()

	doc, err := h.documents.UploadForProject(c.Request.Context(), a, projectID, upload)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"document": doc})
}

// POST /api/documents
func (h *DocumentHandler) UploadForUser(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	upload, closeFn, err := readUpload(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	defer closeFn()

	doc, err := h.documents.UploadForUser(c.Request.Context(), a, upload)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"document": doc})
}

// GET /api/projects/:id/documents
func (h *DocumentHandler) ListForProject(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	projectID, ok := paramID(c, "id", "project")
	if !ok {
		return
	}
	docs, err := h.documents.ListForProject(c.Request.Context(), a, projectID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"documents": docs})
}

// GET /api/documents
func (h *DocumentHandler) ListForUser(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	docs, err := h.documents.ListForUser(c.Request.Context(), a)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"documents": docs})
}

// GET /api/documents/:id/download
func (h *DocumentHandler) Download(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	documentID, ok := paramID(c, "id", "document")
	if !ok {
		return
	}
	doc, body, err := h.documents.Open(c.Request.Context(), a, documentID)
	if err != nil {
		response.Error(c, err)
		return
	}
	defer func() {
		if err := body.Close(); err != nil {
			logger.Warn(c.Request.Context(), "Failed to close document body", zap.Error(err))
		}
	}()

	c.DataFromReader(http.StatusOK, doc.SizeBytes, doc.MimeType, body, map[string]string{
		"Content-Disposition": fmt.Sprintf("attachment; filename=%q", doc.OriginalFilename),
	})
}

// DELETE /api/documents/:id
func (h *DocumentHandler) Delete(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	documentID, ok := paramID(c, "id", "document")
	if !ok {
		return
	}
	if err := h.documents.Delete(c.Request.Context(), a, documentID); err != nil {
		response.Error(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// PUT /api/documents/:id/verify
func (h *DocumentHandler) Verify(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	documentID, ok := paramID(c, "id", "document")
	if !ok {
		return
	}
	var input entities.VerifyDocumentInput
	if !bindJSON(c, &input) {
		return
	}
	doc, err := h.documents.Verify(c.Request.Context(), a.UserID, documentID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"document": doc})
}

// readUpload turns the multipart form into an upload. A missing file yields a
// nil upload, which the use case rejects.
func readUpload(c *gin.Context) (*usecases.DocumentUpload, func(), error) {
	noop := func() {}
	docType := entities.DocumentType(c.PostForm(docTypeField))

	header, err := c.FormFile(documentField)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, noop, domainerrors.NewAppError(http.StatusRequestEntityTooLarge, domainerrors.CodeFileTooLarge,
				"file exceeds the upload limit", err).WithDetail("maxBytes", usecases.MaxDocumentBytes(docType))
		}
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, noop, nil
		}
		return nil, noop, domainerrors.BadRequest("invalid multipart form")
	}

	file, err := header.Open()
	if err != nil {
		return nil, noop, domainerrors.InternalError(err)
	}
	return &usecases.DocumentUpload{
		DocType:  docType,
		Filename: header.Filename,
		MimeType: header.Header.Get("Content-Type"),
		Size:     header.Size,
		Body:     file,
	}, func() { _ = file.Close() }, nil
}
