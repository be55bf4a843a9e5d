package handler

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"civicfix/internal/config"
	"civicfix/internal/domain"
	"civicfix/internal/service"
)

// OfficerHandler handles officer registration endpoints.
type OfficerHandler struct {
	onboarding service.OnboardingService
	s3cfg      *config.S3Config
}

// NewOfficerHandler creates a new OfficerHandler.
func NewOfficerHandler(onboarding service.OnboardingService, s3cfg *config.S3Config) *OfficerHandler {
	return &OfficerHandler{onboarding: onboarding, s3cfg: s3cfg}
}

// Register handles POST /api/v1/officers/register. The supporting document is
// a multipart file; it is staged to a temp file that the verification
// pipeline owns and deletes.
func (h *OfficerHandler) Register(c *gin.Context) {
	name := strings.TrimSpace(c.PostForm("name"))
	email := strings.TrimSpace(strings.ToLower(c.PostForm("email")))
	phone := strings.TrimSpace(c.PostForm("phone"))
	department := strings.TrimSpace(c.PostForm("department"))
	designation := strings.TrimSpace(c.PostForm("designation"))

	if name == "" || email == "" || department == "" {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "name, email, and department fields are required")
		return
	}

	file, header, err := c.Request.FormFile("document")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "MISSING_FILE", "document field is required")
		return
	}
	defer func() { _ = file.Close() }()

	doc, err := h.stageDocument(file, header)
	if err != nil {
		HandleError(c, err)
		return
	}

	user, err := h.onboarding.Register(c.Request.Context(), service.OnboardingInput{
		Name:        name,
		Email:       email,
		Phone:       phone,
		Department:  department,
		Designation: designation,
		Document:    doc,
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, user)
}

// stageDocument validates the uploaded file and writes it to a temp file.
// On success the caller (via the onboarding pipeline) owns the temp file.
func (h *OfficerHandler) stageDocument(file multipart.File, header *multipart.FileHeader) (domain.UploadedDocument, error) {
	var doc domain.UploadedDocument

	// Validate file extension
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(header.Filename), "."))
	fileType, ok := domain.AllowedExtensions[ext]
	if !ok {
		return doc, domain.ErrUnsupportedFileType
	}

	// Validate file size
	maxBytes := h.s3cfg.MaxFileSizeMB * 1024 * 1024
	if header.Size > maxBytes {
		return doc, domain.ErrFileTooLarge
	}

	// Read first 512 bytes for magic-byte content type detection
	buf := make([]byte, 512)
	n, err := file.Read(buf)
	if err != nil && err != io.EOF {
		return doc, fmt.Errorf("reading file header: %w", err)
	}
	detectedType := http.DetectContentType(buf[:n])
	if _, valid := domain.AllowedContentTypes[detectedType]; !valid {
		return doc, domain.ErrUnsupportedFileType
	}

	// Seek back to beginning before staging
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return doc, fmt.Errorf("seeking file: %w", err)
	}

	tmp, err := os.CreateTemp("", "officer-doc-*."+ext)
	if err != nil {
		return doc, fmt.Errorf("creating temp file: %w", err)
	}
	if _, err := io.Copy(tmp, file); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return doc, fmt.Errorf("staging document: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return doc, fmt.Errorf("closing temp file: %w", err)
	}

	return domain.UploadedDocument{
		Path:         tmp.Name(),
		ContentType:  domain.AllowedFileTypes[fileType],
		OriginalName: header.Filename,
	}, nil
}
