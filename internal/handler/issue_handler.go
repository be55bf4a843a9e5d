package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"civicfix/internal/domain"
	"civicfix/internal/middleware"
	"civicfix/internal/service"
)

// IssueHandler handles citizen issue reporting and officer queue endpoints.
type IssueHandler struct {
	issueService service.IssueService
}

// NewIssueHandler creates a new IssueHandler.
func NewIssueHandler(issueService service.IssueService) *IssueHandler {
	return &IssueHandler{issueService: issueService}
}

type reportIssueRequest struct {
	Image      string  `json:"image" binding:"required"`
	VoiceText  string  `json:"voice_text"`
	Language   string  `json:"language"`
	Latitude   float64 `json:"latitude" binding:"required"`
	Longitude  float64 `json:"longitude" binding:"required"`
	ReportedAt string  `json:"reported_at"`
}

// Report handles POST /api/v1/issues
func (h *IssueHandler) Report(c *gin.Context) {
	citizenID, err := middleware.GetUserID(c)
	if err != nil {
		RespondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "missing user context")
		return
	}

	var req reportIssueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	var reportedAt time.Time
	if req.ReportedAt != "" {
		reportedAt, err = time.Parse(time.RFC3339, req.ReportedAt)
		if err != nil {
			RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "reported_at must be RFC3339")
			return
		}
	}

	issue, err := h.issueService.Report(c.Request.Context(), service.ReportIssueInput{
		CitizenID:   citizenID,
		ImageBase64: req.Image,
		VoiceText:   req.VoiceText,
		Language:    req.Language,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
		ReportedAt:  reportedAt,
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, issue)
}

// ListMine handles GET /api/v1/issues/mine
func (h *IssueHandler) ListMine(c *gin.Context) {
	citizenID, err := middleware.GetUserID(c)
	if err != nil {
		RespondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "missing user context")
		return
	}

	issues, err := h.issueService.ListMine(c.Request.Context(), citizenID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, issues)
}

// Get handles GET /api/v1/issues/:id
func (h *IssueHandler) Get(c *gin.Context) {
	citizenID, err := middleware.GetUserID(c)
	if err != nil {
		RespondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "missing user context")
		return
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "issue id must be an integer")
		return
	}

	issue, err := h.issueService.GetForCitizen(c.Request.Context(), id, citizenID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, issue)
}

// DepartmentQueue handles GET /api/v1/officer/issues
func (h *IssueHandler) DepartmentQueue(c *gin.Context) {
	officerID, err := middleware.GetUserID(c)
	if err != nil {
		RespondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "missing user context")
		return
	}

	issues, err := h.issueService.ListForDepartment(c.Request.Context(), middleware.GetDepartment(c), officerID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, issues)
}

type updateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdateStatus handles PATCH /api/v1/officer/issues/:id/status
func (h *IssueHandler) UpdateStatus(c *gin.Context) {
	officerID, err := middleware.GetUserID(c)
	if err != nil {
		RespondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "missing user context")
		return
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "issue id must be an integer")
		return
	}

	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	issue, err := h.issueService.UpdateStatus(c.Request.Context(), id, domain.IssueStatus(req.Status), officerID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, issue)
}
