package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"civicfix/internal/service"
)

// AdminHandler handles back-office endpoints for officer review and issue
// oversight.
type AdminHandler struct {
	adminService service.AdminService
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(adminService service.AdminService) *AdminHandler {
	return &AdminHandler{adminService: adminService}
}

// ListOfficers handles GET /api/v1/admin/officers
func (h *AdminHandler) ListOfficers(c *gin.Context) {
	officers, err := h.adminService.ListOfficers(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, officers)
}

// ApproveOfficer handles POST /api/v1/admin/officers/:id/approve
func (h *AdminHandler) ApproveOfficer(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "officer id must be a UUID")
		return
	}

	officer, err := h.adminService.ApproveOfficer(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, officer)
}

// RejectOfficer handles POST /api/v1/admin/officers/:id/reject
func (h *AdminHandler) RejectOfficer(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "officer id must be a UUID")
		return
	}

	officer, err := h.adminService.RejectOfficer(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, officer)
}

// ListIssues handles GET /api/v1/admin/issues
func (h *AdminHandler) ListIssues(c *gin.Context) {
	issues, err := h.adminService.ListIssues(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, issues)
}

// ExportOfficers handles GET /api/v1/admin/officers/export?format=csv|xlsx
func (h *AdminHandler) ExportOfficers(c *gin.Context) {
	format := service.ExportFormat(c.DefaultQuery("format", "csv"))

	out, err := h.adminService.ExportOfficers(c.Request.Context(), format)
	if err != nil {
		HandleError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", out.Filename))
	c.Data(http.StatusOK, out.ContentType, out.Data)
}
