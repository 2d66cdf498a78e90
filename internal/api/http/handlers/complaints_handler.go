package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/complaint-service/internal/api/dto"
	"github.com/spec-kit/complaint-service/internal/auth"
	"github.com/spec-kit/complaint-service/internal/domain"
	"github.com/spec-kit/complaint-service/internal/repository"
	"github.com/spec-kit/complaint-service/internal/service"
	apperrors "github.com/spec-kit/complaint-service/pkg/util"
)

// ComplaintsHandler exposes complaint endpoints.
type ComplaintsHandler struct {
	complaints *service.ComplaintService
}

// NewComplaintsHandler constructs the handler.
func NewComplaintsHandler(complaintService *service.ComplaintService) *ComplaintsHandler {
	return &ComplaintsHandler{complaints: complaintService}
}

// Create handles POST /complaints. The gate has already authenticated the
// caller; ownership comes from the token identity, never the payload.
func (h *ComplaintsHandler) Create(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("Access token required")
	}

	var req dto.CreateComplaintRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	complaint, err := h.complaints.Create(c.UserContext(), identity.ID, service.ComplaintCreateInput{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Priority:    req.Priority,
	})
	if err != nil {
		return err
	}

	return respond(c, http.StatusCreated, dto.NewComplaintResponse(complaint), "Complaint submitted successfully")
}

// ListAll handles GET /complaints for administrators, honoring the
// status/priority/category query filters as a conjunction.
func (h *ComplaintsHandler) ListAll(c *fiber.Ctx) error {
	filter := repository.ComplaintFilter{}
	if v := c.Query("status"); v != "" {
		status := domain.ComplaintStatus(v)
		filter.Status = &status
	}
	if v := c.Query("priority"); v != "" {
		priority := domain.ComplaintPriority(v)
		filter.Priority = &priority
	}
	if v := c.Query("category"); v != "" {
		category := domain.ComplaintCategory(v)
		filter.Category = &category
	}

	complaints, err := h.complaints.ListAll(c.UserContext(), filter)
	if err != nil {
		return err
	}

	return respond(c, http.StatusOK, dto.NewComplaintListResponse(complaints), "Complaints retrieved successfully")
}

// ListOwn handles GET /users/complaints: only the caller's complaints,
// scoped by query construction.
func (h *ComplaintsHandler) ListOwn(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("Access token required")
	}

	complaints, err := h.complaints.ListOwnedBy(c.UserContext(), identity.ID)
	if err != nil {
		return err
	}

	return respond(c, http.StatusOK, dto.NewComplaintListResponse(complaints), "User complaints retrieved successfully")
}

// UpdateStatus handles PATCH /complaints/:id for administrators.
func (h *ComplaintsHandler) UpdateStatus(c *fiber.Ctx) error {
	var req dto.UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("Valid status is required", nil)
	}

	complaint, err := h.complaints.UpdateStatus(c.UserContext(), c.Params("id"), req.Status)
	if err != nil {
		return err
	}

	return respond(c, http.StatusOK, dto.NewComplaintResponse(complaint), "Complaint status updated successfully")
}

// Delete handles DELETE /complaints/:id for administrators.
func (h *ComplaintsHandler) Delete(c *fiber.Ctx) error {
	if err := h.complaints.Delete(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return respond(c, http.StatusOK, nil, "Complaint deleted successfully")
}
