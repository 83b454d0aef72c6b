package handlers

import (
	"errors"
	"strings"
	"time"

	"loopfreight/internal/adapters/persistence/models"
	"loopfreight/internal/core/services"
	"loopfreight/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// AssignmentHandler handles truck assignment endpoints
type AssignmentHandler struct {
	assignmentService *services.AssignmentService
}

// NewAssignmentHandler creates a new assignment handler
func NewAssignmentHandler(assignmentService *services.AssignmentService) *AssignmentHandler {
	return &AssignmentHandler{
		assignmentService: assignmentService,
	}
}

// CreateAssignmentRequest represents create assignment request body
type CreateAssignmentRequest struct {
	TruckNumber         string `json:"truck_number"`
	OriginCity          string `json:"origin_city"`
	DestinationCity     string `json:"destination_city"`
	GoodsType           string `json:"goods_type"`
	DepartureTime       string `json:"departure_time"`
	ExpectedArrivalTime string `json:"expected_arrival_time"`
}

// ReassignRequest represents reassign request body
type ReassignRequest struct {
	ReassignedByUserID string `json:"reassigned_by_user_id"`
}

// UpdateAssignmentRequest represents update assignment request body
type UpdateAssignmentRequest struct {
	TruckNumber         *string `json:"truck_number"`
	OriginCity          *string `json:"origin_city"`
	DestinationCity     *string `json:"destination_city"`
	GoodsType           *string `json:"goods_type"`
	DepartureTime       *string `json:"departure_time"`
	ExpectedArrivalTime *string `json:"expected_arrival_time"`
	Status              *string `json:"status"`
}

// callerFromCtx builds the caller identity from locals set by the auth middleware
func callerFromCtx(c *fiber.Ctx) (services.Caller, bool) {
	userID, ok := c.Locals("userID").(string)
	if !ok || userID == "" {
		return services.Caller{}, false
	}
	role, _ := c.Locals("role").(string)
	territoryCity, _ := c.Locals("territoryCity").(string)
	return services.Caller{
		ID:            userID,
		Role:          role,
		TerritoryCity: territoryCity,
	}, true
}

// assignmentResponses converts a slice of assignments to response shape
func assignmentResponses(assignments []*models.TruckAssignment) []*models.AssignmentResponse {
	out := make([]*models.AssignmentResponse, 0, len(assignments))
	for _, a := range assignments {
		out = append(out, a.ToResponse())
	}
	return out
}

// Create handles assignment creation
// @Summary Create truck assignment
// @Description Dispatch a truck on a new route with status ASSIGNED
// @Tags Assignments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body CreateAssignmentRequest true "Assignment data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /assignments [post]
func (h *AssignmentHandler) Create(c *fiber.Ctx) error {
	caller, ok := callerFromCtx(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	var req CreateAssignmentRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	// Validate required fields
	if req.TruckNumber == "" {
		return response.BadRequest(c, "Truck number is required")
	}
	if req.OriginCity == "" {
		return response.BadRequest(c, "Origin city is required")
	}
	if req.DestinationCity == "" {
		return response.BadRequest(c, "Destination city is required")
	}
	if req.GoodsType == "" {
		return response.BadRequest(c, "Goods type is required")
	}
	if req.DepartureTime == "" {
		return response.BadRequest(c, "Departure time is required")
	}
	if req.ExpectedArrivalTime == "" {
		return response.BadRequest(c, "Expected arrival time is required")
	}

	input := &services.CreateAssignmentInput{
		TruckNumber:         strings.TrimSpace(req.TruckNumber),
		OriginCity:          strings.TrimSpace(req.OriginCity),
		DestinationCity:     strings.TrimSpace(req.DestinationCity),
		GoodsType:           strings.TrimSpace(req.GoodsType),
		DepartureTime:       req.DepartureTime,
		ExpectedArrivalTime: req.ExpectedArrivalTime,
	}

	assignment, err := h.assignmentService.Create(c.Context(), caller, input)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrBadTimeFormat):
			return response.BadRequest(c, "Invalid timestamp format")
		case errors.Is(err, services.ErrArrivalNotAfterDeparture):
			return response.BadRequest(c, "Expected arrival time must be after departure time")
		case errors.Is(err, services.ErrTruckInUse):
			return response.BadRequest(c, "Truck already has an active assignment")
		case errors.Is(err, services.ErrNotAllowed):
			return response.Forbidden(c, "You are not allowed to create assignments")
		default:
			return response.InternalServerError(c, "Failed to create assignment")
		}
	}

	return response.Created(c, "Assignment created successfully", assignment.ToResponse())
}

// List handles assignment listing scoped by role
// @Summary List truck assignments
// @Description Admins see all assignments, officers see a city's traffic or their own
// @Tags Assignments
// @Produce json
// @Security BearerAuth
// @Param city query string false "City filter (officers only)"
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /assignments [get]
func (h *AssignmentHandler) List(c *fiber.Ctx) error {
	caller, ok := callerFromCtx(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	city := strings.TrimSpace(c.Query("city"))

	assignments, err := h.assignmentService.List(c.Context(), caller, city)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNotAllowed):
			return response.Forbidden(c, "You are not allowed to list assignments")
		default:
			return response.InternalServerError(c, "Failed to list assignments")
		}
	}

	return response.Success(c, "Assignments retrieved successfully", assignmentResponses(assignments))
}

// ListIncoming handles the incoming-board view for a destination city
// @Summary List incoming assignments for a city
// @Description Promote overdue arrivals to INCOMING and return the city's incoming board
// @Tags Assignments
// @Produce json
// @Security BearerAuth
// @Param city query string true "Destination city"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /assignments/incoming [get]
func (h *AssignmentHandler) ListIncoming(c *fiber.Ctx) error {
	caller, ok := callerFromCtx(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	city := strings.TrimSpace(c.Query("city"))
	if city == "" {
		return response.BadRequest(c, "City is required")
	}

	assignments, err := h.assignmentService.ListIncoming(c.Context(), caller, city, time.Now())
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNotAllowed):
			return response.Forbidden(c, "Only territory officers can view the incoming board")
		default:
			return response.InternalServerError(c, "Failed to list incoming assignments")
		}
	}

	return response.Success(c, "Incoming assignments retrieved successfully", assignmentResponses(assignments))
}

// GetByID handles fetching a single assignment
// @Summary Get truck assignment
// @Description Get a single assignment by id
// @Tags Assignments
// @Produce json
// @Security BearerAuth
// @Param id path string true "Assignment ID"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /assignments/{id} [get]
func (h *AssignmentHandler) GetByID(c *fiber.Ctx) error {
	caller, ok := callerFromCtx(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	assignment, err := h.assignmentService.GetByID(c.Context(), caller, c.Params("id"))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrAssignmentNotFound):
			return response.NotFound(c, "Assignment not found")
		case errors.Is(err, services.ErrNotAllowed):
			return response.Forbidden(c, "You are not allowed to view this assignment")
		default:
			return response.InternalServerError(c, "Failed to get assignment")
		}
	}

	return response.Success(c, "Assignment retrieved successfully", assignment.ToResponse())
}

// Reassign handles releasing an incoming truck back into the pool
// @Summary Reassign truck assignment
// @Description Mark an INCOMING assignment as REASSIGNED at its destination
// @Tags Assignments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Assignment ID"
// @Param body body ReassignRequest true "Reassigner"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /assignments/{id}/reassign [put]
func (h *AssignmentHandler) Reassign(c *fiber.Ctx) error {
	caller, ok := callerFromCtx(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	var req ReassignRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if req.ReassignedByUserID == "" {
		return response.BadRequest(c, "Reassigned by user id is required")
	}

	assignment, err := h.assignmentService.Reassign(c.Context(), caller, c.Params("id"), req.ReassignedByUserID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrAssignmentNotFound):
			return response.NotFound(c, "Assignment not found")
		case errors.Is(err, services.ErrNotIncoming):
			return response.BadRequest(c, "Assignment is not in incoming status")
		case errors.Is(err, services.ErrNotAllowed):
			return response.Forbidden(c, "Only the destination territory officer can reassign this truck")
		default:
			return response.InternalServerError(c, "Failed to reassign assignment")
		}
	}

	return response.Success(c, "Assignment reassigned successfully", assignment.ToResponse())
}

// Complete handles marking an assignment delivered
// @Summary Complete truck assignment
// @Description Terminally mark an assignment as COMPLETED
// @Tags Assignments
// @Produce json
// @Security BearerAuth
// @Param id path string true "Assignment ID"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /assignments/{id}/complete [put]
func (h *AssignmentHandler) Complete(c *fiber.Ctx) error {
	caller, ok := callerFromCtx(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	assignment, err := h.assignmentService.Complete(c.Context(), caller, c.Params("id"))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrAssignmentNotFound):
			return response.NotFound(c, "Assignment not found")
		case errors.Is(err, services.ErrNotAllowed):
			return response.Forbidden(c, "You are not allowed to complete this assignment")
		case errors.Is(err, services.ErrAlreadyCompleted):
			return response.BadRequest(c, "Assignment is already completed")
		default:
			return response.InternalServerError(c, "Failed to complete assignment")
		}
	}

	return response.Success(c, "Assignment completed successfully", assignment.ToResponse())
}

// Update handles admin assignment correction
// @Summary Update truck assignment
// @Description Partially update assignment fields (admin only)
// @Tags Assignments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Assignment ID"
// @Param body body UpdateAssignmentRequest true "Fields to update"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /assignments/{id} [put]
func (h *AssignmentHandler) Update(c *fiber.Ctx) error {
	var req UpdateAssignmentRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	input := &services.UpdateAssignmentInput{
		TruckNumber:         req.TruckNumber,
		OriginCity:          req.OriginCity,
		DestinationCity:     req.DestinationCity,
		GoodsType:           req.GoodsType,
		DepartureTime:       req.DepartureTime,
		ExpectedArrivalTime: req.ExpectedArrivalTime,
		Status:              req.Status,
	}

	assignment, err := h.assignmentService.Update(c.Context(), c.Params("id"), input)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrAssignmentNotFound):
			return response.NotFound(c, "Assignment not found")
		case errors.Is(err, services.ErrBadTimeFormat):
			return response.BadRequest(c, "Invalid timestamp format")
		default:
			return response.InternalServerError(c, "Failed to update assignment")
		}
	}

	return response.Success(c, "Assignment updated successfully", assignment.ToResponse())
}

// Delete handles admin assignment removal
// @Summary Delete truck assignment
// @Description Remove an assignment record (admin only)
// @Tags Assignments
// @Produce json
// @Security BearerAuth
// @Param id path string true "Assignment ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /assignments/{id} [delete]
func (h *AssignmentHandler) Delete(c *fiber.Ctx) error {
	if err := h.assignmentService.Delete(c.Context(), c.Params("id")); err != nil {
		switch {
		case errors.Is(err, services.ErrAssignmentNotFound):
			return response.NotFound(c, "Assignment not found")
		default:
			return response.InternalServerError(c, "Failed to delete assignment")
		}
	}

	return response.Success(c, "Assignment deleted successfully", nil)
}
