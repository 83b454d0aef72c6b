package services

import (
	"context"
	"errors"
	"time"

	"loopfreight/internal/adapters/persistence/models"
	"loopfreight/internal/adapters/persistence/repositories"

	"gorm.io/gorm"
)

// Assignment service errors
var (
	ErrAssignmentNotFound       = errors.New("assignment not found")
	ErrTruckInUse               = errors.New("truck is already assigned to another route")
	ErrArrivalNotAfterDeparture = errors.New("expected arrival time must be after departure time")
	ErrBadTimeFormat            = errors.New("invalid time format")
	ErrNotAllowed               = errors.New("caller is not allowed to perform this action")
	ErrNotIncoming              = errors.New("assignment is not in incoming status")
	ErrAlreadyCompleted         = errors.New("assignment is already completed")
)

// Caller is the authenticated identity every operation is evaluated against.
// TerritoryCity is empty for admins.
type Caller struct {
	ID            string
	Role          string
	TerritoryCity string
}

// IsAdmin reports whether the caller is an administrator
func (c Caller) IsAdmin() bool {
	return c.Role == models.RoleAdmin
}

// IsOfficer reports whether the caller is a territory officer
func (c Caller) IsOfficer() bool {
	return c.Role == models.RoleTerritoryOfficer
}

// AssignmentService handles the truck assignment lifecycle
type AssignmentService struct {
	assignmentRepo repositories.AssignmentRepository
}

// NewAssignmentService creates a new assignment service
func NewAssignmentService(assignmentRepo repositories.AssignmentRepository) *AssignmentService {
	return &AssignmentService{
		assignmentRepo: assignmentRepo,
	}
}

// CreateAssignmentInput represents create assignment input. Timestamps arrive
// as strings and are parsed here.
type CreateAssignmentInput struct {
	TruckNumber         string `json:"truck_number"`
	OriginCity          string `json:"origin_city"`
	DestinationCity     string `json:"destination_city"`
	GoodsType           string `json:"goods_type"`
	DepartureTime       string `json:"departure_time"`
	ExpectedArrivalTime string `json:"expected_arrival_time"`
}

// UpdateAssignmentInput represents partial update input (admin tooling).
// Nil fields are left unchanged.
type UpdateAssignmentInput struct {
	TruckNumber         *string `json:"truck_number"`
	OriginCity          *string `json:"origin_city"`
	DestinationCity     *string `json:"destination_city"`
	GoodsType           *string `json:"goods_type"`
	DepartureTime       *string `json:"departure_time"`
	ExpectedArrivalTime *string `json:"expected_arrival_time"`
	Status              *string `json:"status"`
}

// Accepted timestamp layouts, most specific first. Minute precision is enough
// for dispatch planning, so seconds are optional.
var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04Z07:00",
	"2006-01-02T15:04",
}

// parseTimestamp parses a request-supplied timestamp string
func parseTimestamp(value string) (time.Time, error) {
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, ErrBadTimeFormat
}

// canView decides read visibility: admins see everything, officers see what
// they created and what touches their territory
func canView(caller Caller, a *models.TruckAssignment) bool {
	if caller.IsAdmin() {
		return true
	}
	if a.AssignedByUserID == caller.ID {
		return true
	}
	if caller.TerritoryCity != "" &&
		(a.OriginCity == caller.TerritoryCity || a.DestinationCity == caller.TerritoryCity) {
		return true
	}
	return false
}

// canComplete decides who may mark an assignment delivered: admins, the
// creating officer, or the officer at the destination
func canComplete(caller Caller, a *models.TruckAssignment) bool {
	if caller.IsAdmin() {
		return true
	}
	if !caller.IsOfficer() {
		return false
	}
	if a.AssignedByUserID == caller.ID {
		return true
	}
	return caller.TerritoryCity != "" && a.DestinationCity == caller.TerritoryCity
}

// Create creates a new assignment with status ASSIGNED.
// The truck-in-use check is a read before the insert, so two concurrent
// creates for the same truck can both pass it; single-writer semantics only.
func (s *AssignmentService) Create(ctx context.Context, caller Caller, input *CreateAssignmentInput) (*models.TruckAssignment, error) {
	if !caller.IsAdmin() && !caller.IsOfficer() {
		return nil, ErrNotAllowed
	}

	departure, err := parseTimestamp(input.DepartureTime)
	if err != nil {
		return nil, err
	}
	arrival, err := parseTimestamp(input.ExpectedArrivalTime)
	if err != nil {
		return nil, err
	}
	if !arrival.After(departure) {
		return nil, ErrArrivalNotAfterDeparture
	}

	inUse, err := s.assignmentRepo.HasActiveByTruck(ctx, input.TruckNumber)
	if err != nil {
		return nil, err
	}
	if inUse {
		return nil, ErrTruckInUse
	}

	assignment := &models.TruckAssignment{
		TruckNumber:         input.TruckNumber,
		OriginCity:          input.OriginCity,
		DestinationCity:     input.DestinationCity,
		GoodsType:           input.GoodsType,
		DepartureTime:       departure,
		ExpectedArrivalTime: arrival,
		Status:              models.StatusAssigned,
		AssignedByUserID:    caller.ID,
	}

	if err := s.assignmentRepo.Create(ctx, assignment); err != nil {
		return nil, err
	}

	// Reload for the assigner relation
	return s.assignmentRepo.GetByID(ctx, assignment.ID)
}

// List lists assignments scoped by the caller's role: admins see everything,
// officers see a city's traffic when a filter is given, otherwise their own
// assignments
func (s *AssignmentService) List(ctx context.Context, caller Caller, city string) ([]*models.TruckAssignment, error) {
	switch {
	case caller.IsAdmin():
		return s.assignmentRepo.ListAll(ctx)
	case caller.IsOfficer():
		if city != "" {
			return s.assignmentRepo.ListByCity(ctx, city)
		}
		return s.assignmentRepo.ListByAssigner(ctx, caller.ID)
	default:
		return nil, ErrNotAllowed
	}
}

// GetByID gets a single assignment, enforcing read visibility
func (s *AssignmentService) GetByID(ctx context.Context, caller Caller, id string) (*models.TruckAssignment, error) {
	assignment, err := s.assignmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAssignmentNotFound
		}
		return nil, err
	}

	if !canView(caller, assignment) {
		return nil, ErrNotAllowed
	}

	return assignment, nil
}

// ListIncoming promotes overdue ASSIGNED arrivals at the city to INCOMING and
// returns the city's INCOMING and REASSIGNED assignments, soonest first.
// The promotion runs on every call; re-running it when nothing is overdue is
// a no-op, so concurrent pollers are safe.
func (s *AssignmentService) ListIncoming(ctx context.Context, caller Caller, city string, now time.Time) ([]*models.TruckAssignment, error) {
	if !caller.IsOfficer() {
		return nil, ErrNotAllowed
	}

	if _, err := s.assignmentRepo.PromoteArrived(ctx, city, now); err != nil {
		return nil, err
	}

	return s.assignmentRepo.ListIncomingAtCity(ctx, city)
}

// Reassign releases an INCOMING truck back into the pool at its destination.
// Only an officer whose territory is the destination may do it. The recorded
// reassigner id is taken from the request rather than the caller identity,
// which allows attributing the release to another named officer.
func (s *AssignmentService) Reassign(ctx context.Context, caller Caller, id, reassignedByUserID string) (*models.TruckAssignment, error) {
	if !caller.IsOfficer() {
		return nil, ErrNotAllowed
	}

	assignment, err := s.assignmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAssignmentNotFound
		}
		return nil, err
	}

	if assignment.Status != models.StatusIncoming {
		return nil, ErrNotIncoming
	}
	if caller.TerritoryCity == "" || assignment.DestinationCity != caller.TerritoryCity {
		return nil, ErrNotAllowed
	}

	assignment.Status = models.StatusReassigned
	assignment.ReassignedByUserID = &reassignedByUserID

	if err := s.assignmentRepo.Update(ctx, assignment); err != nil {
		return nil, err
	}

	return s.assignmentRepo.GetByID(ctx, id)
}

// Complete terminally marks an assignment delivered. COMPLETED is final; no
// operation transitions out of it.
func (s *AssignmentService) Complete(ctx context.Context, caller Caller, id string) (*models.TruckAssignment, error) {
	assignment, err := s.assignmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAssignmentNotFound
		}
		return nil, err
	}

	if !canComplete(caller, assignment) {
		return nil, ErrNotAllowed
	}
	if assignment.Status == models.StatusCompleted {
		return nil, ErrAlreadyCompleted
	}

	assignment.Status = models.StatusCompleted

	if err := s.assignmentRepo.Update(ctx, assignment); err != nil {
		return nil, err
	}

	return s.assignmentRepo.GetByID(ctx, id)
}

// Update applies a partial field replacement (admin tooling). Supplied
// timestamps are re-parsed; omitted fields are left unchanged.
func (s *AssignmentService) Update(ctx context.Context, id string, input *UpdateAssignmentInput) (*models.TruckAssignment, error) {
	assignment, err := s.assignmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAssignmentNotFound
		}
		return nil, err
	}

	if input.TruckNumber != nil {
		assignment.TruckNumber = *input.TruckNumber
	}
	if input.OriginCity != nil {
		assignment.OriginCity = *input.OriginCity
	}
	if input.DestinationCity != nil {
		assignment.DestinationCity = *input.DestinationCity
	}
	if input.GoodsType != nil {
		assignment.GoodsType = *input.GoodsType
	}
	if input.DepartureTime != nil {
		departure, err := parseTimestamp(*input.DepartureTime)
		if err != nil {
			return nil, err
		}
		assignment.DepartureTime = departure
	}
	if input.ExpectedArrivalTime != nil {
		arrival, err := parseTimestamp(*input.ExpectedArrivalTime)
		if err != nil {
			return nil, err
		}
		assignment.ExpectedArrivalTime = arrival
	}
	if input.Status != nil {
		assignment.Status = *input.Status
	}

	if err := s.assignmentRepo.Update(ctx, assignment); err != nil {
		return nil, err
	}

	return s.assignmentRepo.GetByID(ctx, id)
}

// Delete removes an assignment (admin tooling)
func (s *AssignmentService) Delete(ctx context.Context, id string) error {
	_, err := s.assignmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAssignmentNotFound
		}
		return err
	}

	return s.assignmentRepo.Delete(ctx, id)
}
