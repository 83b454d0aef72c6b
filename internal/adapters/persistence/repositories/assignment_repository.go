package repositories

import (
	"context"
	"time"

	"loopfreight/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// assignmentRepository implements AssignmentRepository interface
type assignmentRepository struct {
	db *gorm.DB
}

// NewAssignmentRepository creates a new assignment repository
func NewAssignmentRepository(db *gorm.DB) AssignmentRepository {
	return &assignmentRepository{db: db}
}

// withUsers preloads the assigner and reassigner relations
func (r *assignmentRepository) withUsers(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("AssignedByUser").
		Preload("ReassignedByUser")
}

// Create creates a new assignment
func (r *assignmentRepository) Create(ctx context.Context, assignment *models.TruckAssignment) error {
	return r.db.WithContext(ctx).Create(assignment).Error
}

// GetByID gets an assignment by ID with its user relations
func (r *assignmentRepository) GetByID(ctx context.Context, id string) (*models.TruckAssignment, error) {
	var assignment models.TruckAssignment
	err := r.withUsers(ctx).Where("id = ?", id).First(&assignment).Error
	if err != nil {
		return nil, err
	}
	return &assignment, nil
}

// Update updates an assignment
func (r *assignmentRepository) Update(ctx context.Context, assignment *models.TruckAssignment) error {
	return r.db.WithContext(ctx).Save(assignment).Error
}

// Delete deletes an assignment
func (r *assignmentRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&models.TruckAssignment{}, "id = ?", id).Error
}

// ListAll lists every assignment, newest first
func (r *assignmentRepository) ListAll(ctx context.Context) ([]*models.TruckAssignment, error) {
	var assignments []*models.TruckAssignment
	err := r.withUsers(ctx).
		Order("created_at DESC").
		Find(&assignments).Error
	if err != nil {
		return nil, err
	}
	return assignments, nil
}

// ListByCity lists assignments touching a city as origin or destination, newest first
func (r *assignmentRepository) ListByCity(ctx context.Context, city string) ([]*models.TruckAssignment, error) {
	var assignments []*models.TruckAssignment
	err := r.withUsers(ctx).
		Where("origin_city = ? OR destination_city = ?", city, city).
		Order("created_at DESC").
		Find(&assignments).Error
	if err != nil {
		return nil, err
	}
	return assignments, nil
}

// ListByAssigner lists assignments created by a user, newest first
func (r *assignmentRepository) ListByAssigner(ctx context.Context, userID string) ([]*models.TruckAssignment, error) {
	var assignments []*models.TruckAssignment
	err := r.withUsers(ctx).
		Where("assigned_by_user_id = ?", userID).
		Order("created_at DESC").
		Find(&assignments).Error
	if err != nil {
		return nil, err
	}
	return assignments, nil
}

// ListIncomingAtCity lists INCOMING/REASSIGNED assignments bound for a city,
// soonest expected arrival first
func (r *assignmentRepository) ListIncomingAtCity(ctx context.Context, city string) ([]*models.TruckAssignment, error) {
	var assignments []*models.TruckAssignment
	err := r.withUsers(ctx).
		Where("destination_city = ?", city).
		Where("status IN ?", []string{models.StatusIncoming, models.StatusReassigned}).
		Order("expected_arrival_time ASC").
		Find(&assignments).Error
	if err != nil {
		return nil, err
	}
	return assignments, nil
}

// HasActiveByTruck checks whether the truck already has an active assignment
func (r *assignmentRepository) HasActiveByTruck(ctx context.Context, truckNumber string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.TruckAssignment{}).
		Where("truck_number = ?", truckNumber).
		Where("status IN ?", []string{models.StatusAssigned, models.StatusIncoming}).
		Count(&count).Error
	return count > 0, err
}

// PromoteArrived promotes overdue ASSIGNED assignments bound for a city to INCOMING
func (r *assignmentRepository) PromoteArrived(ctx context.Context, city string, now time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.TruckAssignment{}).
		Where("destination_city = ?", city).
		Where("status = ?", models.StatusAssigned).
		Where("expected_arrival_time <= ?", now).
		Update("status", models.StatusIncoming)
	return result.RowsAffected, result.Error
}

// PromoteArrivedAll promotes overdue ASSIGNED assignments everywhere to INCOMING
func (r *assignmentRepository) PromoteArrivedAll(ctx context.Context, now time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.TruckAssignment{}).
		Where("status = ?", models.StatusAssigned).
		Where("expected_arrival_time <= ?", now).
		Update("status", models.StatusIncoming)
	return result.RowsAffected, result.Error
}
