package repositories

import (
	"context"
	"time"

	"loopfreight/internal/adapters/persistence/models"
)

// UserRepository defines user repository interface
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, offset, limit int) ([]*models.User, int64, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	EmailTakenByOther(ctx context.Context, email, excludeID string) (bool, error)
}

// RefreshTokenRepository defines refresh token repository interface
type RefreshTokenRepository interface {
	Create(ctx context.Context, token *models.RefreshToken) error
	GetByTokenHash(ctx context.Context, tokenHash string) (*models.RefreshToken, error)
	Revoke(ctx context.Context, id uint) error
	RevokeByTokenHash(ctx context.Context, tokenHash string) error
	RevokeAllByUserID(ctx context.Context, userID string) error
	DeleteExpired(ctx context.Context) error
}

// AssignmentRepository defines truck assignment repository interface
type AssignmentRepository interface {
	Create(ctx context.Context, assignment *models.TruckAssignment) error
	GetByID(ctx context.Context, id string) (*models.TruckAssignment, error)
	Update(ctx context.Context, assignment *models.TruckAssignment) error
	Delete(ctx context.Context, id string) error

	// List queries, newest first
	ListAll(ctx context.Context) ([]*models.TruckAssignment, error)
	ListByCity(ctx context.Context, city string) ([]*models.TruckAssignment, error)
	ListByAssigner(ctx context.Context, userID string) ([]*models.TruckAssignment, error)

	// ListIncomingAtCity returns INCOMING and REASSIGNED assignments bound for
	// city, soonest expected arrival first
	ListIncomingAtCity(ctx context.Context, city string) ([]*models.TruckAssignment, error)

	// HasActiveByTruck reports whether the truck already has an assignment in
	// ASSIGNED or INCOMING status
	HasActiveByTruck(ctx context.Context, truckNumber string) (bool, error)

	// PromoteArrived bulk-updates ASSIGNED assignments bound for city whose
	// expected arrival time is at or before now to INCOMING. Idempotent.
	PromoteArrived(ctx context.Context, city string, now time.Time) (int64, error)

	// PromoteArrivedAll is PromoteArrived across every destination city
	PromoteArrivedAll(ctx context.Context, now time.Time) (int64, error)
}
