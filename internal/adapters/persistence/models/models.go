package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User roles
const (
	RoleAdmin            = "ADMIN"
	RoleTerritoryOfficer = "TERRITORY_OFFICER"
)

// ValidRole checks whether a role string is one of the known roles
func ValidRole(role string) bool {
	return role == RoleAdmin || role == RoleTerritoryOfficer
}

// User represents users table
type User struct {
	ID            string         `gorm:"type:char(36);primaryKey" json:"id"`
	Name          string         `gorm:"size:100;not null" json:"name"`
	Email         string         `gorm:"uniqueIndex;size:100;not null" json:"email"`
	Password      string         `gorm:"size:255;not null" json:"-"`
	Role          string         `gorm:"size:30;not null;default:'TERRITORY_OFFICER'" json:"role"`
	TerritoryCity *string        `gorm:"size:100" json:"territory_city"`
	CreatedAt     time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

func (User) TableName() string {
	return "users"
}

// BeforeCreate assigns a UUID primary key if none was provided
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

// TerritoryCityOrEmpty returns the officer's home city, or "" for users without one
func (u *User) TerritoryCityOrEmpty() string {
	if u.TerritoryCity == nil {
		return ""
	}
	return *u.TerritoryCity
}

// UserResponse DTO
type UserResponse struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	Role          string    `json:"role"`
	TerritoryCity *string   `json:"territory_city"`
	CreatedAt     time.Time `json:"created_at"`
}

func (u *User) ToResponse() *UserResponse {
	return &UserResponse{
		ID:            u.ID,
		Name:          u.Name,
		Email:         u.Email,
		Role:          u.Role,
		TerritoryCity: u.TerritoryCity,
		CreatedAt:     u.CreatedAt,
	}
}

// UserRef is the slim user projection embedded in assignment responses
type UserRef struct {
	Name          string  `json:"name"`
	TerritoryCity *string `json:"territory_city"`
}

// RefreshToken represents refresh_tokens table
type RefreshToken struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	UserID    string     `gorm:"type:char(36);index;not null" json:"user_id"`
	TokenHash string     `gorm:"size:255;not null;index" json:"-"`
	ExpiresAt time.Time  `gorm:"not null" json:"expires_at"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	RevokedAt *time.Time `gorm:"index" json:"revoked_at"`
	User      User       `gorm:"foreignKey:UserID" json:"-"`
}

func (RefreshToken) TableName() string {
	return "refresh_tokens"
}

func (rt *RefreshToken) IsRevoked() bool {
	return rt.RevokedAt != nil
}

func (rt *RefreshToken) IsExpired() bool {
	return time.Now().After(rt.ExpiresAt)
}

// Assignment statuses
const (
	StatusAssigned   = "ASSIGNED"
	StatusIncoming   = "INCOMING"
	StatusReassigned = "REASSIGNED"
	StatusCompleted  = "COMPLETED"
)

// TruckAssignment represents truck_assignments table.
// A truck number may hold at most one assignment in ASSIGNED or INCOMING
// status; the check runs before insert, not as a DB constraint.
type TruckAssignment struct {
	ID                  string    `gorm:"type:char(36);primaryKey" json:"id"`
	TruckNumber         string    `gorm:"size:50;not null;index" json:"truck_number"`
	OriginCity          string    `gorm:"size:100;not null;index" json:"origin_city"`
	DestinationCity     string    `gorm:"size:100;not null;index" json:"destination_city"`
	GoodsType           string    `gorm:"size:100;not null" json:"goods_type"`
	DepartureTime       time.Time `gorm:"not null" json:"departure_time"`
	ExpectedArrivalTime time.Time `gorm:"not null;index" json:"expected_arrival_time"`
	Status              string    `gorm:"size:20;not null;default:'ASSIGNED';index" json:"status"`
	AssignedByUserID    string    `gorm:"type:char(36);not null;index" json:"assigned_by_user_id"`
	ReassignedByUserID  *string   `gorm:"type:char(36)" json:"reassigned_by_user_id"`
	CreatedAt           time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt           time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relations
	AssignedByUser   *User `gorm:"foreignKey:AssignedByUserID" json:"assigned_by_user,omitempty"`
	ReassignedByUser *User `gorm:"foreignKey:ReassignedByUserID" json:"reassigned_by_user,omitempty"`
}

func (TruckAssignment) TableName() string {
	return "truck_assignments"
}

// BeforeCreate assigns a UUID primary key if none was provided
func (a *TruckAssignment) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}

// IsActive reports whether the assignment still occupies its truck
func (a *TruckAssignment) IsActive() bool {
	return a.Status == StatusAssigned || a.Status == StatusIncoming
}

// AssignmentResponse DTO
type AssignmentResponse struct {
	ID                  string    `json:"id"`
	TruckNumber         string    `json:"truck_number"`
	OriginCity          string    `json:"origin_city"`
	DestinationCity     string    `json:"destination_city"`
	GoodsType           string    `json:"goods_type"`
	DepartureTime       time.Time `json:"departure_time"`
	ExpectedArrivalTime time.Time `json:"expected_arrival_time"`
	Status              string    `json:"status"`
	AssignedByUserID    string    `json:"assigned_by_user_id"`
	ReassignedByUserID  *string   `json:"reassigned_by_user_id"`
	AssignedBy          *UserRef  `json:"assigned_by,omitempty"`
	ReassignedBy        *UserRef  `json:"reassigned_by,omitempty"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

func (a *TruckAssignment) ToResponse() *AssignmentResponse {
	resp := &AssignmentResponse{
		ID:                  a.ID,
		TruckNumber:         a.TruckNumber,
		OriginCity:          a.OriginCity,
		DestinationCity:     a.DestinationCity,
		GoodsType:           a.GoodsType,
		DepartureTime:       a.DepartureTime,
		ExpectedArrivalTime: a.ExpectedArrivalTime,
		Status:              a.Status,
		AssignedByUserID:    a.AssignedByUserID,
		ReassignedByUserID:  a.ReassignedByUserID,
		CreatedAt:           a.CreatedAt,
		UpdatedAt:           a.UpdatedAt,
	}

	if a.AssignedByUser != nil {
		resp.AssignedBy = &UserRef{
			Name:          a.AssignedByUser.Name,
			TerritoryCity: a.AssignedByUser.TerritoryCity,
		}
	}
	if a.ReassignedByUser != nil {
		resp.ReassignedBy = &UserRef{
			Name:          a.ReassignedByUser.Name,
			TerritoryCity: a.ReassignedByUser.TerritoryCity,
		}
	}

	return resp
}

// AutoMigrate runs auto migration for all tables
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&RefreshToken{},
		&TruckAssignment{},
	)
}
