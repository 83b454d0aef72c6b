package config

import (
	"log"
	"time"

	"loopfreight/internal/adapters/persistence/models"
	"loopfreight/internal/pkg/password"

	"gorm.io/gorm"
)

// Seeder handles database seeding
type Seeder struct {
	db *gorm.DB
}

// NewSeeder creates a new seeder instance
func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{db: db}
}

// Run executes all seeders. Safe to re-run: each step skips when its data
// already exists.
func (s *Seeder) Run() error {
	log.Println("🌱 Running database seeders...")

	if err := s.seedUsers(); err != nil {
		log.Printf("⚠️ User seeder skipped: %v", err)
	}
	if err := s.seedSampleAssignments(); err != nil {
		log.Printf("⚠️ Assignment seeder skipped: %v", err)
	}

	log.Println("✅ Database seeding completed")
	return nil
}

// seedUsers seeds the default admin and one territory officer per city.
// Development/testing only; production admins are created through a secure
// process.
func (s *Seeder) seedUsers() error {
	var count int64
	s.db.Model(&models.User{}).Where("role = ?", models.RoleAdmin).Count(&count)
	if count > 0 {
		return nil // Already seeded
	}

	adminPassword, err := password.Hash("admin123")
	if err != nil {
		return err
	}

	admin := &models.User{
		Name:     "System Administrator",
		Email:    "admin@loopfreight.io",
		Password: adminPassword,
		Role:     models.RoleAdmin,
	}
	if err := s.db.Create(admin).Error; err != nil {
		return err
	}

	officers := []struct {
		Name  string
		Email string
		City  string
	}{
		{"John Smith", "john.smith@loopfreight.io", "New York"},
		{"Sarah Johnson", "sarah.johnson@loopfreight.io", "Los Angeles"},
		{"Michael Brown", "michael.brown@loopfreight.io", "Chicago"},
		{"Emily Davis", "emily.davis@loopfreight.io", "Houston"},
		{"David Wilson", "david.wilson@loopfreight.io", "Phoenix"},
	}

	officerPassword, err := password.Hash("officer123")
	if err != nil {
		return err
	}

	for _, o := range officers {
		city := o.City
		officer := &models.User{
			Name:          o.Name,
			Email:         o.Email,
			Password:      officerPassword,
			Role:          models.RoleTerritoryOfficer,
			TerritoryCity: &city,
		}
		if err := s.db.Create(officer).Error; err != nil {
			return err
		}
	}

	log.Printf("✅ Seeded admin and %d territory officers", len(officers))
	return nil
}

// seedSampleAssignments seeds a couple of routes so a fresh dashboard isn't empty
func (s *Seeder) seedSampleAssignments() error {
	var count int64
	s.db.Model(&models.TruckAssignment{}).Count(&count)
	if count > 0 {
		return nil
	}

	var officer models.User
	err := s.db.Where("role = ?", models.RoleTerritoryOfficer).
		Where("territory_city = ?", "New York").
		First(&officer).Error
	if err != nil {
		return err
	}

	now := time.Now()
	samples := []*models.TruckAssignment{
		{
			TruckNumber:         "TRK-001",
			OriginCity:          "New York",
			DestinationCity:     "Chicago",
			GoodsType:           "Electronics",
			DepartureTime:       now.Add(-30 * time.Hour),
			ExpectedArrivalTime: now.Add(-6 * time.Hour),
			Status:              models.StatusAssigned,
			AssignedByUserID:    officer.ID,
		},
		{
			TruckNumber:         "TRK-002",
			OriginCity:          "New York",
			DestinationCity:     "Houston",
			GoodsType:           "Building Materials",
			DepartureTime:       now.Add(-2 * time.Hour),
			ExpectedArrivalTime: now.Add(22 * time.Hour),
			Status:              models.StatusAssigned,
			AssignedByUserID:    officer.ID,
		},
	}

	for _, a := range samples {
		if err := s.db.Create(a).Error; err != nil {
			return err
		}
	}

	log.Printf("✅ Seeded %d sample assignments", len(samples))
	return nil
}
