package services

import (
	"context"
	"errors"

	"loopfreight/internal/adapters/persistence/models"
	"loopfreight/internal/adapters/persistence/repositories"
	"loopfreight/internal/pkg/password"

	"gorm.io/gorm"
)

// User service errors
var (
	ErrUserNotFound          = errors.New("user not found")
	ErrEmailTaken            = errors.New("email is already in use")
	ErrInvalidRole           = errors.New("invalid role")
	ErrTerritoryCityRequired = errors.New("territory city is required for territory officers")
	ErrWeakPassword          = errors.New("password must be at least 8 characters long")
	ErrSelfDelete            = errors.New("cannot delete your own account")
)

// UserService handles user administration
type UserService struct {
	userRepo repositories.UserRepository
}

// NewUserService creates a new user service
func NewUserService(userRepo repositories.UserRepository) *UserService {
	return &UserService{
		userRepo: userRepo,
	}
}

// CreateUserInput represents create user input
type CreateUserInput struct {
	Name          string `json:"name"`
	Email         string `json:"email"`
	Password      string `json:"password"`
	Role          string `json:"role"`
	TerritoryCity string `json:"territory_city"`
}

// UpdateUserInput represents update user input. Name, email and role are
// required; password is re-hashed only when supplied.
type UpdateUserInput struct {
	Name          string `json:"name"`
	Email         string `json:"email"`
	Password      string `json:"password"`
	Role          string `json:"role"`
	TerritoryCity string `json:"territory_city"`
}

// List returns users page by page, newest first
func (s *UserService) List(ctx context.Context, offset, limit int) ([]*models.User, int64, error) {
	return s.userRepo.List(ctx, offset, limit)
}

// GetByID gets a single user
func (s *UserService) GetByID(ctx context.Context, id string) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// Create creates a new user account
func (s *UserService) Create(ctx context.Context, input *CreateUserInput) (*models.User, error) {
	if !models.ValidRole(input.Role) {
		return nil, ErrInvalidRole
	}
	if input.Role == models.RoleTerritoryOfficer && input.TerritoryCity == "" {
		return nil, ErrTerritoryCityRequired
	}
	if !password.ValidatePassword(input.Password) {
		return nil, ErrWeakPassword
	}

	exists, err := s.userRepo.ExistsByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrEmailTaken
	}

	hashed, err := password.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Name:     input.Name,
		Email:    input.Email,
		Password: hashed,
		Role:     input.Role,
	}
	if input.Role == models.RoleTerritoryOfficer {
		user.TerritoryCity = &input.TerritoryCity
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// Update replaces a user's profile. Moving an officer to the ADMIN role
// clears the territory binding.
func (s *UserService) Update(ctx context.Context, id string, input *UpdateUserInput) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if !models.ValidRole(input.Role) {
		return nil, ErrInvalidRole
	}
	if input.Role == models.RoleTerritoryOfficer && input.TerritoryCity == "" {
		return nil, ErrTerritoryCityRequired
	}

	taken, err := s.userRepo.EmailTakenByOther(ctx, input.Email, id)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrEmailTaken
	}

	user.Name = input.Name
	user.Email = input.Email
	user.Role = input.Role
	if input.Role == models.RoleTerritoryOfficer {
		user.TerritoryCity = &input.TerritoryCity
	} else {
		user.TerritoryCity = nil
	}

	if input.Password != "" {
		if !password.ValidatePassword(input.Password) {
			return nil, ErrWeakPassword
		}
		hashed, err := password.Hash(input.Password)
		if err != nil {
			return nil, err
		}
		user.Password = hashed
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// Delete removes a user account. Admins cannot delete themselves.
func (s *UserService) Delete(ctx context.Context, id, callerID string) error {
	if id == callerID {
		return ErrSelfDelete
	}

	_, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	return s.userRepo.Delete(ctx, id)
}
