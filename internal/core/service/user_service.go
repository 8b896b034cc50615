package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/casazul/real-estate-api/internal/core/domain"
	"github.com/casazul/real-estate-api/internal/core/ports"
)

// UserService implements account use-cases beyond authentication.
type UserService struct {
	users      ports.UserRepository
	properties ports.PropertyRepository
	log        zerolog.Logger
}

func NewUserService(users ports.UserRepository, properties ports.PropertyRepository, log zerolog.Logger) *UserService {
	return &UserService{users: users, properties: properties, log: log}
}

func (s *UserService) List(ctx context.Context) ([]*domain.User, error) {
	return s.users.FindAll(ctx)
}

func (s *UserService) Get(ctx context.Context, id string) (*domain.User, error) {
	return s.users.FindByID(ctx, id)
}

// Create is the admin-gated account creation with role control.
func (s *UserService) Create(ctx context.Context, input ports.CreateUserInput) (*domain.User, error) {
	if err := validateAccountFields(input.Name, input.Email, input.Password); err != nil {
		return nil, err
	}
	role := input.Role
	if role == "" {
		role = domain.RoleUser
	}
	if !role.Valid() {
		return nil, domain.NewValidationError(string(input.Role) + " is not a valid role")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user, err := s.users.Create(ctx, &domain.User{
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: string(hash),
		Role:         role,
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("user_id", user.ID).Str("role", string(role)).Msg("user created by admin")
	return user, nil
}

func (s *UserService) UpdateName(ctx context.Context, userID, name string) (*domain.User, error) {
	if name == "" {
		return nil, domain.NewValidationError("please provide the new username")
	}
	if len(name) < minNameLength {
		return nil, domain.NewValidationError("the username must have at least 6 characters")
	}
	if len(name) > maxNameLength {
		return nil, domain.NewValidationError("the username can have at most 20 characters")
	}
	return s.users.Update(ctx, userID, ports.UserUpdate{Name: &name})
}

func (s *UserService) UpdateEmail(ctx context.Context, userID, email string) (*domain.User, error) {
	if email == "" {
		return nil, domain.NewValidationError("please provide the new e-mail")
	}
	if !emailPattern.MatchString(email) {
		return nil, domain.NewValidationError(email + " is not a valid e-mail")
	}
	return s.users.Update(ctx, userID, ports.UserUpdate{Email: &email})
}

// UpdatePassword verifies the current password against the stored hash
// before accepting the new one. A mismatch is a client error, never silently
// accepted.
func (s *UserService) UpdatePassword(ctx context.Context, userID, currentPassword, newPassword string) error {
	if currentPassword == "" || newPassword == "" {
		return domain.NewValidationError("please provide your current and new passwords")
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(currentPassword)) != nil {
		return domain.ErrWrongPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	hashed := string(hash)

	if _, err := s.users.Update(ctx, userID, ports.UserUpdate{PasswordHash: &hashed}); err != nil {
		return err
	}

	s.log.Info().Str("user_id", userID).Msg("password updated")
	return nil
}

// Favorites returns the user's favorited properties, locations populated.
func (s *UserService) Favorites(ctx context.Context, userID string) ([]*domain.Property, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.properties.FindByIDs(ctx, user.FavoriteIDs)
}

func (s *UserService) AddFavorite(ctx context.Context, userID, propertyID string) (*domain.User, error) {
	if err := s.checkProperty(ctx, propertyID); err != nil {
		return nil, err
	}
	return s.users.AddFavorite(ctx, userID, propertyID)
}

func (s *UserService) RemoveFavorite(ctx context.Context, userID, propertyID string) (*domain.User, error) {
	if err := s.checkProperty(ctx, propertyID); err != nil {
		return nil, err
	}
	return s.users.RemoveFavorite(ctx, userID, propertyID)
}

// checkProperty turns a missing or malformed property id into a client
// error: favoriting an unknown listing is a bad request, not a 404.
func (s *UserService) checkProperty(ctx context.Context, propertyID string) error {
	_, err := s.properties.FindByID(ctx, propertyID)
	if errors.Is(err, domain.ErrPropertyNotFound) || errors.Is(err, domain.ErrInvalidID) {
		return domain.NewValidationError("please provide a valid property id")
	}
	return err
}
