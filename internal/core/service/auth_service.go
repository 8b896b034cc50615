package service

import (
	"context"
	"regexp"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/casazul/real-estate-api/internal/core/domain"
	"github.com/casazul/real-estate-api/internal/core/ports"
)

// emailPattern is the accepted e-mail shape; kept permissive on purpose.
var emailPattern = regexp.MustCompile(`^[a-z0-9.]+@[a-z0-9]+\.[a-z]+(\.[a-z]+)?$`)

const (
	minNameLength = 6
	maxNameLength = 20
)

// AuthService implements registration and credential verification.
type AuthService struct {
	users ports.UserRepository
	log   zerolog.Logger
}

func NewAuthService(users ports.UserRepository, log zerolog.Logger) *AuthService {
	return &AuthService{users: users, log: log}
}

// Register creates a new account with the default user role. The password is
// bcrypt-hashed (per-record salt) before it ever reaches the store.
func (s *AuthService) Register(ctx context.Context, input ports.RegisterInput) (*domain.User, error) {
	if err := validateAccountFields(input.Name, input.Email, input.Password); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user, err := s.users.Create(ctx, &domain.User{
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: string(hash),
		Role:         domain.RoleUser,
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("user_id", user.ID).Msg("user registered")
	return user, nil
}

// Login verifies the credentials. An unknown e-mail fails with
// ErrUserNotFound, a wrong password with ErrWrongPassword; the two cases stay
// distinguishable on purpose.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, error) {
	if email == "" || password == "" {
		return nil, domain.NewValidationError("please provide your e-mail and password")
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrWrongPassword
	}

	s.log.Info().Str("user_id", user.ID).Msg("user logged in")
	return user, nil
}

// validateAccountFields collects every field failure into one flattened
// message list, mirroring store-level schema validation.
func validateAccountFields(name, email, password string) error {
	var messages []string
	if name == "" {
		messages = append(messages, "please provide a username")
	} else if len(name) < minNameLength {
		messages = append(messages, "the username must have at least 6 characters")
	} else if len(name) > maxNameLength {
		messages = append(messages, "the username can have at most 20 characters")
	}
	if email == "" {
		messages = append(messages, "please provide your e-mail")
	} else if !emailPattern.MatchString(email) {
		messages = append(messages, email+" is not a valid e-mail")
	}
	if password == "" {
		messages = append(messages, "please provide a password")
	}
	if len(messages) > 0 {
		return domain.NewValidationError(messages...)
	}
	return nil
}
