package application

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/khushi747/greencart-logistics/internal/domain"
	"github.com/khushi747/greencart-logistics/pkg/auth"
	"github.com/khushi747/greencart-logistics/pkg/errors"
	"github.com/khushi747/greencart-logistics/pkg/events"
	"github.com/khushi747/greencart-logistics/pkg/kafka"
	"github.com/khushi747/greencart-logistics/pkg/logging"
)

// AuthService handles registration, login and token issuance
type AuthService struct {
	users        domain.UserRepository
	tokens       *auth.TokenManager
	producer     kafka.EventPublisher
	eventFactory *events.Factory
	logger       *logging.Logger
}

// NewAuthService creates an auth service
func NewAuthService(
	users domain.UserRepository,
	tokens *auth.TokenManager,
	producer kafka.EventPublisher,
	eventFactory *events.Factory,
	logger *logging.Logger,
) *AuthService {
	return &AuthService{
		users:        users,
		tokens:       tokens,
		producer:     producer,
		eventFactory: eventFactory,
		logger:       logger.WithComponent("auth-service"),
	}
}

// Register creates a new user account and issues a token
func (s *AuthService) Register(ctx context.Context, cmd RegisterCommand) (*AuthResponse, error) {
	if err := domain.ValidatePassword(cmd.Password); err != nil {
		return nil, errors.ErrValidation(err.Error())
	}

	existing, err := s.users.FindByEmail(ctx, cmd.Email)
	if err != nil {
		s.logger.WithError(err).Error("failed to look up user by email")
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if existing != nil {
		return nil, errors.ErrConflict("user already exists")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cmd.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := domain.NewUser(cmd.Email, string(hash), domain.RoleManager)
	if err != nil {
		return nil, errors.ErrValidation(err.Error())
	}

	if err := s.users.Save(ctx, user); err != nil {
		s.logger.WithError(err).Error("failed to save user")
		return nil, fmt.Errorf("failed to save user: %w", err)
	}

	token, err := s.tokens.Issue(user.ID.Hex(), user.Email, string(user.Role))
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	s.publishUserRegistered(ctx, user)
	s.logger.Info("user registered", "user_id", user.ID.Hex(), "email", user.Email)

	return &AuthResponse{Token: token, User: ToUserDTO(user)}, nil
}

// Login verifies credentials and issues a token
func (s *AuthService) Login(ctx context.Context, cmd LoginCommand) (*AuthResponse, error) {
	user, err := s.users.FindByEmail(ctx, cmd.Email)
	if err != nil {
		s.logger.WithError(err).Error("failed to look up user by email")
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if user == nil {
		return nil, errors.ErrUnauthorized("invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(cmd.Password)); err != nil {
		return nil, errors.ErrUnauthorized("invalid credentials")
	}

	token, err := s.tokens.Issue(user.ID.Hex(), user.Email, string(user.Role))
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	s.logger.Info("user logged in", "user_id", user.ID.Hex())

	return &AuthResponse{Token: token, User: ToUserDTO(user)}, nil
}

func (s *AuthService) publishUserRegistered(ctx context.Context, user *domain.User) {
	if s.producer == nil {
		return
	}
	event := s.eventFactory.CreateUserRegisteredEvent(ctx, events.UserRegisteredData{
		UserID: user.ID.Hex(),
		Email:  user.Email,
		Role:   string(user.Role),
	})
	if err := s.producer.PublishEvent(ctx, kafka.Topics.UserEvents, event); err != nil {
		s.logger.WithError(err).Warn("failed to publish user registered event")
	}
}
