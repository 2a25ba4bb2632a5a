package service

import (
	"errors"
	"fmt"
	"time"

	"taskboard/internal/models"
	"taskboard/internal/password"
	"taskboard/internal/repository"
	"taskboard/internal/token"

	"go.uber.org/zap"
)

var (
	ErrUsernameTaken      = errors.New("username already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

type AuthService interface {
	Register(username, email, plaintext string) (string, error) // Returns a short-lived JWT token
	Login(email, plaintext string) (string, error)              // Returns a session JWT token
}

type authService struct {
	users       repository.UserRepository
	hasher      *password.Hasher
	tokens      *token.Manager
	loginTTL    time.Duration
	registerTTL time.Duration
	logger      *zap.Logger
}

func NewAuthService(users repository.UserRepository, hasher *password.Hasher, tokens *token.Manager,
	loginTTL, registerTTL time.Duration, logger *zap.Logger) AuthService {
	return &authService{
		users:       users,
		hasher:      hasher,
		tokens:      tokens,
		loginTTL:    loginTTL,
		registerTTL: registerTTL,
		logger:      logger,
	}
}

func (s *authService) Register(username, email, plaintext string) (string, error) {
	exists, err := s.users.UsernameExists(username)
	if err != nil {
		s.logger.Error("Failed to check username", zap.Error(err))
		return "", fmt.Errorf("failed to check username: %w", err)
	}
	if exists {
		return "", ErrUsernameTaken
	}

	hash, err := s.hasher.Hash(plaintext)
	if err != nil {
		s.logger.Error("Failed to hash password", zap.Error(err))
		return "", err
	}

	user := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
	}
	if err := s.users.CreateUser(user); err != nil {
		s.logger.Error("Failed to create user", zap.Error(err))
		return "", fmt.Errorf("failed to create user: %w", err)
	}

	tokenString, err := s.tokens.Issue(user.ID, user.Email, s.registerTTL)
	if err != nil {
		s.logger.Error("Failed to issue token", zap.Error(err))
		return "", fmt.Errorf("failed to issue token: %w", err)
	}

	s.logger.Info("User registered", zap.String("username", username))
	return tokenString, nil
}

func (s *authService) Login(email, plaintext string) (string, error) {
	user, err := s.users.GetUserByEmail(email)
	if err != nil {
		s.logger.Error("Failed to get user by email", zap.Error(err))
		return "", fmt.Errorf("failed to retrieve user: %w", err)
	}

	// A missing account and a wrong password are indistinguishable to the caller.
	if user == nil {
		return "", ErrInvalidCredentials
	}
	if !s.hasher.Compare(user.PasswordHash, plaintext) {
		return "", ErrInvalidCredentials
	}

	tokenString, err := s.tokens.Issue(user.ID, user.Email, s.loginTTL)
	if err != nil {
		s.logger.Error("Failed to issue token", zap.Error(err))
		return "", fmt.Errorf("failed to issue token: %w", err)
	}

	s.logger.Info("User logged in", zap.String("email", email))
	return tokenString, nil
}
