// internal/auth/service.go
// Signup, signin and session lifecycle

package auth

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/go-redis/redis/v8"
	"golang.org/x/crypto/bcrypt"

	"github.com/studycircleapp/studycircle-backend/internal/common/utils"
)

var (
	ErrUserNotFound          = errors.New("user not found")
	ErrInvalidCredentials    = errors.New("invalid credentials")
	ErrEmailAlreadyExists    = errors.New("email already exists")
	ErrUsernameAlreadyExists = errors.New("username already exists")
	ErrInvalidToken          = errors.New("invalid token")
	ErrTooManyAttempts       = errors.New("too many attempts")
)

// Service defines authentication operations
type Service interface {
	Signup(ctx context.Context, req *SignupRequest) (*AuthResponse, error)
	Signin(ctx context.Context, req *SigninRequest) (*AuthResponse, error)
	RefreshToken(ctx context.Context, refreshToken string) (*AuthResponse, error)
	ValidateToken(ctx context.Context, token string) (*utils.JWTClaims, error)
	Logout(ctx context.Context, token string) error
	LogoutAllDevices(ctx context.Context, userID int64) error
	GetUser(ctx context.Context, userID int64) (*User, error)
	MarkProfileComplete(ctx context.Context, userID int64) error
}

// Config holds auth-specific settings
type Config struct {
	JWTSecret           string
	BCryptCost          int
	AccessTokenExpiry   time.Duration
	RefreshTokenExpiry  time.Duration
	LoginAttemptsMax    int
	LoginAttemptsWindow time.Duration
}

type service struct {
	repo   Repository
	redis  *redis.Client
	config *Config
}

// NewService creates the auth service. The Redis client is optional and
// only used for signin rate limiting.
func NewService(repo Repository, redisClient *redis.Client, config *Config) Service {
	return &service{
		repo:   repo,
		redis:  redisClient,
		config: config,
	}
}

func (s *service) Signup(ctx context.Context, req *SignupRequest) (*AuthResponse, error) {
	emailTaken, err := s.repo.IsEmailTaken(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if emailTaken {
		return nil, ErrEmailAlreadyExists
	}

	usernameTaken, err := s.repo.IsUsernameTaken(ctx, req.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}
	if usernameTaken {
		return nil, ErrUsernameAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.config.BCryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &User{
		Email:        req.Email,
		Username:     req.Username,
		PasswordHash: string(hash),
	}

	if err := s.repo.CreateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return s.createAuthSession(ctx, user)
}

func (s *service) Signin(ctx context.Context, req *SigninRequest) (*AuthResponse, error) {
	if err := s.checkFailedAttempts(ctx, req.EmailOrUsername); err != nil {
		return nil, err
	}

	user, err := s.repo.GetUserByEmailOrUsername(ctx, req.EmailOrUsername)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			s.recordFailedAttempt(ctx, req.EmailOrUsername)
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		s.recordFailedAttempt(ctx, req.EmailOrUsername)
		return nil, ErrInvalidCredentials
	}

	s.clearFailedAttempts(ctx, req.EmailOrUsername)

	return s.createAuthSession(ctx, user)
}

func (s *service) RefreshToken(ctx context.Context, refreshToken string) (*AuthResponse, error) {
	claims, err := utils.ValidateJWT(refreshToken, s.config.JWTSecret)
	if err != nil || claims.Type != "refresh" {
		return nil, ErrInvalidToken
	}

	session, err := s.repo.GetSessionByRefreshToken(ctx, refreshToken)
	if err != nil {
		return nil, ErrInvalidToken
	}

	user, err := s.repo.GetUserByID(ctx, session.UserID)
	if err != nil {
		return nil, err
	}

	// Rotate the whole session
	if err := s.repo.DeleteSessionByToken(ctx, session.Token); err != nil {
		log.Printf("failed to delete rotated session: %v", err)
	}

	return s.createAuthSession(ctx, user)
}

func (s *service) ValidateToken(ctx context.Context, token string) (*utils.JWTClaims, error) {
	return utils.ValidateJWT(token, s.config.JWTSecret)
}

func (s *service) Logout(ctx context.Context, token string) error {
	return s.repo.DeleteSessionByToken(ctx, token)
}

func (s *service) LogoutAllDevices(ctx context.Context, userID int64) error {
	return s.repo.DeleteUserSessions(ctx, userID)
}

func (s *service) GetUser(ctx context.Context, userID int64) (*User, error) {
	return s.repo.GetUserByID(ctx, userID)
}

func (s *service) MarkProfileComplete(ctx context.Context, userID int64) error {
	return s.repo.MarkProfileComplete(ctx, userID)
}

// createAuthSession issues an access/refresh token pair and persists the session
func (s *service) createAuthSession(ctx context.Context, user *User) (*AuthResponse, error) {
	now := time.Now()
	accessExpiry := now.Add(s.config.AccessTokenExpiry)
	refreshExpiry := now.Add(s.config.RefreshTokenExpiry)

	accessToken, err := utils.GenerateJWT(&utils.JWTClaims{
		UserID:    user.ID,
		Email:     user.Email,
		Username:  user.Username,
		Type:      "access",
		ExpiresAt: accessExpiry.Unix(),
		IssuedAt:  now.Unix(),
		NotBefore: now.Unix(),
		Issuer:    "studycircle",
		Subject:   fmt.Sprintf("%d", user.ID),
	}, s.config.JWTSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	refreshToken, err := utils.GenerateJWT(&utils.JWTClaims{
		UserID:    user.ID,
		Email:     user.Email,
		Username:  user.Username,
		Type:      "refresh",
		ExpiresAt: refreshExpiry.Unix(),
		IssuedAt:  now.Unix(),
		NotBefore: now.Unix(),
		Issuer:    "studycircle",
		Subject:   fmt.Sprintf("%d", user.ID),
	}, s.config.JWTSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	session := &Session{
		UserID:       user.ID,
		Token:        accessToken,
		RefreshToken: refreshToken,
		ExpiresAt:    refreshExpiry,
	}

	if err := s.repo.CreateSession(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	return &AuthResponse{
		User:         user,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresAt:    accessExpiry,
	}, nil
}

// Failed-attempt tracking, skipped silently when Redis is unavailable

func (s *service) checkFailedAttempts(ctx context.Context, identifier string) error {
	if s.redis == nil {
		return nil
	}

	key := fmt.Sprintf("login_attempts:%s", identifier)
	count, err := s.redis.Get(ctx, key).Int()
	if err != nil && err != redis.Nil {
		return nil
	}
	if count >= s.config.LoginAttemptsMax {
		return ErrTooManyAttempts
	}
	return nil
}

func (s *service) recordFailedAttempt(ctx context.Context, identifier string) {
	if s.redis == nil {
		return
	}

	key := fmt.Sprintf("login_attempts:%s", identifier)
	s.redis.Incr(ctx, key)
	s.redis.Expire(ctx, key, s.config.LoginAttemptsWindow)
}

func (s *service) clearFailedAttempts(ctx context.Context, identifier string) {
	if s.redis == nil {
		return
	}

	s.redis.Del(ctx, fmt.Sprintf("login_attempts:%s", identifier))
}
