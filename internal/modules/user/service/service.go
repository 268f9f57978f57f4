package service

import (
	"context"
	"fmt"
	"time"

	"kavling.dev/assetmanager/internal/entity"
	notifService "kavling.dev/assetmanager/internal/modules/notification/service"
	"kavling.dev/assetmanager/internal/modules/user/dto"
	"kavling.dev/assetmanager/internal/modules/user/repository"
	"kavling.dev/assetmanager/pkg/apperror"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"
)

type AuthService interface {
	Register(ctx context.Context, req dto.RegisterRequest) (*dto.AuthResponse, error)
	Login(ctx context.Context, req dto.LoginRequest) (*dto.AuthResponse, error)
	Logout(ctx context.Context)
}

type authService struct {
	repo          repository.UserRepository
	notifications notifService.NotificationService
	redisClient   *redis.Client
	secret        string
	tokenTTL      time.Duration
	authDelay     time.Duration
	loginRateWait time.Duration
}

func NewAuthService(repo repository.UserRepository, notifications notifService.NotificationService, redisClient *redis.Client, secret string, tokenTTL, authDelay, loginRateWait time.Duration) AuthService {
	return &authService{
		repo:          repo,
		notifications: notifications,
		redisClient:   redisClient,
		secret:        secret,
		tokenTTL:      tokenTTL,
		authDelay:     authDelay,
		loginRateWait: loginRateWait,
	}
}

func (s *authService) Register(ctx context.Context, req dto.RegisterRequest) (*dto.AuthResponse, error) {
	s.simulateNetworkDelay()

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &entity.User{
		ID:           uuid.New(),
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
		CreatedAt:    time.Now(),
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("%w: email already registered", err)
	}

	return s.buildAuthResponse(user)
}

func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.AuthResponse, error) {
	allowed, err := CheckAndSetRateLimit(ctx, s.redisClient, req.Email, "login", s.loginRateWait)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, fmt.Errorf("%w: please wait before trying again", apperror.ErrRateLimitExceeded)
	}

	s.simulateNetworkDelay()

	user, err := s.repo.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid credentials", apperror.ErrUnauthorized)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, fmt.Errorf("%w: invalid credentials", apperror.ErrUnauthorized)
	}

	return s.buildAuthResponse(user)
}

// Logout ends the session; notifications live only inside a session, so the
// list is destroyed with it.
func (s *authService) Logout(ctx context.Context) {
	s.notifications.DismissAll(ctx)
}

// simulateNetworkDelay imitates the latency of a real auth backend. The pause
// is fixed-duration and deliberately not cancellable.
func (s *authService) simulateNetworkDelay() {
	if s.authDelay > 0 {
		time.Sleep(s.authDelay)
	}
}

func (s *authService) buildAuthResponse(user *entity.User) (*dto.AuthResponse, error) {
	token, expiresAt, err := s.generateToken(user)
	if err != nil {
		return nil, err
	}

	user.PasswordHash = ""

	return &dto.AuthResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   expiresAt,
		User:        user,
	}, nil
}

func (s *authService) generateToken(user *entity.User) (string, int64, error) {
	expiresAt := time.Now().Add(s.tokenTTL)

	claims := jwt.RegisteredClaims{
		Subject:   user.ID.String(),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.secret))
	if err != nil {
		return "", 0, err
	}

	return signed, expiresAt.Unix(), nil
}
