package service

import (
	"context"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"reliefconnect-ai-be/internal/dto"
	"reliefconnect-ai-be/internal/model"
	"reliefconnect-ai-be/internal/pkg/logger"
	"reliefconnect-ai-be/internal/repository/contract"
)

type IAuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error)
	Me(ctx context.Context, userId uuid.UUID) (*dto.MeResponse, error)
}

type authService struct {
	userRepo contract.UserRepository
	logger   logger.ILogger
}

func NewAuthService(userRepo contract.UserRepository, log logger.ILogger) IAuthService {
	return &authService{
		userRepo: userRepo,
		logger:   log,
	}
}

func (s *authService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	existing, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fiber.NewError(fiber.StatusConflict, "email already registered")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Id:       uuid.New(),
		Name:     req.Name,
		Email:    req.Email,
		Password: string(hash),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("AuthService", "User registered", map[string]interface{}{"user_id": user.Id})

	return s.buildAuthResponse(user)
}

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "invalid credentials")
	}

	return s.buildAuthResponse(user)
}

func (s *authService) Me(ctx context.Context, userId uuid.UUID) (*dto.MeResponse, error) {
	user, err := s.userRepo.FindById(ctx, userId)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fiber.NewError(fiber.StatusNotFound, "user not found")
	}

	return &dto.MeResponse{
		UserId: user.Id,
		Name:   user.Name,
		Email:  user.Email,
	}, nil
}

func (s *authService) buildAuthResponse(user *model.User) (*dto.AuthResponse, error) {
	token, err := generateToken(user.Id)
	if err != nil {
		return nil, err
	}

	return &dto.AuthResponse{
		UserId: user.Id,
		Name:   user.Name,
		Email:  user.Email,
		Token:  token,
	}, nil
}

func generateToken(userId uuid.UUID) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userId.String(),
		"iat":     time.Now().Unix(),
		"exp":     time.Now().Add(24 * time.Hour).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(os.Getenv("JWT_SECRET")))
}
