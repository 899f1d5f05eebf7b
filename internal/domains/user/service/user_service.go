package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"booklog-backend/internal/domains/user/model"
	"booklog-backend/internal/domains/user/repository"
	"booklog-backend/pkg/jwt"
	"booklog-backend/pkg/logger"
)

type userService struct {
	userRepo   repository.UserRepository
	jwtManager *jwt.Manager
}

func NewUserService(userRepo repository.UserRepository, jwtManager *jwt.Manager) ServiceInterface {
	return &userService{
		userRepo:   userRepo,
		jwtManager: jwtManager,
	}
}

// =====================================================
// REGISTER
// =====================================================

func (s *userService) Register(ctx context.Context, req model.RegisterRequest) (*model.AuthResponse, error) {
	// Step 1: Validate input
	if err := req.Validate(); err != nil {
		return nil, err
	}

	// Step 2: Reject duplicate email and username
	if _, err := s.userRepo.GetByEmail(ctx, req.Email); err == nil {
		return nil, model.NewEmailTakenError()
	} else if !errors.Is(err, model.ErrUserNotFound) {
		return nil, err
	}
	if _, err := s.userRepo.GetByUsername(ctx, req.Username); err == nil {
		return nil, model.NewUsernameTakenError()
	} else if !errors.Is(err, model.ErrUserNotFound) {
		return nil, err
	}

	// Step 3: Hash password
	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	// Step 4: Create user
	user := &model.User{
		ID:        uuid.New(),
		Email:     req.Email,
		Username:  req.Username,
		Password:  string(hashed),
		IsActive:  true,
		CreatedAt: time.Now(),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		logger.Error("failed to create user", err)
		return nil, err
	}

	return s.issueTokens(user)
}

// =====================================================
// LOGIN
// =====================================================

func (s *userService) Login(ctx context.Context, req model.LoginRequest) (*model.AuthResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			// Same error for unknown email and wrong password
			return nil, model.NewInvalidCredentialsError()
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, model.NewInvalidCredentialsError()
	}

	if !user.IsActive {
		return nil, model.NewAccountDisabledError()
	}

	if err := s.userRepo.UpdateLastLogin(ctx, user.ID); err != nil {
		logger.Error("failed to update last login", err)
	}

	return s.issueTokens(user)
}

// =====================================================
// REFRESH
// =====================================================

func (s *userService) Refresh(ctx context.Context, req model.RefreshRequest) (*model.AuthResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	claims, err := s.jwtManager.ValidateRefreshToken(req.RefreshToken)
	if err != nil {
		return nil, model.NewInvalidCredentialsError()
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, model.NewInvalidCredentialsError()
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return nil, model.NewInvalidCredentialsError()
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, model.NewAccountDisabledError()
	}

	return s.issueTokens(user)
}

// =====================================================
// PROFILE
// =====================================================

func (s *userService) GetProfile(ctx context.Context, userID uuid.UUID) (*model.UserResponse, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return nil, model.NewUserNotFoundError()
		}
		return nil, err
	}
	return user.ToResponse(), nil
}

func (s *userService) UpdateProfile(ctx context.Context, userID uuid.UUID, req model.UpdateProfileRequest) (*model.UserResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return nil, model.NewUserNotFoundError()
		}
		return nil, err
	}

	if req.DisplayName != nil {
		user.DisplayName = req.DisplayName
	}
	if req.ProfilePhotoURL != nil {
		user.ProfilePhotoURL = req.ProfilePhotoURL
	}
	if req.Bio != nil {
		user.Bio = req.Bio
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user.ToResponse(), nil
}

// =====================================================
// HELPERS
// =====================================================

func (s *userService) issueTokens(user *model.User) (*model.AuthResponse, error) {
	accessToken, err := s.jwtManager.GenerateAccessToken(user.ID.String(), user.Email)
	if err != nil {
		return nil, err
	}
	refreshToken, err := s.jwtManager.GenerateRefreshToken(user.ID.String())
	if err != nil {
		return nil, err
	}

	return &model.AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         user.ToResponse(),
	}, nil
}
