package usecase

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/eliasjuanpablo/wineapi/internal/data/entity"
	"github.com/eliasjuanpablo/wineapi/internal/data/repository"
	"github.com/eliasjuanpablo/wineapi/internal/dto/request"
	"github.com/eliasjuanpablo/wineapi/internal/dto/response"
	"github.com/eliasjuanpablo/wineapi/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type AuthService struct {
	users     repository.UserRepository
	sessions  repository.SessionRepository
	wineries  repository.WineryRepository
	expiresIn time.Duration
	log       *zap.Logger
}

func NewAuthService(users repository.UserRepository, sessions repository.SessionRepository, wineries repository.WineryRepository, config *utils.Config, log *zap.Logger) *AuthService {
	return &AuthService{
		users:     users,
		sessions:  sessions,
		wineries:  wineries,
		expiresIn: time.Duration(config.Session.ExpiryHours) * time.Hour,
		log:       log.With(zap.String("service", "auth")),
	}
}

// Register creates an account. A winery account also creates its winery,
// which stays hidden from tourists until an admin approves it.
func (s *AuthService) Register(ctx context.Context, req *request.RegisterRequest) (*response.UserResponse, error) {
	existing, err := s.users.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	countryID, err := uuid.Parse(req.CountryID)
	if err != nil {
		return nil, fmt.Errorf("parse country id: %w", err)
	}
	languageID, err := uuid.Parse(req.LanguageID)
	if err != nil {
		return nil, fmt.Errorf("parse language id: %w", err)
	}
	genderID, err := uuid.Parse(req.GenderID)
	if err != nil {
		return nil, fmt.Errorf("parse gender id: %w", err)
	}

	now := time.Now()
	user := &entity.User{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Email:        req.Email,
		PasswordHash: string(hash),
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Phone:        req.Phone,
		UserType:     entity.UserType(req.UserType),
		CountryID:    countryID,
		LanguageID:   languageID,
		GenderID:     genderID,
	}

	if req.BirthDate != "" {
		birthDate, err := time.Parse("2006-01-02", req.BirthDate)
		if err != nil {
			return nil, fmt.Errorf("parse birth date: %w", err)
		}
		user.BirthDate = &birthDate
	}

	if user.UserType == entity.UserTypeWinery {
		if req.Winery == nil {
			return nil, ErrWineryRequired
		}

		winery := &entity.Winery{
			Base: entity.Base{
				ID:        uuid.New(),
				CreatedAt: now,
				UpdatedAt: now,
			},
			Name:        req.Winery.Name,
			Description: req.Winery.Description,
			Website:     req.Winery.Website,
			Latitude:    req.Winery.Latitude,
			Longitude:   req.Winery.Longitude,
		}

		if err := s.wineries.Create(ctx, winery); err != nil {
			return nil, fmt.Errorf("create winery: %w", err)
		}
		user.WineryID = &winery.ID
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.log.Info("User registered",
		zap.String("user_id", user.ID.String()),
		zap.String("user_type", string(user.UserType)),
	)
	return userToResponse(user), nil
}

// Login verifies credentials and opens a new session.
func (s *AuthService) Login(ctx context.Context, req *request.LoginRequest) (*response.AuthResponse, error) {
	user, err := s.users.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := generateToken()
	if err != nil {
		return nil, fmt.Errorf("generate session token: %w", err)
	}

	now := time.Now()
	session := &entity.Session{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: now,
		},
		UserID:    user.ID,
		Token:     token,
		ExpiresAt: now.Add(s.expiresIn),
	}

	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	s.log.Info("User logged in", zap.String("user_id", user.ID.String()))
	return &response.AuthResponse{
		Token:     token,
		ExpiresAt: session.ExpiresAt.Format(time.RFC3339),
		User:      *userToResponse(user),
	}, nil
}

// Logout drops the session. Unknown tokens are treated as already gone.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	if err := s.sessions.Delete(ctx, token); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

func (s *AuthService) Profile(ctx context.Context, userID uuid.UUID) (*response.UserResponse, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	if user == nil {
		return nil, ErrNotFound
	}
	return userToResponse(user), nil
}

// UpdateProfile rewrites the mutable profile fields. Email, password and
// account type are untouched.
func (s *AuthService) UpdateProfile(ctx context.Context, userID uuid.UUID, req *request.UpdateProfileRequest) (*response.UserResponse, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	if user == nil {
		return nil, ErrNotFound
	}

	countryID, err := uuid.Parse(req.CountryID)
	if err != nil {
		return nil, fmt.Errorf("parse country id: %w", err)
	}
	languageID, err := uuid.Parse(req.LanguageID)
	if err != nil {
		return nil, fmt.Errorf("parse language id: %w", err)
	}
	genderID, err := uuid.Parse(req.GenderID)
	if err != nil {
		return nil, fmt.Errorf("parse gender id: %w", err)
	}

	user.FirstName = req.FirstName
	user.LastName = req.LastName
	user.Phone = req.Phone
	user.CountryID = countryID
	user.LanguageID = languageID
	user.GenderID = genderID
	user.BirthDate = nil
	if req.BirthDate != "" {
		birthDate, err := time.Parse("2006-01-02", req.BirthDate)
		if err != nil {
			return nil, fmt.Errorf("parse birth date: %w", err)
		}
		user.BirthDate = &birthDate
	}
	user.UpdatedAt = time.Now()

	if err := s.users.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}

	return userToResponse(user), nil
}

func generateToken() (string, error) {
	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return "", err
	}
	return hex.EncodeToString(raw), nil
}

func userToResponse(user *entity.User) *response.UserResponse {
	resp := &response.UserResponse{
		ID:        user.ID.String(),
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Phone:     user.Phone,
		UserType:  string(user.UserType),
	}
	if user.BirthDate != nil {
		birthDate := user.BirthDate.Format("2006-01-02")
		resp.BirthDate = &birthDate
	}
	if user.WineryID != nil {
		wineryID := user.WineryID.String()
		resp.WineryID = &wineryID
	}
	return resp
}
