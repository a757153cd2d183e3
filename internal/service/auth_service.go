package service

import (
	"strings"

	"github.com/crushconfessions/crushconfessions-backend/internal/common"
	"github.com/crushconfessions/crushconfessions-backend/internal/domain"
	"github.com/crushconfessions/crushconfessions-backend/internal/repository"
	"github.com/crushconfessions/crushconfessions-backend/pkg/auth"
	"github.com/crushconfessions/crushconfessions-backend/pkg/jwt"
)

// LoginResponse login response
type LoginResponse struct {
	User         domain.UserSummary `json:"user"`
	AccessToken  string             `json:"access_token"`
	RefreshToken string             `json:"refresh_token"`
}

// AuthService authentication business logic
type AuthService interface {
	Signup(email, password string) (*domain.User, error)
	Login(email, password string) (*LoginResponse, error)
	GetUser(userID string) (*domain.User, error)
	UpdateProfile(userID string, displayName, profilePicture *string) (*domain.User, error)
}

type authService struct {
	userRepo    repository.UserRepository
	jwtManager  *jwt.Manager
	emailDomain string
}

// NewAuthService creates a new AuthService. emailDomain restricts signup
// to campus addresses, e.g. "@umt.edu.pk".
func NewAuthService(userRepo repository.UserRepository, jwtManager *jwt.Manager, emailDomain string) AuthService {
	return &authService{
		userRepo:    userRepo,
		jwtManager:  jwtManager,
		emailDomain: emailDomain,
	}
}

// Signup creates a new account with a bcrypt-hashed password
func (s *authService) Signup(email, password string) (*domain.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if !strings.HasSuffix(email, s.emailDomain) {
		return nil, common.ErrEmailDomain
	}

	exists, err := s.userRepo.ExistsByEmail(email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, common.ErrEmailTaken
	}

	hashed, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Email:         email,
		Password:      hashed,
		AccountStatus: domain.AccountActive,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login authenticates a user and returns tokens
func (s *authService) Login(email, password string) (*LoginResponse, error) {
	user, err := s.userRepo.FindByEmail(strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return nil, common.ErrInvalidCredentials
	}

	if !auth.CheckPassword(user.Password, password) {
		return nil, common.ErrInvalidCredentials
	}

	displayName := ""
	if user.DisplayName != nil {
		displayName = *user.DisplayName
	}

	accessToken, err := s.jwtManager.GenerateToken(user.ID, user.Email, displayName)
	if err != nil {
		return nil, err
	}
	refreshToken, err := s.jwtManager.GenerateRefreshToken(user.ID, user.Email)
	if err != nil {
		return nil, err
	}

	return &LoginResponse{
		User:         user.Summary(),
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// GetUser fetches a user by ID
func (s *authService) GetUser(userID string) (*domain.User, error) {
	return s.userRepo.FindByID(userID)
}

// UpdateProfile changes the caller's display name and profile picture
func (s *authService) UpdateProfile(userID string, displayName, profilePicture *string) (*domain.User, error) {
	if _, err := s.userRepo.FindByID(userID); err != nil {
		return nil, err
	}

	fields := map[string]interface{}{}
	if displayName != nil {
		fields["display_name"] = *displayName
	}
	if profilePicture != nil {
		fields["profile_picture"] = *profilePicture
	}
	if len(fields) > 0 {
		if err := s.userRepo.UpdateFields(userID, fields); err != nil {
			return nil, err
		}
	}
	return s.userRepo.FindByID(userID)
}
