package service

import (
	"context"
	"errors"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/microcosm-cc/bluemonday"
	"gorm.io/gorm"

	"github.com/hameema-git/ramzan-challange/internal/model"
	"github.com/hameema-git/ramzan-challange/internal/repository"
	"github.com/hameema-git/ramzan-challange/pkg/apperror"
)

// Identity is a self-asserted (name, location) pair. There are no
// credentials; the session token only pins the store-generated user ID.
type IdentityInput struct {
	Name     string `json:"name" binding:"required,min=2,max=100"`
	Location string `json:"location" binding:"required,min=2,max=100"`
}

type AuthResponse struct {
	AccessToken string      `json:"access_token"`
	TokenType   string      `json:"token_type"`
	ExpiresIn   int64       `json:"expires_in"`
	User        *model.User `json:"user"`
}

type AuthService interface {
	Register(ctx context.Context, input IdentityInput) (*AuthResponse, error)
	Login(ctx context.Context, input IdentityInput) (*AuthResponse, error)
	GetProfile(ctx context.Context, userID string) (*model.User, error)
	DeleteAccount(ctx context.Context, userID string) error
}

type authService struct {
	repo      repository.UserRepository
	sanitizer *bluemonday.Policy
	secret    string
	tokenTTL  time.Duration
}

func NewAuthService(repo repository.UserRepository) AuthService {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "change-me"
	}

	// Sessions are long-lived; participants log in once for the month.
	ttl := 45 * 24 * time.Hour
	if ttlStr := os.Getenv("SESSION_TTL_HOURS"); ttlStr != "" {
		if hours, err := strconv.Atoi(ttlStr); err == nil {
			ttl = time.Duration(hours) * time.Hour
		}
	}

	return &authService{
		repo:      repo,
		sanitizer: bluemonday.StrictPolicy(),
		secret:    secret,
		tokenTTL:  ttl,
	}
}

func (s *authService) Register(ctx context.Context, input IdentityInput) (*AuthResponse, error) {
	name, location := s.normalizeIdentity(input)
	if name == "" || location == "" {
		return nil, apperror.New(http.StatusBadRequest, "please enter both your full name and location", apperror.ErrInvalidInput)
	}

	if _, err := s.repo.FindByIdentity(ctx, name, location); err == nil {
		return nil, apperror.New(http.StatusConflict,
			"this full name and location already exist, please log in instead", apperror.ErrDuplicate)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	user := &model.User{
		Name:     name,
		Location: location,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	return s.buildAuthResponse(user)
}

func (s *authService) Login(ctx context.Context, input IdentityInput) (*AuthResponse, error) {
	name, location := s.normalizeIdentity(input)

	user, err := s.repo.FindByIdentity(ctx, name, location)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.New(http.StatusNotFound,
				"user not found, please register as a new user", apperror.ErrNotFound)
		}
		return nil, err
	}

	return s.buildAuthResponse(user)
}

func (s *authService) GetProfile(ctx context.Context, userID string) (*model.User, error) {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *authService) DeleteAccount(ctx context.Context, userID string) error {
	if _, err := s.repo.FindByID(ctx, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.ErrNotFound
		}
		return err
	}

	return s.repo.DeleteCascade(ctx, userID)
}

func (s *authService) normalizeIdentity(input IdentityInput) (string, string) {
	name := s.sanitizer.Sanitize(strings.ToLower(strings.TrimSpace(input.Name)))
	location := s.sanitizer.Sanitize(strings.ToLower(strings.TrimSpace(input.Location)))
	return name, location
}

func (s *authService) buildAuthResponse(user *model.User) (*AuthResponse, error) {
	token, expiresAt, err := s.generateToken(user)
	if err != nil {
		return nil, err
	}

	return &AuthResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   expiresAt,
		User:        user,
	}, nil
}

func (s *authService) generateToken(user *model.User) (string, int64, error) {
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
