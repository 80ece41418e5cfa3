package service

import (
	"errors"
	"time"

	"clinic-intake-be/internal/config"
	"clinic-intake-be/internal/dto"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

type IAuthService interface {
	AdminLogin(req *dto.AdminLoginRequest) (*dto.AdminLoginResponse, error)
}

// authService checks the single operator account configured via environment
// and issues the JWT the catalog admin routes require.
type authService struct {
	cfg config.AdminConfig
}

func NewAuthService(cfg config.AdminConfig) IAuthService {
	return &authService{cfg: cfg}
}

func (a *authService) AdminLogin(req *dto.AdminLoginRequest) (*dto.AdminLoginResponse, error) {
	if a.cfg.PasswordHash == "" || req.Username != a.cfg.Username {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(a.cfg.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	claims := jwt.MapClaims{
		"sub":  req.Username,
		"role": "admin",
		"exp":  time.Now().Add(24 * time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(a.cfg.JWTSecret))
	if err != nil {
		return nil, err
	}
	return &dto.AdminLoginResponse{Token: signed}, nil
}
