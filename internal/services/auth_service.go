package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"fireguard/internal/common"
	"fireguard/internal/models"
	"fireguard/internal/repositories"
)

// devAdminPassword is accepted outside production when no admin password
// hash is configured.
const devAdminPassword = "admin123"

// AdminConfig describes the single administrator account. The admin is not a
// stored user: identity comes from configuration, and admin tokens are a
// separate principal kind from customer tokens.
type AdminConfig struct {
	Email        string
	PasswordHash string // bcrypt; empty enables the dev password outside production
	AllowDevAuth bool
}

// AdminClaims is the verified identity of an admin token.
type AdminClaims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
}

// UserClaims is the verified identity of a customer token.
type UserClaims struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// AuthService issues and verifies session tokens for the two principal
// kinds, and owns customer registration and login.
//
// Server-side verification is the only security boundary; the structural
// pre-checks clients perform (see internal/session) are a UX convenience.
type AuthService struct {
	userRepo   repositories.UserRepository
	jwtSecret  []byte
	tokenDurat time.Duration
	admin      AdminConfig
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repositories.UserRepository, jwtSecret string, tokenDuration time.Duration, admin AdminConfig) *AuthService {
	if tokenDuration <= 0 {
		tokenDuration = 7 * 24 * time.Hour
	}
	return &AuthService{
		userRepo:   userRepo,
		jwtSecret:  []byte(jwtSecret),
		tokenDurat: tokenDuration,
		admin:      admin,
	}
}

// LoginAdmin checks the configured admin credentials and issues an admin
// token. Failures never reveal which part of the credentials was wrong.
func (s *AuthService) LoginAdmin(email, password string) (string, error) {
	if email != s.admin.Email {
		return "", common.ErrInvalidCredentials
	}

	valid := false
	switch {
	case s.admin.PasswordHash != "":
		valid = bcrypt.CompareHashAndPassword([]byte(s.admin.PasswordHash), []byte(password)) == nil
	case s.admin.AllowDevAuth:
		valid = password == devAdminPassword
	}
	if !valid {
		return "", common.ErrInvalidCredentials
	}

	return s.IssueAdminToken(email)
}

// IssueAdminToken signs a token carrying the admin principal kind.
func (s *AuthService) IssueAdminToken(email string) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"email": email,
		"role":  "admin",
		"iat":   now.Unix(),
		"exp":   now.Add(s.tokenDurat).Unix(),
	})
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to sign admin token: %w", err)
	}
	return signed, nil
}

// VerifyAdminToken validates signature, structure and expiry, and requires
// the admin kind marker. A structurally valid customer token fails with
// common.ErrInvalidTokenType, never with a generic error.
func (s *AuthService) VerifyAdminToken(tokenString string) (*AdminClaims, error) {
	claims, err := s.parseToken(tokenString)
	if err != nil {
		return nil, err
	}

	role, _ := claims["role"].(string)
	if role != "admin" {
		return nil, common.ErrInvalidTokenType
	}
	email, _ := claims["email"].(string)
	if email == "" {
		return nil, common.ErrMalformedToken
	}
	return &AdminClaims{Email: email, Role: role}, nil
}

// Register creates a local account and issues a customer token. Duplicate
// emails fail with common.ErrEmailTaken.
//
// The uniqueness check is read-then-write, not atomic; two simultaneous
// registrations with the same email can both succeed. Kept as-is.
func (s *AuthService) Register(ctx context.Context, name, email, password string) (*models.User, string, error) {
	if existing, err := s.userRepo.GetByEmail(ctx, email); err == nil && existing != nil {
		return nil, "", common.ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Provider:     models.ProviderLocal,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, "", fmt.Errorf("failed to register user: %w", err)
	}

	token, err := s.IssueUserToken(user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// Login authenticates a local account and issues a customer token.
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, "", common.ErrInvalidCredentials
	}

	if user.Provider == models.ProviderGoogle && user.PasswordHash == "" {
		return nil, "", fmt.Errorf("this account uses Google sign-in")
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, "", common.ErrInvalidCredentials
	}

	token, err := s.IssueUserToken(user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// GoogleSignIn finds the account for a Google identity or creates one
// without a password hash, then issues a customer token. An existing account
// without a google id (a local registration) gets the id linked on first
// Google sign-in.
//
// The google id is trusted as delivered by the frontend, matching the
// original flow; there is no server-side verification against Google.
func (s *AuthService) GoogleSignIn(ctx context.Context, name, email, googleID string) (*models.User, string, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	switch {
	case err == nil:
		if user.GoogleID == "" {
			if err := s.userRepo.LinkGoogleID(ctx, user.ID, googleID); err != nil {
				return nil, "", fmt.Errorf("failed to link google id: %w", err)
			}
			user.GoogleID = googleID
			log.Info().Str("email", user.Email).Msg("linked google id to existing account")
		}
	case errors.Is(err, common.ErrNotFound):
		user = &models.User{
			Name:     name,
			Email:    email,
			Provider: models.ProviderGoogle,
			GoogleID: googleID,
		}
		if err := s.userRepo.Create(ctx, user); err != nil {
			return nil, "", fmt.Errorf("failed to create google user: %w", err)
		}
		log.Info().Str("email", user.Email).Msg("created google user")
	default:
		return nil, "", fmt.Errorf("google sign-in lookup failed: %w", err)
	}

	token, err := s.IssueUserToken(user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// GetUser resolves a verified customer id back to the account record.
func (s *AuthService) GetUser(ctx context.Context, id string) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

// IssueUserToken signs a token carrying the customer principal kind.
func (s *AuthService) IssueUserToken(user *models.User) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":    user.ID,
		"email": user.Email,
		"name":  user.Name,
		"type":  "user",
		"iat":   now.Unix(),
		"exp":   now.Add(s.tokenDurat).Unix(),
	})
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to sign user token: %w", err)
	}
	return signed, nil
}

// VerifyUserToken validates a customer token. Admin tokens fail with
// common.ErrInvalidTokenType.
func (s *AuthService) VerifyUserToken(tokenString string) (*UserClaims, error) {
	claims, err := s.parseToken(tokenString)
	if err != nil {
		return nil, err
	}

	kind, _ := claims["type"].(string)
	if kind != "user" {
		return nil, common.ErrInvalidTokenType
	}
	id, _ := claims["id"].(string)
	if id == "" {
		return nil, common.ErrMalformedToken
	}
	email, _ := claims["email"].(string)
	name, _ := claims["name"].(string)
	return &UserClaims{ID: id, Email: email, Name: name}, nil
}

// parseToken runs signature and registered-claim validation and maps the
// library error onto the token error taxonomy.
func (s *AuthService) parseToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return nil, mapTokenError(err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, common.ErrMalformedToken
	}
	return claims, nil
}

// mapTokenError translates jwt-go validation errors to sentinels. Expiry
// wins over a bad signature so telemetry counts stale tokens as stale.
func mapTokenError(err error) error {
	ve := &jwt.ValidationError{}
	if errors.As(err, &ve) {
		switch {
		case ve.Errors&jwt.ValidationErrorMalformed != 0:
			return common.ErrMalformedToken
		case ve.Errors&jwt.ValidationErrorExpired != 0:
			return common.ErrTokenExpired
		case ve.Errors&jwt.ValidationErrorSignatureInvalid != 0:
			return common.ErrInvalidSignature
		}
	}
	return common.ErrMalformedToken
}
