package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/url"
	"strings"
	"time"

	"storefront/internal/analytics"
	"storefront/internal/config"
	"storefront/internal/models"
	"storefront/internal/repositories"

	"github.com/dgrijalva/jwt-go"
	"golang.org/x/crypto/bcrypt"
)

// newMemberRank is the rank given to self-registered users.
const newMemberRank = "Initiate"

// Claims are the JWT claims issued at login.
type Claims struct {
	UserID  int    `json:"user_id"`
	Email   string `json:"email"`
	IsAdmin bool   `json:"is_admin"`
	jwt.StandardClaims
}

// AuthResult is returned by a successful login or registration.
type AuthResult struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

// AuthService handles the mock authentication flow.
//
// Only the administrator account has a password. Every other seeded or
// registered user signs in with any non-empty password.
type AuthService struct {
	userRepo   repositories.UserRepository
	tracker    analytics.Tracker
	clock      Clock
	jwtSecret  []byte
	tokenTTL   time.Duration
	adminEmail string
	adminHash  []byte
}

// NewAuthService creates a new AuthService. The administrator password is
// hashed once here and never kept in clear text.
func NewAuthService(userRepo repositories.UserRepository, cfg config.AuthConfig, tracker analytics.Tracker, clock Clock) (*AuthService, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash admin password: %w", err)
	}
	if clock == nil {
		clock = RealClock{}
	}
	return &AuthService{
		userRepo:   userRepo,
		tracker:    tracker,
		clock:      clock,
		jwtSecret:  []byte(cfg.JWTSecret),
		tokenTTL:   cfg.TokenTTL,
		adminEmail: models.NormalizeEmail(cfg.AdminEmail),
		adminHash:  hash,
	}, nil
}

// Login authenticates a user and returns a signed token.
func (s *AuthService) Login(email, password string) (*AuthResult, error) {
	email = models.NormalizeEmail(email)
	if email == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	if email == s.adminEmail {
		if err := bcrypt.CompareHashAndPassword(s.adminHash, []byte(password)); err != nil {
			return nil, ErrInvalidCredentials
		}
	}

	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	user.LastLogin = s.clock.Now()
	if err := s.userRepo.Update(user); err != nil {
		// The login itself still succeeds.
		log.Printf("Failed to record last login for user %d: %v", user.ID, err)
	}

	return s.issue(user)
}

// Register creates a non-admin user and signs them in.
func (s *AuthService) Register(ctx context.Context, name, email string) (*AuthResult, error) {
	name = strings.TrimSpace(name)
	email = models.NormalizeEmail(email)

	if existing, err := s.userRepo.GetByEmail(email); err == nil && existing != nil {
		return nil, fmt.Errorf("email '%s': %w", email, ErrEmailTaken)
	}

	now := s.clock.Now()
	user := &models.User{
		Name:        name,
		Email:       email,
		Avatar:      "https://i.pravatar.cc/150?u=" + url.QueryEscape(email),
		MemberSince: now.Format("January 2006"),
		Rank:        newMemberRank,
		LastLogin:   now,
	}
	if err := s.userRepo.Create(user); err != nil {
		if errors.Is(err, repositories.ErrConflict) {
			return nil, fmt.Errorf("email '%s': %w", email, ErrEmailTaken)
		}
		return nil, fmt.Errorf("failed to register user: %w", err)
	}

	s.tracker.Track(ctx, analytics.Event{
		Name:        analytics.EventCompleteRegistration,
		ContentName: "Account",
	})
	return s.issue(user)
}

// CurrentUser loads the user a token was issued to.
func (s *AuthService) CurrentUser(userID int) (*models.User, error) {
	return s.userRepo.GetByID(userID)
}

func (s *AuthService) issue(user *models.User) (*AuthResult, error) {
	now := s.clock.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		UserID:  user.ID,
		Email:   user.Email,
		IsAdmin: user.IsAdmin,
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: now.Add(s.tokenTTL).Unix(),
			IssuedAt:  now.Unix(),
		},
	})

	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	return &AuthResult{Token: tokenString, User: *user}, nil
}

// ValidateToken parses and validates a JWT token, returning its claims if valid.
func (s *AuthService) ValidateToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}
	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	return claims, nil
}
