// Package auth handles account registration, credential checks and the JWT
// session tokens the API layer hands out.
package auth

import (
	"context"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"equipment-booking-backend/internal/apperr"
	"equipment-booking-backend/internal/model"
	"equipment-booking-backend/internal/store"
)

const bcryptCost = 12

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Claims identify an authenticated user.
type Claims struct {
	UserID int64
	Role   string
}

// Service implements registration and login.
type Service struct {
	store  store.Store
	secret []byte
	ttl    time.Duration
}

// NewService creates an auth service signing tokens with secret.
func NewService(st store.Store, secret string, ttl time.Duration) *Service {
	return &Service{store: st, secret: []byte(secret), ttl: ttl}
}

// RegisterParams are the inputs of a registration request.
type RegisterParams struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
}

func validatePassword(pw string) error {
	if len(pw) < 8 {
		return apperr.Validation("password must be at least 8 characters")
	}
	if !strings.ContainsFunc(pw, func(r rune) bool { return r >= 'A' && r <= 'Z' }) {
		return apperr.Validation("password must contain an uppercase letter")
	}
	if !strings.ContainsFunc(pw, func(r rune) bool { return r >= '0' && r <= '9' }) {
		return apperr.Validation("password must contain a digit")
	}
	return nil
}

func validateName(name, field string) error {
	if strings.TrimSpace(name) == "" {
		return apperr.Validation("%s must not be empty", field)
	}
	if len(name) > 100 {
		return apperr.Validation("%s must be at most 100 characters", field)
	}
	return nil
}

// Register creates a student account.
func (s *Service) Register(ctx context.Context, p RegisterParams) (*model.User, error) {
	if !emailPattern.MatchString(p.Email) {
		return nil, apperr.Validation("invalid e-mail address")
	}
	if err := validatePassword(p.Password); err != nil {
		return nil, err
	}
	if err := validateName(p.FirstName, "first name"); err != nil {
		return nil, err
	}
	if err := validateName(p.LastName, "last name"); err != nil {
		return nil, err
	}

	existing, err := s.store.FindUserByEmail(ctx, p.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperr.Validation("an account with this e-mail already exists")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(p.Password), bcryptCost)
	if err != nil {
		return nil, err
	}
	u := &model.User{
		Email:        p.Email,
		PasswordHash: string(hash),
		FirstName:    p.FirstName,
		LastName:     p.LastName,
		Role:         model.RoleStudent,
	}
	if err := s.store.CreateUser(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// Login checks the credentials and returns a signed session token. Unknown
// accounts and wrong passwords produce the same error.
func (s *Service) Login(ctx context.Context, email, password string) (string, *model.User, error) {
	u, err := s.store.FindUserByEmail(ctx, email)
	if err != nil {
		return "", nil, err
	}
	if u == nil {
		return "", nil, apperr.Unauthenticated("invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return "", nil, apperr.Unauthenticated("invalid credentials")
	}

	now := time.Now()
	claims := sessionClaims{
		Role: u.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(u.ID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", nil, err
	}
	return token, u, nil
}

type sessionClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// ParseToken validates a session token and returns its claims.
func (s *Service) ParseToken(tokenString string) (Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &sessionClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, apperr.Unauthenticated("unexpected signing method")
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return Claims{}, apperr.Unauthenticated("invalid or expired session")
	}
	claims := token.Claims.(*sessionClaims)
	id, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return Claims{}, apperr.Unauthenticated("invalid session subject")
	}
	return Claims{UserID: id, Role: claims.Role}, nil
}
