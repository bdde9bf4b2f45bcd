// Package auth issues and validates the API's JWT logins. Roles ride in
// the token claims; route guards read them from there.
package auth

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/clinicboard/allotment-api/internal/model"
	"github.com/clinicboard/allotment-api/internal/repository"
	apperrors "github.com/clinicboard/allotment-api/pkg/errors"
	"github.com/clinicboard/allotment-api/pkg/security"
)

// Claims is the token payload.
type Claims struct {
	Name string `json:"name"`
	Role string `json:"role"`
	jwt.RegisteredClaims
}

type Service struct {
	users  repository.UserRepository
	hasher security.PasswordHasher
	secret []byte
	ttl    time.Duration
	now    func() time.Time
	log    zerolog.Logger
}

func NewService(
	users repository.UserRepository,
	hasher security.PasswordHasher,
	secret string,
	ttl time.Duration,
	now func() time.Time,
	log zerolog.Logger,
) *Service {
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}
	if now == nil {
		now = time.Now
	}
	return &Service{
		users:  users,
		hasher: hasher,
		secret: []byte(secret),
		ttl:    ttl,
		now:    now,
		log:    log.With().Str("component", "auth").Logger(),
	}
}

// Login checks credentials and issues a signed token. Failures are
// deliberately uniform so callers cannot probe which emails exist.
func (s *Service) Login(ctx context.Context, req *model.LoginRequest) (*model.LoginResponse, error) {
	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil || user == nil || !user.Active {
		return nil, apperrors.Unauthorized(errors.New("invalid credentials"))
	}
	if err := s.hasher.Compare(user.PasswordHash, req.Password); err != nil {
		return nil, apperrors.Unauthorized(errors.New("invalid credentials"))
	}

	now := s.now()
	expiresAt := now.Add(s.ttl)
	claims := Claims{
		Name: user.Name,
		Role: user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	if err := s.users.UpdateLastLogin(ctx, user.ID); err != nil {
		s.log.Warn().Err(err).Str("user_id", user.ID.String()).Msg("failed to record login time")
	}

	return &model.LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		Role:      user.Role,
		Name:      user.Name,
	}, nil
}

// Validate parses and verifies a token, returning its claims.
func (s *Service) Validate(tokenText string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenText, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil || !token.Valid {
		return nil, apperrors.Unauthorized(err)
	}
	return claims, nil
}
