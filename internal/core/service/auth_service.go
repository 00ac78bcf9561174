package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/steeldetailing/pm-dashboard/internal/core/domain"
	"github.com/steeldetailing/pm-dashboard/internal/core/ports"
)

// dummyHash is compared against when the email is unknown so that a failed
// login costs the same whichever field was wrong.
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// AuthService implements login, logout, and account registration.
type AuthService struct {
	repo      ports.AccountRepository
	store     *SessionStore
	jwtSecret string
	tokenTTL  time.Duration
	now       func() time.Time
	sign      func(jwt.Claims) (string, error)
	log       zerolog.Logger
}

func NewAuthService(repo ports.AccountRepository, store *SessionStore, jwtSecret string, tokenTTL time.Duration, log zerolog.Logger) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	s := &AuthService{
		repo:      repo,
		store:     store,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
		now:       time.Now,
		log:       log,
	}
	s.sign = s.signHS256
	return s
}

// Register creates an account with a bcrypt-hashed password.
func (s *AuthService) Register(ctx context.Context, email, name string, role domain.Role, password string) (*domain.Account, error) {
	email = normalizeEmail(email)
	if email == "" || name == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}
	if !role.Valid() {
		return nil, domain.ErrUnknownRole
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	return s.repo.Create(ctx, &domain.Account{
		Email:        email,
		Name:         name,
		Role:         role,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	})
}

// Login verifies the credentials and binds the resulting identity to keys.
// Any mismatch is reported as domain.ErrInvalidCredentials. The bearer token
// is signed before anything is stored, so a signing failure leaves no session
// behind.
func (s *AuthService) Login(ctx context.Context, keys ports.ClientKeys, in ports.LoginInput) (*ports.LoginResult, error) {
	email := normalizeEmail(in.Email)
	if email == "" || in.Password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	acct, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			_ = bcrypt.CompareHashAndPassword([]byte(dummyHash), []byte(in.Password))
			s.log.Info().Str("email", email).Msg("login rejected")
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(acct.PasswordHash), []byte(in.Password)) != nil {
		s.log.Info().Str("email", email).Msg("login rejected")
		return nil, domain.ErrInvalidCredentials
	}

	id := domain.IdentityFor(acct, s.now())
	tokenID := uuid.NewString()
	token, err := s.generateToken(id, tokenID)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}

	if err := s.store.SaveToken(ctx, tokenID, id); err != nil {
		return nil, err
	}
	if err := s.store.Save(ctx, keys, id, in.Remember); err != nil {
		return nil, err
	}

	s.log.Info().
		Str("email", id.Email).
		Str("role", id.Role.String()).
		Bool("remember", in.Remember).
		Msg("login succeeded")

	return &ports.LoginResult{
		Identity:    id,
		LandingPath: id.Role.LandingPath(),
		Token:       token,
	}, nil
}

// Logout removes the client's identity from both tiers and revokes the bearer
// token named by keys.Token.
func (s *AuthService) Logout(ctx context.Context, keys ports.ClientKeys) error {
	return s.store.Clear(ctx, keys)
}

func (s *AuthService) generateToken(id *domain.Identity, tokenID string) (string, error) {
	claims := jwt.MapClaims{
		"jti":        tokenID,
		"email":      id.Email,
		"role":       id.Role.String(),
		"name":       id.Name,
		"login_time": id.IssuedAt.Format(time.RFC3339Nano),
		"exp":        s.now().Add(s.tokenTTL).Unix(),
	}

	return s.sign(claims)
}

func (s *AuthService) signHS256(claims jwt.Claims) (string, error) {
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
