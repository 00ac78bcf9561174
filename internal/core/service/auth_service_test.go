package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/steeldetailing/pm-dashboard/internal/core/domain"
	"github.com/steeldetailing/pm-dashboard/internal/core/ports"
)

type stubAccountRepo struct {
	accounts map[string]*domain.Account
	findErr  error
}

func newStubAccountRepo() *stubAccountRepo {
	return &stubAccountRepo{accounts: make(map[string]*domain.Account)}
}

func (r *stubAccountRepo) Create(_ context.Context, acct *domain.Account) (*domain.Account, error) {
	if _, exists := r.accounts[acct.Email]; exists {
		return nil, domain.ErrAccountExists
	}
	clone := *acct
	clone.ID = acct.Email
	r.accounts[acct.Email] = &clone
	out := clone
	return &out, nil
}

func (r *stubAccountRepo) FindByEmail(_ context.Context, email string) (*domain.Account, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	acct, ok := r.accounts[email]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	clone := *acct
	return &clone, nil
}

func newTestAuth(t *testing.T) (*AuthService, *SessionStore, *stubAccountRepo) {
	t.Helper()
	repo := newStubAccountRepo()
	store, _, _ := newTestStore()
	svc := NewAuthService(repo, store, "secret", time.Hour, zerolog.Nop())
	svc.now = func() time.Time { return time.Date(2024, 11, 12, 9, 30, 0, 0, time.UTC) }
	return svc, store, repo
}

func TestAuthService_Register(t *testing.T) {
	svc, _, repo := newTestAuth(t)

	acct, err := svc.Register(context.Background(), "  Manager@SteelDetailing.com ", "Project Manager", domain.RoleProjectManager, "manager123")
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if acct.Email != "manager@steeldetailing.com" {
		t.Fatalf("expected normalized email, got %q", acct.Email)
	}
	stored := repo.accounts["manager@steeldetailing.com"]
	if stored == nil || stored.PasswordHash == "manager123" {
		t.Fatalf("password must be stored hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("manager123")); err != nil {
		t.Fatalf("stored hash does not match: %v", err)
	}
}

func TestAuthService_Register_Rejects(t *testing.T) {
	svc, _, _ := newTestAuth(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, "a@b.c", "A", domain.Role("Admin"), "pw"); !errors.Is(err, domain.ErrUnknownRole) {
		t.Fatalf("expected ErrUnknownRole, got %v", err)
	}
	if _, err := svc.Register(ctx, "", "A", domain.RoleClient, "pw"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := svc.Register(ctx, "a@b.c", "A", domain.RoleClient, "pw"); err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if _, err := svc.Register(ctx, "a@b.c", "A", domain.RoleClient, "pw"); !errors.Is(err, domain.ErrAccountExists) {
		t.Fatalf("expected ErrAccountExists, got %v", err)
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	svc, store, _ := newTestAuth(t)
	ctx := context.Background()
	if _, err := svc.Register(ctx, "detailer@steeldetailing.com", "Detailer User", domain.RoleDetailer, "detailer123"); err != nil {
		t.Fatalf("Register returned error: %v", err)
	}

	res, err := svc.Login(ctx, testKeys, ports.LoginInput{
		Email:    "Detailer@steeldetailing.com",
		Password: "detailer123",
		Remember: true,
	})
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if res.LandingPath != "/dashboard/detailer" {
		t.Fatalf("unexpected landing path %q", res.LandingPath)
	}
	if res.Identity.Role != domain.RoleDetailer || res.Identity.Name != "Detailer User" {
		t.Fatalf("unexpected identity %+v", res.Identity)
	}
	if !res.Identity.IssuedAt.Equal(svc.now()) {
		t.Fatalf("login time should be the moment of login, got %v", res.Identity.IssuedAt)
	}

	stored, err := store.Load(ctx, ports.ClientKeys{Tab: "fresh-tab", Device: testKeys.Device})
	if err != nil || stored == nil || stored.Email != "detailer@steeldetailing.com" {
		t.Fatalf("remembered login should be in the durable tier, got %+v err=%v", stored, err)
	}

	token, err := jwt.Parse(res.Token, func(*jwt.Token) (any, error) { return []byte("secret"), nil },
		jwt.WithTimeFunc(svc.now))
	if err != nil || !token.Valid {
		t.Fatalf("token invalid: %v", err)
	}
	claims := token.Claims.(jwt.MapClaims)
	if claims["role"] != "Detailer" || claims["email"] != "detailer@steeldetailing.com" {
		t.Fatalf("unexpected claims %+v", claims)
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || !exp.Time.Equal(svc.now().Add(time.Hour)) {
		t.Fatalf("unexpected expiry %v (err %v)", exp, err)
	}
	jti, _ := claims["jti"].(string)
	if active, err := store.TokenActive(ctx, jti); err != nil || !active {
		t.Fatalf("issued token %q should be active, got %v err=%v", jti, active, err)
	}
}

func TestAuthService_Login_SigningFailureStoresNothing(t *testing.T) {
	svc, store, _ := newTestAuth(t)
	ctx := context.Background()
	if _, err := svc.Register(ctx, "client@steeldetailing.com", "Client User", domain.RoleClient, "client123"); err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	boom := errors.New("signer unavailable")
	svc.sign = func(jwt.Claims) (string, error) { return "", boom }

	_, err := svc.Login(ctx, testKeys, ports.LoginInput{Email: "client@steeldetailing.com", Password: "client123", Remember: true})
	if !errors.Is(err, boom) {
		t.Fatalf("expected signing error, got %v", err)
	}
	if id, err := store.Load(ctx, testKeys); err != nil || id != nil {
		t.Fatalf("no identity may be stored when signing fails, got %+v err=%v", id, err)
	}
}

func TestAuthService_Login_InvalidCredentials(t *testing.T) {
	svc, store, _ := newTestAuth(t)
	ctx := context.Background()
	if _, err := svc.Register(ctx, "client@steeldetailing.com", "Client User", domain.RoleClient, "client123"); err != nil {
		t.Fatalf("Register returned error: %v", err)
	}

	cases := map[string]ports.LoginInput{
		"wrong password": {Email: "client@steeldetailing.com", Password: "nope"},
		"unknown email":  {Email: "ghost@steeldetailing.com", Password: "client123"},
		"empty":          {},
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := svc.Login(ctx, testKeys, in)
			if !errors.Is(err, domain.ErrInvalidCredentials) {
				t.Fatalf("expected ErrInvalidCredentials, got %v", err)
			}
			if id, _ := store.Load(ctx, testKeys); id != nil {
				t.Fatalf("failed login must not save an identity, got %+v", id)
			}
		})
	}
}

func TestAuthService_Login_RepoError(t *testing.T) {
	svc, _, repo := newTestAuth(t)
	boom := errors.New("mongo down")
	repo.findErr = boom

	_, err := svc.Login(context.Background(), testKeys, ports.LoginInput{Email: "a@b.c", Password: "pw"})
	if !errors.Is(err, boom) || errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected repository error to surface, got %v", err)
	}
}

func TestAuthService_Logout(t *testing.T) {
	svc, store, _ := newTestAuth(t)
	ctx := context.Background()
	if _, err := svc.Register(ctx, "lead@steeldetailing.com", "Team Lead", domain.RoleTeamLead, "teamlead123"); err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	res, err := svc.Login(ctx, testKeys, ports.LoginInput{Email: "lead@steeldetailing.com", Password: "teamlead123", Remember: true})
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	token, _, err := jwt.NewParser().ParseUnverified(res.Token, jwt.MapClaims{})
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}
	jti, _ := token.Claims.(jwt.MapClaims)["jti"].(string)

	keys := testKeys
	keys.Token = jti
	if err := svc.Logout(ctx, keys); err != nil {
		t.Fatalf("Logout returned error: %v", err)
	}
	if id, _ := store.Load(ctx, testKeys); id != nil {
		t.Fatalf("expected no identity after logout, got %+v", id)
	}
	if active, _ := store.TokenActive(ctx, jti); active {
		t.Fatalf("token must be revoked by logout")
	}
}

func TestSeedAccounts_Idempotent(t *testing.T) {
	svc, _, _ := newTestAuth(t)
	ctx := context.Background()
	accounts := DemoAccounts[:2]

	n, err := SeedAccounts(ctx, svc, accounts)
	if err != nil || n != 2 {
		t.Fatalf("first seed: n=%d err=%v", n, err)
	}
	n, err = SeedAccounts(ctx, svc, accounts)
	if err != nil || n != 0 {
		t.Fatalf("second seed should create nothing: n=%d err=%v", n, err)
	}
}
