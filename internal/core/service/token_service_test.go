package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/orderdispatcher/auth-service/internal/core/domain"
)

func tokenTestAccount(repo *stubCredentialRepo, roles ...string) *domain.Account {
	account := &domain.Account{ID: "acct-1", Username: "alice", Email: "alice@x.com"}
	repo.accounts[account.ID] = account
	repo.memberships[account.ID] = roles
	return account
}

func TestTokenService_RoundTrip(t *testing.T) {
	repo := newStubCredentialRepo()
	account := tokenTestAccount(repo, domain.RoleCustomer, domain.RoleAdmin)
	svc := NewTokenService(repo, "round-trip-key", "auth-service", "order-dispatcher", time.Hour)

	token, err := svc.CreateToken(context.Background(), account)
	if err != nil {
		t.Fatalf("CreateToken returned error: %v", err)
	}

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return []byte("round-trip-key"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token did not verify: %v", err)
	}

	if claims["sub"] != "acct-1" {
		t.Errorf("sub = %v, want acct-1", claims["sub"])
	}
	if claims["unique_name"] != "alice" {
		t.Errorf("unique_name = %v, want alice", claims["unique_name"])
	}
	if claims["email"] != "alice@x.com" {
		t.Errorf("email = %v, want alice@x.com", claims["email"])
	}
	if claims["iss"] != "auth-service" || claims["aud"] != "order-dispatcher" {
		t.Errorf("unexpected iss/aud: %v / %v", claims["iss"], claims["aud"])
	}
	if jti, _ := claims["jti"].(string); jti == "" {
		t.Errorf("jti claim missing")
	}

	roles, _ := claims["roles"].([]interface{})
	if len(roles) != 2 || roles[0] != domain.RoleCustomer || roles[1] != domain.RoleAdmin {
		t.Errorf("roles = %v, want [customer admin]", claims["roles"])
	}
}

func TestTokenService_UniqueTokenIDs(t *testing.T) {
	repo := newStubCredentialRepo()
	account := tokenTestAccount(repo, domain.RoleCustomer)
	svc := NewTokenService(repo, "key", "iss", "aud", time.Hour)

	jtis := make(map[string]bool)
	for i := 0; i < 3; i++ {
		token, err := svc.CreateToken(context.Background(), account)
		if err != nil {
			t.Fatalf("CreateToken: %v", err)
		}
		claims := jwt.MapClaims{}
		if _, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
			return []byte("key"), nil
		}); err != nil {
			t.Fatalf("parse: %v", err)
		}
		jtis[claims["jti"].(string)] = true
	}
	if len(jtis) != 3 {
		t.Fatalf("expected 3 distinct jti values, got %d", len(jtis))
	}
}

func TestTokenService_WrongKeyFailsSignature(t *testing.T) {
	repo := newStubCredentialRepo()
	account := tokenTestAccount(repo, domain.RoleCustomer)
	svc := NewTokenService(repo, "right-key", "iss", "aud", time.Hour)

	token, err := svc.CreateToken(context.Background(), account)
	if err != nil {
		t.Fatalf("CreateToken: %v", err)
	}

	_, err = jwt.Parse(token, func(*jwt.Token) (interface{}, error) {
		return []byte("wrong-key"), nil
	})
	if !errors.Is(err, jwt.ErrTokenSignatureInvalid) {
		t.Fatalf("expected signature error, got %v", err)
	}
}

func TestTokenService_ExpiredTokenFails(t *testing.T) {
	repo := newStubCredentialRepo()
	account := tokenTestAccount(repo, domain.RoleCustomer)
	svc := NewTokenService(repo, "key", "iss", "aud", time.Minute)

	token, err := svc.CreateToken(context.Background(), account)
	if err != nil {
		t.Fatalf("CreateToken: %v", err)
	}

	// Verify from two minutes in the future, past the one-minute expiry.
	_, err = jwt.Parse(token, func(*jwt.Token) (interface{}, error) {
		return []byte("key"), nil
	}, jwt.WithTimeFunc(func() time.Time { return time.Now().Add(2 * time.Minute) }))
	if !errors.Is(err, jwt.ErrTokenExpired) {
		t.Fatalf("expected expiry error, got %v", err)
	}
}

func TestTokenService_MissingSecretPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic for missing signing secret")
		}
	}()
	NewTokenService(newStubCredentialRepo(), "", "iss", "aud", time.Hour)
}
