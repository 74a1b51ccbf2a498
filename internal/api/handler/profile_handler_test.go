package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/orderdispatcher/auth-service/internal/api/middleware"
	"github.com/orderdispatcher/auth-service/internal/core/domain"
	"github.com/orderdispatcher/auth-service/internal/core/ports"
)

type stubProfileService struct {
	lastUserID string
	profile    *domain.Profile
	address    *domain.Address
	err        error
}

func (s *stubProfileService) SaveProfile(_ context.Context, userID string, _ ports.ProfileSaveInput) (*domain.Profile, error) {
	s.lastUserID = userID
	return s.profile, s.err
}

func (s *stubProfileService) GetProfile(_ context.Context, userID string) (*domain.Profile, error) {
	s.lastUserID = userID
	return s.profile, s.err
}

func (s *stubProfileService) SaveAddress(_ context.Context, userID string, _ ports.AddressSaveInput) (*domain.Address, error) {
	s.lastUserID = userID
	return s.address, s.err
}

func (s *stubProfileService) GetAddress(_ context.Context, userID, _ string) (*domain.Address, error) {
	s.lastUserID = userID
	return s.address, s.err
}

func (s *stubProfileService) ListAddresses(_ context.Context, userID string) ([]domain.Address, error) {
	s.lastUserID = userID
	if s.address == nil {
		return nil, s.err
	}
	return []domain.Address{*s.address}, s.err
}

func authedContext(t *testing.T, method, target, body, userID string) (echo.Context, *httptest.ResponseRecorder, *echo.Echo) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if userID != "" {
		c.Set(middleware.CtxUserID, userID)
	}
	return c, rec, e
}

func TestProfileHandler_Save_UsesCallerIdentity(t *testing.T) {
	svc := &stubProfileService{profile: &domain.Profile{ID: "prof-1", UserID: "acct-1"}}
	h := NewProfileHandler(svc)

	c, rec, _ := authedContext(t, http.MethodPost, "/api/auth/profile/save", `{"firstName":"Alice"}`, "acct-1")
	if err := h.Save(c); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if svc.lastUserID != "acct-1" {
		t.Fatalf("caller id not forwarded, got %q", svc.lastUserID)
	}

	var env envelopeBody
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil || !env.IsSuccess || env.Message != "Profile saved." {
		t.Fatalf("unexpected envelope: %s", rec.Body.String())
	}
}

func TestProfileHandler_Save_Unauthenticated(t *testing.T) {
	h := NewProfileHandler(&stubProfileService{})

	c, rec, e := authedContext(t, http.MethodPost, "/api/auth/profile/save", `{"firstName":"Alice"}`, "")
	if err := h.Save(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestProfileHandler_GetAddress_NotFound(t *testing.T) {
	h := NewProfileHandler(&stubProfileService{err: domain.ErrAddressNotFound})

	c, rec, _ := authedContext(t, http.MethodGet, "/api/auth/profile/getAddress/abc", "", "acct-1")
	c.SetParamNames("id")
	c.SetParamValues("abc")
	if err := h.GetAddress(c); err != nil {
		t.Fatalf("GetAddress returned error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestProfileHandler_SaveAddress_Validation(t *testing.T) {
	svc := &stubProfileService{}
	h := NewProfileHandler(svc)

	c, rec, _ := authedContext(t, http.MethodPost, "/api/auth/profile/saveAddress", `{"title":"","address":""}`, "acct-1")
	if err := h.SaveAddress(c); err != nil {
		t.Fatalf("SaveAddress returned error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if svc.lastUserID != "" {
		t.Fatalf("service must not be called on validation failure")
	}
}
