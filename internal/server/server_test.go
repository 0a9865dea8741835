package server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/sauravsingh6568/paonflowers-sub000/internal/auth"
	"github.com/sauravsingh6568/paonflowers-sub000/internal/config"
	"github.com/sauravsingh6568/paonflowers-sub000/internal/identity"
	"github.com/sauravsingh6568/paonflowers-sub000/internal/logging"
)

func devConfig() config.Config {
	return config.Config{
		AppName:        "PaonFlowers",
		Env:            "development",
		Port:           "8080",
		JWTSecret:      "test-secret",
		TokenTTL:       time.Hour,
		OTPTTL:         10 * time.Minute,
		OTPMaxPerHour:  5,
		OTPMaxAttempts: 5,
	}
}

// newDevServer builds a full server on in-memory stores.
func newDevServer(t *testing.T) *Server {
	t.Helper()
	srv, err := New(devConfig(), nil, nil, logging.Discard())
	if err != nil {
		t.Fatalf("build server: %v", err)
	}
	return srv
}

func doJSON(t *testing.T, app *fiber.App, method, path, body string, header map[string]string) (*http.Response, map[string]any) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	for k, v := range header {
		req.Header.Set(k, v)
	}
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	raw, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	payload := map[string]any{}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &payload); err != nil {
			t.Fatalf("decode body %q: %v", raw, err)
		}
	}
	return resp, payload
}

func TestHealthEndpoint(t *testing.T) {
	srv := newDevServer(t)

	resp, _ := doJSON(t, srv.App(), fiber.MethodGet, "/healthz", "", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
}

func TestSendOTPEndpoint(t *testing.T) {
	srv := newDevServer(t)

	resp, payload := doJSON(t, srv.App(), fiber.MethodPost, "/auth/send-otp", `{"phone":"+971501234567"}`, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if payload["message"] != "OTP sent" {
		t.Fatalf("unexpected ack payload: %v", payload)
	}
}

func TestSendOTPValidationError(t *testing.T) {
	srv := newDevServer(t)

	resp, payload := doJSON(t, srv.App(), fiber.MethodPost, "/auth/send-otp", `{"phone":"12345"}`, nil)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
	errObj, _ := payload["error"].(map[string]any)
	if errObj["code"] != "VALIDATION_ERROR" {
		t.Fatalf("expected VALIDATION_ERROR, got %v", payload)
	}
	fields, _ := errObj["fields"].(map[string]any)
	if fields["phone"] == nil {
		t.Fatalf("expected field-level detail, got %v", payload)
	}
}

func TestSendOTPRateLimited(t *testing.T) {
	srv := newDevServer(t)

	body := `{"phone":"+971501234567"}`
	for i := 0; i < 5; i++ {
		resp, _ := doJSON(t, srv.App(), fiber.MethodPost, "/auth/send-otp", body, nil)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("call %d: expected 200, got %d", i+1, resp.StatusCode)
		}
	}
	resp, payload := doJSON(t, srv.App(), fiber.MethodPost, "/auth/send-otp", body, nil)
	if resp.StatusCode != http.StatusTooManyRequests {
		t.Fatalf("6th call: expected 429, got %d", resp.StatusCode)
	}
	errObj, _ := payload["error"].(map[string]any)
	if errObj["code"] != "RATE_LIMITED" {
		t.Fatalf("expected RATE_LIMITED, got %v", payload)
	}
}

func TestVerifyOTPUnknownCode(t *testing.T) {
	srv := newDevServer(t)

	resp, payload := doJSON(t, srv.App(), fiber.MethodPost, "/auth/verify-otp", `{"phone":"+971501234567","code":"123456"}`, nil)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
	errObj, _ := payload["error"].(map[string]any)
	if errObj["code"] != "INVALID_OR_EXPIRED_CODE" {
		t.Fatalf("expected INVALID_OR_EXPIRED_CODE, got %v", payload)
	}
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	srv := newDevServer(t)

	resp, _ := doJSON(t, srv.App(), fiber.MethodGet, "/auth/me", "", nil)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("me without token: expected 401, got %d", resp.StatusCode)
	}

	resp, _ = doJSON(t, srv.App(), fiber.MethodPatch, "/auth/profile", `{"name":"Ayesha"}`, nil)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("profile without token: expected 401, got %d", resp.StatusCode)
	}
}

func TestMeWithTokenForMissingUser(t *testing.T) {
	srv := newDevServer(t)

	// A valid token whose identity does not exist in the store resolves to a
	// null user rather than an error.
	tokens := auth.NewTokenManager("test-secret", time.Hour)
	token, err := tokens.Issue(identity.User{ID: "64b5f0c1a2b3c4d5e6f70809", Phone: "+971501234567", Role: identity.RoleStandard})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	resp, payload := doJSON(t, srv.App(), fiber.MethodGet, "/auth/me", "", map[string]string{
		fiber.HeaderAuthorization: "Bearer " + token,
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if user, ok := payload["user"]; !ok || user != nil {
		t.Fatalf("expected null user, got %v", payload)
	}
}
