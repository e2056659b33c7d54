package controllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/nabhacare/telemed/models"
)

func postJSON(t *testing.T, app *fiber.App, path string, body interface{}) *http.Response {
	t.Helper()
	payload, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("failed to marshal body: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	return out
}

func parseClaims(t *testing.T, tokenString string) jwt.MapClaims {
	t.Helper()
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		return []byte(jwtSecret()), nil
	})
	if err != nil || !token.Valid {
		t.Fatalf("token did not verify: %v", err)
	}
	return token.Claims.(jwt.MapClaims)
}

func TestAdminLoginDefaultPassword(t *testing.T) {
	t.Setenv("ADMIN_PASSWORD", "")
	t.Setenv("JWT_SECRET", "")

	app := fiber.New()
	app.Post("/api/auth/admin/login", AdminLogin)

	resp := postJSON(t, app, "/api/auth/admin/login", fiber.Map{"password": "admin123"})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	body := decodeBody(t, resp)
	tokenString, _ := body["token"].(string)
	if tokenString == "" {
		t.Fatal("expected a token in the response")
	}

	claims := parseClaims(t, tokenString)
	if claims["role"] != models.RoleAdmin {
		t.Fatalf("expected role admin, got %v", claims["role"])
	}
}

func TestAdminLoginWrongPassword(t *testing.T) {
	t.Setenv("ADMIN_PASSWORD", "")

	app := fiber.New()
	app.Post("/api/auth/admin/login", AdminLogin)

	resp := postJSON(t, app, "/api/auth/admin/login", fiber.Map{"password": "nope"})
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.StatusCode)
	}
}

func TestIssueDoctorTokenClaims(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	user := &models.User{ID: 7, Email: "doc@example.com"}
	profile := &models.DoctorProfile{
		VerificationStatus: models.StatusEmailVerified,
		Category:           "ayurvedic",
	}

	tokenString, err := issueDoctorToken(user, profile)
	if err != nil {
		t.Fatalf("failed to issue token: %v", err)
	}

	claims := parseClaims(t, tokenString)
	if claims["role"] != models.RoleDoctor {
		t.Fatalf("expected role doctor, got %v", claims["role"])
	}
	if claims["email"] != "doc@example.com" {
		t.Fatalf("expected email claim, got %v", claims["email"])
	}
	if claims["status"] != string(models.StatusEmailVerified) {
		t.Fatalf("expected status snapshot, got %v", claims["status"])
	}
	if claims["category"] != "ayurvedic" {
		t.Fatalf("expected category snapshot, got %v", claims["category"])
	}
	if uint(claims["id"].(float64)) != 7 {
		t.Fatalf("expected id 7, got %v", claims["id"])
	}
}

func TestIssueDoctorTokenWithoutProfile(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	user := &models.User{ID: 3, Email: "bare@example.com"}
	tokenString, err := issueDoctorToken(user, nil)
	if err != nil {
		t.Fatalf("failed to issue token: %v", err)
	}

	claims := parseClaims(t, tokenString)
	if claims["status"] != string(models.StatusPending) {
		t.Fatalf("expected PENDING status fallback, got %v", claims["status"])
	}
}
