package controllers

// Handler tests that need a real database. Point TEST_DATABASE_URL at a
// scratch Postgres to run them; they skip otherwise.

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/nabhacare/telemed/db"
	"github.com/nabhacare/telemed/middleware"
	"github.com/nabhacare/telemed/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func TestMain(m *testing.M) {
	if dsn := os.Getenv("TEST_DATABASE_URL"); dsn != "" {
		gdb, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
			DisableForeignKeyConstraintWhenMigrating: true,
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to connect to test database: %v\n", err)
			os.Exit(1)
		}
		db.DB = gdb
		db.Migrate()
	}
	os.Exit(m.Run())
}

func requireDB(t *testing.T) {
	t.Helper()
	if db.DB == nil {
		t.Skip("TEST_DATABASE_URL not set")
	}
}

func uniqueSuffix() string {
	return fmt.Sprintf("%d", time.Now().UnixNano())
}

func seedDoctor(t *testing.T, email, regNo string) *models.User {
	t.Helper()
	hashed, _ := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.DefaultCost)
	user := models.User{
		Name:     "Test Doctor",
		Email:    email,
		Password: string(hashed),
		Role:     models.RoleDoctor,
		DoctorProfile: &models.DoctorProfile{
			Category:           "general",
			MedicalRegNo:       regNo,
			VerificationStatus: models.StatusPending,
		},
	}
	if err := db.DB.Create(&user).Error; err != nil {
		t.Fatalf("failed to seed doctor: %v", err)
	}
	return &user
}

func authApp() *fiber.App {
	app := fiber.New()
	app.Post("/api/auth/doctor/signup", DoctorSignup)
	app.Post("/api/auth/doctor/signin", DoctorSignin)
	app.Post("/api/auth/doctor/verify-otp", VerifyOTP)
	return app
}

func adminApp() *fiber.App {
	app := fiber.New()
	app.Put("/api/admin/users/:id/status",
		middleware.Protected(), middleware.RequireRole(models.RoleAdmin),
		UpdateUserStatus)
	return app
}

func doAuthed(t *testing.T, app *fiber.App, method, path, token string, body interface{}) *http.Response {
	t.Helper()
	payload, _ := json.Marshal(body)
	req := httptest.NewRequest(method, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	return resp
}

func TestDoctorSignupDuplicateRegNo(t *testing.T) {
	requireDB(t)
	suffix := uniqueSuffix()
	regNo := "PMC-" + suffix
	seedDoctor(t, "first-"+suffix+"@example.com", regNo)

	var before int64
	db.DB.Model(&models.User{}).Count(&before)

	app := authApp()
	resp := postJSON(t, app, "/api/auth/doctor/signup", fiber.Map{
		"name":     "Second Doctor",
		"email":    "second-" + suffix + "@example.com",
		"password": "secret123",
		"regNo":    regNo,
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}

	body := decodeBody(t, resp)
	if body["message"] != "Registration number already active in system." {
		t.Fatalf("unexpected message: %v", body["message"])
	}

	var after int64
	db.DB.Model(&models.User{}).Count(&after)
	if after != before {
		t.Fatalf("duplicate signup created a row: %d -> %d", before, after)
	}
}

func TestVerifyOTPExpired(t *testing.T) {
	requireDB(t)
	suffix := uniqueSuffix()
	user := seedDoctor(t, "expired-"+suffix+"@example.com", "REG-"+suffix)

	db.DB.Model(user).Updates(map[string]interface{}{
		"otp":            "123456",
		"otp_expires_at": time.Now().Add(-time.Minute),
	})

	app := authApp()
	// Correct code, expired window.
	resp := postJSON(t, app, "/api/auth/doctor/verify-otp", fiber.Map{
		"email": user.Email,
		"otp":   "123456",
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for expired OTP, got %d", resp.StatusCode)
	}
}

func TestSignupVerifyRoundTrip(t *testing.T) {
	requireDB(t)
	t.Setenv("JWT_SECRET", "")
	suffix := uniqueSuffix()
	email := "roundtrip-" + suffix + "@example.com"

	app := authApp()
	resp := postJSON(t, app, "/api/auth/doctor/signup", fiber.Map{
		"name":     "Round Trip",
		"email":    email,
		"password": "secret123",
		"regNo":    "RT-" + suffix,
		"category": "homeopathy",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}

	// The OTP is only written to logs and to the row.
	var user models.User
	if db.DB.Where("email = ?", email).First(&user).RowsAffected == 0 {
		t.Fatal("signup did not create the user")
	}
	if user.OTP == "" {
		t.Fatal("signup did not store an OTP")
	}

	resp = postJSON(t, app, "/api/auth/doctor/verify-otp", fiber.Map{
		"email": email,
		"otp":   user.OTP,
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	body := decodeBody(t, resp)
	claims := parseClaims(t, body["token"].(string))
	if claims["role"] != models.RoleDoctor {
		t.Fatalf("expected role doctor, got %v", claims["role"])
	}

	var profile models.DoctorProfile
	db.DB.Where("user_id = ?", user.ID).First(&profile)
	if profile.VerificationStatus != models.StatusEmailVerified {
		t.Fatalf("expected EMAIL_VERIFIED in database, got %s", profile.VerificationStatus)
	}
	if claims["status"] != string(profile.VerificationStatus) {
		t.Fatalf("token status %v does not match database %s", claims["status"], profile.VerificationStatus)
	}
}

func TestUpdateUserStatusIdempotent(t *testing.T) {
	requireDB(t)
	t.Setenv("JWT_SECRET", "")
	suffix := uniqueSuffix()
	user := seedDoctor(t, "moderate-"+suffix+"@example.com", "MOD-"+suffix)

	token, err := issueAdminToken()
	if err != nil {
		t.Fatalf("failed to issue admin token: %v", err)
	}

	app := adminApp()
	path := fmt.Sprintf("/api/admin/users/%d/status", user.ID)

	var firstID, secondID interface{}
	for i, dst := range []*interface{}{&firstID, &secondID} {
		resp := doAuthed(t, app, http.MethodPut, path, token, fiber.Map{"status": "VERIFIED"})
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("call %d: expected 200, got %d", i+1, resp.StatusCode)
		}
		body := decodeBody(t, resp)
		*dst = body["user"].(map[string]interface{})["id"]
	}

	if firstID != secondID {
		t.Fatalf("idempotent update returned different ids: %v vs %v", firstID, secondID)
	}

	var profile models.DoctorProfile
	db.DB.Where("user_id = ?", user.ID).First(&profile)
	if profile.VerificationStatus != models.StatusVerified {
		t.Fatalf("expected VERIFIED, got %s", profile.VerificationStatus)
	}
}

func TestUpdateUserStatusMissingUser(t *testing.T) {
	requireDB(t)
	t.Setenv("JWT_SECRET", "")

	token, err := issueAdminToken()
	if err != nil {
		t.Fatalf("failed to issue admin token: %v", err)
	}

	resp := doAuthed(t, adminApp(), http.MethodPut, "/api/admin/users/999999/status",
		token, fiber.Map{"status": "VERIFIED"})
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
}

func TestUpdateUserStatusRejectsUnknownValue(t *testing.T) {
	requireDB(t)
	t.Setenv("JWT_SECRET", "")
	suffix := uniqueSuffix()
	user := seedDoctor(t, "badstatus-"+suffix+"@example.com", "BAD-"+suffix)

	token, err := issueAdminToken()
	if err != nil {
		t.Fatalf("failed to issue admin token: %v", err)
	}

	path := fmt.Sprintf("/api/admin/users/%d/status", user.ID)
	resp := doAuthed(t, adminApp(), http.MethodPut, path, token, fiber.Map{"status": "BANNED"})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}
