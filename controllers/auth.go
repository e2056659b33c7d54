package controllers

import (
	"log"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/nabhacare/telemed/db"
	"github.com/nabhacare/telemed/models"
	"github.com/nabhacare/telemed/utils"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	signupOTPValidity = 10 * time.Minute
	signinOTPValidity = 5 * time.Minute
	doctorTokenTTL    = 7 * 24 * time.Hour
	adminTokenTTL     = 24 * time.Hour
)

func jwtSecret() string {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "fallback_secret"
	}
	return secret
}

// issueAdminToken signs a 24h token for the shared admin account.
func issueAdminToken() (string, error) {
	claims := jwt.MapClaims{
		"role":     models.RoleAdmin,
		"username": "admin",
		"exp":      time.Now().Add(adminTokenTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(jwtSecret()))
}

// issueDoctorToken signs a 7d token. Status and category are snapshot
// at verification time; a later admin decision is invisible to the
// token until it expires or the doctor signs in again.
func issueDoctorToken(user *models.User, profile *models.DoctorProfile) (string, error) {
	status := models.StatusPending
	category := ""
	if profile != nil {
		status = profile.VerificationStatus
		category = profile.Category
	}

	claims := jwt.MapClaims{
		"id":       user.ID,
		"role":     models.RoleDoctor,
		"email":    user.Email,
		"status":   string(status),
		"category": category,
		"exp":      time.Now().Add(doctorTokenTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(jwtSecret()))
}

// AdminLogin exchanges the shared admin password for a token.
func AdminLogin(c *fiber.Ctx) error {
	type LoginInput struct {
		Password string `json:"password"`
	}

	input := new(LoginInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Cannot parse JSON",
		})
	}

	adminPassword := os.Getenv("ADMIN_PASSWORD")
	if adminPassword == "" {
		adminPassword = "admin123"
	}

	if input.Password != adminPassword {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Invalid admin password",
		})
	}

	token, err := issueAdminToken()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to generate token",
		})
	}

	return c.JSON(fiber.Map{
		"token":   token,
		"message": "Admin login successful",
	})
}

type SignupInput struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Password   string `json:"password"`
	Mobile     string `json:"mobile"`
	Category   string `json:"category"`
	Speciality string `json:"speciality"`
	RegNo      string `json:"regNo"`
	Council    string `json:"council"`
	ClinicName string `json:"clinicName"`
	City       string `json:"city"`
	State      string `json:"state"`
	LicenseURL string `json:"licenseUrl"`
	GovtIDURL  string `json:"govtIdUrl"`
}

// DoctorSignup registers a doctor account pending verification and
// issues the first OTP.
func DoctorSignup(c *fiber.Ctx) error {
	input := new(SignupInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Cannot parse JSON",
		})
	}

	if input.Name == "" || input.Email == "" || input.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Missing required fields",
		})
	}

	// Fraud check: one account per medical registration number.
	var existing models.DoctorProfile
	if db.DB.Where("medical_reg_no = ?", input.RegNo).First(&existing).RowsAffected > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Registration number already active in system.",
		})
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to hash password",
		})
	}

	otp := utils.GenerateOTP()

	user := models.User{
		Name:         input.Name,
		Email:        input.Email,
		Password:     string(hashedPassword),
		Mobile:       input.Mobile,
		Role:         models.RoleDoctor,
		OTP:          otp,
		OTPExpiresAt: time.Now().Add(signupOTPValidity),
		DoctorProfile: &models.DoctorProfile{
			Category:           input.Category,
			Speciality:         input.Speciality,
			MedicalRegNo:       input.RegNo,
			MedicalCouncil:     input.Council,
			ClinicName:         input.ClinicName,
			City:               input.City,
			State:              input.State,
			LicenseURL:         input.LicenseURL,
			GovtIDURL:          input.GovtIDURL,
			VerificationStatus: models.StatusPending,
		},
	}

	if err := db.DB.Create(&user).Error; err != nil {
		log.Printf("Signup error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to create account",
		})
	}

	log.Printf("[AUTH] OTP for %s: %s", user.Email, otp)
	go func() {
		if err := utils.SendOTPEmail(user.Email, user.Name, otp, 10); err != nil {
			log.Printf("Failed to send OTP email to %s: %v", user.Email, err)
		}
	}()

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Sign up successful. Please verify your email.",
		"user": fiber.Map{
			"id":                  user.ID,
			"name":                user.Name,
			"email":               user.Email,
			"verification_status": user.DoctorProfile.VerificationStatus,
		},
	})
}

// DoctorSignin checks the password and issues a fresh sign-in OTP. The
// token is only issued after OTP verification.
func DoctorSignin(c *fiber.Ctx) error {
	type SigninInput struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	input := new(SigninInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Cannot parse JSON",
		})
	}

	var user models.User
	if db.DB.Where("email = ?", input.Email).First(&user).RowsAffected == 0 {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Invalid email or password.",
		})
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)); err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Invalid email or password.",
		})
	}

	// Overwrites any prior code; last writer wins.
	otp := utils.GenerateOTP()
	err := db.DB.Model(&user).Updates(map[string]interface{}{
		"otp":            otp,
		"otp_expires_at": time.Now().Add(signinOTPValidity),
	}).Error
	if err != nil {
		log.Printf("Signin error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to send OTP",
		})
	}

	log.Printf("[AUTH] Login OTP for %s: %s", user.Email, otp)
	go func() {
		if err := utils.SendOTPEmail(user.Email, user.Name, otp, 5); err != nil {
			log.Printf("Failed to send OTP email to %s: %v", user.Email, err)
		}
	}()

	return c.JSON(fiber.Map{
		"message": "OTP sent to your email.",
		"email":   user.Email,
	})
}

// VerifyOTP matches the submitted code, flips the account to
// EMAIL_VERIFIED on first success and issues the doctor token.
func VerifyOTP(c *fiber.Ctx) error {
	type VerifyInput struct {
		Email string `json:"email"`
		OTP   string `json:"otp"`
	}

	input := new(VerifyInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Cannot parse JSON",
		})
	}

	var user models.User
	if db.DB.Preload("DoctorProfile").Where("email = ?", input.Email).First(&user).RowsAffected == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid or expired OTP.",
		})
	}

	if user.OTP == "" || user.OTP != input.OTP || time.Now().After(user.OTPExpiresAt) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid or expired OTP.",
		})
	}

	if !user.EmailVerified {
		err := db.DB.Transaction(func(tx *gorm.DB) error {
			if err := tx.Model(&user).Update("email_verified", true).Error; err != nil {
				return err
			}
			if user.DoctorProfile != nil {
				return tx.Model(user.DoctorProfile).
					Update("verification_status", models.StatusEmailVerified).Error
			}
			return nil
		})
		if err != nil {
			log.Printf("Verification error: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"message": "Failed to verify email",
			})
		}
		if user.DoctorProfile != nil {
			user.DoctorProfile.VerificationStatus = models.StatusEmailVerified
		}
	}

	token, err := issueDoctorToken(&user, user.DoctorProfile)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to generate token",
		})
	}

	status := models.StatusPending
	if user.DoctorProfile != nil {
		status = user.DoctorProfile.VerificationStatus
	}

	return c.JSON(fiber.Map{
		"token":   token,
		"status":  status,
		"message": "Authentication successful.",
	})
}
