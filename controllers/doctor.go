package controllers

import (
	"fmt"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/nabhacare/telemed/db"
	"github.com/nabhacare/telemed/models"
	"github.com/nabhacare/telemed/utils"
)

// GetDoctorProfile returns the authenticated doctor's own row.
func GetDoctorProfile(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var user models.User
	if db.DB.Preload("DoctorProfile").First(&user, userID).RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "User not found",
		})
	}

	return c.JSON(user)
}

type ProfileUpdateInput struct {
	Name            string   `json:"name"`
	Mobile          string   `json:"mobile"`
	Category        string   `json:"doctor_category"`
	Speciality      string   `json:"speciality"`
	ClinicName      string   `json:"clinic_name"`
	City            string   `json:"city"`
	State           string   `json:"state"`
	Degrees         string   `json:"degrees"`
	ExperienceYears string   `json:"experience_years"`
	Bio             string   `json:"bio"`
	Languages       []string `json:"languages"`
}

// UpdateDoctorProfile updates the editable identity and profile fields.
// Verification state and registration number are not editable here.
func UpdateDoctorProfile(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	input := new(ProfileUpdateInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Cannot parse JSON",
		})
	}

	var user models.User
	if db.DB.Preload("DoctorProfile").First(&user, userID).RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "User not found",
		})
	}

	user.Name = input.Name
	user.Mobile = input.Mobile
	if err := db.DB.Model(&user).Updates(map[string]interface{}{
		"name":   input.Name,
		"mobile": input.Mobile,
	}).Error; err != nil {
		log.Printf("Update profile error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to update profile",
			Error:   err.Error(),
		})
	}

	if user.DoctorProfile != nil {
		user.DoctorProfile.Category = input.Category
		user.DoctorProfile.Speciality = input.Speciality
		user.DoctorProfile.ClinicName = input.ClinicName
		user.DoctorProfile.City = input.City
		user.DoctorProfile.State = input.State
		user.DoctorProfile.Degrees = input.Degrees
		user.DoctorProfile.ExperienceYears = input.ExperienceYears
		user.DoctorProfile.Bio = input.Bio
		user.DoctorProfile.Languages = input.Languages

		if err := db.DB.Save(user.DoctorProfile).Error; err != nil {
			log.Printf("Update profile error: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
				Message: "Failed to update profile",
				Error:   err.Error(),
			})
		}
	}

	return c.JSON(user)
}

// UpdateProfilePicture uploads the submitted image to Cloudinary and
// stores the secure URL on the doctor profile.
func UpdateProfilePicture(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	file, err := c.FormFile("profile_picture")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Failed to get profile picture",
		})
	}

	f, err := file.Open()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to open profile picture",
		})
	}
	defer f.Close()

	var profile models.DoctorProfile
	if db.DB.Where("user_id = ?", userID).First(&profile).RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "User not found",
		})
	}

	publicID := fmt.Sprintf("doctor_%d_%d", userID, time.Now().Unix())
	secureURL, err := utils.UploadToCloudinary(f, publicID, "profile_pictures")
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to upload profile picture",
		})
	}

	if err := db.DB.Model(&profile).Update("profile_image", secureURL).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to update profile picture",
		})
	}

	return c.JSON(fiber.Map{
		"profile_image": secureURL,
	})
}
