package controllers

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/nabhacare/telemed/db"
	"github.com/nabhacare/telemed/models"
	"github.com/nabhacare/telemed/queue"
	"github.com/nabhacare/telemed/utils"
)

// Notifications is the producer for admin-action events. Nil when no
// broker is configured; publishing then degrades to a logged no-op.
var Notifications *queue.Producer

// GetUsers returns every account, newest first.
func GetUsers(c *fiber.Ctx) error {
	var users []models.User

	if err := db.DB.Preload("DoctorProfile").
		Order("created_at DESC").
		Find(&users).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to fetch users",
		})
	}

	return c.JSON(users)
}

// UpdateUserStatus flips a doctor's verification status. Only the three
// moderation statuses are accepted; EMAIL_VERIFIED is reached through
// OTP verification alone.
func UpdateUserStatus(c *fiber.Ctx) error {
	type StatusInput struct {
		Status models.VerificationStatus `json:"status"`
	}

	input := new(StatusInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Cannot parse JSON",
		})
	}

	if !models.IsModerationStatus(input.Status) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid status",
		})
	}

	id := c.Params("id")

	var user models.User
	if db.DB.Preload("DoctorProfile").First(&user, id).RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "User not found",
		})
	}
	if user.DoctorProfile == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "User not found",
		})
	}

	if err := db.DB.Model(user.DoctorProfile).
		Update("verification_status", input.Status).Error; err != nil {
		log.Printf("Update user status error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to update user status",
			Error:   err.Error(),
		})
	}

	if input.Status == models.StatusVerified || input.Status == models.StatusRejected {
		notifyStatusChange(&user, input.Status)
	}

	return c.JSON(fiber.Map{
		"message": fmt.Sprintf("User status updated to %s", input.Status),
		"user": fiber.Map{
			"id":                  user.ID,
			"name":                user.Name,
			"verification_status": input.Status,
		},
	})
}

func notifyStatusChange(user *models.User, status models.VerificationStatus) {
	event := queue.DoctorStatusEvent{
		Type:   queue.EventDoctorStatusChanged,
		UserID: user.ID,
		Name:   user.Name,
		Email:  user.Email,
		Status: string(status),
	}

	payload, err := json.Marshal(event)
	if err != nil {
		log.Printf("Failed to marshal status event: %v", err)
		return
	}

	go func() {
		if err := Notifications.PublishMessage([]byte(user.Email), payload); err != nil {
			log.Printf("Failed to publish status event for %s: %v", user.Email, err)
		}
		if err := utils.SendStatusEmail(user.Email, user.Name, string(status)); err != nil {
			log.Printf("Failed to send status email to %s: %v", user.Email, err)
		}
	}()
}

// GetAdminStats returns aggregate counts for the admin dashboard. The
// consultation and report figures are fixed demo values.
func GetAdminStats(c *fiber.Ctx) error {
	var totalUsers, pendingDoctors, verifiedDoctors int64

	if err := db.DB.Model(&models.User{}).Count(&totalUsers).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to fetch admin statistics",
		})
	}

	db.DB.Model(&models.DoctorProfile{}).
		Where("verification_status = ?", models.StatusPending).
		Count(&pendingDoctors)
	db.DB.Model(&models.DoctorProfile{}).
		Where("verification_status = ?", models.StatusVerified).
		Count(&verifiedDoctors)

	return c.JSON(fiber.Map{
		"totalUsers":          totalUsers,
		"pendingDoctors":      pendingDoctors,
		"verifiedDoctors":     verifiedDoctors,
		"activeConsultations": 12,
		"totalReports":        154,
		"trends":              []int{40, 65, 45, 80, 55, 90, 70},
	})
}
