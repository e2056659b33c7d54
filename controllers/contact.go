package controllers

import (
	"encoding/json"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/nabhacare/telemed/db"
	"github.com/nabhacare/telemed/models"
	"github.com/nabhacare/telemed/queue"
	"github.com/nabhacare/telemed/utils"
)

// SubmitContact stores a contact form submission and notifies the team.
func SubmitContact(c *fiber.Ctx) error {
	type ContactInput struct {
		FirstName string `json:"firstName"`
		LastName  string `json:"lastName"`
		Email     string `json:"email"`
		Message   string `json:"message"`
	}

	input := new(ContactInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Cannot parse JSON",
		})
	}

	log.Printf("[CONTACT] New request from %s %s (%s): %s",
		input.FirstName, input.LastName, input.Email, input.Message)

	request := models.ContactRequest{
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Email:     input.Email,
		Message:   input.Message,
	}

	if err := db.DB.Create(&request).Error; err != nil {
		log.Printf("Contact form error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to send message. Please try again later.",
			Error:   err.Error(),
		})
	}

	event := queue.ContactEvent{
		Type:      queue.EventContactReceived,
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Email:     input.Email,
		Message:   input.Message,
	}
	if payload, err := json.Marshal(event); err == nil {
		go func() {
			if err := Notifications.PublishMessage([]byte(input.Email), payload); err != nil {
				log.Printf("Failed to publish contact event: %v", err)
			}
		}()
	}

	return c.JSON(fiber.Map{
		"message": "Your message has been received. Our team will contact you shortly.",
	})
}
