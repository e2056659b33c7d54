package controllers

import (
	"encoding/json"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/nabhacare/telemed/db"
	"github.com/nabhacare/telemed/models"
	"github.com/nabhacare/telemed/utils"
)

const mockPDFURL = "/mock-emr-report.pdf"

// FinalizeConsultation persists the finalized record and prescription
// and returns the report URL. PDF generation itself is out of scope;
// the URL is a fixed placeholder.
func FinalizeConsultation(c *fiber.Ctx) error {
	type FinalizeInput struct {
		SessionID   string          `json:"sessionId"`
		FinalRecord json.RawMessage `json:"finalRecord"`
		FinalRx     json.RawMessage `json:"finalRx"`
	}

	input := new(FinalizeInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Cannot parse JSON",
		})
	}

	summary := "Patient diagnosed with viral upper respiratory infection. Prescription issued."

	consultation := models.Consultation{
		SessionID:    input.SessionID,
		DoctorID:     c.Locals("userID").(uint),
		Record:       string(input.FinalRecord),
		Prescription: string(input.FinalRx),
		Summary:      summary,
		PDFURL:       mockPDFURL,
	}

	if err := db.DB.Create(&consultation).Error; err != nil {
		log.Printf("Finalize consultation error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to finalize consultation.",
			Error:   err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"message": "Consultation finalized and EMR generated successfully.",
		"pdfUrl":  consultation.PDFURL,
		"summary": consultation.Summary,
	})
}
