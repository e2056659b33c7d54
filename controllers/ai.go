package controllers

import (
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/nabhacare/telemed/clients/genai"
	"github.com/nabhacare/telemed/utils"
)

// GenAI is the generative text client for drafting records and
// prescriptions. Set in main.
var GenAI *genai.Client

// StartAISession opens a consultation assistant session.
func StartAISession(c *fiber.Ctx) error {
	type StartInput struct {
		PatientID string `json:"patientId"`
	}

	input := new(StartInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Cannot parse JSON",
		})
	}

	log.Printf("[AI] Starting session for patient %s", input.PatientID)

	return c.JSON(fiber.Map{
		"sessionId": utils.GenerateSessionID(),
		"status":    "LISTENING",
		"message":   "AI Assistant is now active and listening.",
	})
}

type Symptom struct {
	Name     string `json:"name"`
	Duration string `json:"duration"`
	Severity string `json:"severity"`
}

// extractSymptoms scans transcript text for known symptom keywords.
func extractSymptoms(text string) []Symptom {
	symptoms := []Symptom{}
	textLower := strings.ToLower(text)

	if strings.Contains(textLower, "fever") {
		symptoms = append(symptoms, Symptom{Name: "Fever", Duration: "unknown", Severity: "moderate"})
	}
	if strings.Contains(textLower, "cough") {
		symptoms = append(symptoms, Symptom{Name: "Cough", Duration: "unknown", Severity: "mild"})
	}
	if strings.Contains(textLower, "headache") {
		symptoms = append(symptoms, Symptom{Name: "Headache", Duration: "2 days", Severity: "severe"})
	}
	if strings.Contains(textLower, "fatigue") || strings.Contains(textLower, "tired") {
		symptoms = append(symptoms, Symptom{Name: "Fatigue", Duration: "1 week", Severity: "mild"})
	}

	return symptoms
}

// StreamSpeech extracts symptom mentions from a transcript fragment.
func StreamSpeech(c *fiber.Ctx) error {
	type StreamInput struct {
		SessionID string `json:"sessionId"`
		Text      string `json:"text"`
	}

	input := new(StreamInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Cannot parse JSON",
		})
	}

	symptoms := extractSymptoms(input.Text)

	return c.JSON(fiber.Map{
		"sessionId":         input.SessionID,
		"extractedSymptoms": symptoms,
		"isMedicalInsight":  len(symptoms) > 0,
	})
}

// stripCodeFences removes markdown code-fence markers the model tends
// to wrap JSON output in.
func stripCodeFences(s string) string {
	s = strings.ReplaceAll(s, "```json", "")
	s = strings.ReplaceAll(s, "```", "")
	return strings.TrimSpace(s)
}

// DraftRecord asks the model for a structured EMR draft from the
// consultation transcript.
func DraftRecord(c *fiber.Ctx) error {
	type DraftInput struct {
		SessionID  string `json:"sessionId"`
		Transcript string `json:"transcript"`
		DoctorType string `json:"doctorType"`
	}

	input := new(DraftInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Cannot parse JSON",
		})
	}

	transcript := input.Transcript
	if transcript == "" {
		transcript = "Patient reports high fever and cough for 3 days."
	}

	prompt := fmt.Sprintf(`
		Act as a professional medical scribe. Based on the following consultation transcript, generate a structured Medical Record (EMR) draft in JSON format.
		Transcript: "%s"
		Include:
		- chiefComplaint: brief summary
		- hpi: History of Present Illness (detailed)
		- pastHistory: any mentioned past conditions
		- allergies: any mentioned allergies
		- vitalsDraft: { bp, heartRate, temp } (infer if mentioned, or provide standard placeholders)
		Response must be strictly valid JSON only.
	`, transcript)

	text, err := GenAI.GenerateContent(c.Context(), prompt)
	if err != nil {
		log.Printf("Record draft error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to generate record draft using AI.",
			Error:   err.Error(),
		})
	}

	var draft json.RawMessage
	if err := json.Unmarshal([]byte(stripCodeFences(text)), &draft); err != nil {
		log.Printf("Record draft parse error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to generate record draft using AI.",
			Error:   err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"sessionId": input.SessionID,
		"draft":     draft,
	})
}

// SuggestRx asks the model for a specialty-appropriate prescription draft.
func SuggestRx(c *fiber.Ctx) error {
	type SuggestInput struct {
		SessionID  string          `json:"sessionId"`
		DoctorType string          `json:"doctorType"`
		Symptoms   json.RawMessage `json:"symptoms"`
		Transcript string          `json:"transcript"`
	}

	input := new(SuggestInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Cannot parse JSON",
		})
	}

	prompt := fmt.Sprintf(`
		Act as a medical assistant for a %s doctor. Suggest a safe, appropriate prescription draft based on these symptoms: %s.
		Context from transcript: "%s"

		Specialty Logic:
		- If "ayurvedic", suggest classical Ayurvedic formulations.
		- If "homeopathy", suggest homeopathic remedies with potencies.
		- If "general", suggest standard allopathic (GP) medicines.

		Format the response as a JSON array of objects with keys: medicine, dosage, duration, advice.
		Response must be strictly valid JSON only.
	`, input.DoctorType, string(input.Symptoms), input.Transcript)

	text, err := GenAI.GenerateContent(c.Context(), prompt)
	if err != nil {
		log.Printf("Rx suggest error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to generate prescription suggestions.",
			Error:   err.Error(),
		})
	}

	var suggestions json.RawMessage
	if err := json.Unmarshal([]byte(stripCodeFences(text)), &suggestions); err != nil {
		log.Printf("Rx suggest parse error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to generate prescription suggestions.",
			Error:   err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"sessionId":   input.SessionID,
		"suggestions": suggestions,
		"safetyCheck": "AI generated draft. Please review for contraindications and precise dosages.",
		"confidence":  "MEDIUM",
	})
}
