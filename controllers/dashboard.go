package controllers

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/nabhacare/telemed/clients/analytics"
)

// Analytics is the ML service client shared by the dashboard handlers
// and the realtime poller. Set in main.
var Analytics *analytics.Client

// AyurvedicDashboard composes dosha trends from the analytics service
// with fixed demo figures. Falls back to a static payload when the
// service is unreachable.
func AyurvedicDashboard(c *fiber.Ctx) error {
	criticalPatients := []fiber.Map{
		{"id": 1, "name": "Rahul Sharma", "condition": "Severe Arthritis", "wait_time": "45m"},
		{"id": 2, "name": "Priya Singh", "condition": "Migraine", "wait_time": "10m"},
	}

	dosha, err := Analytics.DoshaTrends(c.Context())
	if err != nil {
		log.Printf("Analytics error (using mock fallback): %v", err)
		return c.JSON(fiber.Map{
			"assessments": fiber.Map{
				"total": 18,
				"details": []fiber.Map{
					{"dosha": "Vata", "percentage": 40},
					{"dosha": "Pitta", "percentage": 30},
				},
			},
			"panchakarma":       fiber.Map{"active": 42, "completing": 5},
			"critical_patients": criticalPatients,
		})
	}

	return c.JSON(fiber.Map{
		"assessments":       fiber.Map{"total": 18, "details": dosha},
		"panchakarma":       fiber.Map{"active": 42, "completing": 5},
		"critical_patients": criticalPatients,
	})
}

// HomeopathyDashboard composes remedy trends with fixed demo figures.
func HomeopathyDashboard(c *fiber.Ctx) error {
	insights := []fiber.Map{
		{"id": 1, "text": "4 migraine patients share stress-related triggers.", "type": "cluster"},
	}

	remedy, err := Analytics.RemedyTrends(c.Context())
	if err != nil {
		log.Printf("Analytics error (using mock fallback): %v", err)
		return c.JSON(fiber.Map{
			"consultations": fiber.Map{"today": 24, "avg_duration": "25 min"},
			"remedy_stats": []fiber.Map{
				{"remedy": "Arnica", "count": 12},
				{"remedy": "Nux Vomica", "count": 8},
			},
			"insights": insights,
		})
	}

	return c.JSON(fiber.Map{
		"consultations": fiber.Map{"today": 24, "avg_duration": "25 min"},
		"remedy_stats":  remedy,
		"insights":      insights,
	})
}

// GeneralDashboard composes the OPD load prediction with fixed demo figures.
func GeneralDashboard(c *fiber.Ctx) error {
	symptomTrends := fiber.Map{"text": "Fever & Cold cases ↑ 18% since yesterday", "trend": "up"}
	waitingRoom := fiber.Map{"total": 12, "max_wait": "20 min"}

	opd, err := Analytics.OPDLoad(c.Context())
	if err != nil {
		log.Printf("Analytics error (using mock fallback): %v", err)
		return c.JSON(fiber.Map{
			"opd_load":       fiber.Map{"current": 45, "projected": 60},
			"symptom_trends": symptomTrends,
			"waiting_room":   waitingRoom,
		})
	}

	return c.JSON(fiber.Map{
		"opd_load":       opd,
		"symptom_trends": symptomTrends,
		"waiting_room":   waitingRoom,
	})
}
