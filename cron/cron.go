package cron

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/nabhacare/telemed/clients/analytics"
	"github.com/nabhacare/telemed/db"
	"github.com/nabhacare/telemed/models"
	"github.com/nabhacare/telemed/ws"
	"github.com/robfig/cron/v3"
	"golang.org/x/sync/errgroup"
)

type dashboardUpdate struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// StartCronJobs schedules the analytics poll that feeds the realtime
// dashboards and the hourly sweep of expired OTP codes.
func StartCronJobs(hub *ws.Hub, analyticsClient *analytics.Client) {
	c := cron.New()

	_, err := c.AddFunc("@every 10s", func() {
		broadcastDashboardUpdates(hub, analyticsClient)
	})
	if err != nil {
		log.Fatalf("Failed to add cron job: %v", err)
	}

	_, err = c.AddFunc("@hourly", cleanupExpiredOTPs)
	if err != nil {
		log.Fatalf("Failed to add cron job: %v", err)
	}

	c.Start()
	log.Println("Cron job scheduler started for dashboard updates")
}

// broadcastDashboardUpdates polls the three analytics endpoints
// concurrently. The tick only broadcasts when all three succeed; a
// partial failure aborts the whole tick.
func broadcastDashboardUpdates(hub *ws.Hub, client *analytics.Client) {
	ctx, cancel := context.WithTimeout(context.Background(), 9*time.Second)
	defer cancel()

	var opd, dosha, remedy json.RawMessage

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		opd, err = client.OPDLoad(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		dosha, err = client.DoshaTrends(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		remedy, err = client.RemedyTrends(ctx)
		return err
	})

	if err := g.Wait(); err != nil {
		// Skip the tick; the next one retries.
		return
	}

	updates := []dashboardUpdate{
		{Type: "GENERAL_UPDATE", Data: opd},
		{Type: "AYURVEDIC_UPDATE", Data: dosha},
		{Type: "HOMEOPATHY_UPDATE", Data: remedy},
	}

	for _, update := range updates {
		payload, err := json.Marshal(update)
		if err != nil {
			log.Printf("Failed to marshal dashboard update: %v", err)
			continue
		}
		hub.BroadcastAll(ws.Envelope{
			Event:   ws.EventDashboardUpdate,
			Payload: payload,
		})
	}
}

// cleanupExpiredOTPs clears codes whose expiry has passed so stale
// values never linger on user rows.
func cleanupExpiredOTPs() {
	result := db.DB.Model(&models.User{}).
		Where("otp <> '' AND otp_expires_at < ?", time.Now()).
		Update("otp", "")
	if result.Error != nil {
		log.Printf("Error clearing expired OTPs: %v", result.Error)
		return
	}
	if result.RowsAffected > 0 {
		log.Printf("Cleared %d expired OTP codes", result.RowsAffected)
	}
}
