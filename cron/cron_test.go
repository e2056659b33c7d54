package cron

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/nabhacare/telemed/clients/analytics"
	"github.com/nabhacare/telemed/ws"
)

func analyticsStub(t *testing.T, failPath string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == failPath {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/predict/opd-load":
			w.Write([]byte(`{"current_load":30,"predicted_next_hour":45,"status":"Normal"}`))
		case "/analyze/dosha-trends":
			w.Write([]byte(`{"vata":40,"pitta":30,"kapha":20,"dominant":"Vata"}`))
		case "/analyze/remedy-trends":
			w.Write([]byte(`{"top_remedy":"Arnica Montana","effectiveness":80,"cases_treated":20}`))
		default:
			http.NotFound(w, r)
		}
	}))
}

func collectUpdates(t *testing.T, client *ws.Client) []dashboardUpdate {
	t.Helper()
	var updates []dashboardUpdate
	for {
		select {
		case data := <-client.Send:
			var env ws.Envelope
			if err := json.Unmarshal(data, &env); err != nil {
				t.Fatalf("bad envelope: %v", err)
			}
			if env.Event != ws.EventDashboardUpdate {
				t.Fatalf("expected %s, got %s", ws.EventDashboardUpdate, env.Event)
			}
			var update dashboardUpdate
			if err := json.Unmarshal(env.Payload, &update); err != nil {
				t.Fatalf("bad update payload: %v", err)
			}
			updates = append(updates, update)
		case <-time.After(100 * time.Millisecond):
			return updates
		}
	}
}

func TestBroadcastDashboardUpdates(t *testing.T) {
	srv := analyticsStub(t, "")
	defer srv.Close()

	hub := ws.NewHub()
	client := &ws.Client{ID: "c1", Send: make(chan []byte, 16)}
	hub.Register(client)

	broadcastDashboardUpdates(hub, analytics.New(srv.URL))

	updates := collectUpdates(t, client)
	if len(updates) != 3 {
		t.Fatalf("expected 3 updates, got %d", len(updates))
	}

	want := []string{"GENERAL_UPDATE", "AYURVEDIC_UPDATE", "HOMEOPATHY_UPDATE"}
	for i, update := range updates {
		if update.Type != want[i] {
			t.Fatalf("update %d: expected %s, got %s", i, want[i], update.Type)
		}
		if len(update.Data) == 0 {
			t.Fatalf("update %s carried no data", update.Type)
		}
	}
}

func TestBroadcastSkipsTickOnPartialFailure(t *testing.T) {
	srv := analyticsStub(t, "/analyze/remedy-trends")
	defer srv.Close()

	hub := ws.NewHub()
	client := &ws.Client{ID: "c1", Send: make(chan []byte, 16)}
	hub.Register(client)

	broadcastDashboardUpdates(hub, analytics.New(srv.URL))

	if updates := collectUpdates(t, client); len(updates) != 0 {
		t.Fatalf("expected no updates when one fetch fails, got %d", len(updates))
	}
}
