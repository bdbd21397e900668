package ws

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/glasspack/api/internal/draft"
	"github.com/glasspack/api/internal/enum"
)

// mockClient creates a client for testing without a real WebSocket connection
func mockClient(hub *Hub, team string) *Client {
	return &Client{
		hub:  hub,
		team: team,
		send: make(chan []byte, 256),
	}
}

func TestHubRegistration(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	client := mockClient(hub, enum.TeamGlass)

	// Register client
	hub.register <- client

	// Give hub time to process
	time.Sleep(10 * time.Millisecond)

	hub.mu.RLock()
	defer hub.mu.RUnlock()

	if hub.rooms[enum.TeamGlass] == nil {
		t.Fatal("team room not created")
	}
	if !hub.rooms[enum.TeamGlass][client] {
		t.Fatal("client not registered in team room")
	}
}

func TestHubUnregistration(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	client := mockClient(hub, enum.TeamGlass)

	hub.register <- client
	time.Sleep(10 * time.Millisecond)

	hub.unregister <- client
	time.Sleep(10 * time.Millisecond)

	hub.mu.RLock()
	defer hub.mu.RUnlock()

	// Room should be cleaned up when empty
	if hub.rooms[enum.TeamGlass] != nil {
		t.Fatal("team room not cleaned up after last client unregistered")
	}
}

func TestIsConnected(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	if hub.IsConnected(enum.TeamGlass) {
		t.Fatal("empty hub reports connected")
	}

	client := mockClient(hub, enum.TeamGlass)
	hub.register <- client
	time.Sleep(10 * time.Millisecond)

	if !hub.IsConnected(enum.TeamGlass) {
		t.Fatal("registered team reports disconnected")
	}
	if hub.IsConnected(enum.TeamCaps) {
		t.Fatal("other team reports connected")
	}
}

func TestNotifyTeamReachesEveryRowTeam(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	glassClient := mockClient(hub, enum.TeamGlass)
	capsClient := mockClient(hub, enum.TeamCaps)
	pumpsClient := mockClient(hub, enum.TeamPumps)

	hub.register <- glassClient
	hub.register <- capsClient
	hub.register <- pumpsClient
	time.Sleep(10 * time.Millisecond)

	order := draft.WireOrder{
		OrderNumber: "ORD-55",
		Items: []draft.WireItem{{
			Name:  "Item 1",
			Glass: []draft.WireRow{{GlassName: "GPR-30-RND", Team: enum.TeamGlass}},
			Caps:  []draft.WireRow{{CapName: "CP-ALU-18", Team: enum.TeamCaps}},
		}},
	}
	hub.NotifyTeam(order)

	for _, tc := range []struct {
		name   string
		client *Client
	}{
		{"glass", glassClient},
		{"caps", capsClient},
	} {
		select {
		case msg := <-tc.client.send:
			var ev Event
			if err := json.Unmarshal(msg, &ev); err != nil {
				t.Fatalf("%s: unmarshal event: %v", tc.name, err)
			}
			if ev.Type != EventOrderCreated {
				t.Errorf("%s: event type: got %s, want %s", tc.name, ev.Type, EventOrderCreated)
			}
			var got draft.WireOrder
			if err := json.Unmarshal(ev.Payload, &got); err != nil {
				t.Fatalf("%s: unmarshal payload: %v", tc.name, err)
			}
			if got.OrderNumber != "ORD-55" {
				t.Errorf("%s: order number: got %s", tc.name, got.OrderNumber)
			}
		case <-time.After(time.Second):
			t.Fatalf("%s: no event received", tc.name)
		}
	}

	// The pumps team appears nowhere in the order.
	select {
	case <-pumpsClient.send:
		t.Fatal("pumps client received event for an order without pump rows")
	case <-time.After(50 * time.Millisecond):
	}
}

// The submitting team is notified even when no row targets it.
func TestNotifyTeamIncludesOrderTeam(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	client := mockClient(hub, enum.TeamAccessories)
	hub.register <- client
	time.Sleep(10 * time.Millisecond)

	hub.NotifyTeam(draft.WireOrder{
		OrderNumber: "ORD-56",
		Team:        enum.TeamAccessories,
		Items: []draft.WireItem{{
			Glass: []draft.WireRow{{GlassName: "GPR-30-RND", Team: enum.TeamGlass}},
		}},
	})

	select {
	case <-client.send:
	case <-time.After(time.Second):
		t.Fatal("submitting team not notified")
	}
}

func TestOrderTeamsDeduplicates(t *testing.T) {
	order := draft.WireOrder{
		Team: enum.TeamGlass,
		Items: []draft.WireItem{{
			Glass: []draft.WireRow{
				{Team: enum.TeamGlass},
				{Team: enum.TeamGlass},
			},
			Caps: []draft.WireRow{{Team: enum.TeamCaps}},
		}},
	}
	teams := orderTeams(order)
	if len(teams) != 2 {
		t.Fatalf("expected 2 distinct teams, got %v", teams)
	}
}
