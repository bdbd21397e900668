package ws

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/glasspack/api/internal/draft"
)

// Event is a message broadcast to a production team's clients.
type Event struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// EventOrderCreated announces a freshly submitted order to its team.
const EventOrderCreated = "order_created"

// teamEvent routes an event to one team's room.
type teamEvent struct {
	Team  string
	Event Event
}

// Hub maintains the set of connected team clients and broadcasts order
// notifications to them. Rooms are keyed by production team label.
type Hub struct {
	rooms map[string]map[*Client]bool

	register   chan *Client
	unregister chan *Client
	broadcast  chan *teamEvent

	mu sync.RWMutex
}

// NewHub creates a new Hub.
func NewHub() *Hub {
	return &Hub{
		rooms:      make(map[string]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan *teamEvent, 256),
	}
}

// Run starts the hub's main loop. Call as a goroutine: go hub.Run()
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			if h.rooms[client.team] == nil {
				h.rooms[client.team] = make(map[*Client]bool)
			}
			h.rooms[client.team][client] = true
			h.mu.Unlock()

		case client := <-h.unregister:
			h.mu.Lock()
			if clients, ok := h.rooms[client.team]; ok {
				if _, exists := clients[client]; exists {
					delete(clients, client)
					close(client.send)
					if len(clients) == 0 {
						delete(h.rooms, client.team)
					}
				}
			}
			h.mu.Unlock()

		case event := <-h.broadcast:
			h.mu.Lock()
			clients := h.rooms[event.Team]

			message, err := json.Marshal(event.Event)
			if err != nil {
				h.mu.Unlock()
				continue
			}

			for client := range clients {
				select {
				case client.send <- message:
				default:
					// Client's send buffer is full, close and unregister.
					close(client.send)
					delete(h.rooms[event.Team], client)
					if len(h.rooms[event.Team]) == 0 {
						delete(h.rooms, event.Team)
					}
				}
			}
			h.mu.Unlock()
		}
	}
}

// IsConnected reports whether any client of the given team is live.
func (h *Hub) IsConnected(team string) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[team]) > 0
}

// NotifyTeam broadcasts an order-created event to every row team appearing
// in the order plus the submitting team. Marshal failure only loses the
// notification; order creation already succeeded.
func (h *Hub) NotifyTeam(o draft.WireOrder) {
	payload, err := json.Marshal(o)
	if err != nil {
		log.Printf("ERROR: marshal order notification: %v", err)
		return
	}
	event := Event{Type: EventOrderCreated, Payload: payload}
	for _, team := range orderTeams(o) {
		h.broadcast <- &teamEvent{Team: team, Event: event}
	}
}

// orderTeams collects the distinct team labels an order touches.
func orderTeams(o draft.WireOrder) []string {
	seen := map[string]bool{}
	var teams []string
	add := func(t string) {
		if t != "" && !seen[t] {
			seen[t] = true
			teams = append(teams, t)
		}
	}
	add(o.Team)
	for _, wi := range o.Items {
		for _, rows := range [][]draft.WireRow{wi.Glass, wi.Caps, wi.Boxes, wi.Pumps, wi.Accessories} {
			for _, wr := range rows {
				add(wr.Team)
			}
		}
	}
	return teams
}
