package websocket

import (
	"encoding/json"
	"sync"
)

// CashUpdate is pushed to back-office dashboards whenever a cash movement is
// recorded. CashBoxID is nil for movements recorded without a configured box.
type CashUpdate struct {
	CashBoxID *string `json:"cash_box_id"`
	Type      string  `json:"type"`
	Amount    string  `json:"amount"`
	Currency  string  `json:"currency"`
}

// TopicAll subscribes a client to movements in every currency.
const TopicAll = "*"

type Hub struct {
	mu      sync.RWMutex
	clients map[string]map[*Client]struct{}
}

func NewHub() *Hub {
	return &Hub{
		clients: make(map[string]map[*Client]struct{}),
	}
}

func (h *Hub) Register(topic string, client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.clients[topic] == nil {
		h.clients[topic] = make(map[*Client]struct{})
	}
	h.clients[topic][client] = struct{}{}
}

func (h *Hub) Unregister(topic string, client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.clients[topic] == nil {
		return
	}
	delete(h.clients[topic], client)
	if len(h.clients[topic]) == 0 {
		delete(h.clients, topic)
	}
}

func (h *Hub) BroadcastCash(currency string, update CashUpdate) {
	payload, _ := json.Marshal(update)
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, topic := range []string{currency, TopicAll} {
		for client := range h.clients[topic] {
			select {
			case client.send <- payload:
			default:
			}
		}
	}
}
