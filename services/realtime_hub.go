package services

import (
	"encoding/json"
	"sync"

	"nutrilog/models"
	"nutrilog/utils"

	"github.com/gorilla/websocket"
)

type WSClient struct {
	Conn *websocket.Conn
}

// RealtimeHub pushes freshly logged meals to connected dashboard watchers,
// so the admin view updates without polling the log.
type RealtimeHub struct {
	mu      sync.RWMutex
	clients map[*WSClient]struct{}
}

func NewRealtimeHub() *RealtimeHub {
	return &RealtimeHub{clients: make(map[*WSClient]struct{})}
}

func (h *RealtimeHub) Register(c *WSClient) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()
}

func (h *RealtimeHub) Unregister(c *WSClient) {
	h.mu.Lock()
	delete(h.clients, c)
	h.mu.Unlock()
	_ = c.Conn.Close()
}

// BroadcastMealLogged sends the new record (with its warnings) to every
// watcher. Write errors are ignored; a dead client is cleaned up when its
// read loop exits.
func (h *RealtimeHub) BroadcastMealLogged(rec models.MealRecord, warnings []utils.Warning) {
	msg, _ := json.Marshal(map[string]any{
		"kind":     "meal.logged",
		"record":   rec,
		"warnings": warnings,
	})
	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.clients {
		_ = c.Conn.WriteMessage(websocket.TextMessage, msg)
	}
}
