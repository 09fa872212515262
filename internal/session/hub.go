package session

import (
	"sync"

	"github.com/samuraislice/slicer/internal/engine"
	"github.com/samuraislice/slicer/internal/geom"
	"github.com/samuraislice/slicer/internal/logging"
)

// EngineFactory builds the engine for a new room.
type EngineFactory func() *engine.Engine

type Hub struct {
	mu         sync.RWMutex
	rooms      map[string]*Room // sessionID -> room
	register   chan *Client
	unregister chan *Client
	stop       chan chan struct{}
	closed     chan struct{}

	newEngine EngineFactory
	tickRate  int
	world     geom.Rect
}

func NewHub(newEngine EngineFactory, tickRate int, world geom.Rect) *Hub {
	return &Hub{
		rooms:      make(map[string]*Room),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		stop:       make(chan chan struct{}),
		closed:     make(chan struct{}),
		newEngine:  newEngine,
		tickRate:   tickRate,
		world:      world,
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.addClient(client)
		case client := <-h.unregister:
			h.removeClient(client)
		case ack := <-h.stop:
			h.stopRooms()
			close(h.closed)
			close(ack)
			return
		}
	}
}

// Stop shuts every room down and ends Run.
func (h *Hub) Stop() {
	ack := make(chan struct{})
	h.stop <- ack
	<-ack
}

// Register adds client to its session's room, opening the room if
// needed. It is a no-op once the hub has stopped.
func (h *Hub) Register(client *Client) {
	select {
	case h.register <- client:
	case <-h.closed:
	}
}

func (h *Hub) Unregister(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.closed:
	}
}

// Rooms returns the number of live rooms.
func (h *Hub) Rooms() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms)
}

func (h *Hub) room(sessionID string) (*Room, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	room, ok := h.rooms[sessionID]
	return room, ok
}

func (h *Hub) addClient(client *Client) {
	h.mu.Lock()
	room, ok := h.rooms[client.SessionID]
	if !ok {
		room = NewRoom(client.SessionID, h.newEngine(), h.tickRate, h.world)
		h.rooms[client.SessionID] = room
		go room.Run()
		logging.Logger().Info("room opened", "session", client.SessionID)
	}
	room.members++
	h.mu.Unlock()

	room.join <- client
}

func (h *Hub) removeClient(client *Client) {
	h.mu.Lock()
	room, ok := h.rooms[client.SessionID]
	if !ok {
		h.mu.Unlock()
		return
	}
	room.members--
	empty := room.members == 0
	if empty {
		delete(h.rooms, client.SessionID)
	}
	h.mu.Unlock()

	room.leave <- client
	if empty {
		room.Stop()
		logging.Logger().Info("room closed", "session", client.SessionID)
	}
}

func (h *Hub) stopRooms() {
	h.mu.Lock()
	rooms := h.rooms
	h.rooms = make(map[string]*Room)
	h.mu.Unlock()

	for _, room := range rooms {
		room.Stop()
	}
}

// handleMessage routes a client message to its room.
func (h *Hub) handleMessage(sender *Client, msg *Message) {
	room, ok := h.room(sender.SessionID)
	if !ok {
		return
	}
	if !room.submit(sender, msg) {
		logging.Logger().Debug("room stopped, dropping message", "type", msg.Type, "session", sender.SessionID)
	}
}
