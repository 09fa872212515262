package session

import (
	"slices"
	"sync"
)

type Player struct {
	PlayerID    string `json:"playerId"`
	DisplayName string `json:"displayName"`
	Clients     int    `json:"clients"`
}

// Roster tracks the players connected to a room. A player may hold more
// than one connection; it leaves when the last one closes.
type Roster struct {
	mu      sync.RWMutex
	players map[string]*Player
}

func NewRoster() *Roster {
	return &Roster{players: make(map[string]*Player)}
}

// Add records a connection and reports whether the player is new.
func (r *Roster) Add(playerID, displayName string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.players[playerID]; ok {
		p.Clients++
		return false
	}
	r.players[playerID] = &Player{PlayerID: playerID, DisplayName: displayName, Clients: 1}
	return true
}

// Remove drops a connection and reports whether the player left.
func (r *Roster) Remove(playerID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.players[playerID]
	if !ok {
		return false
	}
	p.Clients--
	if p.Clients > 0 {
		return false
	}
	delete(r.players, playerID)
	return true
}

func (r *Roster) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.players)
}

// List returns the players sorted by id.
func (r *Roster) List() []Player {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Player, 0, len(r.players))
	for _, p := range r.players {
		out = append(out, *p)
	}
	slices.SortFunc(out, func(a, b Player) int {
		switch {
		case a.PlayerID < b.PlayerID:
			return -1
		case a.PlayerID > b.PlayerID:
			return 1
		}
		return 0
	})
	return out
}
