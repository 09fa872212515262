package session

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/samuraislice/slicer/internal/engine"
	"github.com/samuraislice/slicer/internal/geom"
	"github.com/samuraislice/slicer/internal/logging"
)

type input struct {
	client *Client
	msg    *Message
}

// Room runs one game. Every engine call happens on the room goroutine;
// clients reach it through channels.
type Room struct {
	sessionID string
	engine    *engine.Engine
	roster    *Roster
	clients   map[string]*Client // clientID -> client
	world     geom.Rect
	tickRate  int

	join  chan *Client
	leave chan *Client
	inbox chan input
	quit  chan struct{}
	done  chan struct{}

	seq    int64
	splits []engine.SplitEvent
	// members is owned by the hub goroutine.
	members int
}

func NewRoom(sessionID string, eng *engine.Engine, tickRate int, world geom.Rect) *Room {
	if tickRate <= 0 {
		tickRate = 60
	}
	r := &Room{
		sessionID: sessionID,
		engine:    eng,
		roster:    NewRoster(),
		clients:   make(map[string]*Client),
		world:     world,
		tickRate:  tickRate,
		join:      make(chan *Client, 16),
		leave:     make(chan *Client, 16),
		inbox:     make(chan input, 256),
		quit:      make(chan struct{}),
		done:      make(chan struct{}),
	}
	eng.Bus().Subscribe(func(ev engine.SplitEvent) {
		r.splits = append(r.splits, ev)
	})
	return r
}

func (r *Room) Run() {
	ticker := time.NewTicker(time.Second / time.Duration(r.tickRate))
	defer func() {
		ticker.Stop()
		for id, c := range r.clients {
			delete(r.clients, id)
			close(c.send)
		}
		close(r.done)
	}()

	for {
		select {
		case c := <-r.join:
			r.addClient(c)
		case c := <-r.leave:
			r.removeClient(c)
		case in := <-r.inbox:
			r.handleMessage(in.client, in.msg)
		case <-ticker.C:
			r.step()
		case <-r.quit:
			return
		}
	}
}

// Stop ends the room goroutine and waits for it.
func (r *Room) Stop() {
	close(r.quit)
	<-r.done
}

// submit queues a client message. It reports false once the room has
// stopped.
func (r *Room) submit(c *Client, msg *Message) bool {
	select {
	case r.inbox <- input{client: c, msg: msg}:
		return true
	case <-r.quit:
		return false
	}
}

func (r *Room) addClient(c *Client) {
	r.clients[c.ClientID] = c
	isNew := r.roster.Add(c.PlayerID, c.DisplayName)

	c.Send(newMessage(TypeWelcome, WelcomePayload{
		ClientID: c.ClientID,
		PlayerID: c.PlayerID,
		Players:  r.roster.List(),
		Kinds:    r.engine.Catalog().Kinds(),
		Frame:    r.engine.Frame(),
	}))

	if isNew {
		r.broadcast(newMessage(TypeRosterJoin, RosterPayload{
			PlayerID:    c.PlayerID,
			DisplayName: c.DisplayName,
		}), c.ClientID)
	}

	logging.Logger().Info("client joined", "player", c.PlayerID, "session", r.sessionID)
}

func (r *Room) removeClient(c *Client) {
	if _, ok := r.clients[c.ClientID]; !ok {
		return
	}
	delete(r.clients, c.ClientID)
	close(c.send)

	if r.roster.Remove(c.PlayerID) {
		r.engine.PointerUp(c.PlayerID)
		r.broadcast(newMessage(TypeRosterLeave, RosterPayload{PlayerID: c.PlayerID}), "")
	}

	logging.Logger().Info("client left", "player", c.PlayerID, "session", r.sessionID)
}

func (r *Room) handleMessage(sender *Client, msg *Message) {
	// Messages can still be queued after their client left.
	if _, ok := r.clients[sender.ClientID]; !ok {
		logging.Logger().Debug("dropping message from departed client", "type", msg.Type, "client", sender.ClientID)
		return
	}
	if err := r.apply(sender, msg); err != nil {
		logging.Logger().Warn("invalid message", "type", msg.Type, "player", sender.PlayerID, "error", err)
		reply := newMessage(TypeError, ErrorPayload{Message: err.Error()})
		reply.Seq = msg.Seq
		sender.Send(reply)
	}
}

func (r *Room) apply(sender *Client, msg *Message) error {
	switch msg.Type {
	case TypePointerDown, TypePointerMove:
		var p PointerPayload
		if err := json.Unmarshal(msg.Payload, &p); err != nil {
			return fmt.Errorf("decode pointer: %w", err)
		}
		if msg.Type == TypePointerDown {
			r.engine.PointerDown(sender.PlayerID, p.X, p.Y)
		} else {
			r.engine.PointerMove(sender.PlayerID, p.X, p.Y)
		}
	case TypePointerUp:
		r.engine.PointerUp(sender.PlayerID)
	case TypeShapeSpawn:
		var p SpawnPayload
		if err := json.Unmarshal(msg.Payload, &p); err != nil {
			return fmt.Errorf("decode spawn: %w", err)
		}
		pos, vel := geom.Pt(p.X, p.Y), geom.Pt(p.VX, p.VY)
		if p.Composite {
			_, err := r.engine.SpawnComposite(p.Kind, pos, vel)
			return err
		}
		_, err := r.engine.Spawn(p.Kind, pos, vel)
		return err
	case TypeWordSpawn:
		var p WordPayload
		if err := json.Unmarshal(msg.Payload, &p); err != nil {
			return fmt.Errorf("decode word: %w", err)
		}
		_, err := r.engine.SpawnWord(p.Text, geom.Pt(p.X, p.Y))
		return err
	default:
		return fmt.Errorf("unknown message type %q", msg.Type)
	}
	return nil
}

// step advances the game one frame and sends the results: split
// notifications first, then the frame.
func (r *Room) step() {
	r.engine.Step()
	if !r.world.IsEmpty() {
		r.engine.Prune(r.world)
	}

	for _, ev := range r.splits {
		r.broadcast(splitMessage(ev), "")
	}
	r.splits = r.splits[:0]

	if len(r.clients) == 0 {
		return
	}
	r.broadcast(newMessage(TypeFrame, FramePayload{
		Frame:    r.engine.Frame(),
		Commands: r.engine.DrawCommands(),
	}), "")
}

func splitMessage(ev engine.SplitEvent) *Message {
	p := SplitPayload{
		EventID:  ev.ID,
		ShapeID:  ev.Shape.ID,
		Tag:      ev.Shape.Tag,
		PlayerID: ev.PlayerID,
		X:        ev.Point.X,
		Y:        ev.Point.Y,
	}
	for i, c := range ev.Shape.Children() {
		if i < len(p.Children) {
			p.Children[i] = c.ID
		}
	}
	msg := newMessage(TypeShapeSplit, p)
	msg.PlayerID = ev.PlayerID
	return msg
}

func (r *Room) broadcast(msg *Message, excludeClientID string) {
	r.seq++
	msg.Seq = r.seq
	msg.SessionID = r.sessionID
	for _, c := range r.clients {
		if c.ClientID != excludeClientID {
			c.Send(msg)
		}
	}
}
