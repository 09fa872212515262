package session

import (
	"context"
	"encoding/json"
	"time"

	"github.com/coder/websocket"

	"github.com/samuraislice/slicer/internal/logging"
)

const (
	writeWait  = 10 * time.Second
	pingPeriod = 30 * time.Second
	maxMsgSize = 16 * 1024
)

type Client struct {
	hub         *Hub
	conn        *websocket.Conn
	send        chan []byte
	PlayerID    string
	DisplayName string
	SessionID   string
	ClientID    string
}

func NewClient(hub *Hub, conn *websocket.Conn, playerID, displayName, sessionID, clientID string) *Client {
	return &Client{
		hub:         hub,
		conn:        conn,
		send:        make(chan []byte, 256),
		PlayerID:    playerID,
		DisplayName: displayName,
		SessionID:   sessionID,
		ClientID:    clientID,
	}
}

func (c *Client) ReadPump(ctx context.Context) {
	log := logging.Logger()
	defer func() {
		c.hub.Unregister(c)
		c.conn.Close(websocket.StatusNormalClosure, "")
	}()

	c.conn.SetReadLimit(maxMsgSize)

	for {
		_, data, err := c.conn.Read(ctx)
		if err != nil {
			if websocket.CloseStatus(err) == websocket.StatusNormalClosure ||
				websocket.CloseStatus(err) == websocket.StatusGoingAway {
				return
			}
			log.Debug("read error", "error", err, "player", c.PlayerID)
			return
		}

		var msg Message
		if err := json.Unmarshal(data, &msg); err != nil {
			log.Warn("invalid message", "error", err, "player", c.PlayerID)
			continue
		}

		msg.PlayerID = c.PlayerID
		msg.ClientID = c.ClientID
		msg.SessionID = c.SessionID

		c.hub.handleMessage(c, &msg)
	}
}

func (c *Client) WritePump(ctx context.Context) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close(websocket.StatusNormalClosure, "")
	}()

	for {
		select {
		case message, ok := <-c.send:
			if !ok {
				return
			}

			writeCtx, cancel := context.WithTimeout(ctx, writeWait)
			err := c.conn.Write(writeCtx, websocket.MessageText, message)
			cancel()
			if err != nil {
				logging.Logger().Debug("write error", "error", err, "player", c.PlayerID)
				return
			}

		case <-ticker.C:
			pingCtx, cancel := context.WithTimeout(ctx, writeWait)
			err := c.conn.Ping(pingCtx)
			cancel()
			if err != nil {
				return
			}

		case <-ctx.Done():
			return
		}
	}
}

// Send queues msg. Frames are dropped rather than blocking the room when
// a client falls behind.
func (c *Client) Send(msg *Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		logging.Logger().Error("marshal message", "error", err)
		return
	}

	select {
	case c.send <- data:
	default:
		logging.Logger().Warn("client send buffer full, dropping message", "player", c.PlayerID, "type", msg.Type)
	}
}
