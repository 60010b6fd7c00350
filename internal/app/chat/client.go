package chat

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"shinesmile/internal/pkg/logx"
)

const (
	// timeout duration for writing to the WebSocket connection.
	writeWait = 10 * time.Second

	// maximum time allowed for the server to wait for a Pong message from the client.
	pongWait = 60 * time.Second

	// frequency at which the server sends a Ping message.
	pingPeriod = (pongWait * 9) / 10

	// maximum allowed size (in bytes) of a frame sent by the client.
	maxFrameSize = 8192

	sendQueueSize = 256
)

// Client is one WebSocket connection attached to the hub.
type Client struct {
	// connection id, unique per upgrade.
	id string

	hub  *Hub
	conn *websocket.Conn

	// canAdmin is set when the upgrade carried an admin token; only then is
	// isAdmin in join-chat honoured.
	canAdmin bool

	// outbound frames; closed by the hub only.
	send chan []byte

	logger zerolog.Logger
}

// NewClient wraps conn in a Client with a fresh connection id.
func NewClient(hub *Hub, conn *websocket.Conn, canAdmin bool) *Client {
	id := uuid.NewString()

	return &Client{
		id:       id,
		hub:      hub,
		conn:     conn,
		canAdmin: canAdmin,
		send:     make(chan []byte, sendQueueSize),
		logger:   logx.Logger().With().Str("client_id", id).Logger(),
	}
}

func (c *Client) ID() string { return c.id }

// ReadPump reads frames from the connection and hands them to the hub.
// When the connection ends it disconnects from the hub and closes the socket.
func (c *Client) ReadPump() {
	defer func() {
		c.hub.Disconnect(c)

		if err := c.conn.Close(); err != nil {
			c.logger.Debug().Err(err).Msg("Client connection close error")
		}
	}()

	c.conn.SetReadLimit(maxFrameSize)

	if err := c.conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		c.logger.Error().Err(err).Msg("Failed to set read deadline")
		return
	}

	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, frameBytes, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.Info().Err(err).Msg("Error reading message (Client close/going away)")
			}
			return
		}

		if err := c.processInbound(frameBytes); err != nil {
			c.logger.Debug().Err(err).Msg("Hub stopped; ending read loop.")
			return
		}
	}
}

// processInbound decodes one frame and submits the matching hub event.
// Malformed frames are logged and dropped; the returned error is only set
// when the hub no longer accepts events.
func (c *Client) processInbound(frameBytes []byte) error {
	var frame Frame
	if err := json.Unmarshal(frameBytes, &frame); err != nil {
		c.logger.Warn().Err(err).Bytes("frame", frameBytes).Msg("Client sent invalid JSON")
		return nil
	}

	switch frame.Event {
	case EventJoinChat:
		var p JoinPayload
		if !c.decode(frame, &p) {
			return nil
		}
		return c.hub.Join(c, p)

	case EventSendMessage:
		var p SendPayload
		if !c.decode(frame, &p) {
			return nil
		}
		return c.hub.Send(c, p.Message)

	case EventTyping:
		var isTyping bool
		if !c.decode(frame, &isTyping) {
			return nil
		}
		return c.hub.Typing(c, isTyping)

	case EventAdminAction:
		var p AdminActionPayload
		if !c.decode(frame, &p) {
			return nil
		}
		return c.hub.AdminAction(c, p.Type)

	default:
		c.logger.Warn().Str("event", frame.Event).Msg("Client sent unsupported event")
		return nil
	}
}

// decode unmarshals frame.Data into dst. Absent data leaves dst at its zero value.
func (c *Client) decode(frame Frame, dst any) bool {
	if len(frame.Data) == 0 {
		return true
	}
	if err := json.Unmarshal(frame.Data, dst); err != nil {
		c.logger.Warn().Err(err).Str("event", frame.Event).Msg("Client sent invalid event payload")
		return false
	}
	return true
}

// WritePump writes queued frames and periodic pings to the connection.
// It returns once the hub closes the send queue or a write fails.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)

	defer func() {
		ticker.Stop()

		if err := c.conn.Close(); err != nil {
			c.logger.Debug().Err(err).Msg("Client connection close error in WritePump")
		}
	}()

	for {
		select {
		case frame, ok := <-c.send:
			if !c.writeQueued(frame, ok) {
				return
			}

		case <-ticker.C:
			if !c.writePing() {
				return
			}
		}
	}
}

// writeQueued writes one frame, or a close frame when the queue was closed.
// Returns false if WritePump should stop.
func (c *Client) writeQueued(frame []byte, ok bool) bool {
	if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		c.logger.Error().Err(err).Msg("Failed to set write deadline")
		return false
	}

	if !ok {
		if err := c.conn.WriteMessage(websocket.CloseMessage, []byte{}); err != nil {
			c.logger.Debug().Err(err).Msg("Error writing close message")
		}
		return false
	}

	if err := c.conn.WriteMessage(websocket.TextMessage, frame); err != nil {
		c.logger.Error().Err(err).Msg("Error writing message")
		return false
	}

	return true
}

func (c *Client) writePing() bool {
	if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		c.logger.Error().Err(err).Msg("Failed to set write deadline on ping")
		return false
	}

	if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
		c.logger.Error().Err(err).Msg("Error writing ping")
		return false
	}

	return true
}
