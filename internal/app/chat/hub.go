/*
Package chat implements the clinic's live chat: a single hub goroutine that
owns the participant registry and the message history, and WebSocket clients
that feed it events.

Every event, whether a connect, join, message, typing flag, admin query or
disconnect, travels through one channel and is handled to completion before
the next, so the registry and history need no locks and every participant
observes broadcasts in the same order.
*/
package chat

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"shinesmile/internal/pkg/logx"
)

const (
	eventChannelBuffer = 1024

	// HistoryOnJoin is how many buffered messages a joiner receives.
	HistoryOnJoin = 10

	// MaxMessageRunes bounds the text of one chat message.
	MaxMessageRunes = 5000
)

// ErrHubStopped is returned when an event is submitted after Stop.
var ErrHubStopped = errors.New("chat hub stopped")

type eventKind int

const (
	kindConnect eventKind = iota
	kindDisconnect
	kindJoin
	kindSend
	kindTyping
	kindAdminAction
	kindSnapshot
)

type hubEvent struct {
	kind   eventKind
	client *Client

	join     JoinPayload
	text     string
	isTyping bool
	action   string

	reply chan Snapshot
}

// Snapshot reports the hub's state at the moment it was taken.
type Snapshot struct {
	Connections  int `json:"connections"`
	Participants int `json:"participants"`
	History      int `json:"history"`
}

// Hub routes chat events between connected clients.
type Hub struct {
	events chan hubEvent

	// connected clients keyed by connection id; a client may be connected
	// without having joined.
	clients map[string]*Client

	registry *Registry
	history  *History

	// seq numbers chat messages; ids are strictly increasing per hub.
	seq uint64

	now func() time.Time

	stopOnce sync.Once
	stopChan chan struct{}
	done     chan struct{}

	logger zerolog.Logger
}

// NewHub returns a Hub with an empty registry and a history of historyCap messages.
func NewHub(historyCap int) *Hub {
	return &Hub{
		events:   make(chan hubEvent, eventChannelBuffer),
		clients:  make(map[string]*Client),
		registry: NewRegistry(),
		history:  NewHistory(historyCap),
		now:      time.Now,
		stopChan: make(chan struct{}),
		done:     make(chan struct{}),
		logger:   logx.Component("chat_hub"),
	}
}

// Run processes events until Stop is called. On exit every remaining
// client's send queue is closed, which makes its write pump hang up.
func (h *Hub) Run() {
	h.logger.Info().Int("history_capacity", h.history.Cap()).Msg("Chat hub started.")

	defer func() {
		for id, c := range h.clients {
			close(c.send)
			delete(h.clients, id)
		}
		h.logger.Info().Msg("Chat hub stopped. All connections released.")
		close(h.done)
	}()

	for {
		select {
		case ev := <-h.events:
			h.handle(ev)
		case <-h.stopChan:
			return
		}
	}
}

// Stop signals Run to return. It is safe to call more than once.
func (h *Hub) Stop() {
	h.stopOnce.Do(func() {
		h.logger.Info().Msg("Received stop signal. Stopping chat hub.")
		close(h.stopChan)
	})
}

// Done is closed once Run has returned.
func (h *Hub) Done() <-chan struct{} {
	return h.done
}

func (h *Hub) submit(ev hubEvent) error {
	select {
	case <-h.stopChan:
		return ErrHubStopped
	default:
	}

	select {
	case h.events <- ev:
		return nil
	case <-h.stopChan:
		return ErrHubStopped
	}
}

// Connect registers a new connection. It must precede every other event for c.
func (h *Hub) Connect(c *Client) error {
	return h.submit(hubEvent{kind: kindConnect, client: c})
}

// Disconnect removes c. Repeated calls are harmless.
func (h *Hub) Disconnect(c *Client) {
	if err := h.submit(hubEvent{kind: kindDisconnect, client: c}); err != nil {
		h.logger.Debug().Str("client_id", c.id).Msg("Disconnect after hub stop ignored.")
	}
}

func (h *Hub) Join(c *Client, p JoinPayload) error {
	return h.submit(hubEvent{kind: kindJoin, client: c, join: p})
}

func (h *Hub) Send(c *Client, text string) error {
	return h.submit(hubEvent{kind: kindSend, client: c, text: text})
}

func (h *Hub) Typing(c *Client, isTyping bool) error {
	return h.submit(hubEvent{kind: kindTyping, client: c, isTyping: isTyping})
}

func (h *Hub) AdminAction(c *Client, action string) error {
	return h.submit(hubEvent{kind: kindAdminAction, client: c, action: action})
}

// Snapshot returns the hub's counters. It is answered in event order, so
// every event submitted before the call has been handled when it returns.
func (h *Hub) Snapshot(ctx context.Context) (Snapshot, error) {
	reply := make(chan Snapshot, 1)
	if err := h.submit(hubEvent{kind: kindSnapshot, reply: reply}); err != nil {
		return Snapshot{}, err
	}

	select {
	case s := <-reply:
		return s, nil
	case <-h.done:
		return Snapshot{}, ErrHubStopped
	case <-ctx.Done():
		return Snapshot{}, ctx.Err()
	}
}

func (h *Hub) handle(ev hubEvent) {
	switch ev.kind {
	case kindConnect:
		h.clients[ev.client.id] = ev.client
		h.logger.Debug().Str("client_id", ev.client.id).Int("connections", len(h.clients)).Msg("Client connected.")

	case kindDisconnect:
		h.handleDisconnect(ev.client)

	case kindJoin:
		h.handleJoin(ev.client, ev.join)

	case kindSend:
		h.handleSend(ev.client, ev.text)

	case kindTyping:
		h.handleTyping(ev.client, ev.isTyping)

	case kindAdminAction:
		h.handleAdminAction(ev.client, ev.action)

	case kindSnapshot:
		ev.reply <- Snapshot{
			Connections:  len(h.clients),
			Participants: h.registry.Len(),
			History:      h.history.Len(),
		}
	}
}

func (h *Hub) handleDisconnect(c *Client) {
	current, ok := h.clients[c.id]
	if !ok || current != c {
		return
	}

	delete(h.clients, c.id)
	close(c.send)

	p, joined := h.registry.Leave(c.id)
	if !joined {
		h.logger.Debug().Str("client_id", c.id).Msg("Unjoined client disconnected.")
		return
	}

	h.logger.Info().
		Str("client_id", c.id).
		Str("name", p.Name).
		Int("participants", h.registry.Len()).
		Msg("Participant left chat.")

	h.broadcast(EventUserLeft, PresencePayload{User: p, Message: p.Name + " left the chat"}, "")
}

func (h *Hub) handleJoin(c *Client, in JoinPayload) {
	if _, ok := h.clients[c.id]; !ok {
		h.logger.Debug().Str("client_id", c.id).Msg("Join from unknown connection dropped.")
		return
	}

	name := strings.TrimSpace(in.Name)
	if name == "" {
		name = AnonymousName
	}

	isAdmin := in.IsAdmin && c.canAdmin
	if in.IsAdmin && !c.canAdmin {
		h.logger.Warn().Str("client_id", c.id).Msg("Admin join without admin token; joining as visitor.")
	}

	p := h.registry.Join(Participant{
		ID:       c.id,
		Name:     name,
		Email:    strings.TrimSpace(in.Email),
		IsAdmin:  isAdmin,
		JoinedAt: h.now(),
	})

	h.logger.Info().
		Str("client_id", c.id).
		Str("name", p.Name).
		Bool("is_admin", p.IsAdmin).
		Int("participants", h.registry.Len()).
		Msg("Participant joined chat.")

	h.unicast(c, EventChatMessage, Message{
		ID:        SystemMessageID,
		Sender:    SystemSender,
		Message:   WelcomeText,
		Timestamp: h.now(),
		IsSystem:  true,
	})

	if h.history.Len() > 0 {
		h.unicast(c, EventChatHistory, h.history.Recent(HistoryOnJoin))
	}

	if !p.IsAdmin {
		h.broadcast(EventUserJoined, PresencePayload{User: *p, Message: p.Name + " joined the chat"}, "")
	}
}

func (h *Hub) handleSend(c *Client, text string) {
	p, ok := h.registry.Get(c.id)
	if !ok {
		h.logger.Debug().Str("client_id", c.id).Msg("Message from unjoined connection dropped.")
		return
	}

	text = strings.TrimSpace(text)
	if text == "" || utf8.RuneCountInString(text) > MaxMessageRunes {
		h.logger.Debug().Str("client_id", c.id).Int("length", len(text)).Msg("Empty or oversized message dropped.")
		return
	}

	h.seq++
	msg := Message{
		ID:        strconv.FormatUint(h.seq, 10),
		Sender:    p.Name,
		Message:   text,
		Timestamp: h.now(),
		UserID:    p.ID,
		IsAdmin:   p.IsAdmin,
	}

	h.history.Append(msg)
	h.broadcast(EventChatMessage, msg, "")
}

func (h *Hub) handleTyping(c *Client, isTyping bool) {
	p, ok := h.registry.Get(c.id)
	if !ok {
		return
	}
	h.broadcast(EventUserTyping, TypingPayload{User: p.Name, IsTyping: isTyping}, c.id)
}

func (h *Hub) handleAdminAction(c *Client, action string) {
	p, ok := h.registry.Get(c.id)
	if !ok || !p.IsAdmin {
		h.logger.Warn().Str("client_id", c.id).Str("action", action).Msg("Admin action from non-admin dropped.")
		return
	}

	switch action {
	case ActionGetOnlineUsers:
		h.unicast(c, EventOnlineUsers, h.registry.ListNonAdmin())
	default:
		h.logger.Warn().Str("client_id", c.id).Str("action", action).Msg("Unsupported admin action.")
	}
}

// unicast queues one frame for c.
func (h *Hub) unicast(c *Client, event string, data any) {
	frame, err := encodeFrame(event, data)
	if err != nil {
		h.logger.Error().Err(err).Str("event", event).Msg("Error marshaling frame.")
		return
	}
	h.deliver(c, frame)
}

// broadcast queues one frame for every joined participant except skipID.
func (h *Hub) broadcast(event string, data any, skipID string) {
	frame, err := encodeFrame(event, data)
	if err != nil {
		h.logger.Error().Err(err).Str("event", event).Msg("Error marshaling frame for broadcast.")
		return
	}

	for _, id := range h.registry.IDs() {
		if id == skipID {
			continue
		}
		if c, ok := h.clients[id]; ok {
			h.deliver(c, frame)
		}
	}
}

func (h *Hub) deliver(c *Client, frame []byte) {
	select {
	case c.send <- frame:
	default:
		h.logger.Warn().
			Str("client_id", c.id).
			Int("queue_len", len(c.send)).
			Msg("Client send channel full, dropping frame.")
	}
}
