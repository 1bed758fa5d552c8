package websocket

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/armadagame/armada/game/service"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer.
	maxMessageSize = 8192
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Allow all origins in development
		// TODO: Configure this for production
		return true
	},
}

// Client represents one WebSocket connection. The connection is the
// session: the hub assigns each client a session id at upgrade time.
type Client struct {
	hub       *Hub
	conn      *websocket.Conn
	send      chan []byte
	sessionID string
}

type outbound struct {
	sessionID string
	payload   []byte
}

// Hub maintains the set of active clients and routes events between
// them and the match service.
type Hub struct {
	// Registered clients by session ID
	sessions map[string]*Client

	// Outbound payloads addressed to one session
	emit chan outbound

	// Register requests from clients
	register chan *Client

	// Unregister requests from clients
	unregister chan *Client

	svc service.MatchService
	log zerolog.Logger
}

// NewHub creates a new WebSocket hub. The match service is attached
// afterwards with SetService, since the service emits through the hub.
func NewHub(log zerolog.Logger) *Hub {
	return &Hub{
		sessions:   make(map[string]*Client),
		emit:       make(chan outbound, 64),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		log:        log,
	}
}

// SetService wires the match service the hub dispatches inbound events
// to. Must be called before ServeWS.
func (h *Hub) SetService(svc service.MatchService) {
	h.svc = svc
}

// Run starts the hub's event loop.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.sessions[client.sessionID] = client
			h.log.Debug().Str("session", client.sessionID).Int("total", len(h.sessions)).Msg("client registered")

		case client := <-h.unregister:
			h.dropClient(client)

		case msg := <-h.emit:
			client, ok := h.sessions[msg.sessionID]
			if !ok {
				continue
			}
			select {
			case client.send <- msg.payload:
			default:
				// Client's send channel is full, close it
				h.dropClient(client)
			}
		}
	}
}

// ServeWS handles WebSocket requests from clients.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Error().Err(err).Msg("websocket upgrade failed")
		return
	}

	client := &Client{
		hub:       h,
		conn:      conn,
		send:      make(chan []byte, 256),
		sessionID: uuid.NewString(),
	}

	client.hub.register <- client

	go client.writePump()
	go client.readPump()
}

// Emit implements service.Emitter: it wraps the event in the wire
// envelope and queues it for the session's connection.
func (h *Hub) Emit(sessionID string, event service.Event) {
	data, err := json.Marshal(event)
	if err != nil {
		h.log.Error().Err(err).Str("event", event.Event()).Msg("failed to marshal event")
		return
	}
	payload, err := json.Marshal(Envelope{Event: event.Event(), Data: data})
	if err != nil {
		h.log.Error().Err(err).Str("event", event.Event()).Msg("failed to marshal envelope")
		return
	}
	h.emit <- outbound{sessionID: sessionID, payload: payload}
}

func (h *Hub) dropClient(client *Client) {
	if _, ok := h.sessions[client.sessionID]; ok {
		delete(h.sessions, client.sessionID)
		close(client.send)
		h.log.Debug().Str("session", client.sessionID).Int("total", len(h.sessions)).Msg("client unregistered")
	}
}

// dispatch decodes one inbound envelope and invokes the matching
// service operation. Rejections go back to the sender as error events.
func (h *Hub) dispatch(ctx context.Context, sessionID string, env Envelope) {
	var err error

	switch env.Event {
	case EventQueueJoin:
		var ev QueueJoin
		if err = json.Unmarshal(env.Data, &ev); err == nil {
			err = h.svc.JoinQueue(ctx, sessionID, ev.UserID, ev.Username, ev.WantAI)
		}

	case EventQueueLeave:
		err = h.svc.LeaveQueue(ctx, sessionID)

	case EventRoomCreate:
		var ev RoomCreate
		if err = json.Unmarshal(env.Data, &ev); err == nil {
			err = h.svc.CreateRoom(ctx, sessionID, ev.UserID, ev.Username)
		}

	case EventRoomJoin:
		var ev RoomJoin
		if err = json.Unmarshal(env.Data, &ev); err == nil {
			err = h.svc.JoinRoom(ctx, sessionID, ev.UserID, ev.Username, ev.RoomCode)
		}

	case EventPlacementSubmit:
		var ev PlacementSubmit
		if err = json.Unmarshal(env.Data, &ev); err == nil {
			err = h.svc.SubmitPlacement(ctx, ev.MatchID, ev.UserID, ev.Placements)
		}

	case EventShotFire:
		var ev ShotFire
		if err = json.Unmarshal(env.Data, &ev); err == nil {
			err = h.svc.FireShot(ctx, ev.MatchID, ev.UserID, ev.TargetID, ev.Coord)
		}

	default:
		err = fmt.Errorf("unknown event %q", env.Event)
	}

	if err != nil {
		h.log.Debug().Err(err).Str("session", sessionID).Str("event", env.Event).Msg("rejected client event")
		h.Emit(sessionID, service.ErrorEvent{Code: service.ErrorCode(err), Message: err.Error()})
	}
}

// readPump pumps messages from the WebSocket connection to the service.
func (c *Client) readPump() {
	defer func() {
		c.hub.svc.Disconnect(context.Background(), c.sessionID)
		c.hub.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.hub.log.Debug().Err(err).Str("session", c.sessionID).Msg("websocket read error")
			}
			break
		}

		var env Envelope
		if err := json.Unmarshal(raw, &env); err != nil {
			c.hub.Emit(c.sessionID, service.ErrorEvent{Code: "INVALID_SHOT", Message: "malformed message"})
			continue
		}
		c.hub.dispatch(context.Background(), c.sessionID, env)
	}
}

// writePump pumps messages from the hub to the WebSocket connection.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// The hub closed the channel
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
