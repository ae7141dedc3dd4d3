package notify

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"Ironmarch/internal/battle/entity"
	"Ironmarch/internal/shared/logs"
)

const (
	writeWait      = 10 * time.Second
	maxMessageSize = 4096
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Hub fans battle reports out to websocket subscribers grouped by channel.
// Publish never blocks combat settlement: a subscriber that cannot keep up
// is dropped.
type Hub struct {
	mu       sync.RWMutex
	channels map[string]map[*subscriber]struct{}
	closed   bool
}

type subscriber struct {
	conn *websocket.Conn
	send chan []byte
}

func NewHub() *Hub {
	return &Hub{channels: make(map[string]map[*subscriber]struct{})}
}

// Publish serializes the report and enqueues it to every subscriber of the
// channel. An empty channel name means the region has no audience.
func (h *Hub) Publish(ctx context.Context, channel string, report *entity.BattleReport) error {
	_ = ctx
	if channel == "" || report == nil {
		return nil
	}

	payload, err := json.Marshal(report)
	if err != nil {
		return err
	}

	h.mu.RLock()
	subs := h.channels[channel]
	var stale []*subscriber
	for s := range subs {
		select {
		case s.send <- payload:
		default:
			stale = append(stale, s)
		}
	}
	h.mu.RUnlock()

	for _, s := range stale {
		h.drop(channel, s)
	}
	return nil
}

// Subscribe upgrades the request to a websocket and streams the channel's
// reports until the peer disconnects.
func (h *Hub) Subscribe(channel string, w http.ResponseWriter, r *http.Request) error {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return err
	}

	s := &subscriber{conn: conn, send: make(chan []byte, 16)}

	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		_ = conn.Close()
		return nil
	}
	if h.channels[channel] == nil {
		h.channels[channel] = make(map[*subscriber]struct{})
	}
	h.channels[channel][s] = struct{}{}
	h.mu.Unlock()

	logs.Info("report subscriber joined", zap.String("channel", channel))

	go h.writeLoop(channel, s)
	go h.readLoop(channel, s)
	return nil
}

// Close disconnects every subscriber.
func (h *Hub) Close() {
	h.mu.Lock()
	h.closed = true
	for _, subs := range h.channels {
		for s := range subs {
			close(s.send)
		}
	}
	h.channels = make(map[string]map[*subscriber]struct{})
	h.mu.Unlock()
}

func (h *Hub) writeLoop(channel string, s *subscriber) {
	defer func() {
		_ = s.conn.Close()
	}()
	for msg := range s.send {
		_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := s.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			h.drop(channel, s)
			return
		}
	}
	_ = s.conn.WriteMessage(websocket.CloseMessage, []byte{})
}

func (h *Hub) readLoop(channel string, s *subscriber) {
	s.conn.SetReadLimit(maxMessageSize)
	for {
		if _, _, err := s.conn.ReadMessage(); err != nil {
			h.drop(channel, s)
			return
		}
	}
}

func (h *Hub) drop(channel string, s *subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()

	subs := h.channels[channel]
	if _, ok := subs[s]; !ok {
		return
	}
	delete(subs, s)
	if len(subs) == 0 {
		delete(h.channels, channel)
	}
	close(s.send)
	logs.Info("report subscriber left", zap.String("channel", channel))
}
