package notification

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
	maxMsgSize = 4 * 1024

	// wsSendBuffer is the queue length of one websocket subscriber.
	wsSendBuffer = 32
)

// subscriber is either a websocket connection or an in-process channel reader.
type subscriber struct {
	topic string
	send  chan Message
}

// Hub fans messages out to the subscribers of a topic.
type Hub struct {
	log      *logrus.Logger
	upgrader websocket.Upgrader

	mu     sync.RWMutex
	topics map[string]map[*subscriber]struct{}
	closed bool
}

// NewHub creates a hub. Browsers may connect from allowedOrigins or the
// serving host; "*" accepts any origin. Clients that send no Origin are accepted.
func NewHub(allowedOrigins []string, log *logrus.Logger) *Hub {
	h := &Hub{
		log:    log,
		topics: make(map[string]map[*subscriber]struct{}),
	}
	h.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     originChecker(allowedOrigins),
	}
	return h
}

func originChecker(allowed []string) func(r *http.Request) bool {
	set := make(map[string]bool, len(allowed))
	for _, o := range allowed {
		if o == "*" {
			return func(*http.Request) bool { return true }
		}
		set[o] = true
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" || set[origin] {
			return true
		}
		u, err := url.Parse(origin)
		return err == nil && strings.EqualFold(u.Host, r.Host)
	}
}

func (h *Hub) register(s *subscriber) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return false
	}
	subs, ok := h.topics[s.topic]
	if !ok {
		subs = make(map[*subscriber]struct{})
		h.topics[s.topic] = subs
	}
	subs[s] = struct{}{}
	return true
}

func (h *Hub) unregister(s *subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()
	subs, ok := h.topics[s.topic]
	if !ok {
		return
	}
	if _, ok := subs[s]; !ok {
		return
	}
	delete(subs, s)
	close(s.send)
	if len(subs) == 0 {
		delete(h.topics, s.topic)
	}
}

// Subscribe returns a channel receiving the topic's messages and a cancel func that closes it.
// Messages are dropped when the channel buffer is full.
func (h *Hub) Subscribe(topic string, buffer int) (<-chan Message, func()) {
	s := &subscriber{topic: topic, send: make(chan Message, buffer)}
	if !h.register(s) {
		close(s.send)
		return s.send, func() {}
	}
	var once sync.Once
	return s.send, func() {
		once.Do(func() { h.unregister(s) })
	}
}

// Publish delivers msg to every subscriber of topic and returns how many received it.
func (h *Hub) Publish(topic string, msg Message) int {
	msg.Topic = topic
	if msg.At.IsZero() {
		msg.At = time.Now()
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	delivered := 0
	for s := range h.topics[topic] {
		select {
		case s.send <- msg:
			delivered++
		default:
			h.log.WithField("topic", topic).Warn("notification subscriber too slow, message dropped")
		}
	}
	return delivered
}

// SubscriberCount reports the subscribers of topic.
func (h *Hub) SubscriberCount(topic string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.topics[topic])
}

// Drop disconnects every subscriber of topic.
func (h *Hub) Drop(topic string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for s := range h.topics[topic] {
		close(s.send)
	}
	delete(h.topics, topic)
}

// Close disconnects every subscriber. Later subscriptions get a closed channel.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for topic, subs := range h.topics {
		for s := range subs {
			close(s.send)
		}
		delete(h.topics, topic)
	}
	h.closed = true
}

// ServeWS upgrades the request and streams topic messages to it until either side closes.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request, topic string) error {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return err
	}

	s := &subscriber{topic: topic, send: make(chan Message, wsSendBuffer)}
	if !h.register(s) {
		_ = conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "shutting down"))
		return conn.Close()
	}

	go h.writePump(conn, s)
	h.readPump(conn, s)
	return nil
}

// readPump only handles control frames; client messages are ignored.
func (h *Hub) readPump(conn *websocket.Conn, s *subscriber) {
	defer func() {
		h.unregister(s)
		_ = conn.Close()
	}()

	conn.SetReadLimit(maxMsgSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.log.WithError(err).WithField("topic", s.topic).Debug("notification socket closed")
			}
			return
		}
	}
}

func (h *Hub) writePump(conn *websocket.Conn, s *subscriber) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = conn.Close()
	}()

	for {
		select {
		case msg, ok := <-s.send:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			data, err := json.Marshal(msg)
			if err != nil {
				h.log.WithError(err).WithField("topic", s.topic).Error("failed to encode notification")
				continue
			}
			if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
				h.unregister(s)
				return
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				h.unregister(s)
				return
			}
		}
	}
}
