package notification

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"leadform/internal/pkg/logger"
)

func TestHub_SubscribePublishCancel(t *testing.T) {
	defer goleak.VerifyNone(t)

	hub := NewHub(nil, logger.Nop())
	ch, cancel := hub.Subscribe("form-1", 4)
	other, cancelOther := hub.Subscribe("form-2", 4)
	defer cancelOther()

	assert.Equal(t, 1, hub.Publish("form-1", Message{Type: TypeOutcome, Payload: "ok"}))

	msg := <-ch
	assert.Equal(t, TypeOutcome, msg.Type)
	assert.Equal(t, "form-1", msg.Topic)
	assert.Equal(t, "ok", msg.Payload)
	assert.False(t, msg.At.IsZero())
	assert.Empty(t, other)

	cancel()
	cancel()
	_, open := <-ch
	assert.False(t, open)
	assert.Equal(t, 0, hub.SubscriberCount("form-1"))
	assert.Equal(t, 0, hub.Publish("form-1", Message{Type: TypeOutcome}))
}

func TestHub_SlowSubscriberDropsMessages(t *testing.T) {
	hub := NewHub(nil, logger.Nop())
	ch, cancel := hub.Subscribe("t", 1)
	defer cancel()

	assert.Equal(t, 1, hub.Publish("t", Message{Type: TypeState}))
	assert.Equal(t, 0, hub.Publish("t", Message{Type: TypeState}))
	assert.Len(t, ch, 1)
}

func TestHub_DropAndClose(t *testing.T) {
	defer goleak.VerifyNone(t)

	hub := NewHub(nil, logger.Nop())
	a, cancelA := hub.Subscribe("a", 1)
	b, _ := hub.Subscribe("b", 1)

	hub.Drop("a")
	_, open := <-a
	assert.False(t, open)
	cancelA()

	hub.Close()
	_, open = <-b
	assert.False(t, open)

	late, _ := hub.Subscribe("b", 1)
	_, open = <-late
	assert.False(t, open)
}

func TestHub_ServeWS(t *testing.T) {
	hub := NewHub([]string{"http://allowed.example"}, logger.Nop())
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = hub.ServeWS(w, r, "form-ws")
	}))
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http")

	header := http.Header{}
	header.Set("Origin", "http://allowed.example")
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, header)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool {
		return hub.SubscriberCount("form-ws") == 1
	}, time.Second, 5*time.Millisecond)

	hub.Publish("form-ws", Message{Type: TypeOutcome, Payload: map[string]string{"summary": "Lead creado exitosamente"}})

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var got struct {
		Type    string            `json:"type"`
		Topic   string            `json:"topic"`
		Payload map[string]string `json:"payload"`
	}
	require.NoError(t, conn.ReadJSON(&got))
	assert.Equal(t, TypeOutcome, got.Type)
	assert.Equal(t, "form-ws", got.Topic)
	assert.Equal(t, "Lead creado exitosamente", got.Payload["summary"])

	require.NoError(t, conn.Close())
	require.Eventually(t, func() bool {
		return hub.SubscriberCount("form-ws") == 0
	}, 2*time.Second, 10*time.Millisecond)
}

func TestHub_ServeWSRejectsForeignOrigin(t *testing.T) {
	hub := NewHub([]string{"http://allowed.example"}, logger.Nop())
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = hub.ServeWS(w, r, "form-ws")
	}))
	defer srv.Close()

	header := http.Header{}
	header.Set("Origin", "http://evil.example")
	_, resp, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), header)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestHub_ServeWSWithoutAllowListAcceptsOnlySameHost(t *testing.T) {
	hub := NewHub(nil, logger.Nop())
	defer hub.Close()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = hub.ServeWS(w, r, "form-ws")
	}))
	defer srv.Close()
	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http")

	header := http.Header{}
	header.Set("Origin", "http://evil.example")
	_, resp, err := websocket.DefaultDialer.Dial(wsURL, header)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	header.Set("Origin", srv.URL)
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, header)
	require.NoError(t, err)
	require.NoError(t, conn.Close())
}
