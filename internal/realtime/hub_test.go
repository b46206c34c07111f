package realtime

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func startHub(t *testing.T) *Hub {
	t.Helper()
	hub := NewHub(zap.NewNop())
	ctx, cancel := context.WithCancel(context.Background())
	go hub.Run(ctx)
	t.Cleanup(cancel)
	return hub
}

func TestHub_PublishReachesTopicOnly(t *testing.T) {
	hub := startHub(t)
	a := hub.Subscribe(ArtistTopic("a1"))
	b := hub.Subscribe(ArtistTopic("a2"))
	require.NotNil(t, a)
	require.NotNil(t, b)

	hub.Publish(ArtistTopic("a1"), EventHealingCreated, map[string]string{"entryId": "e1"})

	select {
	case raw := <-a.Messages():
		var ev Event
		require.NoError(t, json.Unmarshal(raw, &ev))
		assert.Equal(t, EventHealingCreated, ev.Type)
		assert.Equal(t, "artist:a1", ev.Topic)
	case <-time.After(time.Second):
		t.Fatal("no event delivered")
	}

	select {
	case <-b.Messages():
		t.Fatal("event leaked to another topic")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestHub_SlowSubscriberIsDropped(t *testing.T) {
	hub := startHub(t)
	slow := hub.Subscribe(ClientTopic("c1"))
	require.NotNil(t, slow)

	for i := 0; i < sendBuffer+1; i++ {
		hub.Publish(ClientTopic("c1"), EventHealingResponse, i)
	}

	assert.Eventually(t, func() bool { return hub.Subscribers(ClientTopic("c1")) == 0 }, time.Second, 10*time.Millisecond)

	n := 0
	for range slow.Messages() {
		n++
	}
	assert.Equal(t, sendBuffer, n)
}

func TestHub_StopClosesSubscribers(t *testing.T) {
	hub := NewHub(zap.NewNop())
	ctx, cancel := context.WithCancel(context.Background())
	stopped := make(chan struct{})
	go func() {
		hub.Run(ctx)
		close(stopped)
	}()

	sub := hub.Subscribe("artist:x")
	require.NotNil(t, sub)
	cancel()
	<-stopped

	_, ok := <-sub.Messages()
	assert.False(t, ok)
	assert.Nil(t, hub.Subscribe("artist:x"))
	hub.Publish("artist:x", EventHealingCreated, nil)
}

func TestServeWS_StreamsEvents(t *testing.T) {
	hub := startHub(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = hub.ServeWS(w, r, ArtistTopic("a1"))
	}))
	defer srv.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool { return hub.Subscribers(ArtistTopic("a1")) == 1 }, time.Second, 10*time.Millisecond)
	hub.Publish(ArtistTopic("a1"), EventHealingCreated, map[string]string{"clientId": "c1"})

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var ev Event
	require.NoError(t, conn.ReadJSON(&ev))
	assert.Equal(t, EventHealingCreated, ev.Type)

	conn.Close()
	assert.Eventually(t, func() bool { return hub.Subscribers(ArtistTopic("a1")) == 0 }, time.Second, 10*time.Millisecond)
}
