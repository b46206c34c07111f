// Package realtime pushes healing workflow events to connected websocket
// subscribers. Topics are "artist:<id>" and "client:<id>".
package realtime

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"
)

const (
	EventHealingCreated  = "healing.created"
	EventHealingResponse = "healing.response"

	publishBuffer = 256
	sendBuffer    = 16
)

func ArtistTopic(artistID string) string { return "artist:" + artistID }
func ClientTopic(clientID string) string { return "client:" + clientID }

type Event struct {
	Type  string      `json:"type"`
	Topic string      `json:"topic"`
	At    time.Time   `json:"at"`
	Data  interface{} `json:"data"`
}

type message struct {
	topic string
	data  []byte
}

type countQuery struct {
	topic string
	reply chan int
}

// Hub owns the subscriber set. All mutation happens on the Run goroutine.
type Hub struct {
	log *zap.Logger

	topics     map[string]map[*Subscriber]struct{}
	register   chan *Subscriber
	unregister chan *Subscriber
	publish    chan message
	count      chan countQuery
	done       chan struct{}
}

func NewHub(log *zap.Logger) *Hub {
	return &Hub{
		log:        log.Named("realtime"),
		topics:     make(map[string]map[*Subscriber]struct{}),
		register:   make(chan *Subscriber),
		unregister: make(chan *Subscriber),
		publish:    make(chan message, publishBuffer),
		count:      make(chan countQuery),
		done:       make(chan struct{}),
	}
}

// Run serves the hub until ctx is cancelled, then closes every subscriber.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			for _, subs := range h.topics {
				for s := range subs {
					close(s.send)
				}
			}
			h.topics = map[string]map[*Subscriber]struct{}{}
			return
		case s := <-h.register:
			subs, ok := h.topics[s.topic]
			if !ok {
				subs = make(map[*Subscriber]struct{})
				h.topics[s.topic] = subs
			}
			subs[s] = struct{}{}
			h.log.Debug("subscriber joined", zap.String("topic", s.topic), zap.Int("subscribers", len(subs)))
		case s := <-h.unregister:
			h.remove(s)
		case m := <-h.publish:
			for s := range h.topics[m.topic] {
				select {
				case s.send <- m.data:
				default:
					h.log.Warn("dropping slow subscriber", zap.String("topic", m.topic))
					h.remove(s)
				}
			}
		case q := <-h.count:
			q.reply <- len(h.topics[q.topic])
		}
	}
}

func (h *Hub) remove(s *Subscriber) {
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

// Subscribe registers a subscriber on topic. It returns nil once the hub has
// stopped.
func (h *Hub) Subscribe(topic string) *Subscriber {
	s := &Subscriber{topic: topic, send: make(chan []byte, sendBuffer)}
	select {
	case h.register <- s:
		return s
	case <-h.done:
		return nil
	}
}

func (h *Hub) Unsubscribe(s *Subscriber) {
	select {
	case h.unregister <- s:
	case <-h.done:
	}
}

// Publish queues an event for topic. It never blocks: when the queue is full
// or the hub has stopped the event is dropped.
func (h *Hub) Publish(topic, eventType string, data interface{}) {
	payload, err := json.Marshal(Event{Type: eventType, Topic: topic, At: time.Now().UTC(), Data: data})
	if err != nil {
		h.log.Error("encoding event", zap.String("type", eventType), zap.Error(err))
		return
	}
	select {
	case <-h.done:
		return
	default:
	}
	select {
	case h.publish <- message{topic: topic, data: payload}:
	default:
		h.log.Warn("publish queue full, dropping event", zap.String("topic", topic), zap.String("type", eventType))
	}
}

// Subscribers reports how many subscribers topic currently has.
func (h *Hub) Subscribers(topic string) int {
	q := countQuery{topic: topic, reply: make(chan int, 1)}
	select {
	case h.count <- q:
		return <-q.reply
	case <-h.done:
		return 0
	}
}

type Subscriber struct {
	topic string
	send  chan []byte
}

// Messages yields encoded events until the subscriber is removed.
func (s *Subscriber) Messages() <-chan []byte { return s.send }

func (s *Subscriber) Topic() string { return s.topic }
