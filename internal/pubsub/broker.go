package pubsub

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// TopicBoard carries notifications that the contest baseline changed.
const TopicBoard = "board"

// Broker is a simple in-memory pub/sub system with a bounded per-topic history.
type Broker struct {
	mu          sync.RWMutex
	subscribers map[string][]chan []byte // topic -> list of subscriber channels
	cache       map[string][][]byte      // topic -> most recent messages
	history     int
}

// Event is what subscribers of TopicBoard receive.
type Event struct {
	ID     string      `json:"id"`
	Stream string      `json:"stream"`
	Time   time.Time   `json:"time"`
	Data   interface{} `json:"data"`
}

// NewBroker creates a broker that replays up to history cached messages to new subscribers.
func NewBroker(history int) *Broker {
	return &Broker{
		subscribers: make(map[string][]chan []byte),
		cache:       make(map[string][][]byte),
		history:     history,
	}
}

// Subscribe subscribes to a topic. It first sends the cached messages to the new
// subscriber, then adds the subscriber to receive live messages.
func (b *Broker) Subscribe(topic string) (<-chan []byte, func()) {
	b.mu.Lock()

	ch := make(chan []byte, 128)

	history := append([][]byte(nil), b.cache[topic]...)
	for _, msg := range history {
		select {
		case ch <- msg:
		default:
		}
	}

	b.subscribers[topic] = append(b.subscribers[topic], ch)
	b.mu.Unlock()

	var once sync.Once
	unsubscribe := func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()

			subscribers := b.subscribers[topic]
			for i, sub := range subscribers {
				if sub == ch {
					b.subscribers[topic] = append(subscribers[:i], subscribers[i+1:]...)
					close(ch)
					break
				}
			}
			zap.S().Debugf("unsubscribed from topic %s", topic)
		})
	}

	zap.S().Debugf("new subscription to topic %s, sent %d cached messages", topic, len(history))
	return ch, unsubscribe
}

// Publish publishes a message to all subscribers of a topic and caches it.
func (b *Broker) Publish(topic string, msg []byte) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.history > 0 {
		cached := append(b.cache[topic], msg)
		if len(cached) > b.history {
			cached = cached[len(cached)-b.history:]
		}
		b.cache[topic] = cached
	}

	// Slow subscribers drop messages instead of blocking the publisher.
	for _, ch := range b.subscribers[topic] {
		select {
		case ch <- msg:
		default:
		}
	}
}

// PublishEvent wraps data in an Event and publishes it on topic.
func (b *Broker) PublishEvent(topic, stream string, data interface{}) {
	b.Publish(topic, FormatEvent(stream, data))
}

// CloseTopic closes all subscriber channels and clears the cache for a given topic.
func (b *Broker) CloseTopic(topic string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if subscribers, ok := b.subscribers[topic]; ok {
		for _, ch := range subscribers {
			close(ch)
		}
		delete(b.subscribers, topic)
	}
	delete(b.cache, topic)
	zap.S().Infof("closed pubsub topic %s and cleared cache", topic)
}

// FormatEvent encodes an Event with a fresh id.
func FormatEvent(stream string, data interface{}) []byte {
	msg := Event{ID: uuid.NewString(), Stream: stream, Time: time.Now(), Data: data}
	bytes, err := json.Marshal(msg)
	if err != nil {
		return []byte(`{"stream": "error", "data": "json format error"}`)
	}
	return bytes
}
