package source

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
)

// MQTTSource consumes live transition telemetry from an MQTT broker. Payloads
// are JSON objects of the form {"state":N,"time_s":T}. Messages that fail to
// decode are logged and dropped so bad telemetry cannot stop the accountant.
type MQTTSource struct {
	client paho.Client
	ch     chan Transition
	done   chan struct{}
	once   sync.Once
}

// NewMQTTSource connects to the broker and subscribes to topic. The returned
// source delivers messages in arrival order; the integrator still guards
// timestamp monotonicity itself.
func NewMQTTSource(broker, topic, clientID string) (*MQTTSource, error) {
	s := &MQTTSource{
		ch:   make(chan Transition, 64),
		done: make(chan struct{}),
	}

	opts := paho.NewClientOptions().
		AddBroker(broker).
		SetClientID(clientID).
		SetAutoReconnect(true).
		SetConnectRetry(true).
		SetConnectRetryInterval(5 * time.Second)

	s.client = paho.NewClient(opts)
	token := s.client.Connect()
	if !token.WaitTimeout(10 * time.Second) {
		return nil, fmt.Errorf("mqtt source: connection timeout")
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("mqtt source: connect to broker: %w", err)
	}

	sub := s.client.Subscribe(topic, 1, s.onMessage)
	if !sub.WaitTimeout(10 * time.Second) {
		s.client.Disconnect(250)
		return nil, fmt.Errorf("mqtt source: subscribe timeout")
	}
	if err := sub.Error(); err != nil {
		s.client.Disconnect(250)
		return nil, fmt.Errorf("mqtt source: subscribe %q: %w", topic, err)
	}
	return s, nil
}

func (s *MQTTSource) onMessage(_ paho.Client, msg paho.Message) {
	tr, err := decodeTransition(msg.Payload())
	if err != nil {
		slog.Warn("mqtt source: dropping message", "topic", msg.Topic(), "err", err)
		return
	}
	select {
	case s.ch <- tr:
	case <-s.done:
	}
}

// decodeTransition parses one telemetry payload.
func decodeTransition(payload []byte) (Transition, error) {
	var tr Transition
	if err := json.Unmarshal(payload, &tr); err != nil {
		return Transition{}, fmt.Errorf("decode transition: %w", err)
	}
	if tr.TimeSec < 0 {
		return Transition{}, fmt.Errorf("decode transition: negative time %.6f", tr.TimeSec)
	}
	return tr, nil
}

// Next blocks until a transition arrives or the source is closed, in which
// case it returns io.EOF.
func (s *MQTTSource) Next() (Transition, error) {
	select {
	case tr := <-s.ch:
		return tr, nil
	case <-s.done:
		return Transition{}, io.EOF
	}
}

// Close unblocks Next and disconnects from the broker.
func (s *MQTTSource) Close() error {
	s.once.Do(func() {
		close(s.done)
		s.client.Disconnect(1000)
	})
	return nil
}
