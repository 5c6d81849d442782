package tools

import (
	"encoding/json"
	"fmt"

	mqtt "github.com/eclipse/paho.mqtt.golang"
)

// ProgressPublisher announces batch-job milestones over MQTT — file N/M
// started, a regularization stage finished, a run completed — so an
// operator dashboard can track a long classification run without polling
// the process. This is fire-and-forget telemetry about an offline batch
// job, not streaming per-point classification. Grounded on
// kwv-tudomesh's mesh.Publisher: a nil client disables publishing (e.g.
// in tests) rather than erroring.
type ProgressPublisher struct {
	client mqtt.Client
	topic  string
	qos    byte
}

// NewProgressPublisher wraps an already-connected mqtt.Client. Pass a nil
// client to disable publishing entirely.
func NewProgressPublisher(client mqtt.Client, topic string) *ProgressPublisher {
	if topic == "" {
		topic = "pointclassify/progress"
	}
	return &ProgressPublisher{client: client, topic: topic, qos: 0}
}

// Event is one progress milestone, JSON-encoded onto the configured topic.
type Event struct {
	Stage   string `json:"stage"`
	File    string `json:"file,omitempty"`
	Index   int    `json:"index,omitempty"`
	Total   int    `json:"total,omitempty"`
	Message string `json:"message,omitempty"`
}

// Publish sends one Event. Errors are returned, never fatal: telemetry
// loss must not abort a classification run.
func (p *ProgressPublisher) Publish(ev Event) error {
	if p.client == nil || !p.client.IsConnected() {
		return nil
	}
	b, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("tools: failed to encode progress event: %w", err)
	}
	token := p.client.Publish(p.topic, p.qos, false, b)
	token.Wait()
	return token.Error()
}

// Close disconnects the underlying MQTT client, if any. Safe to call on a
// disabled (nil-client) publisher.
func (p *ProgressPublisher) Close() {
	if p.client != nil && p.client.IsConnected() {
		p.client.Disconnect(250)
	}
}

// ConnectProgressPublisher dials broker (e.g. "tcp://localhost:1883") and
// returns a connected ProgressPublisher. An empty broker disables
// publishing entirely, same as passing a nil client to
// NewProgressPublisher, so callers can wire this straight from an optional
// config field without a separate on/off branch.
func ConnectProgressPublisher(broker, topic string) (*ProgressPublisher, error) {
	if broker == "" {
		return NewProgressPublisher(nil, topic), nil
	}
	opts := mqtt.NewClientOptions().AddBroker(broker).SetClientID("pointclassify")
	client := mqtt.NewClient(opts)
	token := client.Connect()
	token.Wait()
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("tools: connecting to progress broker %q: %w", broker, err)
	}
	return NewProgressPublisher(client, topic), nil
}
