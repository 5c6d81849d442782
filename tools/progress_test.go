package tools

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewProgressPublisher_DefaultsTopicWhenEmpty(t *testing.T) {
	p := NewProgressPublisher(nil, "")
	assert.Equal(t, "pointclassify/progress", p.topic)
}

func TestNewProgressPublisher_KeepsCallerTopic(t *testing.T) {
	p := NewProgressPublisher(nil, "custom/topic")
	assert.Equal(t, "custom/topic", p.topic)
}

// A nil client disables publishing entirely: Publish must be a safe no-op
// rather than dereferencing the nil client.
func TestProgressPublisher_Publish_NilClientIsNoOp(t *testing.T) {
	p := NewProgressPublisher(nil, "")
	err := p.Publish(Event{Stage: "inference", File: "a.ply", Index: 1, Total: 10})
	assert.NoError(t, err)
}

func TestProgressPublisher_Close_NilClientIsNoOp(t *testing.T) {
	p := NewProgressPublisher(nil, "")
	assert.NotPanics(t, func() { p.Close() })
}

func TestConnectProgressPublisher_EmptyBrokerDisablesPublishing(t *testing.T) {
	p, err := ConnectProgressPublisher("", "")
	assert.NoError(t, err)
	assert.NoError(t, p.Publish(Event{Stage: "noop"}))
}
