package sse

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHub_PublishReachesOnlyThatUser(t *testing.T) {
	hub := NewHub()

	mine, cancelMine := hub.Subscribe("user-1")
	defer cancelMine()
	other, cancelOther := hub.Subscribe("user-2")
	defer cancelOther()

	hub.Publish("user-1", Event{Name: "subject.updated", Data: map[string]int{"classes_held": 3}})

	select {
	case event := <-mine:
		assert.Equal(t, "subject.updated", event.Name)
	default:
		t.Fatal("expected an event for user-1")
	}

	select {
	case event := <-other:
		t.Fatalf("unexpected event for user-2: %v", event)
	default:
	}
}

func TestHub_FullBufferDropsInsteadOfBlocking(t *testing.T) {
	hub := NewHub()
	events, cancel := hub.Subscribe("user-1")
	defer cancel()

	for i := 0; i < subscriberBuffer+5; i++ {
		hub.Publish("user-1", Event{Name: "tick", Data: i})
	}

	assert.Len(t, events, subscriberBuffer)
}

func TestHub_CancelUnsubscribes(t *testing.T) {
	hub := NewHub()

	events, cancel := hub.Subscribe("user-1")
	_, cancelSecond := hub.Subscribe("user-1")
	assert.Equal(t, 2, hub.SubscriberCount("user-1"))

	cancel()
	cancel()
	_, open := <-events
	assert.False(t, open)
	assert.Equal(t, 1, hub.SubscriberCount("user-1"))

	cancelSecond()
	assert.Equal(t, 0, hub.SubscriberCount("user-1"))

	hub.Publish("user-1", Event{Name: "ignored"})
}

func TestWriteEvent(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, WriteEvent(&buf, Event{Name: "subject.deleted", Data: map[string]string{"id": "abc"}}))
	assert.Equal(t, "event: subject.deleted\ndata: {\"id\":\"abc\"}\n\n", buf.String())

	assert.Error(t, WriteEvent(&buf, Event{Name: "bad", Data: make(chan int)}))
}
