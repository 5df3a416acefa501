package sse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHub_SubscribePublish(t *testing.T) {
	hub := NewHub()

	ch, cleanup := hub.Subscribe("user-1")
	defer cleanup()

	assert.Equal(t, 1, hub.SubscriberCount("user-1"))

	hub.Publish("user-1", Event{Event: "notification", Data: "hello"})

	select {
	case got := <-ch:
		assert.Equal(t, "notification", got.Event)
		assert.Equal(t, "hello", got.Data)
	default:
		t.Fatal("expected a buffered event")
	}
}

func TestHub_PublishToOtherUserNotDelivered(t *testing.T) {
	hub := NewHub()

	ch, cleanup := hub.Subscribe("user-1")
	defer cleanup()

	hub.Publish("user-2", Event{Event: "notification"})

	select {
	case <-ch:
		t.Fatal("event for user-2 must not reach user-1")
	default:
	}
}

func TestHub_PublishToMany(t *testing.T) {
	hub := NewHub()

	ch1, cleanup1 := hub.Subscribe("user-1")
	defer cleanup1()
	ch2, cleanup2 := hub.Subscribe("user-2")
	defer cleanup2()

	hub.PublishToMany([]string{"user-1", "user-2"}, Event{Event: "broadcast"})

	got1 := <-ch1
	got2 := <-ch2
	assert.Equal(t, "user-1", got1.UserID)
	assert.Equal(t, "user-2", got2.UserID)
}

func TestHub_CleanupRemovesSubscriber(t *testing.T) {
	hub := NewHub()

	_, cleanup := hub.Subscribe("user-1")
	require.Equal(t, 1, hub.SubscriberCount("user-1"))

	cleanup()
	assert.Equal(t, 0, hub.SubscriberCount("user-1"))

	// Publishing after cleanup must not panic.
	hub.Publish("user-1", Event{Event: "notification"})
}

func TestHub_FullChannelDoesNotBlock(t *testing.T) {
	hub := NewHub()

	_, cleanup := hub.Subscribe("user-1")
	defer cleanup()

	// Channel buffer is 10; publishing more must drop, not deadlock.
	for i := 0; i < 20; i++ {
		hub.Publish("user-1", Event{Event: "notification", Data: i})
	}
}
