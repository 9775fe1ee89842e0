package event

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBusDeliversToAllSubscribers(t *testing.T) {
	bus := NewBus()
	first, unsubFirst := bus.Subscribe()
	second, unsubSecond := bus.Subscribe()
	t.Cleanup(unsubFirst)
	t.Cleanup(unsubSecond)

	bus.Publish(Event{Type: TypeSessionRevoked, ActorID: "u1"})

	for _, ch := range []<-chan Event{first, second} {
		select {
		case e := <-ch:
			assert.Equal(t, TypeSessionRevoked, e.Type)
			assert.Equal(t, "u1", e.ActorID)
			assert.NotEmpty(t, e.ID)
			assert.NotEmpty(t, e.Timestamp)
		case <-time.After(time.Second):
			t.Fatal("event not delivered")
		}
	}
}

func TestBusUnsubscribeClosesChannel(t *testing.T) {
	bus := NewBus()
	ch, unsubscribe := bus.Subscribe()

	unsubscribe()
	unsubscribe()

	_, open := <-ch
	require.False(t, open)

	bus.Publish(Event{Type: TypeUserCreated})
}

func TestBusPublishDoesNotBlockOnFullSubscriber(t *testing.T) {
	bus := NewBus()
	_, unsubscribe := bus.Subscribe()
	t.Cleanup(unsubscribe)

	done := make(chan struct{})
	go func() {
		for i := 0; i < 500; i++ {
			bus.Publish(Event{Type: TypeFavoriteAdded})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("publish blocked")
	}
}

func TestBusCloseEndsSubscriptions(t *testing.T) {
	bus := NewBus()
	ch, unsubscribe := bus.Subscribe()

	bus.Close()
	unsubscribe()

	_, open := <-ch
	require.False(t, open)

	late, _ := bus.Subscribe()
	_, open = <-late
	assert.False(t, open)

	bus.Publish(Event{Type: TypeUserDeleted})
}

func TestBusCountsDroppedEvents(t *testing.T) {
	bus := NewBus()
	_, unsubscribe := bus.Subscribe()
	t.Cleanup(unsubscribe)

	for range subscriberBuffer + 3 {
		bus.Publish(Event{Type: TypeFavoriteRemoved})
	}

	assert.EqualValues(t, 3, bus.Dropped())
}
