package bus

import (
	"testing"
	"time"
)

func TestBasicPubSub(t *testing.T) {
	b := New(4)
	conn := b.NewConnection("test")

	sub := conn.Subscribe(T("wake", "event"))

	conn.Publish(&Message{Topic: T("wake", "event"), Payload: "hello"})

	select {
	case got := <-sub.Channel():
		if got.Payload.(string) != "hello" {
			t.Errorf("expected payload 'hello', got %v", got.Payload)
		}
	case <-time.After(100 * time.Millisecond):
		t.Fatal("timeout waiting for message")
	}
}

func TestRetainedMessage(t *testing.T) {
	b := New(2)
	conn := b.NewConnection("test")

	conn.Publish(&Message{Topic: T("telemetry", "battery"), Payload: "persist", Retained: true})

	sub := conn.Subscribe(T("telemetry", "battery"))

	select {
	case got := <-sub.Channel():
		if got.Payload.(string) != "persist" {
			t.Errorf("expected retained payload 'persist', got %v", got.Payload)
		}
	case <-time.After(100 * time.Millisecond):
		t.Fatal("timeout waiting for retained message")
	}
}

func TestRetainedCleared(t *testing.T) {
	b := New(2)
	conn := b.NewConnection("test")

	conn.Publish(&Message{Topic: T("a"), Payload: "v", Retained: true})
	conn.Publish(&Message{Topic: T("a"), Payload: nil, Retained: true})

	sub := conn.Subscribe(T("a"))
	select {
	case got := <-sub.Channel():
		t.Fatalf("expected no retained message, got %v", got.Payload)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestQueueDropsOldest(t *testing.T) {
	b := New(1)
	conn := b.NewConnection("test")
	sub := conn.Subscribe(T("a"))

	conn.Publish(&Message{Topic: T("a"), Payload: 1})
	conn.Publish(&Message{Topic: T("a"), Payload: 2})

	select {
	case got := <-sub.Channel():
		if got.Payload.(int) != 2 {
			t.Errorf("expected newest payload 2, got %v", got.Payload)
		}
	case <-time.After(100 * time.Millisecond):
		t.Fatal("timeout")
	}
}

func TestUnsubscribePrunes(t *testing.T) {
	b := New(2)
	conn := b.NewConnection("test")
	sub := conn.Subscribe(T("x", "y", "z"))
	sub.Unsubscribe()

	if len(b.root.children) != 0 {
		t.Errorf("expected pruned trie, still have %d children", len(b.root.children))
	}

	// Publishing to the now-empty topic must not panic or deliver.
	conn.Publish(&Message{Topic: T("x", "y", "z"), Payload: "gone"})
}

func TestDisconnectClosesChannels(t *testing.T) {
	b := New(2)
	conn := b.NewConnection("test")
	sub := conn.Subscribe(T("a"))
	conn.Disconnect()

	if _, ok := <-sub.Channel(); ok {
		t.Error("expected closed channel after Disconnect")
	}
}
