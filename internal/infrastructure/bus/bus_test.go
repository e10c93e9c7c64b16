package bus

import (
	"testing"

	"github.com/rs/zerolog"

	"github.com/tailormate/tailormate-api/internal/core/ports"
)

func TestBus_PublishSubscribe(t *testing.T) {
	b := New(4, zerolog.Nop())
	defer b.Close()

	ch, cancel := b.Subscribe(nil)
	defer cancel()

	b.Publish(ports.Event{Name: "newNotification", Payload: "hello"})

	ev := <-ch
	if ev.Name != "newNotification" {
		t.Fatalf("unexpected event name: %s", ev.Name)
	}
	if ev.Payload != "hello" {
		t.Fatalf("unexpected payload: %v", ev.Payload)
	}
}

func TestBus_FilterSkipsNonMatching(t *testing.T) {
	b := New(4, zerolog.Nop())
	defer b.Close()

	ch, cancel := b.Subscribe(func(ev ports.Event) bool {
		return ev.Name == "wanted"
	})
	defer cancel()

	b.Publish(ports.Event{Name: "ignored"})
	b.Publish(ports.Event{Name: "wanted"})

	ev := <-ch
	if ev.Name != "wanted" {
		t.Fatalf("filter let through %q", ev.Name)
	}
	select {
	case extra := <-ch:
		t.Fatalf("unexpected extra event: %q", extra.Name)
	default:
	}
}

func TestBus_DropsWhenBufferFull(t *testing.T) {
	b := New(1, zerolog.Nop())
	defer b.Close()

	ch, cancel := b.Subscribe(nil)
	defer cancel()

	b.Publish(ports.Event{Name: "first"})
	b.Publish(ports.Event{Name: "second"}) // buffer full, dropped

	if ev := <-ch; ev.Name != "first" {
		t.Fatalf("expected first event, got %q", ev.Name)
	}
	select {
	case ev := <-ch:
		t.Fatalf("second event should have been dropped, got %q", ev.Name)
	default:
	}
}

func TestBus_CancelClosesChannel(t *testing.T) {
	b := New(4, zerolog.Nop())
	defer b.Close()

	ch, cancel := b.Subscribe(nil)
	cancel()
	cancel() // safe to call twice

	if _, ok := <-ch; ok {
		t.Fatalf("expected closed channel after cancel")
	}

	// Publishing after cancel must not panic.
	b.Publish(ports.Event{Name: "late"})
}

func TestBus_CloseStopsEverything(t *testing.T) {
	b := New(4, zerolog.Nop())

	ch, _ := b.Subscribe(nil)
	b.Close()

	if _, ok := <-ch; ok {
		t.Fatalf("expected closed channel after bus close")
	}

	// Subscribing after close returns an already-closed channel.
	late, cancel := b.Subscribe(nil)
	defer cancel()
	if _, ok := <-late; ok {
		t.Fatalf("expected closed channel for late subscriber")
	}
}
