package logging

import (
	"context"
	"testing"
)

func TestWithFieldsDecoratesWithoutClobbering(t *testing.T) {
	var captured Event
	base := PublisherFunc(func(_ context.Context, event Event) {
		captured = event
	})

	pub := WithFields(base, map[string]any{"zone": "0,0,0", "run": 7})
	pub.Publish(context.Background(), Event{
		Type:  "test.event",
		Extra: map[string]any{"zone": "override"},
	})

	if captured.Extra["run"] != 7 {
		t.Fatalf("static field missing: %v", captured.Extra)
	}
	if captured.Extra["zone"] != "override" {
		t.Fatalf("event-set field was clobbered: %v", captured.Extra)
	}
}

func TestWithFieldsDoesNotMutateTheOriginalEvent(t *testing.T) {
	base := PublisherFunc(func(context.Context, Event) {})
	pub := WithFields(base, map[string]any{"k": "v"})

	original := Event{Type: "test.event"}
	pub.Publish(context.Background(), original)
	if original.Extra != nil {
		t.Fatalf("publisher mutated the caller's event: %v", original.Extra)
	}
}

func TestNilAndNopPublishersAreSafe(t *testing.T) {
	NopPublisher().Publish(context.Background(), Event{Type: "test.event"})

	var f PublisherFunc
	f.Publish(context.Background(), Event{Type: "test.event"})

	if pub := WithFields(nil, map[string]any{"k": "v"}); pub == nil {
		t.Fatalf("WithFields(nil, ...) must return a usable publisher")
	}
}
