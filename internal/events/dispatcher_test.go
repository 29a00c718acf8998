package events

import (
	"context"
	"errors"
	"testing"
)

func TestDispatcherDeliversToSubscribers(t *testing.T) {
	d := NewInMemoryDispatcher()

	var got []Event
	d.Subscribe(EventInquiryCreated, func(_ context.Context, e Event) error {
		got = append(got, e)
		return nil
	})
	d.Subscribe(EventInquiryResponded, func(_ context.Context, e Event) error {
		t.Errorf("handler for %s received %s", EventInquiryResponded, e.Type)
		return nil
	})

	event := NewEvent(EventInquiryCreated, 5, InquiryCreatedPayload{PropertyID: 2, SenderID: 3})
	if err := d.Publish(context.Background(), event); err != nil {
		t.Fatalf("publish: %v", err)
	}

	if len(got) != 1 {
		t.Fatalf("delivered %d events, want 1", len(got))
	}
	if got[0].InquiryID != 5 || got[0].ID == "" {
		t.Errorf("event = %+v", got[0])
	}
}

func TestDispatcherHandlerErrorDoesNotStopOthers(t *testing.T) {
	d := NewInMemoryDispatcher()

	second := false
	d.Subscribe(EventInquiryRead, func(context.Context, Event) error {
		return errors.New("boom")
	})
	d.Subscribe(EventInquiryRead, func(context.Context, Event) error {
		second = true
		return nil
	})

	if err := d.Publish(context.Background(), NewEvent(EventInquiryRead, 1, nil)); err != nil {
		t.Fatalf("publish: %v", err)
	}
	if !second {
		t.Error("second handler not invoked after first failed")
	}
}
