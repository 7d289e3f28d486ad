package composex_test

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"testing"

	. "github.com/comalice/composex"
)

func recordingListener(id string, log *[]string) Listener {
	return ListenerFunc(id, func(ctx context.Context, state any) error {
		*log = append(*log, fmt.Sprintf("%s:%v", id, state))
		return nil
	})
}

func TestSubscribeRegistrationOrder(t *testing.T) {
	var log []string
	mood := NewSubject("mood", "neutral")
	mood.Subscribe(recordingListener("A", &log))
	mood.Subscribe(recordingListener("B", &log))
	mood.Subscribe(recordingListener("C", &log))

	if err := mood.SetState(context.Background(), "happy"); err != nil {
		t.Fatal(err)
	}

	want := []string{"A:happy", "B:happy", "C:happy"}
	if !reflect.DeepEqual(log, want) {
		t.Errorf("expected delivery in registration order %v, got %v", want, log)
	}
	if mood.State() != "happy" {
		t.Errorf("expected state happy, got %v", mood.State())
	}
}

func TestDuplicateSubscribeIsIdempotent(t *testing.T) {
	var log []string
	mood := NewSubject("mood", "neutral")
	l := recordingListener("A", &log)

	sub1 := mood.Subscribe(l)
	sub2 := mood.Subscribe(l)

	if sub1 != sub2 {
		t.Error("expected duplicate subscribe to return the existing handle")
	}
	if mood.Len() != 1 {
		t.Errorf("expected exactly one entry, got %d", mood.Len())
	}

	mood.SetState(context.Background(), "happy")
	if len(log) != 1 {
		t.Errorf("expected one delivery, got %v", log)
	}

	// Same identity, distinct value: still deduped.
	mood.Subscribe(recordingListener("A", &log))
	if mood.Len() != 1 {
		t.Errorf("expected dedupe by listener ID, got %d entries", mood.Len())
	}
}

func TestUnsubscribeIsNoOpWhenNotRegistered(t *testing.T) {
	var log []string
	mood := NewSubject("mood", "neutral")
	sub := mood.Subscribe(recordingListener("A", &log))

	mood.Unsubscribe(sub)
	mood.Unsubscribe(sub) // Already removed.
	mood.Unsubscribe(nil)

	other := NewSubject("other", nil)
	foreign := other.Subscribe(recordingListener("A", &log))
	mood.Unsubscribe(foreign) // Foreign handle.

	if other.Len() != 1 {
		t.Errorf("expected foreign subject untouched, got %d", other.Len())
	}
	if err := mood.SetState(context.Background(), "happy"); err != nil {
		t.Fatal(err)
	}
	if len(log) != 0 {
		t.Errorf("expected no deliveries after unsubscribe, got %v", log)
	}
}

func TestSelfUnsubscribeDuringDelivery(t *testing.T) {
	var log []string
	mood := NewSubject("mood", "neutral")
	ctx := context.Background()

	var once *Subscription
	once = mood.Subscribe(ListenerFunc("once", func(ctx context.Context, state any) error {
		log = append(log, fmt.Sprintf("once:%v", state))
		once.Cancel()
		return nil
	}))
	mood.Subscribe(recordingListener("B", &log))

	if err := mood.SetState(ctx, "x"); err != nil {
		t.Fatalf("expected pass to complete without error, got %v", err)
	}
	if err := mood.SetState(ctx, "y"); err != nil {
		t.Fatal(err)
	}

	want := []string{"once:x", "B:x", "B:y"}
	if !reflect.DeepEqual(log, want) {
		t.Errorf("expected %v, got %v", want, log)
	}
}

func TestThirdPartyUnsubscribeDuringDelivery(t *testing.T) {
	var log []string
	mood := NewSubject("mood", "neutral")
	ctx := context.Background()

	var subC *Subscription
	mood.Subscribe(ListenerFunc("A", func(ctx context.Context, state any) error {
		log = append(log, fmt.Sprintf("A:%v", state))
		mood.Unsubscribe(subC)
		return nil
	}))
	subC = mood.Subscribe(recordingListener("C", &log))

	// C was registered when the pass began, so the snapshot still delivers
	// "x" to it; it is excluded from the next pass.
	mood.SetState(ctx, "x")
	mood.SetState(ctx, "y")

	want := []string{"A:x", "C:x", "A:y"}
	if !reflect.DeepEqual(log, want) {
		t.Errorf("expected %v, got %v", want, log)
	}
}

func TestSubscribeDuringDeliveryUsesSnapshot(t *testing.T) {
	var log []string
	mood := NewSubject("mood", "neutral")
	ctx := context.Background()

	mood.Subscribe(ListenerFunc("A", func(ctx context.Context, state any) error {
		log = append(log, fmt.Sprintf("A:%v", state))
		if state == "x" {
			mood.Subscribe(recordingListener("B", &log))
		}
		return nil
	}))

	// B subscribes while "x" is being delivered: excluded from that pass,
	// included in the next.
	mood.SetState(ctx, "x")
	mood.SetState(ctx, "y")

	want := []string{"A:x", "A:y", "B:y"}
	if !reflect.DeepEqual(log, want) {
		t.Errorf("expected %v, got %v", want, log)
	}
}

func TestFailingListenerDoesNotBlockSiblings(t *testing.T) {
	var log []string
	mood := NewSubject("mood", "neutral")

	mood.Subscribe(recordingListener("A", &log))
	mood.Subscribe(ListenerFunc("B", func(ctx context.Context, state any) error {
		return errors.New("B refuses")
	}))
	mood.Subscribe(recordingListener("C", &log))

	err := mood.SetState(context.Background(), "x")

	want := []string{"A:x", "C:x"}
	if !reflect.DeepEqual(log, want) {
		t.Errorf("expected A and C delivered, got %v", log)
	}

	var de *DeliveryError
	if !errors.As(err, &de) {
		t.Fatalf("expected *DeliveryError, got %v", err)
	}
	if len(de.Failures) != 1 || de.Failures[0].ListenerID != "B" {
		t.Errorf("expected aggregate naming B, got %+v", de.Failures)
	}
	if de.Subject != "mood" {
		t.Errorf("expected subject mood in aggregate, got %q", de.Subject)
	}
}

func TestPanickingListenerIsIsolated(t *testing.T) {
	var log []string
	mood := NewSubject("mood", "neutral")

	mood.Subscribe(ListenerFunc("B", func(ctx context.Context, state any) error {
		panic("unexpected abort")
	}))
	mood.Subscribe(recordingListener("C", &log))

	err := mood.SetState(context.Background(), "x")

	if !reflect.DeepEqual(log, []string{"C:x"}) {
		t.Errorf("expected C still delivered, got %v", log)
	}

	var de *DeliveryError
	if !errors.As(err, &de) {
		t.Fatalf("expected *DeliveryError, got %v", err)
	}
	if de.Failures[0].ListenerID != "B" {
		t.Errorf("expected panic attributed to B, got %+v", de.Failures)
	}
}

func TestNestedSetStateRunsAsOwnPass(t *testing.T) {
	var log []string
	mood := NewSubject("mood", "neutral")

	mood.Subscribe(ListenerFunc("A", func(ctx context.Context, state any) error {
		log = append(log, fmt.Sprintf("A:%v", state))
		if state == "x" {
			mood.SetState(ctx, "followup")
		}
		return nil
	}))
	mood.Subscribe(recordingListener("B", &log))

	if err := mood.SetState(context.Background(), "x"); err != nil {
		t.Fatal(err)
	}

	// The nested pass completes inside A's callback, then the outer pass
	// finishes its own snapshot.
	want := []string{"A:x", "A:followup", "B:followup", "B:x"}
	if !reflect.DeepEqual(log, want) {
		t.Errorf("expected %v, got %v", want, log)
	}
	if mood.State() != "followup" {
		t.Errorf("expected final state followup, got %v", mood.State())
	}
}

func TestSubscriptionHandleIdentity(t *testing.T) {
	mood := NewSubject("mood", nil)
	var log []string
	sub := mood.Subscribe(recordingListener("A", &log))

	if sub.ListenerID() != "A" {
		t.Errorf("expected listener ID A, got %q", sub.ListenerID())
	}
	if sub.Token() == "" {
		t.Error("expected non-empty subscription token")
	}

	sub.Cancel()
	sub.Cancel() // Safe to repeat.
	if mood.Len() != 0 {
		t.Errorf("expected empty registration order, got %d", mood.Len())
	}
}
