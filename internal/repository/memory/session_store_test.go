package memory

import (
	"context"
	"testing"
	"time"

	"clinic-intake-be/pkg/dialog"
)

func statePtr(st dialog.State) *dialog.State { return &st }

func TestSessionStorePutCreates(t *testing.T) {
	store := NewSessionStore(time.Hour)
	ctx := context.Background()

	if _, found, err := store.Get(ctx, "628"); err != nil || found {
		t.Fatalf("Get on empty store = found=%v err=%v", found, err)
	}

	s, err := store.Put(ctx, "628", dialog.Patch{})
	if err != nil {
		t.Fatalf("Put: %v", err)
	}
	if s.Key != "628" || s.FlowState != dialog.StateWelcome {
		t.Fatalf("created session = %+v", s)
	}

	got, found, err := store.Get(ctx, "628")
	if err != nil || !found {
		t.Fatalf("Get after Put = found=%v err=%v", found, err)
	}
	if got.Key != "628" {
		t.Fatalf("Get = %+v", got)
	}
}

func TestSessionStorePutMerges(t *testing.T) {
	store := NewSessionStore(time.Hour)
	ctx := context.Background()

	name := "Maria"
	if _, err := store.Put(ctx, "628", dialog.Patch{
		FlowState:   statePtr(dialog.StateAge),
		PatientName: &name,
	}); err != nil {
		t.Fatalf("Put: %v", err)
	}

	// A later patch that does not mention the name must not lose it.
	age := 41
	s, err := store.Put(ctx, "628", dialog.Patch{
		FlowState:  statePtr(dialog.StateLocation),
		PatientAge: &age,
	})
	if err != nil {
		t.Fatalf("Put: %v", err)
	}
	if s.PatientName != "Maria" || s.PatientAge == nil || *s.PatientAge != 41 {
		t.Fatalf("merged session = %+v", s)
	}
	if s.FlowState != dialog.StateLocation {
		t.Fatalf("FlowState = %s", s.FlowState)
	}
}

// The store hands out copies: mutating a returned session must not leak into
// what a later Get observes.
func TestSessionStoreReturnsCopies(t *testing.T) {
	store := NewSessionStore(time.Hour)
	ctx := context.Background()

	if _, err := store.Put(ctx, "628", dialog.Patch{}); err != nil {
		t.Fatalf("Put: %v", err)
	}

	first, _, err := store.Get(ctx, "628")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	first.PatientName = "scribbled"

	second, _, err := store.Get(ctx, "628")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if second.PatientName != "" {
		t.Fatal("mutation of a returned session leaked into the store")
	}
}

func TestSessionStoreKeysAreIndependent(t *testing.T) {
	store := NewSessionStore(time.Hour)
	ctx := context.Background()

	name := "Maria"
	if _, err := store.Put(ctx, "a", dialog.Patch{PatientName: &name}); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if _, err := store.Put(ctx, "b", dialog.Patch{}); err != nil {
		t.Fatalf("Put: %v", err)
	}

	b, _, err := store.Get(ctx, "b")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if b.PatientName != "" {
		t.Fatalf("key b picked up key a's data: %+v", b)
	}
}
