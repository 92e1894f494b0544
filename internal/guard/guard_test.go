package guard

import (
	"testing"
	"time"
)

func TestTryAcquireRejectsDuplicateWithinTTL(t *testing.T) {
	g := New(time.Minute)
	if !g.TryAcquire("gesture:abc") {
		t.Fatalf("first acquisition must succeed")
	}
	if g.TryAcquire("gesture:abc") {
		t.Fatalf("duplicate acquisition within TTL must fail")
	}
	if !g.TryAcquire("gesture:def") {
		t.Fatalf("unrelated key must not be affected")
	}
}

func TestTryAcquireSucceedsAfterTTL(t *testing.T) {
	g := New(20 * time.Millisecond)
	if !g.TryAcquire(SubmitKey(42)) {
		t.Fatalf("first acquisition must succeed")
	}
	time.Sleep(40 * time.Millisecond)
	if !g.TryAcquire(SubmitKey(42)) {
		t.Fatalf("acquisition after TTL expiry must succeed")
	}
}

func TestSubmitKeyIsPerUser(t *testing.T) {
	g := New(time.Minute)
	if !g.TryAcquire(SubmitKey(1)) {
		t.Fatalf("user 1 first submit must acquire")
	}
	if !g.TryAcquire(SubmitKey(2)) {
		t.Fatalf("user 2 must not be blocked by user 1")
	}
	if g.TryAcquire(SubmitKey(1)) {
		t.Fatalf("user 1 duplicate submit must be rejected")
	}
}
