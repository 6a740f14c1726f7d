package model

import "testing"

func TestParseStatus(t *testing.T) {
	for _, s := range []string{"pending", "confirmed", "completed", "cancelled"} {
		if _, ok := ParseStatus(s); !ok {
			t.Errorf("expected %q to parse", s)
		}
	}
	for _, s := range []string{"", "done", "PENDING", "canceled"} {
		if _, ok := ParseStatus(s); ok {
			t.Errorf("expected %q to be rejected", s)
		}
	}
}

func TestCanTransition(t *testing.T) {
	allowed := []struct{ from, to Status }{
		{StatusPending, StatusConfirmed},
		{StatusPending, StatusCancelled},
		{StatusConfirmed, StatusCompleted},
		{StatusConfirmed, StatusCancelled},
	}
	for _, tt := range allowed {
		if !CanTransition(tt.from, tt.to) {
			t.Errorf("%s -> %s should be allowed", tt.from, tt.to)
		}
	}

	// terminal states accept nothing, and nothing skips ahead
	denied := []struct{ from, to Status }{
		{StatusPending, StatusCompleted},
		{StatusPending, StatusPending},
		{StatusConfirmed, StatusPending},
		{StatusCompleted, StatusPending},
		{StatusCompleted, StatusConfirmed},
		{StatusCompleted, StatusCancelled},
		{StatusCancelled, StatusPending},
		{StatusCancelled, StatusConfirmed},
		{StatusCancelled, StatusCompleted},
	}
	for _, tt := range denied {
		if CanTransition(tt.from, tt.to) {
			t.Errorf("%s -> %s should be denied", tt.from, tt.to)
		}
	}
}

func TestParseRole(t *testing.T) {
	if _, ok := ParseRole("patient"); !ok {
		t.Error("patient should parse")
	}
	if _, ok := ParseRole("doctor"); !ok {
		t.Error("doctor should parse")
	}
	if _, ok := ParseRole("admin"); ok {
		t.Error("admin should be rejected")
	}
}
