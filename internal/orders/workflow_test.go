package orders

import (
	"testing"

	"tantawan/internal/models"
)

func TestCanTransitionForwardPath(t *testing.T) {
	path := []models.OrderStatus{
		models.StatusPending,
		models.StatusConfirmed,
		models.StatusPreparing,
		models.StatusReady,
		models.StatusCompleted,
	}
	for i := 0; i < len(path)-1; i++ {
		if !CanTransition(path[i], path[i+1]) {
			t.Fatalf("expected %s -> %s to be allowed", path[i], path[i+1])
		}
	}
}

func TestCanTransitionRejectsSkips(t *testing.T) {
	cases := []struct {
		from, to models.OrderStatus
	}{
		{models.StatusPending, models.StatusReady},
		{models.StatusPending, models.StatusCompleted},
		{models.StatusConfirmed, models.StatusReady},
		{models.StatusCompleted, models.StatusPending},
		{models.StatusReady, models.StatusPending},
	}
	for _, tc := range cases {
		if CanTransition(tc.from, tc.to) {
			t.Fatalf("expected %s -> %s to be rejected", tc.from, tc.to)
		}
	}
}

func TestCancelReachableFromNonTerminalOnly(t *testing.T) {
	for _, from := range []models.OrderStatus{
		models.StatusPending, models.StatusConfirmed, models.StatusPreparing, models.StatusReady,
	} {
		if !CanTransition(from, models.StatusCancelled) {
			t.Fatalf("expected %s -> cancelled to be allowed", from)
		}
	}
	if CanTransition(models.StatusCompleted, models.StatusCancelled) {
		t.Fatal("expected completed -> cancelled to be rejected")
	}
	if CanTransition(models.StatusCancelled, models.StatusCancelled) {
		t.Fatal("expected cancelled -> cancelled to be rejected")
	}
}

func TestTerminalStates(t *testing.T) {
	if !IsTerminal(models.StatusCompleted) || !IsTerminal(models.StatusCancelled) {
		t.Fatal("completed and cancelled must be terminal")
	}
	for _, status := range []models.OrderStatus{
		models.StatusPending, models.StatusConfirmed, models.StatusPreparing, models.StatusReady,
	} {
		if IsTerminal(status) {
			t.Fatalf("%s must not be terminal", status)
		}
	}
}
