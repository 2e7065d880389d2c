package orders

import (
	"tantawan/internal/models"
)

// transitions encodes the forward-only order workflow. cancelled is reachable
// from every non-terminal state; completed and cancelled are terminal.
var transitions = map[models.OrderStatus][]models.OrderStatus{
	models.StatusPending:   {models.StatusConfirmed, models.StatusCancelled},
	models.StatusConfirmed: {models.StatusPreparing, models.StatusCancelled},
	models.StatusPreparing: {models.StatusReady, models.StatusCancelled},
	models.StatusReady:     {models.StatusCompleted, models.StatusCancelled},
	models.StatusCompleted: nil,
	models.StatusCancelled: nil,
}

// CanTransition reports whether the workflow permits moving from one status
// to the next.
func CanTransition(from, to models.OrderStatus) bool {
	for _, allowed := range transitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further workflow transition exists.
func IsTerminal(status models.OrderStatus) bool {
	return len(transitions[status]) == 0
}
