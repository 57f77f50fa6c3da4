package review

// The deck's due_count is maintained incrementally: each card mutation
// contributes a -1/0/+1 delta computed from the card's due-status
// transition, applied in the same transaction as the card write. The
// functions below are the whole of that arithmetic; they cannot fail.

// ReviewDelta returns the due_count adjustment for a single review.
// wasDue is the card's due status before the scheduler ran and
// isDueAfter the status of the scheduler's output, both evaluated
// against the same now.
//
// A review can only take a card from due to not due, so the result is
// -1 or 0 in practice. The +1 branch exists because the same transition
// rule serves the creation and undelete paths, where a fresh due_at
// can make a card due.
func ReviewDelta(wasDue, isDueAfter bool) int {
	switch {
	case wasDue && !isDueAfter:
		return -1
	case !wasDue && isDueAfter:
		return 1
	default:
		return 0
	}
}

// CreationDelta returns the due_count adjustment for a newly created
// card: +1 if it is due at creation time, else 0.
func CreationDelta(isDue bool) int {
	if isDue {
		return 1
	}
	return 0
}

// DeletionDelta returns the due_count adjustment for a deleted card:
// -1 if it was due at deletion time, else 0. Applied alongside the
// cards_count decrement.
func DeletionDelta(wasDue bool) int {
	if wasDue {
		return -1
	}
	return 0
}
