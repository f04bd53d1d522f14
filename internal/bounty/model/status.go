package model

// Status is the bounty lifecycle state.
type Status string

// Bounty lifecycle states.
const (
	StatusOpen        Status = "OPEN"
	StatusPRSubmitted Status = "PR_SUBMITTED"
	StatusInProgress  Status = "IN_PROGRESS"
	StatusMerged      Status = "MERGED"
	StatusClosed      Status = "CLOSED"
	StatusPaid        Status = "PAID"
)

// allowedTransitions is the single authority over status changes. Every code
// path that mutates a bounty status (poll, webhook, escrow release, worker)
// consults it; a disallowed transition is skipped, not applied.
var allowedTransitions = map[Status][]Status{
	StatusOpen:        {StatusPRSubmitted, StatusInProgress, StatusMerged, StatusClosed},
	StatusPRSubmitted: {StatusInProgress, StatusMerged, StatusClosed},
	StatusInProgress:  {StatusPRSubmitted, StatusMerged, StatusClosed},
	StatusMerged:      {StatusPaid, StatusClosed},
	StatusClosed:      {},
	StatusPaid:        {},
}

// Valid reports whether s is a known lifecycle state.
func (s Status) Valid() bool {
	_, ok := allowedTransitions[s]
	return ok
}

// Terminal reports whether no further transitions are allowed from s.
func (s Status) Terminal() bool {
	return len(allowedTransitions[s]) == 0 && s.Valid()
}

// CanTransition reports whether moving from one state to another is allowed.
// A same-state "transition" is not a transition and returns false; callers
// treat it as a no-op write.
func CanTransition(from, to Status) bool {
	for _, next := range allowedTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}
