package service

import (
	"github.com/starbounty/bounty-service/internal/bounty/model"
)

// Reconcile derives the next bounty status from the upstream issue state and
// the states of the linked pull requests. Pure function of its inputs.
//
// Rules, highest priority first:
//   - issue closed: the bounty is CLOSED regardless of pull request state
//   - any linked pull request closed: MERGED (a closed PR counts as merged
//     on the poll path; the webhook path carries the explicit merged flag)
//   - at least one linked pull request: IN_PROGRESS, unless already there
//   - otherwise the previous status stands
func Reconcile(issueState string, prStates []string, prev model.Status) model.Status {
	if issueState == "closed" {
		return model.StatusClosed
	}

	if len(prStates) == 0 {
		return prev
	}

	for _, state := range prStates {
		if state == "closed" {
			return model.StatusMerged
		}
	}

	if prev != model.StatusInProgress {
		return model.StatusInProgress
	}

	return prev
}
