package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatus_Valid(t *testing.T) {
	for _, s := range []Status{StatusOpen, StatusPRSubmitted, StatusInProgress, StatusMerged, StatusClosed, StatusPaid} {
		assert.True(t, s.Valid(), "expected %s to be valid", s)
	}

	assert.False(t, Status("UNKNOWN").Valid())
	assert.False(t, Status("").Valid())
}

func TestStatus_Terminal(t *testing.T) {
	assert.True(t, StatusClosed.Terminal())
	assert.True(t, StatusPaid.Terminal())

	assert.False(t, StatusOpen.Terminal())
	assert.False(t, StatusPRSubmitted.Terminal())
	assert.False(t, StatusInProgress.Terminal())
	assert.False(t, StatusMerged.Terminal())
	assert.False(t, Status("UNKNOWN").Terminal())
}

func TestCanTransition(t *testing.T) {
	t.Run("allowed transitions", func(t *testing.T) {
		allowed := [][2]Status{
			{StatusOpen, StatusPRSubmitted},
			{StatusOpen, StatusInProgress},
			{StatusOpen, StatusMerged},
			{StatusOpen, StatusClosed},
			{StatusPRSubmitted, StatusInProgress},
			{StatusPRSubmitted, StatusMerged},
			{StatusInProgress, StatusPRSubmitted},
			{StatusInProgress, StatusMerged},
			{StatusMerged, StatusPaid},
			{StatusMerged, StatusClosed},
		}
		for _, pair := range allowed {
			assert.True(t, CanTransition(pair[0], pair[1]), "%s -> %s", pair[0], pair[1])
		}
	})

	t.Run("terminal states allow nothing", func(t *testing.T) {
		for _, to := range []Status{StatusOpen, StatusPRSubmitted, StatusInProgress, StatusMerged, StatusClosed, StatusPaid} {
			assert.False(t, CanTransition(StatusClosed, to), "CLOSED -> %s", to)
			assert.False(t, CanTransition(StatusPaid, to), "PAID -> %s", to)
		}
	})

	t.Run("same state is not a transition", func(t *testing.T) {
		for _, s := range []Status{StatusOpen, StatusPRSubmitted, StatusInProgress, StatusMerged} {
			assert.False(t, CanTransition(s, s))
		}
	})

	t.Run("no backwards transitions into OPEN", func(t *testing.T) {
		for _, from := range []Status{StatusPRSubmitted, StatusInProgress, StatusMerged} {
			assert.False(t, CanTransition(from, StatusOpen), "%s -> OPEN", from)
		}
	})

	t.Run("PAID only reachable from MERGED", func(t *testing.T) {
		for _, from := range []Status{StatusOpen, StatusPRSubmitted, StatusInProgress} {
			assert.False(t, CanTransition(from, StatusPaid), "%s -> PAID", from)
		}
		assert.True(t, CanTransition(StatusMerged, StatusPaid))
	})
}
