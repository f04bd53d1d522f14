package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/starbounty/bounty-service/internal/bounty/model"
)

func TestReconcile(t *testing.T) {
	tests := []struct {
		name       string
		issueState string
		prStates   []string
		prev       model.Status
		want       model.Status
	}{
		{
			name:       "closed issue wins over everything",
			issueState: "closed",
			prStates:   []string{"open", "closed"},
			prev:       model.StatusInProgress,
			want:       model.StatusClosed,
		},
		{
			name:       "closed issue with no pull requests",
			issueState: "closed",
			prStates:   nil,
			prev:       model.StatusOpen,
			want:       model.StatusClosed,
		},
		{
			name:       "no pull requests keeps previous status",
			issueState: "open",
			prStates:   nil,
			prev:       model.StatusOpen,
			want:       model.StatusOpen,
		},
		{
			name:       "no pull requests keeps PR_SUBMITTED",
			issueState: "open",
			prStates:   []string{},
			prev:       model.StatusPRSubmitted,
			want:       model.StatusPRSubmitted,
		},
		{
			name:       "any closed pull request means merged",
			issueState: "open",
			prStates:   []string{"open", "closed", "open"},
			prev:       model.StatusInProgress,
			want:       model.StatusMerged,
		},
		{
			name:       "open pull requests move OPEN to IN_PROGRESS",
			issueState: "open",
			prStates:   []string{"open"},
			prev:       model.StatusOpen,
			want:       model.StatusInProgress,
		},
		{
			name:       "open pull requests move PR_SUBMITTED to IN_PROGRESS",
			issueState: "open",
			prStates:   []string{"open", "open"},
			prev:       model.StatusPRSubmitted,
			want:       model.StatusInProgress,
		},
		{
			name:       "already IN_PROGRESS stays put",
			issueState: "open",
			prStates:   []string{"open"},
			prev:       model.StatusInProgress,
			want:       model.StatusInProgress,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Reconcile(tt.issueState, tt.prStates, tt.prev)
			assert.Equal(t, tt.want, got)
		})
	}
}
