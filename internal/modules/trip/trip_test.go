// README: Trip state machine tests (transition table, no database).
package trip

import "testing"

// TestCanTransition verifies the lifecycle transition table.
func TestCanTransition(t *testing.T) {
	cases := []struct {
		from, to Status
		want     bool
	}{
		// entry states confirm or cancel
		{StatusDraft, StatusConfirmed, true},
		{StatusRecommended, StatusConfirmed, true},
		{StatusDraft, StatusCancelled, true},
		{StatusRecommended, StatusCancelled, true},
		{StatusConfirmed, StatusCancelled, true},
		// operational chain
		{StatusConfirmed, StatusInTransit, true},
		{StatusInTransit, StatusOnSite, true},
		{StatusOnSite, StatusReturning, true},
		{StatusReturning, StatusCompleted, true},
		// invalid: skipping operational steps
		{StatusConfirmed, StatusOnSite, false},
		{StatusConfirmed, StatusReturning, false},
		{StatusConfirmed, StatusCompleted, false},
		{StatusDraft, StatusInTransit, false},
		{StatusDraft, StatusOnSite, false},
		{StatusInTransit, StatusReturning, false},
		{StatusInTransit, StatusCompleted, false},
		// invalid: cancelling once underway
		{StatusInTransit, StatusCancelled, false},
		{StatusOnSite, StatusCancelled, false},
		{StatusReturning, StatusCancelled, false},
		// invalid: backwards
		{StatusConfirmed, StatusDraft, false},
		{StatusOnSite, StatusInTransit, false},
		{StatusCompleted, StatusReturning, false},
		// invalid: terminal states have no outgoing transitions
		{StatusCompleted, StatusConfirmed, false},
		{StatusCancelled, StatusConfirmed, false},
		{StatusCancelled, StatusDraft, false},
	}
	for _, tc := range cases {
		got := CanTransition(tc.from, tc.to)
		if got != tc.want {
			t.Errorf("CanTransition(%s, %s) = %v, want %v", tc.from, tc.to, got, tc.want)
		}
	}
}

// TestCanTransitionSameState checks that replays never validate: a repeated
// request must not re-run a cascade or append duplicate ledger rows.
func TestCanTransitionSameState(t *testing.T) {
	all := []Status{
		StatusDraft, StatusRecommended, StatusConfirmed, StatusInTransit,
		StatusOnSite, StatusReturning, StatusCompleted, StatusCancelled,
	}
	for _, s := range all {
		if CanTransition(s, s) {
			t.Errorf("CanTransition(%s, %s) = true, want false", s, s)
		}
	}
}

func TestIsTerminal(t *testing.T) {
	if !IsTerminal(StatusCompleted) || !IsTerminal(StatusCancelled) {
		t.Fatal("completed and cancelled must be terminal")
	}
	if IsTerminal(StatusDraft) || IsTerminal(StatusReturning) {
		t.Fatal("non-terminal status reported terminal")
	}
}
