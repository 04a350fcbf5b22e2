package models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStatusTransitionsForwardOnly(t *testing.T) {
	require.True(t, StatusApplied.CanTransitionTo(StatusShortlisted))
	require.True(t, StatusApplied.CanTransitionTo(StatusRound3), "skipping rounds forward is allowed")
	require.True(t, StatusShortlisted.CanTransitionTo(StatusHRRound))
	require.True(t, StatusHRRound.CanTransitionTo(StatusOffered))

	require.False(t, StatusShortlisted.CanTransitionTo(StatusApplied), "backward moves are rejected")
	require.False(t, StatusRound2.CanTransitionTo(StatusRound1))
	require.False(t, StatusOffered.CanTransitionTo(StatusHRRound))
	require.False(t, StatusApplied.CanTransitionTo(StatusApplied), "self transition is rejected")
}

func TestStatusTransitionsRejection(t *testing.T) {
	for _, status := range []ApplicationStatus{StatusApplied, StatusShortlisted, StatusRound1, StatusRound6, StatusHRRound, StatusOffered} {
		require.True(t, status.CanTransitionTo(StatusRejected), "rejection must be reachable from %s", status)
	}

	for _, terminal := range []ApplicationStatus{StatusRejected, StatusAccepted, StatusDeclined} {
		require.False(t, terminal.CanTransitionTo(StatusRejected))
		require.False(t, terminal.CanTransitionTo(StatusOffered), "terminal state %s must not move", terminal)
	}
}

func TestStatusTransitionsOfferDecisions(t *testing.T) {
	require.True(t, StatusOffered.CanTransitionTo(StatusAccepted))
	require.True(t, StatusOffered.CanTransitionTo(StatusDeclined))

	require.False(t, StatusHRRound.CanTransitionTo(StatusAccepted), "accepting without an offer is rejected")
	require.False(t, StatusApplied.CanTransitionTo(StatusDeclined))
}

func TestStatusTransitionsUnknownTarget(t *testing.T) {
	require.False(t, StatusApplied.CanTransitionTo(ApplicationStatus("withdrawn")))
	require.False(t, ApplicationStatus("bogus").Known())
	require.True(t, StatusHRRound.Known())
}

func TestTerminalStatuses(t *testing.T) {
	require.True(t, StatusRejected.Terminal())
	require.True(t, StatusAccepted.Terminal())
	require.True(t, StatusDeclined.Terminal())
	require.False(t, StatusOffered.Terminal())
	require.False(t, StatusApplied.Terminal())
}
