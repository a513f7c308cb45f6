package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConnectionState_Status(t *testing.T) {
	tests := []struct {
		state    ConnectionState
		expected ConnectionStatus
	}{
		{ConnectionState{Phase: PhaseConnecting}, StatusConnecting},
		{ConnectionState{Phase: PhaseOpen}, StatusOpen},
		{ConnectionState{Phase: PhaseReconnecting, Attempt: 2}, StatusConnecting},
		{ConnectionState{Phase: PhaseClosed}, StatusClosed},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, tt.state.Status(), tt.state.Phase.String())
	}
}

func TestConnectionState_Terminal(t *testing.T) {
	assert.False(t, ConnectionState{Phase: PhaseReconnecting, Attempt: 3}.Terminal())
	assert.True(t, ConnectionState{Phase: PhaseClosed}.Terminal())
}

func TestConnectionPhase_String(t *testing.T) {
	assert.Equal(t, "connecting", PhaseConnecting.String())
	assert.Equal(t, "open", PhaseOpen.String())
	assert.Equal(t, "reconnecting", PhaseReconnecting.String())
	assert.Equal(t, "closed", PhaseClosed.String())
}

func TestSnapshot_HasCelebration(t *testing.T) {
	var nilSnapshot *Snapshot
	assert.False(t, nilSnapshot.HasCelebration())
	assert.False(t, (&Snapshot{}).HasCelebration())

	id := int64(7)
	assert.True(t, (&Snapshot{CelebrationID: &id}).HasCelebration())
}

func TestSpotlightState_Active(t *testing.T) {
	assert.False(t, SpotlightState{}.Active())
	assert.True(t, SpotlightState{Value: &Celebration{}}.Active())
}
