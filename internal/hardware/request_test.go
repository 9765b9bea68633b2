package hardware_test

import (
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github/vaultbridge/hw-wallet/internal/hardware"
)

func TestCanTransition(t *testing.T) {
	allowed := []struct {
		from hardware.SigningStatus
		to   hardware.SigningStatus
	}{
		{hardware.SigningStatusPending, hardware.SigningStatusAwaitingDevice},
		{hardware.SigningStatusPending, hardware.SigningStatusSigning},
		{hardware.SigningStatusPending, hardware.SigningStatusExpired},
		{hardware.SigningStatusPending, hardware.SigningStatusCancelled},
		{hardware.SigningStatusAwaitingDevice, hardware.SigningStatusSigning},
		{hardware.SigningStatusAwaitingDevice, hardware.SigningStatusExpired},
		{hardware.SigningStatusAwaitingDevice, hardware.SigningStatusCancelled},
		{hardware.SigningStatusSigning, hardware.SigningStatusCompleted},
		{hardware.SigningStatusSigning, hardware.SigningStatusFailed},
		{hardware.SigningStatusSigning, hardware.SigningStatusCancelled},
	}

	for _, tc := range allowed {
		assert.True(t, hardware.CanTransition(tc.from, tc.to), "%s -> %s should be allowed", tc.from, tc.to)
	}

	denied := []struct {
		from hardware.SigningStatus
		to   hardware.SigningStatus
	}{
		{hardware.SigningStatusPending, hardware.SigningStatusCompleted},
		{hardware.SigningStatusPending, hardware.SigningStatusFailed},
		{hardware.SigningStatusAwaitingDevice, hardware.SigningStatusCompleted},
		{hardware.SigningStatusAwaitingDevice, hardware.SigningStatusPending},
		{hardware.SigningStatusSigning, hardware.SigningStatusExpired},
		{hardware.SigningStatusSigning, hardware.SigningStatusPending},
	}

	for _, tc := range denied {
		assert.False(t, hardware.CanTransition(tc.from, tc.to), "%s -> %s should be denied", tc.from, tc.to)
	}
}

func TestTerminalStatesAreSinks(t *testing.T) {
	terminals := []hardware.SigningStatus{
		hardware.SigningStatusCompleted,
		hardware.SigningStatusFailed,
		hardware.SigningStatusExpired,
		hardware.SigningStatusCancelled,
	}
	all := append([]hardware.SigningStatus{
		hardware.SigningStatusPending,
		hardware.SigningStatusAwaitingDevice,
		hardware.SigningStatusSigning,
	}, terminals...)

	for _, from := range terminals {
		assert.True(t, from.IsTerminal())
		for _, to := range all {
			assert.False(t, hardware.CanTransition(from, to), "%s -> %s must be denied", from, to)
		}
	}
}

func TestTransitionTo(t *testing.T) {
	request := &hardware.SigningRequest{Status: hardware.SigningStatusPending}

	require.NoError(t, request.TransitionTo(hardware.SigningStatusAwaitingDevice))
	assert.Equal(t, hardware.SigningStatusAwaitingDevice, request.Status)

	require.NoError(t, request.TransitionTo(hardware.SigningStatusSigning))
	require.NoError(t, request.TransitionTo(hardware.SigningStatusCompleted))

	err := request.TransitionTo(hardware.SigningStatusCancelled)
	require.Error(t, err)
	assert.True(t, errors.Is(err, hardware.ErrInvalidTransition))
	assert.Equal(t, hardware.SigningStatusCompleted, request.Status)
}

func TestTransitionToInvalidEdge(t *testing.T) {
	request := &hardware.SigningRequest{Status: hardware.SigningStatusPending}

	err := request.TransitionTo(hardware.SigningStatusCompleted)
	require.Error(t, err)
	assert.True(t, errors.Is(err, hardware.ErrInvalidTransition))
	assert.Equal(t, hardware.SigningStatusPending, request.Status, "failed transition must not change status")
}

func TestIsOpen(t *testing.T) {
	assert.True(t, hardware.SigningStatusPending.IsOpen())
	assert.True(t, hardware.SigningStatusAwaitingDevice.IsOpen())
	assert.False(t, hardware.SigningStatusSigning.IsOpen())
	assert.False(t, hardware.SigningStatusCompleted.IsOpen())
	assert.False(t, hardware.SigningStatusExpired.IsOpen())

	assert.ElementsMatch(t, []hardware.SigningStatus{
		hardware.SigningStatusPending,
		hardware.SigningStatusAwaitingDevice,
	}, hardware.OpenStatuses())
}

func TestIsExpired(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	request := &hardware.SigningRequest{ExpiresAt: now}

	assert.True(t, request.IsExpired(now), "expiry boundary is inclusive")
	assert.True(t, request.IsExpired(now.Add(time.Second)))
	assert.False(t, request.IsExpired(now.Add(-time.Second)))
}
