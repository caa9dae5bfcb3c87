package testutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestFakeClock_FiresInDeadlineOrder(t *testing.T) {
	clock := NewFakeClock()
	var order []string
	clock.AfterFunc(2*time.Second, func() { order = append(order, "late") })
	clock.AfterFunc(time.Second, func() { order = append(order, "early") })
	require.Equal(t, 2, clock.Pending())

	clock.Advance(500 * time.Millisecond)
	require.Empty(t, order)

	clock.Advance(2 * time.Second)
	require.Equal(t, []string{"early", "late"}, order)
	require.Equal(t, 0, clock.Pending())
}

func TestFakeClock_Stop(t *testing.T) {
	clock := NewFakeClock()
	fired := false
	timer := clock.AfterFunc(time.Second, func() { fired = true })

	require.True(t, timer.Stop())
	require.False(t, timer.Stop(), "second stop reports false")
	clock.Advance(time.Hour)
	require.False(t, fired)
}

func TestFakeClock_StopAfterFire(t *testing.T) {
	clock := NewFakeClock()
	timer := clock.AfterFunc(time.Second, func() {})
	clock.Advance(time.Second)
	require.False(t, timer.Stop())
}
