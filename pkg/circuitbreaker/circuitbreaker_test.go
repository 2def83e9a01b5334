package circuitbreaker

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errRemote = errors.New("connection refused")

func failing() error { return errRemote }
func succeeding() error { return nil }

func TestOpensAfterConsecutiveFailures(t *testing.T) {
	cb := New(Settings{FailureLimit: 3, Cooldown: time.Minute})

	for i := 0; i < 3; i++ {
		require.ErrorIs(t, cb.Execute(failing), errRemote)
	}
	assert.Equal(t, StateOpen, cb.State())

	// Open breaker fails fast without calling fn.
	called := false
	err := cb.Execute(func() error {
		called = true
		return nil
	})
	assert.ErrorIs(t, err, ErrOpen)
	assert.False(t, called)
}

func TestSuccessResetsCount(t *testing.T) {
	cb := New(Settings{FailureLimit: 2, Cooldown: time.Minute})

	require.Error(t, cb.Execute(failing))
	require.NoError(t, cb.Execute(succeeding))
	require.Error(t, cb.Execute(failing))

	assert.Equal(t, StateClosed, cb.State())
}

func TestProbeClosesAfterCooldown(t *testing.T) {
	cb := New(Settings{FailureLimit: 1, Cooldown: 10 * time.Millisecond})

	require.Error(t, cb.Execute(failing))
	require.Equal(t, StateOpen, cb.State())

	time.Sleep(20 * time.Millisecond)
	require.NoError(t, cb.Execute(succeeding))
	assert.Equal(t, StateClosed, cb.State())
}

func TestFailedProbeReopens(t *testing.T) {
	cb := New(Settings{FailureLimit: 1, Cooldown: 10 * time.Millisecond})

	require.Error(t, cb.Execute(failing))
	time.Sleep(20 * time.Millisecond)
	require.Error(t, cb.Execute(failing))

	assert.Equal(t, StateOpen, cb.State())
}
