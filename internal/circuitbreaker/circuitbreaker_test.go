//go:build !integration

package circuitbreaker

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errBackend = errors.New("backend down")

func fail() error    { return errBackend }
func succeed() error { return nil }

func tripped(t *testing.T, timeout time.Duration) *CircuitBreaker {
	t.Helper()
	cb := New(Config{FailureThreshold: 2, SuccessThreshold: 2, Timeout: timeout, Name: "catalog"})
	_ = cb.Execute(context.Background(), fail)
	_ = cb.Execute(context.Background(), fail)
	require.Equal(t, StateOpen, cb.State())
	return cb
}

func TestCircuitBreaker_Execute(t *testing.T) {
	tests := []struct {
		name      string
		calls     []func() error
		wantErr   error
		wantState State
	}{
		{"success keeps circuit closed", []func() error{succeed}, nil, StateClosed},
		{"single failure below threshold", []func() error{fail}, errBackend, StateClosed},
		{"threshold failures open circuit", []func() error{fail, fail}, errBackend, StateOpen},
		{"success resets failure count", []func() error{fail, succeed, fail}, errBackend, StateClosed},
		{"open circuit rejects calls", []func() error{fail, fail, succeed}, ErrCircuitOpen, StateOpen},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cb := New(Config{FailureThreshold: 2, SuccessThreshold: 1, Timeout: time.Minute, Name: "test"})
			var err error
			for _, fn := range tt.calls {
				err = cb.Execute(context.Background(), fn)
			}
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, tt.wantState, cb.State())
		})
	}
}

func TestCircuitBreaker_Recovery(t *testing.T) {
	cb := tripped(t, 20*time.Millisecond)
	time.Sleep(30 * time.Millisecond)

	require.NoError(t, cb.Execute(context.Background(), succeed))
	assert.Equal(t, StateHalfOpen, cb.State())

	require.NoError(t, cb.Execute(context.Background(), succeed))
	assert.Equal(t, StateClosed, cb.State())
}

func TestCircuitBreaker_HalfOpenFailureReopens(t *testing.T) {
	cb := tripped(t, 20*time.Millisecond)
	time.Sleep(30 * time.Millisecond)

	assert.ErrorIs(t, cb.Execute(context.Background(), fail), errBackend)
	assert.True(t, cb.IsOpen())
}

func TestCircuitBreaker_ContextErrors(t *testing.T) {
	t.Run("cancelled context skips the call", func(t *testing.T) {
		cb := New(DefaultConfig())
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		called := false
		err := cb.Execute(ctx, func() error { called = true; return nil })

		assert.ErrorIs(t, err, context.Canceled)
		assert.False(t, called)
	})

	t.Run("deadline errors do not count as failures", func(t *testing.T) {
		cb := New(Config{FailureThreshold: 1, SuccessThreshold: 1, Timeout: time.Minute})

		err := cb.Execute(context.Background(), func() error {
			return context.DeadlineExceeded
		})

		assert.ErrorIs(t, err, context.DeadlineExceeded)
		assert.Equal(t, StateClosed, cb.State())
		assert.Equal(t, 0, cb.GetStats().FailureCount)
	})
}

func TestCircuitBreaker_OnStateChange(t *testing.T) {
	var seen []State
	cb := New(Config{
		FailureThreshold: 1,
		SuccessThreshold: 1,
		Timeout:          10 * time.Millisecond,
		Name:             "carriers",
		OnStateChange: func(name string, to State) {
			assert.Equal(t, "carriers", name)
			seen = append(seen, to)
		},
	})

	_ = cb.Execute(context.Background(), fail)
	time.Sleep(20 * time.Millisecond)
	_ = cb.Execute(context.Background(), succeed)

	assert.Equal(t, []State{StateOpen, StateHalfOpen, StateClosed}, seen)
}

func TestDo(t *testing.T) {
	cb := New(DefaultConfig())

	n, err := Do(context.Background(), cb, func(context.Context) (int, error) { return 42, nil })
	require.NoError(t, err)
	assert.Equal(t, 42, n)

	_, err = Do(context.Background(), cb, func(context.Context) (string, error) { return "", errBackend })
	assert.ErrorIs(t, err, errBackend)
	assert.Equal(t, 1, cb.GetStats().FailureCount)
}

func TestCircuitBreaker_GetStats(t *testing.T) {
	cb := New(DefaultConfig())

	stats := cb.GetStats()
	assert.Equal(t, "closed", stats.State)
	assert.True(t, stats.IsHealthy)

	cb = tripped(t, time.Minute)
	stats = cb.GetStats()
	assert.Equal(t, "open", stats.State)
	assert.False(t, stats.IsHealthy)
	assert.False(t, stats.LastFailure.IsZero())
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "half-open", StateHalfOpen.String())
	assert.Equal(t, "unknown", State(9).String())
}

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()
	assert.Equal(t, 5, config.FailureThreshold)
	assert.Equal(t, 2, config.SuccessThreshold)
	assert.Equal(t, 30*time.Second, config.Timeout)
	assert.Equal(t, "circuit-breaker", config.Name)
}
