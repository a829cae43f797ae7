package resilience

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errUpstream = errors.New("upstream failed")

type fakeClock struct{ now time.Time }

func (c *fakeClock) Now() time.Time { return c.now }
func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func newTestBreaker(clock *fakeClock, trip uint32) *Breaker {
	return New("persona-store", Settings{
		MaxRequests: 1,
		Timeout:     time.Second,
		ReadyToTrip: func(counts Counts) bool {
			return counts.ConsecutiveFailures >= trip
		},
		Now: clock.Now,
	})
}

func fail() (string, error) { return "", errUpstream }
func succeed() (string, error) { return "ok", nil }

func TestBreakerStateTransitions(t *testing.T) {
	tests := []struct {
		name     string
		requests []bool // true = success
		expected State
	}{
		{name: "stays closed on successes", requests: []bool{true, true, true}, expected: StateClosed},
		{name: "opens after consecutive failures", requests: []bool{false, false, false}, expected: StateOpen},
		{name: "success resets the streak", requests: []bool{false, false, true, false, false}, expected: StateClosed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			breaker := newTestBreaker(&fakeClock{now: time.Unix(0, 0)}, 3)

			for _, ok := range tt.requests {
				fn := fail
				if ok {
					fn = succeed
				}
				_, _ = Execute(breaker, fn)
			}

			assert.Equal(t, tt.expected, breaker.State())
		})
	}
}

func TestBreakerCounts(t *testing.T) {
	breaker := newTestBreaker(&fakeClock{now: time.Unix(0, 0)}, 5)

	v, err := Execute(breaker, succeed)
	require.NoError(t, err)
	assert.Equal(t, "ok", v)

	counts := breaker.Counts()
	assert.Equal(t, uint32(1), counts.Requests)
	assert.Equal(t, uint32(1), counts.TotalSuccesses)

	_, err = Execute(breaker, fail)
	assert.ErrorIs(t, err, errUpstream)

	counts = breaker.Counts()
	assert.Equal(t, uint32(2), counts.Requests)
	assert.Equal(t, uint32(1), counts.TotalFailures)
	assert.Equal(t, uint32(1), counts.ConsecutiveFailures)
	assert.Equal(t, uint32(0), counts.ConsecutiveSuccesses)
}

func TestBreakerOpenRejects(t *testing.T) {
	breaker := newTestBreaker(&fakeClock{now: time.Unix(0, 0)}, 2)

	_, _ = Execute(breaker, fail)
	_, _ = Execute(breaker, fail)
	require.Equal(t, StateOpen, breaker.State())

	called := false
	err := breaker.Do(func() error {
		called = true
		return nil
	})
	assert.ErrorIs(t, err, ErrCircuitOpen)
	assert.False(t, called)
}

func TestBreakerHalfOpenRecovery(t *testing.T) {
	clock := &fakeClock{now: time.Unix(0, 0)}
	breaker := newTestBreaker(clock, 2)

	_, _ = Execute(breaker, fail)
	_, _ = Execute(breaker, fail)
	require.Equal(t, StateOpen, breaker.State())

	clock.Advance(2 * time.Second)
	assert.Equal(t, StateHalfOpen, breaker.State())

	_, err := Execute(breaker, succeed)
	require.NoError(t, err)
	assert.Equal(t, StateClosed, breaker.State())
}

func TestBreakerHalfOpenFailureReopens(t *testing.T) {
	clock := &fakeClock{now: time.Unix(0, 0)}
	breaker := newTestBreaker(clock, 1)

	_, _ = Execute(breaker, fail)
	clock.Advance(2 * time.Second)
	require.Equal(t, StateHalfOpen, breaker.State())

	_, _ = Execute(breaker, fail)
	assert.Equal(t, StateOpen, breaker.State())
}

func TestBreakerCallbacksAndReset(t *testing.T) {
	clock := &fakeClock{now: time.Unix(0, 0)}
	var transitions []string

	breaker := New("persona-store", Settings{
		Timeout: time.Second,
		ReadyToTrip: func(counts Counts) bool {
			return counts.ConsecutiveFailures >= 1
		},
		OnStateChange: func(_ string, from, to State) {
			transitions = append(transitions, from.String()+"->"+to.String())
		},
		Now: clock.Now,
	})

	_, _ = Execute(breaker, fail)
	clock.Advance(2 * time.Second)
	_ = breaker.State()
	breaker.Reset()

	assert.Equal(t, []string{"closed->open", "open->half-open", "half-open->closed"}, transitions)
	assert.Equal(t, StateClosed, breaker.State())
}

func TestBreakerPanicCountsAsFailure(t *testing.T) {
	breaker := newTestBreaker(&fakeClock{now: time.Unix(0, 0)}, 1)

	assert.Panics(t, func() {
		_ = breaker.Do(func() error { panic("boom") })
	})
	assert.Equal(t, StateOpen, breaker.State())
}
