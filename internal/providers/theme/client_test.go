package theme

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/GriffinCanCode/AgentOS/desktop/internal/infrastructure/resilience"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/infrastructure/tracing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type statusRecorder struct {
	mu       sync.Mutex
	statuses []string
}

func (r *statusRecorder) record(status string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.statuses = append(r.statuses, status)
}

func (r *statusRecorder) last() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.statuses) == 0 {
		return ""
	}
	return r.statuses[len(r.statuses)-1]
}

func personaStore(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/personas/coral/colors", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"primary":"#ff7f50","secondary":"#ffb199"}`))
	})
	mux.HandleFunc("/personas/half/colors", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"primary":"#123"}`))
	})
	mux.HandleFunc("/personas/broken/colors", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"primary":"red","secondary":"#fff"}`))
	})
	mux.HandleFunc("/personas/down/colors", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestPaletteBackground(t *testing.T) {
	assert.Equal(t, "linear-gradient(135deg, #6366f1, #a855f7)", Default().Background())
	assert.Equal(t, "linear-gradient(135deg, #000, #a855f7)", Palette{Primary: "#000"}.Background())
}

func TestClientPalette(t *testing.T) {
	srv := personaStore(t)

	tests := []struct {
		persona string
		want    Palette
		status  string
	}{
		{"coral", Palette{Primary: "#ff7f50", Secondary: "#ffb199"}, StatusOK},
		{"half", Palette{Primary: "#123", Secondary: DefaultSecondary}, StatusOK},
		{"broken", Palette{Primary: "red", Secondary: "#fff"}, StatusOK},
		{"ghost", Default(), StatusNotFound},
		{"down", Default(), StatusError},
		{"", Default(), StatusDefault},
	}

	for _, tt := range tests {
		t.Run(tt.persona, func(t *testing.T) {
			rec := &statusRecorder{}
			client := NewClient(Options{BaseURL: srv.URL, OnFetch: rec.record})

			got := client.Palette(context.Background(), tt.persona)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.status, rec.last())
		})
	}
}

func TestClientFetchNotFound(t *testing.T) {
	srv := personaStore(t)
	client := NewClient(Options{BaseURL: srv.URL})

	_, err := client.Fetch(context.Background(), "ghost")
	assert.ErrorIs(t, err, ErrPersonaNotFound)
	assert.Equal(t, resilience.StateClosed, client.Breaker().State())
}

func TestClientDisabled(t *testing.T) {
	rec := &statusRecorder{}
	client := NewClient(Options{OnFetch: rec.record})

	assert.Equal(t, Default(), client.Palette(context.Background(), "coral"))
	assert.Equal(t, StatusDefault, rec.last())
}

func TestClientRetriesServerErrors(t *testing.T) {
	var mu sync.Mutex
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		calls++
		n := calls
		mu.Unlock()
		if n < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"primary":"#111111","secondary":"#222222"}`))
	}))
	defer srv.Close()

	client := NewClient(Options{BaseURL: srv.URL, Retries: 2, RetryWait: time.Millisecond})

	p, err := client.Fetch(context.Background(), "any")
	require.NoError(t, err)
	assert.Equal(t, Palette{Primary: "#111111", Secondary: "#222222"}, p)
	assert.Equal(t, 3, calls)
}

func TestClientPropagatesTrace(t *testing.T) {
	got := make(chan string, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got <- r.Header.Get(tracing.HeaderTraceID)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"primary":"#111111","secondary":"#222222"}`))
	}))
	defer srv.Close()

	tracer := tracing.New("test", nil)
	defer tracer.Close()
	span, ctx := tracer.StartSpan(context.Background(), "create session")

	client := NewClient(Options{BaseURL: srv.URL})
	_, err := client.Fetch(ctx, "any")
	require.NoError(t, err)
	assert.Equal(t, string(span.TraceID), <-got)
}

func TestClientBreakerOpens(t *testing.T) {
	srv := personaStore(t)
	rec := &statusRecorder{}
	breaker := resilience.New("persona-store", resilience.Settings{
		Timeout: time.Minute,
		ReadyToTrip: func(counts resilience.Counts) bool {
			return counts.ConsecutiveFailures >= 2
		},
	})
	client := NewClient(Options{BaseURL: srv.URL, Breaker: breaker, OnFetch: rec.record})

	client.Palette(context.Background(), "down")
	client.Palette(context.Background(), "down")
	require.Equal(t, resilience.StateOpen, breaker.State())

	// healthy persona still short-circuits while open
	assert.Equal(t, Default(), client.Palette(context.Background(), "coral"))
	assert.Equal(t, StatusOpen, rec.last())
}
