package id

import (
	"bytes"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"
)

func TestGenerateUnique(t *testing.T) {
	gen := NewGenerator()

	id1 := gen.Generate()
	id2 := gen.Generate()

	if id1.String() == id2.String() {
		t.Error("Generated IDs should be unique")
	}
}

func TestGenerateMonotonicWithinMillisecond(t *testing.T) {
	frozen := time.UnixMilli(1700000000000)
	gen := NewGeneratorWithEntropy(bytes.NewReader(bytes.Repeat([]byte{7}, 4096)), func() time.Time { return frozen })

	var ids []string
	for i := 0; i < 100; i++ {
		ids = append(ids, gen.Generate().String())
	}

	if !sort.StringsAreSorted(ids) {
		t.Error("IDs from one millisecond should sort in generation order")
	}
}

func TestNewSessionID(t *testing.T) {
	sid := NewSessionID()

	if !strings.HasPrefix(sid.String(), "sess_") {
		t.Errorf("Session ID should start with 'sess_', got: %s", sid)
	}
	if !IsValidSessionID(sid.String()) {
		t.Errorf("Session ID should parse: %s", sid)
	}

	ts, err := sid.Timestamp()
	if err != nil {
		t.Fatalf("Timestamp failed: %v", err)
	}
	if time.Since(ts) > time.Minute {
		t.Errorf("Timestamp too old: %v", ts)
	}
}

func TestParseSessionIDRejects(t *testing.T) {
	tests := []string{
		"",
		"01HF8ZJ3Q5GZ7T8Y6X9W4V2K1M",
		"app_01HF8ZJ3Q5GZ7T8Y6X9W4V2K1M",
		"sess_not-a-ulid",
	}

	for _, s := range tests {
		if IsValidSessionID(s) {
			t.Errorf("IsValidSessionID(%q) = true, want false", s)
		}
	}
}

func TestNewConnectionID(t *testing.T) {
	a, b := NewConnectionID(), NewConnectionID()

	if !strings.HasPrefix(a.String(), "conn_") {
		t.Errorf("Connection ID should start with 'conn_', got: %s", a)
	}
	if a == b {
		t.Error("Connection IDs should be unique")
	}
}

func TestConcurrentGeneration(t *testing.T) {
	gen := NewGenerator()
	const goroutines, perG = 8, 200

	var mu sync.Mutex
	seen := make(map[string]bool)
	var wg sync.WaitGroup

	for g := 0; g < goroutines; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perG; i++ {
				s := gen.GenerateWithPrefix(SessionPrefix)
				mu.Lock()
				seen[s] = true
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if len(seen) != goroutines*perG {
		t.Errorf("expected %d unique IDs, got %d", goroutines*perG, len(seen))
	}
}
