// Package id provides ID generation for the desktop service.
//
// Session ids are prefixed ULIDs (sess_*), so they sort by creation time and
// read well in logs. WebSocket connection ids are random UUIDs.
package id

import (
	"crypto/rand"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
)

// SessionID identifies a shell session
type SessionID string

// ConnectionID identifies a WebSocket connection
type ConnectionID string

const (
	SessionPrefix    = "sess"
	ConnectionPrefix = "conn"
)

// Generator generates monotonic ULIDs
type Generator struct {
	mu      sync.Mutex
	entropy io.Reader
	now     func() time.Time
}

var (
	defaultGenerator *Generator
	once             sync.Once
)

// Default returns the process-wide generator
func Default() *Generator {
	once.Do(func() {
		defaultGenerator = NewGenerator()
	})
	return defaultGenerator
}

// NewGenerator creates a generator backed by crypto/rand
func NewGenerator() *Generator {
	return NewGeneratorWithEntropy(rand.Reader, time.Now)
}

// NewGeneratorWithEntropy creates a generator with a custom entropy source
// and clock, for deterministic tests
func NewGeneratorWithEntropy(entropy io.Reader, now func() time.Time) *Generator {
	return &Generator{
		entropy: ulid.Monotonic(entropy, 0),
		now:     now,
	}
}

// Generate creates a new ULID; ids within one millisecond still increase
func (g *Generator) Generate() ulid.ULID {
	g.mu.Lock()
	defer g.mu.Unlock()

	return ulid.MustNew(ulid.Timestamp(g.now()), g.entropy)
}

// GenerateWithPrefix creates a prefixed ULID string
func (g *Generator) GenerateWithPrefix(prefix string) string {
	return fmt.Sprintf("%s_%s", prefix, g.Generate().String())
}

// NewSessionID generates a new session ID
func NewSessionID() SessionID {
	return SessionID(Default().GenerateWithPrefix(SessionPrefix))
}

// NewConnectionID generates a new connection ID
func NewConnectionID() ConnectionID {
	return ConnectionID(fmt.Sprintf("%s_%s", ConnectionPrefix, uuid.NewString()))
}

func (id SessionID) String() string    { return string(id) }
func (id ConnectionID) String() string { return string(id) }

// Timestamp returns the creation time encoded in a session id
func (id SessionID) Timestamp() (time.Time, error) {
	u, err := ParseSessionID(string(id))
	if err != nil {
		return time.Time{}, err
	}
	return ulid.Time(u.Time()), nil
}

// ParseSessionID validates a sess_<ulid> string
func ParseSessionID(s string) (ulid.ULID, error) {
	raw, ok := strings.CutPrefix(s, SessionPrefix+"_")
	if !ok {
		return ulid.ULID{}, fmt.Errorf("invalid session id %q: missing %s_ prefix", s, SessionPrefix)
	}
	u, err := ulid.ParseStrict(raw)
	if err != nil {
		return ulid.ULID{}, fmt.Errorf("invalid session id %q: %w", s, err)
	}
	return u, nil
}

// IsValidSessionID reports whether s is a well-formed session id
func IsValidSessionID(s string) bool {
	_, err := ParseSessionID(s)
	return err == nil
}
