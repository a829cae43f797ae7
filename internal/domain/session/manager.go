package session

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/GriffinCanCode/AgentOS/desktop/internal/domain/shell"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/infrastructure/logging"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/providers/theme"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/shared/id"
	"go.uber.org/zap"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrTooManySessions = errors.New("session limit reached")
)

// PaletteSource resolves a persona's accent colors; it must not fail
type PaletteSource interface {
	Palette(ctx context.Context, personaID string) theme.Palette
}

// Session is one live desktop
type Session struct {
	ID        string
	PersonaID string
	CreatedAt time.Time
	Shell     *shell.Shell
}

// Info summarizes a session for listings
type Info struct {
	ID        string    `json:"id"`
	PersonaID string    `json:"persona_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	Phase     string    `json:"phase"`
	Windows   int       `json:"windows"`
	Overlay   string    `json:"overlay"`
}

// Info returns the session summary
func (s *Session) Info() Info {
	snap := s.Shell.Snapshot()
	return Info{
		ID:        s.ID,
		PersonaID: s.PersonaID,
		CreatedAt: s.CreatedAt,
		Phase:     snap.Phase,
		Windows:   len(snap.Windows) + len(snap.Minimized),
		Overlay:   snap.Overlay.Kind.String(),
	}
}

// Manager creates and tracks shell sessions
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	template shell.Options
	palettes PaletteSource
	max      int
	logger   *logging.Logger
	metrics  *monitoring.Metrics
	newID    func() string
	now      func() time.Time
}

// NewManager creates a manager. template supplies every shell option except
// the session id, palette and logger, which are set per session.
func NewManager(template shell.Options, palettes PaletteSource, logger *logging.Logger) *Manager {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Manager{
		sessions: make(map[string]*Session),
		template: template,
		palettes: palettes,
		logger:   logger,
		newID:    func() string { return id.NewSessionID().String() },
		now:      time.Now,
	}
}

// WithMetrics attaches a metrics collector to the manager and its shells
func (m *Manager) WithMetrics(metrics *monitoring.Metrics) *Manager {
	m.metrics = metrics
	m.template.Metrics = metrics
	return m
}

// WithLimit caps concurrent sessions; zero means unlimited
func (m *Manager) WithLimit(max int) *Manager {
	m.max = max
	return m
}

// Create starts a new session themed for personaID
func (m *Manager) Create(ctx context.Context, personaID string) (*Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.RLock()
	full := m.max > 0 && len(m.sessions) >= m.max
	m.mu.RUnlock()
	if full {
		return nil, ErrTooManySessions
	}

	// resolved outside the lock, the persona store may be slow
	palette := theme.Default()
	if m.palettes != nil {
		palette = m.palettes.Palette(ctx, personaID)
	}

	sid := m.newID()
	opts := m.template
	opts.SessionID = sid
	opts.Palette = palette
	opts.Logger = m.logger.Session(sid)

	sess := &Session{
		ID:        sid,
		PersonaID: personaID,
		CreatedAt: m.now(),
		Shell:     shell.New(opts),
	}

	m.mu.Lock()
	if m.max > 0 && len(m.sessions) >= m.max {
		m.mu.Unlock()
		sess.Shell.Close()
		return nil, ErrTooManySessions
	}
	m.sessions[sid] = sess
	count := len(m.sessions)
	m.mu.Unlock()

	m.setActive(count)
	m.logger.Info("Session created",
		zap.String("session_id", sid),
		zap.String("persona_id", personaID))
	return sess, nil
}

// Get retrieves a session by id
func (m *Manager) Get(id string) (*Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, ok := m.sessions[id]
	return s, ok
}

// List returns summaries ordered by creation
func (m *Manager) List() []Info {
	m.mu.RLock()
	sessions := make([]*Session, 0, len(m.sessions))
	for _, s := range m.sessions {
		sessions = append(sessions, s)
	}
	m.mu.RUnlock()

	sort.Slice(sessions, func(i, j int) bool {
		if !sessions[i].CreatedAt.Equal(sessions[j].CreatedAt) {
			return sessions[i].CreatedAt.Before(sessions[j].CreatedAt)
		}
		return sessions[i].ID < sessions[j].ID
	})

	out := make([]Info, len(sessions))
	for i, s := range sessions {
		out[i] = s.Info()
	}
	return out
}

// End closes a session. Unknown ids are a no-op.
func (m *Manager) End(id string) bool {
	m.mu.Lock()
	s, ok := m.sessions[id]
	if ok {
		delete(m.sessions, id)
	}
	count := len(m.sessions)
	m.mu.Unlock()

	if !ok {
		return false
	}

	windows := s.Shell.Close()
	m.setActive(count)
	m.logger.Info("Session ended",
		zap.String("session_id", id),
		zap.Int("windows", windows))
	return true
}

// Len returns the number of live sessions
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Close ends every session
func (m *Manager) Close() {
	m.mu.Lock()
	sessions := m.sessions
	m.sessions = make(map[string]*Session)
	m.mu.Unlock()

	for _, s := range sessions {
		s.Shell.Close()
	}
	m.setActive(0)
}

func (m *Manager) setActive(n int) {
	if m.metrics != nil {
		m.metrics.SetSessionsActive(n)
	}
}
