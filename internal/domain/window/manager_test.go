package window

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/AgentOS/desktop/internal/domain/content"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/shared/types"
)

type stubApps map[string]App

func (s stubApps) ResolveApp(id string) App {
	if app, ok := s[id]; ok {
		return app
	}
	return App{Title: id}
}

var testApps = stubApps{
	"chat":     {Title: "Chat", Icon: "💬", Content: content.TypeChat, Size: types.Size{Width: 720, Height: 520}},
	"personas": {Title: "Personas", Icon: "🎭", Content: content.TypePersonas, Size: types.Size{Width: 640, Height: 480}},
}

func frozenClock() func() time.Time {
	t := time.UnixMilli(1_700_000_000_000)
	return func() time.Time { return t }
}

func newTestManager() *Manager {
	return NewManager(DefaultLayout(), testApps).WithClock(frozenClock())
}

func TestCascadeScenario(t *testing.T) {
	m := newTestManager()

	chat1 := m.Open("chat")
	personas := m.Open("personas")
	chat2 := m.Open("chat")

	require.Equal(t, 3, m.Len())
	assert.Equal(t, types.Point{X: 100, Y: 100}, chat1.Position)
	assert.Equal(t, types.Point{X: 130, Y: 130}, personas.Position)
	assert.Equal(t, types.Point{X: 160, Y: 160}, chat2.Position)

	assert.Equal(t, 101, chat1.ZIndex)
	assert.Equal(t, 102, personas.ZIndex)
	assert.Equal(t, 103, chat2.ZIndex)

	require.True(t, m.BringToFront(chat1.ID))
	got, _ := m.Get(chat1.ID)
	assert.Equal(t, 104, got.ZIndex)

	top, ok := m.Topmost()
	require.True(t, ok)
	assert.Equal(t, chat1.ID, top.ID)
}

func TestOpenSameAppTwice(t *testing.T) {
	m := newTestManager()

	a := m.Open("chat")
	b := m.Open("chat")

	assert.NotEqual(t, a.ID, b.ID)
	assert.NotEqual(t, a.Position, b.Position)
	assert.Equal(t, "chat-1700000000000", a.ID)
	assert.Equal(t, "chat-1700000000001", b.ID)
	assert.Equal(t, "Chat", b.Title)
	assert.Equal(t, content.TypeChat, b.ContentType)
}

func TestOpenUnknownApp(t *testing.T) {
	m := newTestManager()

	w := m.Open("mystery")
	assert.Equal(t, "mystery", w.Title)
	assert.Equal(t, content.Type(""), w.ContentType)
}

func TestCloseIsIdempotent(t *testing.T) {
	m := newTestManager()

	a := m.Open("chat")
	b := m.Open("personas")

	assert.True(t, m.Close(a.ID))
	assert.False(t, m.Close(a.ID))
	assert.False(t, m.Close("nope"))

	_, ok := m.Get(a.ID)
	assert.False(t, ok)
	require.Len(t, m.PaintOrder(), 1)
	assert.Equal(t, b.ID, m.PaintOrder()[0].ID)
}

func TestZIndexNeverReused(t *testing.T) {
	m := newTestManager()

	a := m.Open("chat")
	b := m.Open("chat")
	m.Close(b.ID)

	c := m.Open("chat")
	assert.Greater(t, c.ZIndex, b.ZIndex)
	assert.Greater(t, c.ZIndex, a.ZIndex)
}

func TestMinimizeThenBringToFront(t *testing.T) {
	m := newTestManager()

	a := m.Open("chat")
	b := m.Open("personas")

	require.True(t, m.Minimize(a.ID))
	require.True(t, m.BringToFront(a.ID))

	order := m.PaintOrder()
	require.Len(t, order, 1)
	assert.Equal(t, b.ID, order[0].ID)

	got, _ := m.Get(a.ID)
	assert.True(t, got.IsMinimized)
	assert.Equal(t, a.Position, got.Position)
	assert.Equal(t, a.Size, got.Size)

	require.True(t, m.Restore(a.ID))
	order = m.PaintOrder()
	require.Len(t, order, 2)
	assert.Equal(t, a.ID, order[1].ID)
}

func TestFocusRestoresMinimized(t *testing.T) {
	m := newTestManager()

	a := m.Open("chat")
	m.Open("personas")
	m.Minimize(a.ID)

	assert.Len(t, m.Minimized(), 1)
	require.True(t, m.Focus(a.ID))
	assert.Empty(t, m.Minimized())

	top, _ := m.Topmost()
	assert.Equal(t, a.ID, top.ID)
}

func TestUnknownIDsAreNoOps(t *testing.T) {
	m := newTestManager()
	m.Open("chat")
	before := m.List()

	assert.False(t, m.Minimize("x"))
	assert.False(t, m.Restore("x"))
	assert.False(t, m.BringToFront("x"))
	assert.False(t, m.Focus("x"))
	assert.False(t, m.Move("x", types.Point{}))

	assert.Equal(t, before, m.List())
}

func TestMostRecentlyFocusedWins(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	m := newTestManager()

	for i := 0; i < 6; i++ {
		m.Open("chat")
	}

	for step := 0; step < 200; step++ {
		windows := m.List()
		target := windows[rng.Intn(len(windows))]
		require.True(t, m.BringToFront(target.ID))

		seen := map[int]bool{}
		focused, _ := m.Get(target.ID)
		for _, w := range m.List() {
			assert.False(t, seen[w.ZIndex], "duplicate z-index %d", w.ZIndex)
			seen[w.ZIndex] = true
			if w.ID != target.ID {
				assert.Greater(t, focused.ZIndex, w.ZIndex)
			}
		}
	}
}

func TestPaintOrderAscending(t *testing.T) {
	m := newTestManager()
	a := m.Open("chat")
	b := m.Open("chat")
	c := m.Open("chat")

	m.BringToFront(a.ID)
	m.BringToFront(b.ID)

	var ids []string
	for _, w := range m.PaintOrder() {
		ids = append(ids, w.ID)
	}
	assert.Equal(t, []string{c.ID, a.ID, b.ID}, ids)
}
