package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/AgentOS/desktop/internal/domain/content"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/shared/types"
)

func TestDefaultCatalog(t *testing.T) {
	c := Default()

	chat, ok := c.App("chat")
	require.True(t, ok)
	assert.Equal(t, content.TypeChat, chat.Content)

	item, ok := c.Item("welcome")
	require.True(t, ok)
	assert.Equal(t, ItemFile, item.Type)
	assert.Equal(t, "notes", item.Opens)
}

func TestResolveUnknownApp(t *testing.T) {
	app := Default().Resolve("terminal")

	assert.Equal(t, "terminal", app.Title)
	assert.Equal(t, DefaultIcon, app.Icon)
	assert.Equal(t, DefaultWindowSize, app.Size)
	assert.Equal(t, content.Type(""), app.Content)
}

func TestNewReplacesDuplicates(t *testing.T) {
	c := New([]App{
		{ID: "chat", Title: "Chat"},
		{ID: "notes", Title: "Notes"},
		{ID: "chat", Title: "Chat v2"},
	}, nil)

	apps := c.Apps()
	require.Len(t, apps, 2)
	assert.Equal(t, "Chat v2", apps[0].Title)
	assert.Equal(t, "Notes", apps[1].Title)
}

func TestLoadLayersFiles(t *testing.T) {
	dir := t.TempDir()

	yamlDoc := `
apps:
  - id: terminal
    title: "<b>Terminal</b> & Shell"
    icon: ">_"
    size:
      width: 800
      height: 500
desktop:
  - id: readme
    name: README.md
    type: file
    icon: "📄"
    opens: notes
    position:
      x: 120
      y: 60
`
	tomlDoc := `
[[apps]]
id = "chat"
title = "Assistant"
content = "chat"
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.yaml"), []byte(yamlDoc), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "overrides"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "overrides", "b.toml"), []byte(tomlDoc), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ignored.txt"), []byte("nope"), 0o644))

	c, err := Load(dir)
	require.NoError(t, err)

	term, ok := c.App("terminal")
	require.True(t, ok)
	assert.Equal(t, "Terminal & Shell", term.Title)
	assert.Equal(t, types.Size{Width: 800, Height: 500}, term.Size)

	chat, ok := c.App("chat")
	require.True(t, ok)
	assert.Equal(t, "Assistant", chat.Title)

	readme, ok := c.Item("readme")
	require.True(t, ok)
	assert.Equal(t, types.Point{X: 120, Y: 60}, readme.Position)
}

func TestLoadRejectsInvalidEntries(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		wantErr error
	}{
		{"missing app id", "apps:\n  - title: Nameless\n", ErrMissingID},
		{"bad item type", "desktop:\n  - id: x\n    name: X\n    type: link\n", ErrInvalidItemType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.yml"), []byte(tt.doc), 0o644))

			_, err := Load(dir)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestLoadEmptyDir(t *testing.T) {
	c, err := Load("")
	require.NoError(t, err)
	assert.Len(t, c.Apps(), len(Default().Apps()))
}

func TestSearch(t *testing.T) {
	c := Default()

	tests := []struct {
		query string
		want  []string
	}{
		{"", nil},
		{"ch", []string{"chat"}},
		{"NOTE", []string{"notes"}},
		{"base", []string{"knowledge"}},
		{"memroy", []string{"memory"}},
		{"zzzz", nil},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			var got []string
			for _, a := range c.Search(tt.query, 5) {
				got = append(got, a.ID)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSearchLimit(t *testing.T) {
	c := New([]App{{ID: "a1", Title: "App 1"}, {ID: "a2", Title: "App 2"}, {ID: "a3", Title: "App 3"}}, nil)

	assert.Len(t, c.Search("app", 2), 2)
	assert.Len(t, c.Search("app", 0), 3)
}
