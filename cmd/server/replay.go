package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"

	"github.com/GriffinCanCode/AgentOS/desktop/internal/domain/overlay"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/domain/shell"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/infrastructure/config"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/infrastructure/server"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/providers/theme"
)

// replayEpoch is the frozen clock replays run under, so window ids are stable
var replayEpoch = time.UnixMilli(1700000000000)

// Script is a recorded sequence of shell events
type Script struct {
	Theme  *theme.Palette `yaml:"theme"`
	Events []shell.Event  `yaml:"events"`
}

type replayOptions struct {
	JSON bool
}

func addReplay(topLevel *cobra.Command) {
	o := &replayOptions{}

	cmd := &cobra.Command{
		Use:   "replay FILE",
		Short: "Run a YAML event script against a fresh desktop and print the result.",
		Long: `Run a YAML event script against a fresh desktop and print the result.

The boot sequence is skipped and the clock is frozen, so window ids are
deterministic. A window id of "$N" refers to the Nth window the script opened.`,
		Example: `
server replay drag.yaml
server replay --json scenario.yaml
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			script, err := loadScript(args[0])
			if err != nil {
				return err
			}
			snap, err := replay(config.LoadOrDefault(), script)
			if err != nil {
				return err
			}
			if o.JSON {
				return printJSON(cmd.OutOrStdout(), snap)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), render(snap, len(script.Events)))
			return err
		},
	}

	cmd.Flags().BoolVar(&o.JSON, "json", false, "print the final snapshot as JSON")

	topLevel.AddCommand(cmd)
}

func loadScript(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read script: %w", err)
	}
	var s Script
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to parse script %s: %w", path, err)
	}
	return &s, nil
}

func replay(cfg *config.Config, script *Script) (shell.Snapshot, error) {
	cat, err := server.LoadCatalog(cfg)
	if err != nil {
		return shell.Snapshot{}, err
	}

	opts := server.ShellOptions(cfg, cat)
	opts.SessionID = "replay"
	opts.SkipBoot = true
	opts.Clock = func() time.Time { return replayEpoch }
	if script.Theme != nil {
		opts.Palette = script.Theme.WithFallback()
	}

	sh := shell.New(opts)
	defer sh.Close()

	var opened []string
	for i, raw := range script.Events {
		ev, err := resolveRefs(raw, opened)
		if err != nil {
			return shell.Snapshot{}, fmt.Errorf("event %d (%s): %w", i+1, ev.Type, err)
		}
		res, err := sh.Dispatch(ev)
		if err != nil {
			return shell.Snapshot{}, fmt.Errorf("event %d (%s): %w", i+1, ev.Type, err)
		}
		if res.WindowID != "" && !contains(opened, res.WindowID) {
			opened = append(opened, res.WindowID)
		}
	}
	return sh.Snapshot(), nil
}

// resolveRefs replaces "$N" window references with opened window ids
func resolveRefs(ev shell.Event, opened []string) (shell.Event, error) {
	var err error
	if ev.WindowID, err = resolveRef(ev.WindowID, opened); err != nil {
		return ev, err
	}
	if ev.Target.ID, err = resolveRef(ev.Target.ID, opened); err != nil {
		return ev, err
	}
	return ev, nil
}

func resolveRef(s string, opened []string) (string, error) {
	ref, ok := strings.CutPrefix(s, "$")
	if !ok {
		return s, nil
	}
	n, err := strconv.Atoi(ref)
	if err != nil || n < 1 || n > len(opened) {
		return s, fmt.Errorf("window reference %s does not name one of %d opened windows", s, len(opened))
	}
	return opened[n-1], nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func printJSON(w io.Writer, snap shell.Snapshot) error {
	data, err := sonic.ConfigStd.MarshalIndent(snap, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

var (
	labelStyle  = lipgloss.NewStyle().Bold(true)
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	dimStyle    = lipgloss.NewStyle().Faint(true).Padding(0, 1)
)

func render(snap shell.Snapshot, events int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s  %s %d  %s %s\n",
		labelStyle.Render("Phase:"), snap.Phase,
		labelStyle.Render("Events:"), events,
		labelStyle.Render("Overlay:"), describeOverlay(snap.Overlay))

	rows := make([][]string, 0, len(snap.Windows)+len(snap.Minimized))
	for _, w := range snap.Windows {
		state := "open"
		if w.Dragging {
			state = "dragging"
		}
		rows = append(rows, windowRow(w, state))
	}
	firstMinimized := len(rows)
	for _, w := range snap.Minimized {
		rows = append(rows, windowRow(w, "minimized"))
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		Headers("Z", "Window", "App", "Position", "Size", "State").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case row >= firstMinimized:
				return dimStyle
			default:
				return cellStyle
			}
		})

	b.WriteString(t.Render())
	return b.String()
}

func windowRow(w shell.WindowView, state string) []string {
	return []string{
		strconv.Itoa(w.ZIndex),
		w.ID,
		w.Title,
		fmt.Sprintf("%d,%d", w.Position.X, w.Position.Y),
		fmt.Sprintf("%dx%d", w.Size.Width, w.Size.Height),
		state,
	}
}

func describeOverlay(o shell.OverlayView) string {
	name := o.Kind.String()
	switch o.Kind {
	case overlay.KindTopMenu:
		return fmt.Sprintf("%s (%s)", name, o.Menu)
	case overlay.KindSpotlight:
		if o.Query != "" {
			return fmt.Sprintf("%s (query %q)", name, o.Query)
		}
	case overlay.KindContextMenu:
		if o.ItemID != "" {
			return fmt.Sprintf("%s (%s)", name, o.ItemID)
		}
		return fmt.Sprintf("%s (desktop)", name)
	}
	return name
}
