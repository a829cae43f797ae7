/*
Package shell composes the desktop session: boot sequencer, window registry,
drag controller, overlay coordinator and content slots.

# Overview

A Shell owns every component for one session and is their only writer.
Front ends send Events; Dispatch validates, routes and applies each one
under the shell mutex and then publishes a Snapshot to subscribers.

# Routing

Pointer-down events are first offered to the overlay coordinator's
outside-click listener, then routed by hit target:

	window titlebar   drag start (raises the window)
	window body       focus
	menubar entry     toggle that entry's overlay
	desktop item      select
	desktop           clear selection

Meta+Space or Ctrl+Space opens Spotlight. Escape closes whichever overlay
is open. Until the boot sequence reaches main, only boot events are
accepted.

# Usage

	s := shell.New(shell.Options{SessionID: id, Palette: palette})
	defer s.Close()

	updates, unsubscribe := s.Subscribe()
	defer unsubscribe()

	res, err := s.Dispatch(shell.Event{Type: shell.EventDockOpen, AppID: "chat"})
*/
package shell
