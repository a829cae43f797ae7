// Package session tracks live desktop sessions.
//
// Each session owns one shell.Shell, themed from the persona store when it
// is created. Sessions live in memory only; ending one closes its shell and
// every subscriber stream attached to it.
//
// Example Usage:
//
//	manager := session.NewManager(shell.Options{SkipBoot: true}, themeClient, logger)
//	sess, err := manager.Create(ctx, "persona-42")
//	res, err := sess.Shell.Dispatch(shell.Event{Type: shell.EventDockOpen, AppID: "chat"})
//	manager.End(sess.ID)
package session
