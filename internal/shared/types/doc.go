// Package types provides shared data structures for the desktop shell service.
//
// Core Types:
//   - Point, Size: Window geometry in desktop pixels
//
// Request Types:
//   - CreateSessionRequest: Start a shell session for a persona
//   - OpenWindowRequest: Open an app window
package types
