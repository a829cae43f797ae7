// Package http provides the REST surface of the desktop shell service.
//
// Routes:
//   - GET  /, /health, /stats: Service status and counters
//   - GET  /catalog, /catalog/search?q=: App catalog and Spotlight ranking
//   - POST /sessions, GET /sessions[/:id], DELETE /sessions/:id: Session lifecycle
//   - POST /sessions/:id/events: Dispatch one input event, returns {result, snapshot}
//   - /sessions/:id/windows[/:wid/...]: Window open, focus, minimize, restore, close
//
// Window endpoints answer 409 while the session is still booting and 404
// for unknown windows.
package http
