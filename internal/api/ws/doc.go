// Package ws streams shell sessions to browsers over WebSocket.
//
// A client connects to /sessions/:id/stream and receives a "system" frame
// carrying its connection id followed by a "snapshot" frame for every state
// change. Clients send:
//
//	{"type":"event","event":{"type":"pointer.down","x":10,"y":40}}
//	{"type":"snapshot"}
//	{"type":"ping"}
//
// Events are answered with a "result" frame, bad input with an "error"
// frame. Snapshot delivery keeps only the latest state for slow readers.
// The connection closes normally when the session ends.
package ws
