// Package websocket provides WebSocket transport for the solitaire game.
//
// The websocket package implements:
//   - Session-aware WebSocket connections
//   - Board snapshot broadcasting after each mutation
//   - Connection lifecycle management
//
// Architecture:
//
// A central Hub owns every connection. Registration, removal and fan-out
// run on the hub's Run goroutine; each client has a read pump that keeps
// the connection alive and a write pump that drains its send buffer.
//
// Message Protocol:
//
// The server only writes. Every message is JSON:
//
//	{"session_id":"ab12","event":"state_update","board_state":{...}}
//
// Clients attach with /ws?session=ab12 and receive updates for that
// session only.
//
// Usage:
//
//	hub := websocket.NewHub(logger)
//	go hub.Run(ctx)
//
//	hub.BroadcastToSession(sessionID, state)
package websocket
