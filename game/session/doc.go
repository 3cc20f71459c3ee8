// Package session provides in-memory session management for the solitaire game.
//
// The session package implements:
//   - Thread-safe session storage and retrieval
//   - Unique 4-character session ID generation
//   - Seeded deals so a session can be replayed
//   - Expiry of idle sessions
//
// Core Types:
//
// Manager is the session manager behind service.SessionManager. Each
// service.Session owns a dealt engine.Board and the engine.Controller
// driving it, plus creation and last access times.
//
// Session Identifiers:
//
// Sessions use 4-character hex IDs generated from crypto/rand. Lookups are
// case-insensitive.
//
// Usage:
//
//	manager := session.NewManager()
//
//	sess, err := manager.Create("", config, 0)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	sess, err = manager.Get(sessionID)
//
//	// drop sessions idle for an hour
//	removed := manager.CleanupExpiredSessions(time.Hour)
package session
