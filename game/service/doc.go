// Package service provides the business logic layer for the solitaire game.
//
// The service package implements:
//   - Multi-session game management
//   - Deterministic, replayable deals keyed by seed
//   - Logical moves between zones, drawing and recycling
//   - Pointer sample forwarding to each session's controller
//
// Core Interfaces:
//
// GameService is the main service interface used by every transport.
// SessionManager handles session creation, retrieval, and lifecycle.
// ConfigManager loads named table layouts.
//
// Architecture:
//
// The service layer sits between the transport layer (HTTP/WebSocket/MCP) and
// the engine. Each session owns one Board and the Controller driving it;
// the service serializes access so a board is never mutated concurrently.
//
// Usage:
//
//	sessionMgr := session.NewManager()
//	configMgr, _ := config.NewManager("configs")
//	gameService := service.NewGameService(sessionMgr, configMgr)
//
//	info, err := gameService.CreateSession(ctx, "classic", 0)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	result, err := gameService.Move(ctx, info.ID, engine.WasteZone(), engine.LaneZone(3))
//
// A move the rules reject is not an error: the result reports Success
// false and the card is back where it started. Errors are reserved for
// unknown sessions (ErrSessionNotFound from the session package), zones
// that cannot take part in a move (ErrInvalidMove) and logical operations
// attempted while the pointer holds a card (ErrHandBusy).
package service
