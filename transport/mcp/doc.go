// Package mcp exposes the solitaire REST API as Model Context Protocol tools.
//
// The Client is a thin proxy: every tool call becomes one HTTP request
// against the API server and the JSON response is rendered as text an
// agent can read. Cards print as rank plus suit letter ("10H", "QS") and
// face-down cards as "##".
//
// Tools:
//   - create_session: deal a new game, optionally from a layout and seed
//   - list_sessions, get_session: inspect active sessions
//   - board_state: render deck, waste, foundations and lanes
//   - draw_card, recycle_waste: deck operations
//   - move_card: move a top card between zones ("waste", "lane:3", "foundation:1")
//   - list_configs: available table layouts
//   - game_rules: the rules and zone names
//
// Usage:
//
//	client := mcp.NewClient("http://localhost:8080")
//	server.ServeStdio(client.GetMCPServer())
package mcp
