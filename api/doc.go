// Package api provides HTTP REST API handlers for the solitaire game.
//
// The api package implements:
//   - Session management endpoints
//   - Draw, recycle and logical move endpoints
//   - A pointer endpoint that feeds samples to the session's controller
//   - Layout configuration listing
//   - WebSocket upgrade handling
//
// Endpoints:
//
// Session Management:
//   - POST /api/sessions - Create a session ({"config_id":"classic","seed":42}, both optional)
//   - GET /api/sessions - List sessions (?sort=created|accessed&order=asc|desc&limit=n)
//   - GET /api/sessions/{id} - Get a session
//   - DELETE /api/sessions/{id} - Delete a session
//
// Game Operations:
//   - GET /api/sessions/{id}/state - Board snapshot
//   - POST /api/sessions/{id}/draw - Turn the top deck card onto the waste
//   - POST /api/sessions/{id}/recycle - Turn the waste back into an empty deck
//   - POST /api/sessions/{id}/move - {"from":"waste","to":"lane:3"}
//   - POST /api/sessions/{id}/pointer - {"x":430,"y":30,"pressed":true,"down":true}
//
// Configuration:
//   - GET /api/configs - List layouts
//   - GET /api/configs/{name} - Get a layout
//
// Every successful game operation is broadcast to the session's WebSocket
// clients (GET /ws?session={id}) as a state_update message.
//
// Error Handling:
//
// Errors are returned as JSON with the HTTP status code:
//
//	{
//	  "error": "invalid move: deck has no face-up card",
//	  "code": 400
//	}
//
// Unknown sessions and layouts are 404, unusable zones 400, operations
// attempted mid-drag 409 and invalid layout files 422. A move the rules
// reject is a 200 whose body has "success": false.
package api
