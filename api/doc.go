// Package api provides the HTTP REST API for the Klondike solitaire server.
//
// Endpoints:
//
// Sessions:
//   - POST /api/sessions - Create a session, optional {"config_id": "klondike-draw-three"}
//   - GET /api/sessions - List sessions (?sort=created|accessed&order=asc|desc&limit=n)
//   - GET /api/sessions/{id} - Get a session with its game state
//   - DELETE /api/sessions/{id} - End a session
//
// Game:
//   - GET /api/sessions/{id}/state - Board snapshot as JSON
//   - GET /api/sessions/{id}/board - Board as plain text
//   - GET /api/sessions/{id}/moves - Legal moves right now
//   - GET /api/sessions/{id}/history - Move history (?page=1&limit=20&order=desc)
//   - POST /api/sessions/{id}/deal - Deal from the stock, recycling the waste when empty
//   - POST /api/sessions/{id}/move - Move cards, {"from": "t2", "to": "t5", "size": 1}
//   - POST /api/sessions/{id}/command - Run a console command, {"input": "m w h"}
//   - POST /api/sessions/{id}/reset - Deal a fresh board
//
// Configuration:
//   - GET /api/configs - List available configurations
//   - GET /api/configs/{name} - Get one configuration
//
// Live updates:
//   - GET /ws?session={id} - WebSocket stream of state updates and game events
//
// Locations in move requests use the console forms: "w" for the waste, a suit
// name or initial for a foundation, "f" for whichever foundation fits, and
// "t1".."t7" for the tableaus. A rejected move is not an HTTP error; the
// response carries success=false and the game message.
//
// Errors are returned as {"error": "..."} with 404 for unknown sessions and
// configs, 400 for malformed requests and 500 otherwise.
package api
