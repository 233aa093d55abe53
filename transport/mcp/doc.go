// Package mcp exposes Klondike to AI agents over the Model Context Protocol.
//
// The Client is a thin proxy: every tool call becomes a request against the
// REST API, and the JSON reply is turned into plain text an agent can read.
// Face-down cards print as "##", face-up ones by code ("QH", "10S").
//
// MCP Tools:
//   - create_session, list_sessions, get_session, list_configs
//   - game_state: board with every visible card
//   - deal: deal from the stock or turn the waste over
//   - move: from/to/size move, e.g. from "t2" to "t5" size 3
//   - command: a console command line, e.g. "m w h"
//   - possible_moves: the legal moves as commands
//   - reset_game: deal a fresh game in the same session
//   - move_history: paginated history
//   - game_instructions: rules and pile names
//
// Usage:
//
//	client := mcp.NewClient("http://localhost:8080")
//
//	// Stdio mode
//	server.ServeStdio(client.GetMCPServer())
//
//	// HTTP mode
//	response := client.GetMCPServer().HandleMessage(ctx, body)
package mcp
