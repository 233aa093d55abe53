// Package service provides the business logic layer for the Klondike server.
//
// The service package implements:
//   - Multi-session game management
//   - Configuration lookup by config ID
//   - Deals, moves and text commands with event reporting
//   - Move history tracking and pagination
//
// Core Interfaces:
//
// GameService is the main service interface providing high-level game operations.
// SessionManager handles session creation, retrieval, and lifecycle.
// ConfigManager manages game configuration loading and validation.
//
// Architecture:
//
// The service layer sits between the transports (HTTP, WebSocket, MCP) and the
// engine. Each session owns its own engine.Game; the service serializes every
// call that touches a game, so transports never lock anything themselves.
//
// Usage:
//
//	sessionMgr := session.NewManager(logger)
//	configMgr, _ := config.NewManager("configs")
//	gameService := service.NewGameService(sessionMgr, configMgr, logger)
//
//	// Create a new session
//	sessionInfo, err := gameService.CreateSession(ctx, "klondike-draw-three")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// Deal, then play the waste onto tableau 3
//	result, err := gameService.Deal(ctx, sessionInfo.ID)
//	result, err = gameService.Move(ctx, sessionInfo.ID, service.MoveRequest{
//		From: engine.AtWaste(),
//		To:   engine.AtTableau(3),
//	})
//
// Errors:
//
// ErrSessionNotFound, ErrConfigNotFound, ErrInvalidConfig and ErrInvalidCommand
// are wrapped, never replaced, so callers match them with errors.Is.
package service
