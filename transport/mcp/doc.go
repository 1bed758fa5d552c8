// Package mcp provides the Model Context Protocol surface for the
// naval game server.
//
// The mcp package implements:
//   - MCP server for AI agent integration
//   - Tool definitions proxying the REST API
//   - Text rendering of boards and match snapshots
//
// MCP Tools:
//
// The package exposes the following tools for AI agents:
//   - create_match: Start a match against the scripted opponent
//   - match_state: Get a match snapshot with grid visualization
//   - place_fleet: Place the fleet (random or explicit layout)
//   - fire_shot: Fire at one coordinate
//   - list_matches: List registered matches
//   - list_fleets: Browse the historical fleet catalog
//   - game_instructions: Full rules reference
//
// Architecture:
//
// The client is deliberately thin: every tool call becomes an HTTP
// request to the REST server, so the MCP surface and any other client
// observe identical state and redaction rules. Board snapshots arrive
// already redacted for the requesting seat.
//
// Usage:
//
//	client := mcp.NewClient("http://localhost:8080")
//	mcpServer := client.GetMCPServer()
//	// serve mcpServer over the /mcp HTTP endpoint
//
// AI Integration:
//
// The MCP interface enables AI agents to play complete matches against
// the scripted opponent: create a match, lay out a fleet, then
// alternate fire_shot and match_state until one fleet is destroyed.
package mcp
