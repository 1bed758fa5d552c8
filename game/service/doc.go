// Package service implements matchmaking and match orchestration on top
// of the engine: the public queue, private rooms with join codes, fleet
// placement, shot routing, and the scripted opponent's turn scheduling.
// Transports (websocket, REST, MCP) call into MatchService and receive
// outbound notifications through the Emitter.
package service
