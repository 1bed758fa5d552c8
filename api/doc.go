// Package api provides the HTTP REST surface for the naval game server.
//
// The api package implements:
//   - RESTful endpoints for match operations against the scripted opponent
//   - Fleet catalog browsing
//   - WebSocket upgrade handling for the real-time transport
//
// Endpoints:
//
// Fleet Catalog:
//   - GET /api/fleets - List nations with historical fleets
//   - GET /api/fleets/{nation} - Vessel roster for one nation
//
// Match Operations:
//   - GET /api/matches - List matches
//   - POST /api/matches - Create a match against the scripted opponent
//   - GET /api/matches/{id}?player={userId} - Match snapshot for a viewer
//   - POST /api/matches/{id}/placements - Submit fleet placement
//   - POST /api/matches/{id}/shots - Fire at the opponent
//
// Health:
//   - GET /api/health - Liveness probe
//
// WebSocket:
//   - /ws - Real-time transport (matchmaking, rooms, live matches)
//
// Request/Response Format:
//
// All endpoints accept and return JSON. Board snapshots are redacted
// per viewer: intact enemy ship positions never appear in a response
// addressed to their opponent. Placement submission accepts either an
// explicit list:
//
//	{
//	  "userId": "u1",
//	  "placements": [{"kind": "carrier", "cells": ["A1","A2","A3","A4","A5"]}, ...]
//	}
//
// or automatic layout:
//
//	{"userId": "u1", "auto": true}
//
// Error Handling:
//
// Errors are returned as JSON with a stable code and an appropriate
// HTTP status:
//
//	{
//	  "code": "NOT_YOUR_TURN",
//	  "error": "not your turn"
//	}
package api
