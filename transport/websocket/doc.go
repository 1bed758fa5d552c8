// Package websocket provides the real-time transport for matches.
//
// The package uses a hub-and-spoke model where a central Hub manages all
// WebSocket connections. Each connection is one session: the hub assigns
// a session id at upgrade time, and the match service addresses outbound
// events to that id through the Emitter interface.
//
// Message Protocol:
//
// Every frame in both directions is a JSON envelope:
//
//	{"event": "shot-fire", "data": {"matchId": "...", "coord": "B7", ...}}
//
// Inbound events (queue-join, queue-leave, room-create, room-join,
// placement-submit, shot-fire) are decoded in the read pump and
// dispatched to the match service. Rejected requests come back to the
// sender as an "error" event carrying a stable code and a message.
// Outbound events (match-found, match-state, shot-result, ...) are
// produced by the service and fan out only to the sessions they are
// addressed to; board snapshots are redacted per recipient before they
// reach the hub.
//
// Connection Lifecycle:
//
// 1. Client connects to /ws and receives a session-scoped connection
// 2. Client joins the queue or a room, identifying its user per event
// 3. Service notifications stream back over the same connection
// 4. Disconnection removes the session's queue entry and bindings
//
// Concurrency:
//
// The hub's event loop serializes registration, unregistration, and
// outbound delivery. Read and write pumps run per connection.
package websocket
