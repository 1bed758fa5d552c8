package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/armadagame/armada/game/config"
	"github.com/armadagame/armada/game/engine"
	"github.com/armadagame/armada/game/service"
	"github.com/armadagame/armada/transport/websocket"
)

// nopEmitter drops events; REST flows carry no transport session.
type nopEmitter struct{}

func (nopEmitter) Emit(sessionID string, event service.Event) {}

// dropScheduler swallows scripted turns so test assertions stay
// deterministic.
type dropScheduler struct{}

func (dropScheduler) After(d time.Duration, fn func()) {}

func newTestServer(t *testing.T) *Server {
	t.Helper()
	cfg := &config.Settings{
		Host:           "localhost",
		Port:           8080,
		BoardSize:      10,
		ScriptedDelay:  0,
		ScriptedNation: "Russia",
	}
	log := zerolog.Nop()
	hub := websocket.NewHub(log)
	svc := service.NewMatchService(cfg, nopEmitter{}, dropScheduler{}, log)
	hub.SetService(svc)
	return NewServer(svc, hub, log)
}

func doJSON(t *testing.T, server *Server, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("failed to encode request body: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	if err := json.NewDecoder(rec.Body).Decode(out); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
}

// createMatch drives POST /api/matches and returns the user id and state.
func createMatch(t *testing.T, server *Server) (string, engine.MatchState) {
	t.Helper()

	rec := doJSON(t, server, "POST", "/api/matches", map[string]string{"username": "Alice"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("POST /api/matches = %d, want 201: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		UserID string            `json:"userId"`
		State  engine.MatchState `json:"state"`
	}
	decode(t, rec, &resp)
	if resp.UserID == "" {
		t.Fatal("create response carries no user id")
	}
	return resp.UserID, resp.State
}

func TestHealth(t *testing.T) {
	server := newTestServer(t)

	rec := doJSON(t, server, "GET", "/api/health", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("GET /api/health = %d, want 200", rec.Code)
	}

	var resp map[string]string
	decode(t, rec, &resp)
	if resp["status"] != "ok" {
		t.Errorf("health status = %q, want ok", resp["status"])
	}
}

func TestListFleets(t *testing.T) {
	server := newTestServer(t)

	rec := doJSON(t, server, "GET", "/api/fleets", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("GET /api/fleets = %d, want 200", rec.Code)
	}

	var resp struct {
		Nations []string `json:"nations"`
		Default string   `json:"default"`
	}
	decode(t, rec, &resp)
	if len(resp.Nations) == 0 {
		t.Fatal("fleet listing has no nations")
	}
	if resp.Default != "USA" {
		t.Errorf("default nation = %q, want USA", resp.Default)
	}

	rec = doJSON(t, server, "GET", "/api/fleets/UK", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("GET /api/fleets/UK = %d, want 200", rec.Code)
	}

	var fleetResp struct {
		Nation  string `json:"nation"`
		Vessels []struct {
			Name   string `json:"name"`
			Kind   string `json:"kind"`
			Length int    `json:"length"`
		} `json:"vessels"`
	}
	decode(t, rec, &fleetResp)
	if len(fleetResp.Vessels) != 5 {
		t.Fatalf("UK fleet has %d vessels, want 5", len(fleetResp.Vessels))
	}
}

func TestCreateMatch(t *testing.T) {
	server := newTestServer(t)

	userID, state := createMatch(t, server)
	if state.Phase != engine.PhaseWaiting {
		t.Errorf("new match phase = %q, want waiting", state.Phase)
	}
	if len(state.Players) != 2 {
		t.Fatalf("new match has %d players, want 2", len(state.Players))
	}
	if state.Players[0].ID != userID {
		t.Errorf("first seat = %q, want creator %q", state.Players[0].ID, userID)
	}
	if !state.Players[1].Scripted {
		t.Error("second seat is not scripted")
	}
}

func TestGetMatchNotFound(t *testing.T) {
	server := newTestServer(t)

	rec := doJSON(t, server, "GET", "/api/matches/nope", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("GET unknown match = %d, want 404", rec.Code)
	}

	var resp map[string]string
	decode(t, rec, &resp)
	if resp["code"] != "MATCH_NOT_FOUND" {
		t.Errorf("error code = %q, want MATCH_NOT_FOUND", resp["code"])
	}
}

func TestAutoPlacementStartsMatch(t *testing.T) {
	server := newTestServer(t)
	userID, state := createMatch(t, server)

	rec := doJSON(t, server, "POST", "/api/matches/"+state.ID+"/placements", map[string]interface{}{
		"userId": userID,
		"auto":   true,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("auto placement = %d, want 200: %s", rec.Code, rec.Body.String())
	}

	var after engine.MatchState
	decode(t, rec, &after)
	if after.Phase != engine.PhaseActive {
		t.Fatalf("phase = %q after auto placement, want active", after.Phase)
	}
	if after.CurrentTurn != userID {
		t.Errorf("opening turn = %q, want creator %q", after.CurrentTurn, userID)
	}

	// The scripted opponent's layout never shows in the creator's view.
	for _, p := range after.Players {
		if p.Scripted && p.Board != nil && len(p.Board.Ships) != 0 {
			t.Fatal("scripted seat's ships leaked into the response")
		}
	}
}

func TestInvalidPlacementRejected(t *testing.T) {
	server := newTestServer(t)
	userID, state := createMatch(t, server)

	rec := doJSON(t, server, "POST", "/api/matches/"+state.ID+"/placements", map[string]interface{}{
		"userId": userID,
		"placements": []map[string]interface{}{
			{"kind": "destroyer", "cells": []string{"A1", "C3"}},
		},
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("invalid placement = %d, want 400: %s", rec.Code, rec.Body.String())
	}

	var resp map[string]string
	decode(t, rec, &resp)
	if resp["code"] != "INVALID_PLACEMENT" {
		t.Errorf("error code = %q, want INVALID_PLACEMENT", resp["code"])
	}
}

func TestFireShot(t *testing.T) {
	server := newTestServer(t)
	userID, state := createMatch(t, server)

	rec := doJSON(t, server, "POST", "/api/matches/"+state.ID+"/placements", map[string]interface{}{
		"userId": userID,
		"auto":   true,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("auto placement = %d, want 200", rec.Code)
	}

	// Target is optional with a single opponent.
	rec = doJSON(t, server, "POST", "/api/matches/"+state.ID+"/shots", map[string]interface{}{
		"userId": userID,
		"coord":  "B7",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("fire shot = %d, want 200: %s", rec.Code, rec.Body.String())
	}

	var after engine.MatchState
	decode(t, rec, &after)

	var opponentBoard map[engine.Coord]engine.CellState
	for _, p := range after.Players {
		if p.Scripted && p.Board != nil {
			opponentBoard = p.Board.Cells
		}
	}
	if _, fired := opponentBoard["B7"]; !fired {
		t.Fatal("shot outcome missing from the opponent board")
	}

	// The scripted reply is swallowed by the test scheduler, so the
	// turn stays with the scripted seat and a second shot is rejected.
	rec = doJSON(t, server, "POST", "/api/matches/"+state.ID+"/shots", map[string]interface{}{
		"userId": userID,
		"coord":  "C7",
	})
	if rec.Code != http.StatusConflict {
		t.Fatalf("out-of-turn shot = %d, want 409: %s", rec.Code, rec.Body.String())
	}

	var resp map[string]string
	decode(t, rec, &resp)
	if resp["code"] != "NOT_YOUR_TURN" {
		t.Errorf("error code = %q, want NOT_YOUR_TURN", resp["code"])
	}
}

func TestListMatches(t *testing.T) {
	server := newTestServer(t)
	createMatch(t, server)
	createMatch(t, server)

	rec := doJSON(t, server, "GET", "/api/matches", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("GET /api/matches = %d, want 200", rec.Code)
	}

	var summaries []engine.MatchSummary
	decode(t, rec, &summaries)
	if len(summaries) != 2 {
		t.Fatalf("listed %d matches, want 2", len(summaries))
	}
}
