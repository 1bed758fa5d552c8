package api

import (
	"encoding/json"
	"math/rand"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/armadagame/armada/game/engine"
	"github.com/armadagame/armada/game/fleet"
	"github.com/armadagame/armada/game/service"
	"github.com/armadagame/armada/transport/websocket"
)

// Server represents the REST API server
type Server struct {
	service service.MatchService
	hub     *websocket.Hub
	router  *mux.Router
	log     zerolog.Logger
}

// NewServer creates a new API server
func NewServer(matchService service.MatchService, hub *websocket.Hub, log zerolog.Logger) *Server {
	s := &Server{
		service: matchService,
		hub:     hub,
		router:  mux.NewRouter(),
		log:     log,
	}

	s.setupRoutes()
	return s
}

// setupRoutes configures all API routes
func (s *Server) setupRoutes() {
	api := s.router.PathPrefix("/api").Subrouter()

	// Fleet catalog
	api.HandleFunc("/fleets", s.handleListFleets).Methods("GET")
	api.HandleFunc("/fleets/{nation}", s.handleGetFleet).Methods("GET")

	// Match operations
	api.HandleFunc("/matches", s.handleListMatches).Methods("GET")
	api.HandleFunc("/matches", s.handleCreateMatch).Methods("POST")
	api.HandleFunc("/matches/{id}", s.handleGetMatch).Methods("GET")
	api.HandleFunc("/matches/{id}/placements", s.handleSubmitPlacements).Methods("POST")
	api.HandleFunc("/matches/{id}/shots", s.handleFireShot).Methods("POST")

	// Health
	api.HandleFunc("/health", s.handleHealth).Methods("GET")

	// WebSocket
	s.router.HandleFunc("/ws", s.hub.ServeWS)
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Response helpers
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, map[string]string{"code": code, "error": message})
}

func respondServiceError(w http.ResponseWriter, err error) {
	code := service.ErrorCode(err)
	respondError(w, statusFor(code), code, err.Error())
}

// statusFor maps wire error codes onto HTTP status codes.
func statusFor(code string) int {
	switch code {
	case "MATCH_NOT_FOUND", "PLAYER_NOT_FOUND", "ROOM_NOT_FOUND":
		return http.StatusNotFound
	case "ROOM_FULL", "ROOM_STARTED", "NOT_YOUR_TURN":
		return http.StatusConflict
	default:
		return http.StatusBadRequest
	}
}

// Fleet Handlers

func (s *Server) handleListFleets(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"nations": fleet.Nations(),
		"default": fleet.DefaultNation,
	})
}

func (s *Server) handleGetFleet(w http.ResponseWriter, r *http.Request) {
	nation := mux.Vars(r)["nation"]
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"nation":  nation,
		"vessels": fleet.ForNation(nation),
	})
}

// Match Handlers

func (s *Server) handleListMatches(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, s.service.ListMatches(r.Context()))
}

// handleCreateMatch creates a match against the scripted opponent. The
// websocket transport handles human-vs-human matchmaking.
func (s *Server) handleCreateMatch(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserID   string `json:"userId,omitempty"`
		Username string `json:"username"`
		Nation   string `json:"nation,omitempty"`
	}

	if r.Body != nil {
		json.NewDecoder(r.Body).Decode(&req)
	}

	if req.UserID == "" {
		req.UserID = uuid.NewString()
	}
	if req.Username == "" {
		req.Username = "Player"
	}

	state, err := s.service.CreateScriptedMatch(r.Context(), req.UserID, req.Username, req.Nation)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	s.log.Info().Str("match", state.ID).Str("user", req.UserID).Msg("created match via REST")
	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"userId": req.UserID,
		"state":  state,
	})
}

func (s *Server) handleGetMatch(w http.ResponseWriter, r *http.Request) {
	matchID := mux.Vars(r)["id"]
	viewerID := r.URL.Query().Get("player")

	state, err := s.service.MatchState(r.Context(), matchID, viewerID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, state)
}

// handleSubmitPlacements accepts either an explicit placement list or
// {"auto": true} to lay the player's fleet out randomly.
func (s *Server) handleSubmitPlacements(w http.ResponseWriter, r *http.Request) {
	matchID := mux.Vars(r)["id"]

	var req struct {
		UserID     string             `json:"userId"`
		Auto       bool               `json:"auto,omitempty"`
		Placements []engine.Placement `json:"placements,omitempty"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_PLACEMENT", "invalid request body")
		return
	}

	placements := req.Placements
	if req.Auto {
		var err error
		placements, err = s.autoPlacements(r, matchID, req.UserID)
		if err != nil {
			respondServiceError(w, err)
			return
		}
	}

	if err := s.service.SubmitPlacement(r.Context(), matchID, req.UserID, placements); err != nil {
		respondServiceError(w, err)
		return
	}

	state, err := s.service.MatchState(r.Context(), matchID, req.UserID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, state)
}

// autoPlacements lays out the player's national fleet randomly on their
// board.
func (s *Server) autoPlacements(r *http.Request, matchID, userID string) ([]engine.Placement, error) {
	state, err := s.service.MatchState(r.Context(), matchID, userID)
	if err != nil {
		return nil, err
	}

	nation := fleet.DefaultNation
	found := false
	for _, p := range state.Players {
		if p.ID == userID {
			nation = p.Nation
			found = true
			break
		}
	}
	if !found {
		return nil, engine.ErrPlayerNotFound
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	return engine.RandomPlacement(rng, state.BoardSize, fleet.ForNation(nation))
}

func (s *Server) handleFireShot(w http.ResponseWriter, r *http.Request) {
	matchID := mux.Vars(r)["id"]

	var req struct {
		UserID   string       `json:"userId"`
		TargetID string       `json:"targetId"`
		Coord    engine.Coord `json:"coord"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_SHOT", "invalid request body")
		return
	}

	if req.TargetID == "" {
		// Single-opponent convenience: target the other seat.
		state, err := s.service.MatchState(r.Context(), matchID, req.UserID)
		if err != nil {
			respondServiceError(w, err)
			return
		}
		for _, p := range state.Players {
			if p.ID != req.UserID {
				req.TargetID = p.ID
				break
			}
		}
	}

	if err := s.service.FireShot(r.Context(), matchID, req.UserID, req.TargetID, req.Coord); err != nil {
		respondServiceError(w, err)
		return
	}

	state, err := s.service.MatchState(r.Context(), matchID, req.UserID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, state)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
